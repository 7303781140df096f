package database

import "gorm.io/gorm"

// DB is the process wide connection pool, set by SetupDatabase.
var DB *gorm.DB

func GetDB() *gorm.DB {
	return DB
}

// SetDB replaces the global connection. Tests use it to inject an
// in-memory database.
func SetDB(db *gorm.DB) {
	DB = db
}
