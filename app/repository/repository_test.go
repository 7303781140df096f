package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pixelcraft/studio/app/models"
	"github.com/pixelcraft/studio/internal/pkg/testutil"
)

func newProject(userID uint, name string) *models.Project {
	n := name
	return &models.Project{
		Name:       &n,
		ImageURL:   "https://ik.imagekit.io/studio/" + name + ".png",
		ImageKitID: "file_" + name,
		FilePath:   "/" + name + ".png",
		UserID:     userID,
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)
	u := testutil.CreateUser(t, db, "alice@example.com", 42)

	byEmail, err := repos.User.GetByEmail(" Alice@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byExt, err := repos.User.GetByExternalID(u.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byExt.ID)

	credits, err := repos.User.GetCredits(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, credits)

	_, err = repos.User.GetByExternalID("")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repos.User.GetByExternalID("missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepositoryUpdateLastLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)
	u := testutil.CreateUser(t, db, "bob@example.com", 10)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repos.User.UpdateLastLogin(u.ID, at))

	got, err := repos.User.GetByID(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, at.Equal(got.LastLoginAt.UTC()))
}

func TestProjectRepositoryListNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)
	u := testutil.CreateUser(t, db, "carol@example.com", 10)
	other := testutil.CreateUser(t, db, "dave@example.com", 10)

	first := newProject(u.ID, "first")
	require.NoError(t, repos.Project.Create(first))
	second := newProject(u.ID, "second")
	require.NoError(t, repos.Project.Create(second))
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, repos.Project.Create(newProject(other.ID, "foreign")))

	list, err := repos.Project.ListByUserID(u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Len(t, first.ID, 36)
}

func TestProjectRepositoryDeleteForUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)
	owner := testutil.CreateUser(t, db, "erin@example.com", 10)
	stranger := testutil.CreateUser(t, db, "frank@example.com", 10)

	p := newProject(owner.ID, "mine")
	require.NoError(t, repos.Project.Create(p))

	err := repos.Project.DeleteForUser(p.ID, stranger.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repos.Project.DeleteForUser(p.ID, owner.ID))
	_, err = repos.Project.GetByID(p.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProjectRepositoryStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)
	u := testutil.CreateUser(t, db, "gina@example.com", 10)
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	ages := map[string]time.Time{
		"today":     now.Add(-time.Hour),
		"lastweek":  now.AddDate(0, 0, -10),
		"lastmonth": now.AddDate(0, -1, 0),
	}
	for name, created := range ages {
		p := newProject(u.ID, name)
		require.NoError(t, repos.Project.Create(p))
		require.NoError(t, db.Model(p).Update("created_at", created).Error)
	}

	stats, err := repos.Project.GetStatsByUserID(u.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalProjects)
	assert.Equal(t, int64(2), stats.ThisMonth)
	assert.Equal(t, int64(1), stats.ThisWeek)
}

func TestFactoryReturnsSingletons(t *testing.T) {
	db := testutil.NewTestDB(t)
	InitializeFactory(db)

	f := GetGlobalFactory()
	assert.Same(t, f.GetRepositories(), GetGlobalRepositories())
	assert.NotNil(t, f.GetUserRepository())
	assert.NotNil(t, f.GetProjectRepository())
}

func TestBillingEventRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)

	total, err := repos.BillingEvent.SumCreditsGranted()
	require.NoError(t, err)
	assert.Zero(t, total)

	for i, credits := range []int{50, 100, 400} {
		require.NoError(t, db.Create(&models.BillingWebhookEvent{
			Provider:        models.BillingProviderPolar,
			ProviderEventID: "msg_" + string(rune('a'+i)),
			EventType:       "order.paid",
			CreditsGranted:  credits,
			PayloadJSON:     "{}",
		}).Error)
	}

	count, err := repos.BillingEvent.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	total, err = repos.BillingEvent.SumCreditsGranted()
	require.NoError(t, err)
	assert.Equal(t, int64(550), total)

	page, err := repos.BillingEvent.List(0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "msg_c", page[0].ProviderEventID)
}
