package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("  alice ", "Alice@Example.com", "secret-pw")
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, DefaultSignupCredits, u.Credits)
	assert.Equal(t, STATUS_ACTIVE, u.Status)
	assert.NotEqual(t, "secret-pw", u.Password)
	assert.True(t, u.CheckPassword("secret-pw"))
	assert.False(t, u.CheckPassword("wrong"))

	_, err = uuid.Parse(u.ExternalID)
	assert.NoError(t, err)
}

func TestCreateUserAssignsDistinctExternalIDs(t *testing.T) {
	a, err := CreateUser("alice", "a@example.com", "secret-pw")
	require.NoError(t, err)
	b, err := CreateUser("bobby", "b@example.com", "secret-pw")
	require.NoError(t, err)

	assert.NotEqual(t, a.ExternalID, b.ExternalID)
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "short name", username: "al", email: "a@example.com", password: "secret-pw"},
		{name: "bad email", username: "alice", email: "nope", password: "secret-pw"},
		{name: "short password", username: "alice", email: "a@example.com", password: "123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(tt.username, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestProjectDisplayName(t *testing.T) {
	p := &Project{}
	assert.Equal(t, "Untitled Project", p.DisplayName())

	empty := ""
	p.Name = &empty
	assert.Equal(t, "Untitled Project", p.DisplayName())

	name := "Sunset"
	p.Name = &name
	assert.Equal(t, "Sunset", p.DisplayName())
}

func TestProjectValidate(t *testing.T) {
	p := &Project{
		ImageURL:   "https://ik.imagekit.io/studio/a.png",
		ImageKitID: "file_123",
		FilePath:   "/a.png",
	}
	assert.NoError(t, p.Validate())

	p.ImageURL = "not-a-url"
	assert.Error(t, p.Validate())
}
