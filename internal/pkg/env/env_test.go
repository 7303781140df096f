package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvPrefersLoadedFile(t *testing.T) {
	t.Setenv("STUDIO_TEST_KEY", "from-process")
	Env = map[string]string{"STUDIO_TEST_KEY": "from-file"}
	t.Cleanup(func() { Env = nil })

	assert.Equal(t, "from-file", GetEnv("STUDIO_TEST_KEY", "default"))
}

func TestGetEnvFallsBackToProcessAndDefault(t *testing.T) {
	Env = map[string]string{"STUDIO_EMPTY": ""}
	t.Cleanup(func() { Env = nil })
	t.Setenv("STUDIO_EMPTY", "process")

	assert.Equal(t, "process", GetEnv("STUDIO_EMPTY", "default"))
	assert.Equal(t, "default", GetEnv("STUDIO_DOES_NOT_EXIST", "default"))
}

func TestAppEnvNormalizesShortNames(t *testing.T) {
	Env = nil
	tests := []struct {
		in   string
		want string
	}{
		{in: "dev", want: "development"},
		{in: "prod", want: "production"},
		{in: "test", want: "test"},
	}
	for _, tt := range tests {
		t.Setenv("APP_ENV", tt.in)
		assert.Equal(t, tt.want, AppEnv())
	}

	t.Setenv("APP_ENV", "dev")
	assert.True(t, IsDev())
}
