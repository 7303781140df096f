package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUninitializedCache(t *testing.T) {
	SetClient(nil)

	assert.Nil(t, GetClient())
	assert.Error(t, Ping(context.Background()))

	_, err := NewStorage(SessionDB)
	assert.Error(t, err)
}
