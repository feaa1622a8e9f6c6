package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAPIKey(t *testing.T) {
	key := GenerateAPIKey()

	assert.NotEmpty(t, key)
	_, err := uuid.Parse(key)
	assert.NoError(t, err)
}

func TestGenerateAPIKey_Unique(t *testing.T) {
	assert.NotEqual(t, GenerateAPIKey(), GenerateAPIKey())
}
