package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAPIKey(t *testing.T) {
	hashed := HashAPIKey("secret")
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", hashed)
	assert.Equal(t, hashed, HashAPIKey("secret"))
	assert.NotEqual(t, hashed, HashAPIKey("other"))
}

func TestSanitizeIncomingData(t *testing.T) {
	assert.Equal(t, "bold name", SanitizeIncomingData("<b>bold</b> name"))
	assert.Equal(t, "plain", SanitizeIncomingData("plain"))
}

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
	assert.False(t, ContainsString(nil, "a"))
}
