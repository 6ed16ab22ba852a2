package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize())

	assert.Equal(t, "Internal server error", T("en", KeyInternalError))
	assert.Equal(t, "Erreur interne du serveur", T("fr", KeyInternalError))
	assert.Equal(t, "Too many files, at most 10 images per request", T("en", KeyFileTooMany, 10))
}

func TestFallbacks(t *testing.T) {
	require.NoError(t, Initialize())

	// unknown language falls back to English
	assert.Equal(t, "Invalid credentials", T("de", KeyAuthInvalidCredentials))
	// unknown key comes back unchanged
	assert.Equal(t, "no.such.key", T("fr", "no.such.key"))

	assert.True(t, IsSupported("fr"))
	assert.False(t, IsSupported("de"))
}
