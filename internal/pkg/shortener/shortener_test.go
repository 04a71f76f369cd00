package shortener

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureSlug_InvalidLength(t *testing.T) {
	t.Parallel()

	_, err := GenerateSecureSlug(0)
	assert.Error(t, err)
}

func TestGenerateSecureSlug_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	slug, err := GenerateSecureSlug(10)
	require.NoError(t, err)
	assert.Len(t, slug, 10)
	for i := 0; i < len(slug); i++ {
		assert.NotEqual(t, -1, strings.IndexByte(alphabet, slug[i]), "slug contains invalid character %q", slug[i])
	}
	assert.True(t, IsSlug(slug, 10))
}

func TestGenerateSecureSlug_UniqueWithinSmallBatch(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		slug, err := GenerateSecureSlug(10)
		require.NoError(t, err)
		_, exists := seen[slug]
		require.False(t, exists, "duplicate slug generated in small batch: %s", slug)
		seen[slug] = struct{}{}
	}
}

func TestIsSlug(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSlug("aZ09bY18cX", 10))
	assert.False(t, IsSlug("aZ09bY18c", 10))
	assert.False(t, IsSlug("aZ09bY18c-", 10))
	assert.False(t, IsSlug("../../etc/", 10))
	assert.False(t, IsSlug("", 10))
}
