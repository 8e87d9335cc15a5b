package works

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSlug(t *testing.T) {
	for _, s := range []string{"my-artwork-1", "a", "2024", "body-works"} {
		assert.True(t, ValidSlug(s), s)
	}
	for _, s := range []string{"My Artwork", "my_artwork", "-leading", "trailing-", "double--dash", ""} {
		assert.False(t, ValidSlug(s), s)
	}
}

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "body-works-no-3", MakeSlug("Body Works, No. 3"))
	assert.Equal(t, "untitled", MakeSlug("  Untitled  "))
	assert.Equal(t, "a-b", MakeSlug("a__b"))
	assert.Equal(t, "", MakeSlug("!!!"))
	assert.True(t, ValidSlug(MakeSlug("Solo Show: Gallery X / 2024")))
}
