package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "Red Rose", "red-rose"},
		{"punctuation stripped", "Lily & Fern!", "lily-fern"},
		{"diacritics transliterated", "Crème Brûlée", "creme-brulee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"red-rose": true, "red-rose-2": true}
	exists := func(s string) (bool, error) { return taken[s], nil }

	got, err := UniqueSlug("Red Rose", exists)
	require.NoError(t, err)
	assert.Equal(t, "red-rose-3", got)
}

func TestUniqueSlug_NoCollision(t *testing.T) {
	exists := func(s string) (bool, error) { return false, nil }

	got, err := UniqueSlug("White Tulip", exists)
	require.NoError(t, err)
	assert.Equal(t, "white-tulip", got)
}

func TestUniqueSlug_ProbeError(t *testing.T) {
	probeErr := errors.New("db down")
	exists := func(s string) (bool, error) { return false, probeErr }

	_, err := UniqueSlug("White Tulip", exists)
	assert.ErrorIs(t, err, probeErr)
}
