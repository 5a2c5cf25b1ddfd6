package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaxContains(t *testing.T) {
	tests := []struct {
		needle, haystack string
		want             bool
	}{
		{"Rookie Harbor", "Welcome to Rookie Harbor!", true},
		{"rookie-harbor", "ROOKIE HARBOR", true},
		{"Harbor Rookie", "the rookie went to the harbor", true},
		{"Bergen Village", "Welcome to Bergen", false},
		{"", "anything", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LaxContains(tt.needle, tt.haystack), "%q in %q", tt.needle, tt.haystack)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "héllo...", Truncate("héllo world", 5))
}
