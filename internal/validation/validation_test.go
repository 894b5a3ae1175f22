package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"alice", true},
		{"al", false},                // too short
		{"bob_1-2", true},
		{"has space", false},
		{"", false},
		{"abc", true},                // lower bound
		{strings.Repeat("a", 51), false}, // over 50 chars
		{"name!", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidUsername(tt.username), "username %q", tt.username)
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"1234", true},
		{"123", false}, // too short
		{"p@$$w0rd!", true},
		{"with space", false},
		{"", false},
		{"a-b_c@d$e!f%g*h#i?j&k", true},
		{"päss", false}, // outside the alphabet
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPassword(tt.password), "password %q", tt.password)
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"01-01-2025", true},
		{"31-12-2025", true},
		{"00-01-2025", false}, // day below range
		{"32-01-2025", false}, // day above range
		{"15-00-2025", false}, // month below range
		{"15-13-2025", false}, // month above range
		{"2025-01-15", false}, // reversed form is not a wire date
		{"1-1-2025", false},   // no zero padding
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidDate(tt.date), "date %q", tt.date)
	}
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"-100", true},
		{"+100", true},
		{"-100.5", true},
		{"+0.0001", true},
		{"100", false}, // sign is mandatory
		{"-", false},
		{"-100.", false},
		{"-1,5", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidAmount(tt.amount), "amount %q", tt.amount)
	}
}

func TestValidTags(t *testing.T) {
	tests := []struct {
		tags string
		want bool
	}{
		{"", true},
		{"#food", true},
		{"#food #water", true},
		{"  #food   #water ", true},
		{"#living-place #rent", true},
		{"food", false},     // missing #
		{"#", false},        // empty tag
		{"#tag!", false},    // bad char
		{"#a #", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTags(tt.tags), "tags %q", tt.tags)
	}
}

func TestParseTags(t *testing.T) {
	assert.Empty(t, ParseTags(""))
	assert.Empty(t, ParseTags("   "))
	assert.Equal(t, []string{"food"}, ParseTags("#food"))
	assert.Equal(t, []string{"food", "water"}, ParseTags("#food #water"))
	// Position is the index of appearance, not alphabetical order
	assert.Equal(t, []string{"water", "food"}, ParseTags("#water #food"))
}
