package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldName(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{"uBlock", "ublock", true},
		{"Straße", "STRASSE", true},
		{"caf\u00e9", "cafe\u0301", true},
		{"dark-reader", "darkreader", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.equal, FoldName(tt.a) == FoldName(tt.b))
		})
	}
}

func TestNameSet_Claim(t *testing.T) {
	s := NewNameSet()

	prev, dup := s.Claim("Privacy-Badger")
	assert.False(t, dup)
	assert.Empty(t, prev)

	prev, dup = s.Claim("privacy-badger")
	assert.True(t, dup)
	assert.Equal(t, "Privacy-Badger", prev)

	_, dup = s.Claim("ublock")
	assert.False(t, dup)
}
