package utils

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldName returns the key under which two archive names are considered the
// same directory on case-insensitive or normalizing filesystems.
func FoldName(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// NameSet tracks folded names to detect collisions
type NameSet struct {
	seen map[string]string
}

// NewNameSet creates an empty NameSet
func NewNameSet() *NameSet {
	return &NameSet{seen: make(map[string]string)}
}

// Claim records name and returns the previously claimed name it collides
// with, if any. A colliding name is not recorded.
func (s *NameSet) Claim(name string) (string, bool) {
	key := FoldName(name)
	if prev, ok := s.seen[key]; ok {
		return prev, true
	}
	s.seen[key] = name
	return "", false
}
