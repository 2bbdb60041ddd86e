package service

import (
	"fmt"
	"strings"
	"unicode"
)

// SlugExistsFn reports whether a candidate slug is already taken and
// which row owns it. It must run inside the same transaction as the
// write that stores the slug; the unique index on the slug column is
// the backstop for races the check cannot see.
type SlugExistsFn func(candidate string) (ownerID int64, exists bool, err error)

// Slugify turns a display name into a URL-safe lowercase slug.
// Whitespace and joining punctuation become dashes, terminal
// punctuation is dropped, anything else outside letters and digits is
// stripped. Non-latin letters survive so arabic names keep readable slugs.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r), r == ',', r == '&', r == '(':
			b.WriteRune('-')
		case r == ')', r == '!', r == '?', r == '؟':
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UniqueSlug generates a slug for the named entity, resolving
// collisions by appending the conflicting owner's id and checking
// again. Re-saving the same entity with an unchanged name yields the
// same slug. selfID is the id of the row being saved, zero when the
// row has none yet.
//
// Termination: every suffix embeds a distinct existing row id, so each
// conflicting row is visited at most once.
func UniqueSlug(name string, selfID int64, exists SlugExistsFn) (string, error) {
	slug := Slugify(name)
	for {
		ownerID, taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken || ownerID == selfID {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", slug, ownerID)
	}
}
