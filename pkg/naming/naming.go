// Package naming derives display names and identifiers for registry components.
//
// An identifier is the component's source filename without its suffix, by
// convention hyphen-separated lowercase words ("glass-shimmer-button").
// [DisplayName] is the single derivation used by both the registry builder
// and the service's fallback path, so the two always agree.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/uiregistry/pkg/errors"
)

// Separator splits an identifier into words.
const Separator = "-"

// maxIdentifierLength bounds identifiers accepted from untrusted input.
const maxIdentifierLength = 128

// DisplayName converts an identifier into a human-readable name by splitting
// on [Separator], upper-casing the first rune of each word and joining the
// words with single spaces.
//
//	DisplayName("glass-shimmer-button") == "Glass Shimmer Button"
func DisplayName(id string) string {
	words := strings.Split(id, Separator)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 || r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// Identifier returns the identifier for a source filename, or false if the
// filename does not carry suffix.
func Identifier(filename, suffix string) (string, bool) {
	if suffix == "" || !strings.HasSuffix(filename, suffix) {
		return "", false
	}
	id := strings.TrimSuffix(filename, suffix)
	if id == "" {
		return "", false
	}
	return id, true
}

// Validate checks that id is safe to join with a directory path.
// It rejects empty identifiers, path separators, traversal sequences and
// control characters.
func Validate(id string) error {
	if id == "" {
		return errors.New(errors.ErrCodeInvalidIdentifier, "identifier cannot be empty")
	}
	if len(id) > maxIdentifierLength {
		return errors.New(errors.ErrCodeInvalidIdentifier, "identifier too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return errors.New(errors.ErrCodeInvalidIdentifier, "identifier contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, `/\`) {
		return errors.New(errors.ErrCodeInvalidIdentifier, "identifier cannot contain path separators: %q", id)
	}
	if strings.Contains(id, "..") || strings.HasPrefix(id, ".") {
		return errors.New(errors.ErrCodeInvalidIdentifier, "identifier cannot start with a dot or contain '..': %q", id)
	}
	return nil
}
