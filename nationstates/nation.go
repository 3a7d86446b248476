package nationstates

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeNation turns a nation name as typed by a user into the identifier
// the API expects: lowercase, whitespace runs joined with underscores.
func NormalizeNation(name string) (string, error) {
	id := strings.Join(strings.Fields(strings.ToLower(name)), "_")
	if id == "" {
		return "", ErrInvalidNation
	}

	for _, r := range id {
		if !validNationRune(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidNation, name)
		}
	}

	return id, nil
}

func validNationRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}

// DisplayName renders a nation identifier for humans, e.g. "the_testlandia"
// becomes "The Testlandia".
func DisplayName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}
