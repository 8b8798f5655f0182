// Package textfilter sanitizes user-submitted text: a strict HTML strip
// followed by a denylist profanity mask. Both passes are pure functions and
// run authoritatively on the server for every comment and post description;
// clients may call the same logic for previews but are never trusted to.
package textfilter

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// denylist covers English and Filipino profanity. Matching is whole-word and
// case-insensitive; each hit is replaced character-for-character with '*'.
var denylist = []string{
	"damn", "hell", "crap", "bastard", "stupid", "idiot", "moron",
	"asshole", "bitch", "shit", "fuck",
	"gago", "gaga", "bobo", "boba", "tanga", "ulol", "punyeta",
	"tarantado", "leche", "buwisit", "putangina", "tangina", "inutil",
}

var (
	sanitizer   = bluemonday.StrictPolicy()
	profanityRe = regexp.MustCompile(`(?i)\b(` + strings.Join(denylist, "|") + `)\b`)
)

// StripHTML removes all markup from the input.
func StripHTML(input string) string {
	return sanitizer.Sanitize(input)
}

// MaskProfanity replaces each denylisted word with asterisks of equal length.
func MaskProfanity(input string) string {
	return profanityRe.ReplaceAllStringFunc(input, func(match string) string {
		return strings.Repeat("*", len(match))
	})
}

// Clean applies both passes in order: markup first, then the profanity mask.
func Clean(input string) string {
	return MaskProfanity(StripHTML(input))
}
