// Package storage saves uploaded cattle images either to S3 or to a local
// directory served under DefaultURLPrefix.
package storage

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// maxNameLen bounds the kept base name, in runes.
const maxNameLen = 64

// ObjectName prefixes a sanitised base name with a random UUID so uploads never collide.
func ObjectName(filename string) string {
	base := filepath.Base(filepath.Clean("/" + filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if runes := []rune(base); len(runes) > maxNameLen {
		base = string(runes[len(runes)-maxNameLen:])
	}
	if base == "" || base == "_" || base == "." {
		base = "image"
	}
	return uuid.NewString() + "_" + base
}
