package model

import (
	"regexp"
	"strings"

	"github.com/evergreen-ci/tcgen"
)

var validIdRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ReplaceCharsId turns a human readable name into a TeamCity id: hyphens are
// dropped, spaces become underscores and the result is upper-cased.
func ReplaceCharsId(id string) string {
	newId := strings.Replace(id, "-", "", -1)
	newId = strings.Replace(newId, " ", "_", -1)
	return strings.ToUpper(newId)
}

// ValidId reports whether id satisfies TeamCity's rules: it starts with a
// latin letter, contains only latin letters, digits and underscores, and is
// at most MaxIdLength characters long.
func ValidId(id string) bool {
	return len(id) <= tcgen.MaxIdLength && validIdRegexp.MatchString(id)
}

// JoinId builds a child id from its parent's id.
func JoinId(parts ...string) string {
	return ReplaceCharsId(strings.Join(parts, "_"))
}
