package lib

import "regexp"

// Names must start with a letter (a leading underscore could clobber
// attribute-style access in client bindings) and continue with letters,
// digits, or underscores.
var validNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// ValidateName checks a user, package, or tree node name against the
// naming pattern. Violations are a hard error, never coerced.
func ValidateName(name string) error {
	if !validNameRe.MatchString(name) {
		return &InvalidNameError{Name: name}
	}
	return nil
}
