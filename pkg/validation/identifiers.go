// Package validation holds the small input-validation helpers shared by
// the profile loader and the CLI: action identifiers, profile names,
// and user-supplied file paths.
package validation

import "fmt"

// IsValidIdentifierChar checks if a character is valid inside an action
// identifier or profile name: alphanumeric, hyphen, underscore, or dot.
func IsValidIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_' || ch == '.'
}

// ValidateActionID checks an action identifier such as "app.quit" or
// "nav.page-down". Identifiers start with a letter and contain only
// letters, digits, hyphens, underscores, and dots.
func ValidateActionID(id string) error {
	if id == "" {
		return fmt.Errorf("action identifier cannot be empty")
	}
	first := rune(id[0])
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z') {
		return fmt.Errorf("action identifier %q must start with a letter", id)
	}
	for _, ch := range id {
		if !IsValidIdentifierChar(ch) {
			return fmt.Errorf("action identifier %q contains invalid character %q", id, ch)
		}
	}
	return nil
}

// ValidateProfileName checks a profile name used to locate a file under
// the config directory. Names follow the identifier rules minus dots,
// so a name can never smuggle in a path.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	for _, ch := range name {
		if ch == '.' || !IsValidIdentifierChar(ch) {
			return fmt.Errorf("profile name %q contains invalid character %q", name, ch)
		}
	}
	return nil
}
