package keymap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// IncompatibleVersionError indicates the profile version is not supported
type IncompatibleVersionError struct {
	ProfileVersion    string
	SupportedVersions []string
}

func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf("profile version %s is not compatible (supported versions: %s)",
		e.ProfileVersion, strings.Join(e.SupportedVersions, ", "))
}

// ShadowedBindingWarning indicates bindings that can never fire because
// an earlier binding on the same combination always wins.
type ShadowedBindingWarning struct {
	Shadowed []string
}

func (w *ShadowedBindingWarning) Error() string {
	return fmt.Sprintf("profile contains %d binding(s) that can never fire: %s",
		len(w.Shadowed), strings.Join(w.Shadowed, ", "))
}

// ProbeError collects the structural problems found while probing a
// JSON profile, before full validation runs.
type ProbeError struct {
	Problems []string
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("profile probe found %d problem(s): %s",
		len(e.Problems), strings.Join(e.Problems, "; "))
}

// ImportProfile loads a profile from a YAML or JSON file and validates it.
//
// The import process:
//  1. Read the file and dispatch on extension
//  2. JSON files are structurally probed for direct error messages
//  3. Validate against the profile schema
//  4. Parse into a Profile (key specs, actions, and guards checked)
//  5. Check profile version compatibility
//  6. Detect shadowed bindings
//
// Returns:
//   - (*Profile, nil) if the import is fully successful
//   - (*Profile, error) for warnings such as shadowed bindings (profile
//     still returned for inspection)
//   - (nil, error) if the file cannot be read, probed, or parsed
func ImportProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := probeJSONProfile(data); err != nil {
			return nil, err
		}
	}

	// JSON is a YAML subset, so schema validation and parsing share one
	// path for both formats.
	if err := ValidateAgainstSchema(data); err != nil {
		return nil, err
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := validateProfileVersion(p.Version); err != nil {
		return p, err
	}

	if warn := detectShadowedBindings(p.Bindings); warn != nil {
		return p, warn
	}

	return p, nil
}

// probeJSONProfile uses gjson to report missing required fields with
// paths before schema validation runs on the document.
func probeJSONProfile(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("profile is not valid JSON")
	}

	var problems []string

	if name := gjson.GetBytes(data, "name"); !name.Exists() || name.Type != gjson.String || name.Str == "" {
		problems = append(problems, "name: required string field is missing or empty")
	}

	bindings := gjson.GetBytes(data, "bindings")
	if bindings.Exists() {
		if !bindings.IsArray() {
			problems = append(problems, "bindings: must be an array")
		} else {
			i := 0
			bindings.ForEach(func(_, b gjson.Result) bool {
				if keys := b.Get("keys"); !keys.Exists() || keys.Str == "" {
					problems = append(problems, fmt.Sprintf("bindings.%d.keys: required field is missing", i))
				}
				if action := b.Get("action"); !action.Exists() || action.Str == "" {
					problems = append(problems, fmt.Sprintf("bindings.%d.action: required field is missing", i))
				}
				i++
				return true
			})
		}
	}

	if len(problems) > 0 {
		return &ProbeError{Problems: problems}
	}
	return nil
}

// validateProfileVersion checks if the profile version is supported
func validateProfileVersion(version string) error {
	if version == "" {
		// Versionless profiles predate the field and are treated as v1.
		return nil
	}

	supportedVersions := []string{"1", "1.0"}

	normalized := strings.TrimPrefix(version, "v")
	for _, supported := range supportedVersions {
		if normalized == supported {
			return nil
		}
	}
	if strings.HasPrefix(normalized, "1.") {
		return nil
	}

	return &IncompatibleVersionError{
		ProfileVersion:    version,
		SupportedVersions: supportedVersions,
	}
}

// detectShadowedBindings finds bindings that a prior binding on the
// same combination makes unreachable: the earlier one is unguarded, or
// carries the identical guard.
func detectShadowedBindings(bindings []Binding) *ShadowedBindingWarning {
	type seenEntry struct {
		unguarded bool
		guards    map[string]bool
	}
	seen := make(map[string]*seenEntry)
	var shadowed []string

	for _, b := range bindings {
		token := b.Combo.RawToken()
		entry, ok := seen[token]
		if !ok {
			entry = &seenEntry{guards: make(map[string]bool)}
			seen[token] = entry
		}

		if entry.unguarded || (b.When != "" && entry.guards[b.When]) {
			shadowed = append(shadowed, fmt.Sprintf("%s -> %s", b.Combo.Label(), b.Action))
			continue
		}

		if b.When == "" {
			entry.unguarded = true
		} else {
			entry.guards[b.When] = true
		}
	}

	if len(shadowed) > 0 {
		return &ShadowedBindingWarning{Shadowed: shadowed}
	}
	return nil
}
