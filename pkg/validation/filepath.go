package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PathValidator restricts user-provided relative paths to a base
// directory. The profile loader uses one rooted at the config dir so a
// profile name or --profile argument can never read outside it.
//
// Validation is layered:
//   - Lexical check (reject absolute paths and "..")
//   - Path normalization
//   - Symbolic link resolution
//   - Containment verification
type PathValidator struct {
	basePath     string
	resolvedBase string
	maxPathLen   int
}

// ValidationError represents a path validation failure with context for logging.
type ValidationError struct {
	UserPath     string    // Original user input that was rejected
	Reason       string    // Human-readable reason for rejection
	ResolvedPath string    // Resolved path if resolution succeeded (may be empty)
	Timestamp    time.Time // When the validation error occurred
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.ResolvedPath != "" {
		return fmt.Sprintf("path validation failed: %s (input: %s, resolved: %s)",
			e.Reason, e.UserPath, e.ResolvedPath)
	}
	return fmt.Sprintf("path validation failed: %s (input: %s)", e.Reason, e.UserPath)
}

// NewPathValidator creates a validator rooted at basePath. The base must
// be an absolute path to an existing directory.
func NewPathValidator(basePath string) (*PathValidator, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if !filepath.IsAbs(basePath) {
		return nil, fmt.Errorf("base path must be absolute: %s", basePath)
	}

	info, err := os.Stat(basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("base path does not exist: %s", basePath)
		}
		return nil, fmt.Errorf("cannot access base path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path is not a directory: %s", basePath)
	}

	resolvedBase, err := filepath.EvalSymlinks(basePath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve symbolic links in base path: %w", err)
	}

	return &PathValidator{
		basePath:     basePath,
		resolvedBase: resolvedBase,
		maxPathLen:   1024,
	}, nil
}

// Validate checks that userPath stays within the base directory and
// returns the resolved absolute path.
//
// The returned path is absolute, inside the base directory after symlink
// resolution, and safe to hand to os.ReadFile or os.WriteFile. Paths that
// do not exist yet validate against their parent, so the config dir's
// default profile can be created through a validated path.
func (v *PathValidator) Validate(userPath string) (string, error) {
	if userPath == "" {
		return "", &ValidationError{
			UserPath:  userPath,
			Reason:    "path cannot be empty",
			Timestamp: time.Now(),
		}
	}
	if len(userPath) > v.maxPathLen {
		return "", &ValidationError{
			UserPath:  userPath,
			Reason:    fmt.Sprintf("path length exceeds maximum of %d bytes", v.maxPathLen),
			Timestamp: time.Now(),
		}
	}

	// Lexical layer. IsLocal rejects absolute paths and anything that
	// climbs out through "..".
	if !filepath.IsLocal(userPath) {
		return "", &ValidationError{
			UserPath:  userPath,
			Reason:    "path escapes allowed directory",
			Timestamp: time.Now(),
		}
	}

	cleanPath := filepath.Clean(userPath)
	fullPath := filepath.Join(v.basePath, cleanPath)

	// Symlink layer. A symlink planted inside the base directory could
	// otherwise point anywhere.
	resolvedPath, err := filepath.EvalSymlinks(fullPath)
	if err != nil {
		// Not existing yet is fine for file creation; resolve the parent
		// instead and reattach the base name.
		parent := filepath.Dir(fullPath)
		resolvedParent, parentErr := filepath.EvalSymlinks(parent)
		if parentErr != nil {
			return "", &ValidationError{
				UserPath:  userPath,
				Reason:    "cannot resolve path",
				Timestamp: time.Now(),
			}
		}
		resolvedPath = filepath.Join(resolvedParent, filepath.Base(fullPath))
	}

	// Containment layer.
	relPath, err := filepath.Rel(v.resolvedBase, resolvedPath)
	if err != nil {
		return "", &ValidationError{
			UserPath:     userPath,
			Reason:       "path is not relative to base",
			ResolvedPath: resolvedPath,
			Timestamp:    time.Now(),
		}
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", &ValidationError{
			UserPath:     userPath,
			Reason:       "resolved path escapes base directory",
			ResolvedPath: resolvedPath,
			Timestamp:    time.Now(),
		}
	}

	return resolvedPath, nil
}

// ValidateSecurePath validates a single path without keeping a
// PathValidator around. For repeated lookups against the same base,
// create a validator once instead.
func ValidateSecurePath(basePath, userPath string) (string, error) {
	validator, err := NewPathValidator(basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	return validator.Validate(userPath)
}
