package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/termio/pkg/keymap"
	"github.com/dshills/termio/pkg/validation"
)

const (
	// Version is the current version of termio
	Version = "1.0.0"
)

// Config holds the global configuration for the termio CLI
type Config struct {
	ConfigDir string
	Debug     bool
}

// GlobalConfig is the shared configuration instance
var GlobalConfig = &Config{}

// NewRootCommand creates the root cobra command for termio
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "termio",
		Short: "termio - Terminal keyboard decoding and diff rendering",
		Long: `termio is a terminal UI runtime built on two pieces: a keyboard
sequence decoder that turns raw escape-sequence bytes into structured key
events, and a double-buffered renderer that repaints only the screen cells
that changed between frames. Key bindings live in YAML or JSON profiles
with optional guard expressions evaluated against runtime context.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize configuration
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// Setup logging
			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}

			return nil
		},
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.termio)")

	// Add subcommands
	cmd.AddCommand(NewDemoCommand())
	cmd.AddCommand(NewKeysCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewBindingsCommand())

	return cmd
}

// initConfig initializes the termio configuration directory and files
func initConfig() error {
	// Determine config directory
	// Environment variable always takes priority (for testing)
	if envDir := os.Getenv("TERMIO_CONFIG_DIR"); envDir != "" {
		GlobalConfig.ConfigDir = envDir
	} else if GlobalConfig.ConfigDir == "" {
		// Use default ~/.termio
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".termio")
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(GlobalConfig.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create subdirectories
	if err := os.MkdirAll(GetProfilesDir(), 0755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}

	// Materialize the default profile on first run
	profileFile := filepath.Join(GlobalConfig.ConfigDir, "profile.yaml")
	if _, err := os.Stat(profileFile); os.IsNotExist(err) {
		data, err := keymap.ToYAML(keymap.DefaultProfile())
		if err != nil {
			return fmt.Errorf("failed to marshal default profile: %w", err)
		}
		if err := os.WriteFile(profileFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write default profile: %w", err)
		}
	}

	return nil
}

// GetConfigDir returns the configuration directory path
// Priority order: 1) TERMIO_CONFIG_DIR env var (for testing), 2) GlobalConfig.ConfigDir, 3) ~/.termio
func GetConfigDir() string {
	// Check environment variable first (for testing)
	if envDir := os.Getenv("TERMIO_CONFIG_DIR"); envDir != "" {
		return envDir
	}
	if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home dir cannot be determined
			return ".termio"
		}
		return filepath.Join(homeDir, ".termio")
	}
	return GlobalConfig.ConfigDir
}

// GetProfilesDir returns the named-profiles directory path
func GetProfilesDir() string {
	return filepath.Join(GetConfigDir(), "profiles")
}

// GetDefaultProfilePath returns the path to the default profile file
func GetDefaultProfilePath() string {
	return filepath.Join(GetConfigDir(), "profile.yaml")
}

// resolveProfileArg maps a command-line profile argument to a file path.
// An argument that names an existing file is used as-is. Anything else is
// treated as a profile name and resolved inside the profiles directory,
// with path validation so a name cannot escape it.
func resolveProfileArg(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg, nil
	}
	if strings.ContainsRune(arg, os.PathSeparator) {
		return "", fmt.Errorf("profile not found: %s", arg)
	}

	name := arg
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		name = strings.TrimSuffix(name, ext)
	}
	if err := validation.ValidateProfileName(name); err != nil {
		return "", fmt.Errorf("invalid profile name %q: %w", arg, err)
	}

	for _, ext := range []string{".yaml", ".yml", ".json"} {
		resolved, err := validation.ValidateSecurePath(GetProfilesDir(), name+ext)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(resolved); err == nil {
			return resolved, nil
		}
	}
	return "", fmt.Errorf("profile not found: %s\n\nLooked in: %s", arg, GetProfilesDir())
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
