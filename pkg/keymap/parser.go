package keymap

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/termio/pkg/frame"
	"github.com/dshills/termio/pkg/key"
	"github.com/dshills/termio/pkg/validation"
)

// Option bounds. Timeouts outside this range are almost certainly
// configuration mistakes rather than intent.
const (
	MinDecodeTimeoutMs = 1
	MaxDecodeTimeoutMs = 2000
	MinFrameRate       = 1
	MaxFrameRate       = 120
)

// Defaults applied when a profile omits the options block.
const (
	DefaultDecodeTimeoutMs = 100
	DefaultFrameRate       = 30
)

// Options holds the runtime tunables a profile can set.
type Options struct {
	DecodeTimeout time.Duration
	FrameRate     int
}

// Theme holds the colors a profile assigns to the renderer.
type Theme struct {
	Foreground frame.Color
	Background frame.Color
	Accent     frame.Color
}

// Profile is a parsed keybinding profile: a named set of bindings plus
// runtime options and theme colors.
type Profile struct {
	Name        string
	Version     string
	Description string
	Options     Options
	Theme       Theme
	Bindings    []Binding
}

// yamlProfile represents the YAML structure before conversion to domain objects
type yamlProfile struct {
	Name        string        `yaml:"name"`
	Version     string        `yaml:"version,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Options     *yamlOptions  `yaml:"options,omitempty"`
	Theme       *yamlTheme    `yaml:"theme,omitempty"`
	Bindings    []yamlBinding `yaml:"bindings,omitempty"`
}

// yamlOptions represents the options block in YAML before range checking
type yamlOptions struct {
	DecodeTimeoutMs *int `yaml:"decode_timeout_ms,omitempty"`
	FrameRate       *int `yaml:"frame_rate,omitempty"`
}

// yamlTheme represents the theme block in YAML before color parsing
type yamlTheme struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
}

// yamlBinding represents a binding entry in YAML
type yamlBinding struct {
	Keys        string `yaml:"keys"`
	Action      string `yaml:"action"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Priority    int    `yaml:"priority,omitempty"`
	When        string `yaml:"when,omitempty"`
}

// Parse parses a profile from YAML bytes.
//
// Every binding's key spec, action identifier, and guard expression is
// validated here; a profile with any malformed entry is rejected whole,
// with the error naming the offending binding.
func Parse(yamlBytes []byte) (*Profile, error) {
	if len(yamlBytes) == 0 {
		return nil, errors.New("empty profile input")
	}

	var yp yamlProfile
	if err := yaml.Unmarshal(yamlBytes, &yp); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate required fields
	if yp.Name == "" {
		return nil, errors.New("missing required field: name")
	}
	if err := validation.ValidateProfileName(yp.Name); err != nil {
		return nil, err
	}

	p := &Profile{
		Name:        yp.Name,
		Version:     yp.Version,
		Description: yp.Description,
		Options: Options{
			DecodeTimeout: DefaultDecodeTimeoutMs * time.Millisecond,
			FrameRate:     DefaultFrameRate,
		},
		Bindings: make([]Binding, 0, len(yp.Bindings)),
	}

	if yp.Options != nil {
		if err := parseOptions(yp.Options, &p.Options); err != nil {
			return nil, err
		}
	}

	if yp.Theme != nil {
		theme, err := parseTheme(yp.Theme)
		if err != nil {
			return nil, err
		}
		p.Theme = theme
	}

	guards := NewGuardEvaluator()
	for i, yb := range yp.Bindings {
		binding, err := parseBinding(yb, guards)
		if err != nil {
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
		p.Bindings = append(p.Bindings, binding)
	}

	return p, nil
}

// ParseFile parses a profile from a YAML file.
func ParseFile(filePath string) (*Profile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// parseOptions range-checks the options block into opts.
func parseOptions(yo *yamlOptions, opts *Options) error {
	if yo.DecodeTimeoutMs != nil {
		ms := *yo.DecodeTimeoutMs
		if ms < MinDecodeTimeoutMs || ms > MaxDecodeTimeoutMs {
			return fmt.Errorf("options.decode_timeout_ms: %d out of range [%d, %d]",
				ms, MinDecodeTimeoutMs, MaxDecodeTimeoutMs)
		}
		opts.DecodeTimeout = time.Duration(ms) * time.Millisecond
	}
	if yo.FrameRate != nil {
		fps := *yo.FrameRate
		if fps < MinFrameRate || fps > MaxFrameRate {
			return fmt.Errorf("options.frame_rate: %d out of range [%d, %d]",
				fps, MinFrameRate, MaxFrameRate)
		}
		opts.FrameRate = fps
	}
	return nil
}

// parseTheme converts the theme block, validating each color.
func parseTheme(yt *yamlTheme) (Theme, error) {
	var theme Theme
	var err error

	if theme.Foreground, err = frame.ParseColor(yt.Foreground); err != nil {
		return theme, fmt.Errorf("theme.foreground: %w", err)
	}
	if theme.Background, err = frame.ParseColor(yt.Background); err != nil {
		return theme, fmt.Errorf("theme.background: %w", err)
	}
	if theme.Accent, err = frame.ParseColor(yt.Accent); err != nil {
		return theme, fmt.Errorf("theme.accent: %w", err)
	}
	return theme, nil
}

// parseBinding converts a yamlBinding, validating keys, action, and guard.
func parseBinding(yb yamlBinding, guards *GuardEvaluator) (Binding, error) {
	if yb.Keys == "" {
		return Binding{}, errors.New("keys field is required")
	}
	if yb.Action == "" {
		return Binding{}, fmt.Errorf("(%s): action field is required", yb.Keys)
	}

	combo, err := key.Parse(yb.Keys)
	if err != nil {
		return Binding{}, fmt.Errorf("(%s): %w", yb.Keys, err)
	}
	if err := validation.ValidateActionID(yb.Action); err != nil {
		return Binding{}, fmt.Errorf("(%s): %w", yb.Keys, err)
	}
	if yb.When != "" {
		if err := guards.Compile(yb.When); err != nil {
			return Binding{}, fmt.Errorf("(%s): %w", yb.Keys, err)
		}
	}

	category := yb.Category
	if category == "" {
		category = DefaultCategory
	}

	return Binding{
		Combo:       combo,
		Action:      yb.Action,
		Description: yb.Description,
		Category:    category,
		Priority:    yb.Priority,
		When:        yb.When,
	}, nil
}

// Apply registers the profile's bindings in file order, preserving the
// first-match precedence of the registry.
func (p *Profile) Apply(r *Registry) error {
	for _, b := range p.Bindings {
		if _, err := r.Register(b); err != nil {
			return err
		}
	}
	return nil
}

// ToYAML serializes a profile to YAML bytes.
func ToYAML(p *Profile) ([]byte, error) {
	if p == nil {
		return nil, errors.New("profile cannot be nil")
	}

	yp := yamlProfile{
		Name:        p.Name,
		Version:     p.Version,
		Description: p.Description,
		Bindings:    make([]yamlBinding, 0, len(p.Bindings)),
	}

	timeoutMs := int(p.Options.DecodeTimeout / time.Millisecond)
	frameRate := p.Options.FrameRate
	yp.Options = &yamlOptions{
		DecodeTimeoutMs: &timeoutMs,
		FrameRate:       &frameRate,
	}

	if p.Theme != (Theme{}) {
		yp.Theme = &yamlTheme{
			Foreground: p.Theme.Foreground.String(),
			Background: p.Theme.Background.String(),
			Accent:     p.Theme.Accent.String(),
		}
	}

	for _, b := range p.Bindings {
		yp.Bindings = append(yp.Bindings, yamlBinding{
			Keys:        b.Combo.Spec(),
			Action:      b.Action,
			Description: b.Description,
			Category:    b.Category,
			Priority:    b.Priority,
			When:        b.When,
		})
	}

	yamlBytes, err := yaml.Marshal(&yp)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return yamlBytes, nil
}

// DefaultProfile returns the built-in profile used when no config file
// exists yet. The CLI writes it to the config directory on first run.
func DefaultProfile() *Profile {
	return &Profile{
		Name:        "default",
		Version:     "1",
		Description: "Built-in default bindings",
		Options: Options{
			DecodeTimeout: DefaultDecodeTimeoutMs * time.Millisecond,
			FrameRate:     DefaultFrameRate,
		},
		Bindings: []Binding{
			{Combo: key.MustParse("ctrl+q"), Action: "app.quit", Description: "Quit", Category: "Application", Priority: 10},
			{Combo: key.MustParse("escape"), Action: "app.quit", Description: "Quit", Category: "Application", Priority: 20},
			{Combo: key.MustParse("f1"), Action: "app.help", Description: "Toggle help", Category: "Application", Priority: 30},
			{Combo: key.MustParse("ctrl+l"), Action: "app.redraw", Description: "Force full redraw", Category: "Application", Priority: 40},
			{Combo: key.MustParse("up"), Action: "nav.up", Description: "Move up", Category: "Navigation", Priority: 10},
			{Combo: key.MustParse("down"), Action: "nav.down", Description: "Move down", Category: "Navigation", Priority: 20},
			{Combo: key.MustParse("left"), Action: "nav.left", Description: "Move left", Category: "Navigation", Priority: 30},
			{Combo: key.MustParse("right"), Action: "nav.right", Description: "Move right", Category: "Navigation", Priority: 40},
			{Combo: key.MustParse("page_up"), Action: "nav.page-up", Description: "Page up", Category: "Navigation", Priority: 50},
			{Combo: key.MustParse("page_down"), Action: "nav.page-down", Description: "Page down", Category: "Navigation", Priority: 60},
			{Combo: key.MustParse("home"), Action: "nav.home", Description: "Go to start", Category: "Navigation", Priority: 70},
			{Combo: key.MustParse("end"), Action: "nav.end", Description: "Go to end", Category: "Navigation", Priority: 80},
		},
	}
}
