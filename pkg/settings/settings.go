// Package settings defines the colours and font sizes used to draw and
// highlight a graph, and how caller overrides are merged over defaults.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Settings is a fully populated set of drawing parameters.
type Settings struct {
	Background    string  `json:"bg" validate:"required"`
	FocusColor    string  `json:"focusColor" validate:"required"`
	NodeColor     string  `json:"nodeColor" validate:"required"`
	LinkColor     string  `json:"linkColor" validate:"required"`
	GrayColor     string  `json:"grayColor" validate:"required"`
	HoverColor    string  `json:"hoverColor" validate:"required"`
	FontSize      float64 `json:"fontSize" validate:"gt=0"`
	HoverFontSize float64 `json:"hoverFontSize" validate:"gt=0"`
	GraphOutColor string  `json:"graphOutColor" validate:"required"`
	GraphInColor  string  `json:"graphInColor" validate:"required"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Background:    "white",
		FocusColor:    "orange",
		NodeColor:     "mediumseagreen",
		LinkColor:     "slategray",
		GrayColor:     "lightgray",
		HoverColor:    "crimson",
		FontSize:      16,
		HoverFontSize: 24,
		GraphOutColor: "royalblue",
		GraphInColor:  "goldenrod",
	}
}

// Overrides is a partial Settings. Nil fields keep the default. The same
// keys are used for JSON, YAML and TOML; unknown keys are ignored.
type Overrides struct {
	Background    *string  `json:"bg,omitempty" yaml:"bg,omitempty" toml:"bg,omitempty"`
	FocusColor    *string  `json:"focusColor,omitempty" yaml:"focusColor,omitempty" toml:"focusColor,omitempty"`
	NodeColor     *string  `json:"nodeColor,omitempty" yaml:"nodeColor,omitempty" toml:"nodeColor,omitempty"`
	LinkColor     *string  `json:"linkColor,omitempty" yaml:"linkColor,omitempty" toml:"linkColor,omitempty"`
	GrayColor     *string  `json:"grayColor,omitempty" yaml:"grayColor,omitempty" toml:"grayColor,omitempty"`
	HoverColor    *string  `json:"hoverColor,omitempty" yaml:"hoverColor,omitempty" toml:"hoverColor,omitempty"`
	FontSize      *float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty" toml:"fontSize,omitempty"`
	HoverFontSize *float64 `json:"hoverFontSize,omitempty" yaml:"hoverFontSize,omitempty" toml:"hoverFontSize,omitempty"`
	GraphOutColor *string  `json:"graphOutColor,omitempty" yaml:"graphOutColor,omitempty" toml:"graphOutColor,omitempty"`
	GraphInColor  *string  `json:"graphInColor,omitempty" yaml:"graphInColor,omitempty" toml:"graphInColor,omitempty"`
}

// Merge returns s with every non-nil override applied.
func (s Settings) Merge(o Overrides) Settings {
	setString(&s.Background, o.Background)
	setString(&s.FocusColor, o.FocusColor)
	setString(&s.NodeColor, o.NodeColor)
	setString(&s.LinkColor, o.LinkColor)
	setString(&s.GrayColor, o.GrayColor)
	setString(&s.HoverColor, o.HoverColor)
	setString(&s.GraphOutColor, o.GraphOutColor)
	setString(&s.GraphInColor, o.GraphInColor)
	if o.FontSize != nil && *o.FontSize > 0 {
		s.FontSize = *o.FontSize
	}
	if o.HoverFontSize != nil && *o.HoverFontSize > 0 {
		s.HoverFontSize = *o.HoverFontSize
	}
	return s
}

// Combine layers b over a: fields set in b win.
func Combine(a, b Overrides) Overrides {
	out := a
	pick(&out.Background, b.Background)
	pick(&out.FocusColor, b.FocusColor)
	pick(&out.NodeColor, b.NodeColor)
	pick(&out.LinkColor, b.LinkColor)
	pick(&out.GrayColor, b.GrayColor)
	pick(&out.HoverColor, b.HoverColor)
	pick(&out.FontSize, b.FontSize)
	pick(&out.HoverFontSize, b.HoverFontSize)
	pick(&out.GraphOutColor, b.GraphOutColor)
	pick(&out.GraphInColor, b.GraphInColor)
	return out
}

// Resolve merges o over the defaults.
func Resolve(o Overrides) Settings {
	return Default().Merge(o)
}

// Empty strings are treated as unset so a blank key never erases a colour.
func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

var validate = validator.New()

// Validate checks that every field is populated.
func Validate(s Settings) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

// DecodeOverrides reads overrides from r. format is "json", "yaml" or
// "toml".
func DecodeOverrides(r io.Reader, format string) (Overrides, error) {
	var o Overrides
	switch format {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&o); err != nil && err != io.EOF {
			return o, fmt.Errorf("decode yaml settings: %w", err)
		}
	case "toml":
		if _, err := toml.NewDecoder(r).Decode(&o); err != nil {
			return o, fmt.Errorf("decode toml settings: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&o); err != nil && err != io.EOF {
			return o, fmt.Errorf("decode json settings: %w", err)
		}
	}
	return o, nil
}

// LoadOverrides reads overrides from a file, choosing the decoder by
// extension.
func LoadOverrides(path string) (Overrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	format := "json"
	if i := strings.LastIndex(path, "."); i >= 0 {
		format = strings.ToLower(path[i+1:])
	}
	return DecodeOverrides(f, format)
}
