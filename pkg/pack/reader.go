package pack

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// fileDoc mirrors the on-disk layout. Every section is optional.
type fileDoc struct {
	Format       string            `mapstructure:"format" validate:"required,eq=calinea-config"`
	Version      int               `mapstructure:"version" validate:"required,oneof=1"`
	Fonts        *fontsDoc         `mapstructure:"fonts"`
	Keybinds     map[string]string `mapstructure:"keybinds"`
	Translations []translationDoc  `mapstructure:"translations" validate:"dive"`
}

type fontsDoc struct {
	DefaultWidth *float64  `mapstructure:"default_width" validate:"required"`
	Entries      []fontDoc `mapstructure:"entries" validate:"required,dive"`
}

type fontDoc struct {
	FontKey    string             `mapstructure:"fontKey" validate:"required"`
	References []string           `mapstructure:"references" validate:"omitempty,dive,required"`
	Widths     map[string]float64 `mapstructure:"widths"`
}

type translationDoc struct {
	Language string            `mapstructure:"language" validate:"required"`
	Entries  map[string]string `mapstructure:"entries"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Parse reads a pack from JSON. Comments and trailing commas are accepted.
func Parse(data []byte) (*Pack, error) {
	var raw map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	return fromMap(raw)
}

// ParseYAML reads a pack from YAML using the same layout as the JSON form.
func ParseYAML(data []byte) (*Pack, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	return fromMap(raw)
}

// Load reads a pack file. Files ending in .yaml or .yml are read as YAML,
// anything else as JSON.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack %s: %w", path, err)
	}
	var p *Pack
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = ParseYAML(data)
	default:
		p, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("load pack %s: %w", path, err)
	}
	return p, nil
}

func fromMap(raw map[string]any) (*Pack, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidPack)
	}
	var doc fileDoc
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	if err := validatorInstance().Struct(&doc); err != nil {
		return nil, convertValidationError(err)
	}
	return doc.build(), nil
}

func (d *fileDoc) build() *Pack {
	p := New()
	if d.Fonts != nil {
		p.defaultWidth = *d.Fonts.DefaultWidth
		for _, f := range d.Fonts.Entries {
			widths := make(map[rune]float64, len(f.Widths))
			for ch, w := range f.Widths {
				if ch == "" {
					continue
				}
				r, _ := utf8.DecodeRuneInString(ch)
				widths[r] = w
			}
			p.addFont(f.FontKey, widths, f.References)
		}
	}
	for k, v := range d.Keybinds {
		p.keybinds[k] = v
	}
	for _, t := range d.Translations {
		p.addTranslations(t.Language, t.Entries)
	}
	return p
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	out := &AggregateError{Errors: make([]error, 0, len(ves))}
	for _, fe := range ves {
		out.Errors = append(out.Errors, &ValidationError{
			Key:    fieldPath(fe),
			Reason: reason(fe),
			Value:  presentValue(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "eq":
		return fmt.Sprintf("must be %q", fe.Param())
	case "oneof":
		return fmt.Sprintf("unsupported value, expected one of %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}

func presentValue(fe validator.FieldError) any {
	v := fe.Value()
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.IsZero() {
		return nil
	}
	return v
}
