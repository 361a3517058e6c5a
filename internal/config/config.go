package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/sip2ctl/internal/protocol/schema"
	"github.com/danmuck/sip2ctl/internal/protocol/types"
	"github.com/rs/zerolog/log"
)

// CatalogConfig is the file form of a schema catalog.
type CatalogConfig struct {
	Messages []MessageConfig `toml:"messages"`
}

type MessageConfig struct {
	ID    string        `toml:"id"`
	Name  string        `toml:"name"`
	Fixed []FieldConfig `toml:"fixed"`
	Named []FieldConfig `toml:"named"`
}

// FieldConfig declares one field. Length is the wire width of a fixed field
// and, for a string without min_length or max_length, its exact length
// constraint. Key is the tag of a named field. The remaining settings are type
// constraints and must be supported by the resolved type.
type FieldConfig struct {
	Name         string   `toml:"name"`
	Key          string   `toml:"key"`
	Length       int      `toml:"length"`
	Type         string   `toml:"type"`
	MinLength    *int     `toml:"min_length"`
	MaxLength    *int     `toml:"max_length"`
	Options      []string `toml:"options"`
	Width        *int     `toml:"width"`
	Min          *int64   `toml:"min"`
	Max          *int64   `toml:"max"`
	BlankAsFalse bool     `toml:"blank_as_false"`
}

// LoadCatalog reads a TOML catalog and builds every schema in it. A nil
// registry means the default types.
func LoadCatalog(path string, reg *types.Registry) (*schema.Catalog, error) {
	var cfg CatalogConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := checkUndecoded(meta); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	c, err := BuildCatalog(cfg, reg)
	if err != nil {
		return nil, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	log.Info().Str("path", path).Int("messages", c.Len()).Msg("config.LoadCatalog")
	return c, nil
}

// ParseCatalog is LoadCatalog for in-memory TOML.
func ParseCatalog(data string, reg *types.Registry) (*schema.Catalog, error) {
	var cfg CatalogConfig
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config parse failed: %w", err)
	}
	if err := checkUndecoded(meta); err != nil {
		return nil, fmt.Errorf("config parse failed: %w", err)
	}
	return BuildCatalog(cfg, reg)
}

func checkUndecoded(meta toml.MetaData) error {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// BuildCatalog validates cfg and builds its schemas.
func BuildCatalog(cfg CatalogConfig, reg *types.Registry) (*schema.Catalog, error) {
	if err := ValidateCatalogConfig(cfg); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = types.DefaultRegistry()
	}
	c := schema.NewCatalog()
	for i, m := range cfg.Messages {
		s, err := buildSchema(m, reg)
		if err != nil {
			return nil, fmt.Errorf("messages[%d] %s: %w", i, m.ID, err)
		}
		if err := c.Add(s); err != nil {
			return nil, fmt.Errorf("messages[%d]: %w", i, err)
		}
	}
	return c, nil
}

func buildSchema(m MessageConfig, reg *types.Registry) (*schema.MessageSchema, error) {
	b := schema.New(m.ID, m.Name, schema.WithRegistry(reg))
	for i, f := range m.Fixed {
		ft, err := buildType(f, reg)
		if err != nil {
			return nil, fmt.Errorf("fixed[%d] %s: %w", i, f.Name, err)
		}
		if st, ok := ft.(*types.StringType); ok && f.MinLength == nil && f.MaxLength == nil {
			st.WithLength(f.Length)
		}
		b.WithFixedParameter(f.Name, f.Length, ft)
	}
	for i, f := range m.Named {
		ft, err := buildType(f, reg)
		if err != nil {
			return nil, fmt.Errorf("named[%d] %s: %w", i, f.Name, err)
		}
		b.WithNamedParameter(f.Name, f.Key, ft)
	}
	return b.Build()
}

func buildType(f FieldConfig, reg *types.Registry) (types.FieldType, error) {
	token := strings.TrimSpace(f.Type)
	if token == "" {
		token = types.TokenString
	}
	ft, err := reg.Resolve(token)
	if err != nil {
		return nil, err
	}
	var unsupported []string
	switch t := ft.(type) {
	case *types.StringType:
		if f.MinLength != nil {
			t.WithMinLength(*f.MinLength)
		}
		if f.MaxLength != nil {
			t.WithMaxLength(*f.MaxLength)
		}
		if f.Options != nil {
			t.WithEnumeratedOptions(f.Options)
		}
		unsupported = numberSettings(f, unsupported)
		unsupported = flagSettings(f, unsupported)
	case *types.NumberType:
		if f.Width != nil {
			t.WithWidth(*f.Width)
		}
		if f.Min != nil {
			t.WithMin(*f.Min)
		}
		if f.Max != nil {
			t.WithMax(*f.Max)
		}
		unsupported = stringSettings(f, unsupported)
		unsupported = flagSettings(f, unsupported)
	case *types.FlagType:
		if f.BlankAsFalse {
			t.WithBlankAsFalse()
		}
		unsupported = stringSettings(f, unsupported)
		unsupported = numberSettings(f, unsupported)
	default:
		unsupported = stringSettings(f, unsupported)
		unsupported = numberSettings(f, unsupported)
		unsupported = flagSettings(f, unsupported)
	}
	if len(unsupported) > 0 {
		return nil, fmt.Errorf("type %s does not support %s", token, strings.Join(unsupported, ", "))
	}
	return ft, nil
}

func stringSettings(f FieldConfig, out []string) []string {
	if f.MinLength != nil {
		out = append(out, "min_length")
	}
	if f.MaxLength != nil {
		out = append(out, "max_length")
	}
	if f.Options != nil {
		out = append(out, "options")
	}
	return out
}

func numberSettings(f FieldConfig, out []string) []string {
	if f.Width != nil {
		out = append(out, "width")
	}
	if f.Min != nil {
		out = append(out, "min")
	}
	if f.Max != nil {
		out = append(out, "max")
	}
	return out
}

func flagSettings(f FieldConfig, out []string) []string {
	if f.BlankAsFalse {
		out = append(out, "blank_as_false")
	}
	return out
}

func ValidateCatalogConfig(cfg CatalogConfig) error {
	if len(cfg.Messages) == 0 {
		return fmt.Errorf("catalog config has no messages")
	}
	for i, m := range cfg.Messages {
		if err := ValidateMessageConfig(m); err != nil {
			return fmt.Errorf("messages[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func ValidateMessageConfig(m MessageConfig) error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	for i, f := range m.Fixed {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("fixed[%d] name is required", i)
		}
		if f.Length <= 0 {
			return fmt.Errorf("fixed[%d] %s length must be positive", i, f.Name)
		}
		if f.Key != "" {
			return fmt.Errorf("fixed[%d] %s must not set key", i, f.Name)
		}
	}
	for i, f := range m.Named {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("named[%d] name is required", i)
		}
		if strings.TrimSpace(f.Key) == "" {
			return fmt.Errorf("named[%d] %s key is required", i, f.Name)
		}
		if f.Length != 0 {
			return fmt.Errorf("named[%d] %s must not set length", i, f.Name)
		}
	}
	return nil
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template()), 0o600)
}
