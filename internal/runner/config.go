package runner

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	v1 "github.com/infracollect/oarchive/apis/v1"
)

type ConfigFormat string

const (
	ConfigFormatYAML ConfigFormat = "yaml"
	ConfigFormatTOML ConfigFormat = "toml"
)

var (
	defaultValidator = newValidator()

	// repackCompressions lists the compression values each repack format
	// accepts; empty always means the format default.
	repackCompressions = map[string][]string{
		"oar": {"none"},
		"tar": {"none", "gzip", "zstd"},
		"zip": {"none", "deflate"},
	}
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateRepackSpec, v1.RepackSpec{})
	return v
}

// validateRepackSpec rejects a compression the chosen format cannot produce,
// e.g. tar with deflate.
func validateRepackSpec(sl validator.StructLevel) {
	spec := sl.Current().Interface().(v1.RepackSpec)
	if spec.Compression == "" {
		return
	}
	allowed, ok := repackCompressions[spec.Format]
	if !ok {
		return
	}
	if !slices.Contains(allowed, spec.Compression) {
		sl.ReportError(spec.Compression, "Compression", "compression", "compression_for_format", spec.Format)
	}
}

// ConfigFormatFromPath picks the decoder from the file extension. JSON files
// are read by the YAML decoder.
func ConfigFormatFromPath(path string) (ConfigFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return ConfigFormatYAML, nil
	case ".toml":
		return ConfigFormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config file extension %q (expected .yaml, .yml, .json or .toml)", filepath.Ext(path))
	}
}

// ParseConfig decodes a YAML or TOML config file and validates it.
func ParseConfig(data []byte, format ConfigFormat) (v1.Config, error) {
	var cfg v1.Config

	switch format {
	case ConfigFormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return v1.Config{}, fmt.Errorf("failed to unmarshal config data: %w", err)
		}
	case ConfigFormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return v1.Config{}, fmt.Errorf("failed to unmarshal config data: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return v1.Config{}, fmt.Errorf("unknown config keys: %v", undecoded)
		}
	default:
		return v1.Config{}, fmt.Errorf("unsupported config format %q", format)
	}

	if err := defaultValidator.Struct(cfg); err != nil {
		return v1.Config{}, fmt.Errorf("failed to validate config: %w", err)
	}

	return cfg, nil
}
