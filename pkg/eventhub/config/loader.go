package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SectionKey is the top-level key Load looks for. A settings file may hold
// the hub keys under it or directly at the root.
const SectionKey = "eventhub"

// Format is the encoding of a settings document.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatOf picks the format from a file extension.
// Supported extensions: .yaml, .yml, .json
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("unsupported settings extension %q", ext)
	}
}

// Parse decodes a settings document. An empty document yields an empty
// Config. The document root must be a mapping.
func Parse(data []byte, format Format) (Config, error) {
	var m map[string]any
	switch format {
	case YAML:
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode %s settings: %w", format, err)
		}
	case JSON:
		if len(bytes.TrimSpace(data)) == 0 {
			break
		}
		if err := json.Unmarshal(data, &m); err != nil {
			return Config{}, fmt.Errorf("decode %s settings: %w", format, err)
		}
	default:
		return Config{}, fmt.Errorf("unknown settings format %q", format)
	}
	return New(m), nil
}

// Load reads the hub settings in path. When the document has a SectionKey
// mapping, that section is returned; otherwise the whole document is.
//
// Example:
//
//	cfg, err := config.Load("eventhub.yaml")
//	if err != nil {
//	    return err
//	}
//	opts, err := eventhub.OptionsFromConfig(cfg, os.Stderr)
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read settings: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Has(SectionKey) {
		return cfg.Section(SectionKey), nil
	}
	return cfg, nil
}
