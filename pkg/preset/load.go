package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a preset file.
type File struct {
	Presets []Preset `json:"presets" yaml:"presets" mapstructure:"presets"`
}

// Load reads presets from a YAML or JSON file, picked by extension.
func Load(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	presets, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return presets, nil
}

// Parse decodes preset data. ext selects JSON (".json"); anything else is
// read as YAML. Kind names are case-insensitive ("Float", "bool", "INT")
// and values may be given as numbers or booleans.
func Parse(data []byte, ext string) ([]Preset, error) {
	var raw map[string]any
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse presets json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse presets yaml: %w", err)
		}
	}

	var file File
	if err := Decode(raw, &file); err != nil {
		return nil, err
	}
	for i, p := range file.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		for j, e := range p.Parameters {
			if e.Name == "" {
				return nil, fmt.Errorf("preset %s entry %d has no name", p.Name, j)
			}
		}
	}
	return file.Presets, nil
}

// Decode maps generic YAML/JSON input onto out, converting kind names and
// boolean values.
func Decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(KindHook),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode presets: %w", err)
	}
	return nil
}

var kindType = reflect.TypeOf(domain.Kind(""))

// KindHook is a mapstructure decode hook parsing kind names into domain.Kind.
func KindHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != kindType || from.Kind() != reflect.String {
		return data, nil
	}
	return domain.ParseKind(reflect.ValueOf(data).String())
}

// Write stores presets as YAML at path.
func Write(path string, presets []Preset) error {
	data, err := yaml.Marshal(File{Presets: presets})
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}
	return nil
}
