// Package config loads the world configuration — list predicate names,
// allocator pool sizing, and the relaxed-enum table — from YAML, the way a
// config layer in this corpus decodes loosely-typed external input into a
// strict internal struct.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ListConfig names one configured entity list by its expr-lang predicate
// expression (see ecs.ExprPredicate), e.g. "Physics && !Dead".
type ListConfig struct {
	Name       string `yaml:"name" mapstructure:"name"`
	Expression string `yaml:"expression" mapstructure:"expression"`
}

// RelaxedEnumConfig names an enum type (by its registered reflection name)
// to be treated as relaxed — falling back to the bare integer on an unnamed
// value. The entries are decoded only: nothing in this module reads them,
// so enum strictness is still set solely by the refl.RegisterEnum call.
type RelaxedEnumConfig struct {
	TypeName string `yaml:"type_name" mapstructure:"type_name"`
}

// WorldConfig is the top-level decoded configuration for one Controller:
// the ordered list definitions, the allocator pool size (0 disables pooling
// and falls back to the heap allocator), and which enums run relaxed.
// NewWorld applies only AllocatorPoolSize; Lists and RelaxedEnums are
// decoded but not passed to Controller.Configure or to the enum registry.
type WorldConfig struct {
	Lists             []ListConfig        `yaml:"lists" mapstructure:"lists"`
	AllocatorPoolSize int                 `yaml:"allocator_pool_size" mapstructure:"allocator_pool_size"`
	RelaxedEnums      []RelaxedEnumConfig `yaml:"relaxed_enums" mapstructure:"relaxed_enums"`
}

// Load reads and decodes a WorldConfig from a YAML file at path.
func Load(path string) (*WorldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world config %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a WorldConfig from raw YAML bytes.
func Parse(data []byte) (*WorldConfig, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing world config: %w", err)
	}
	return decodeLoose(raw)
}

// decodeLoose drives the raw, loosely-typed YAML map through mapstructure
// so partial/extra keys and mildly mistyped scalars (e.g. a quoted number)
// don't hard-fail the way a direct yaml.Unmarshal into WorldConfig would.
func decodeLoose(raw map[string]any) (*WorldConfig, error) {
	var cfg WorldConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("building world config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding world config: %w", err)
	}
	return &cfg, nil
}
