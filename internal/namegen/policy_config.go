package namegen

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
)

// PolicyConfig allows overriding the built-in name policy tables from a YAML
// file, so the denylist and the story fallbacks can be extended without a
// rebuild. Empty sections keep the built-in defaults.
type PolicyConfig struct {
	// BannedNames replaces the built-in denylist when non-empty.
	BannedNames []string `yaml:"banned_names,omitempty"`

	// CompoundSurnames replaces the built-in two-character surname list when
	// non-empty. Every entry must be exactly two characters.
	CompoundSurnames []string `yaml:"compound_surnames,omitempty"`

	// StoryFallbacks is merged over the built-in surname story table, keyed
	// by surname.
	StoryFallbacks map[string]string `yaml:"story_fallbacks,omitempty"`
}

// Validate performs basic validation of a PolicyConfig value:
// - Checks that list entries are not empty strings
// - Checks that compound surnames are exactly two characters long
// - Checks that story fallbacks have non-empty surnames and stories
func (cfg *PolicyConfig) Validate() error {
	for _, name := range cfg.BannedNames {
		if name == "" {
			return errors.New("banned_names must not contain empty entries")
		}
	}

	for _, surname := range cfg.CompoundSurnames {
		if utf8.RuneCountInString(surname) != 2 {
			return fmt.Errorf("compound surname %q must be exactly two characters", surname)
		}
	}

	for surname, story := range cfg.StoryFallbacks {
		if surname == "" {
			return errors.New("story_fallbacks must not contain an empty surname key")
		}
		if story == "" {
			return fmt.Errorf("story fallback for surname %q must not be empty", surname)
		}
	}

	return nil
}

// unmarshalPolicyConfig implements a custom YAML unmarshaler for PolicyConfig.
// Validates the value after unmarshaling.
func unmarshalPolicyConfig(value *PolicyConfig, data []byte) error {
	type Aux PolicyConfig
	var aux Aux

	if err := yaml.Unmarshal(data, &aux); err != nil {
		return err
	}

	*value = PolicyConfig(aux)

	if err := value.Validate(); err != nil {
		return err
	}

	return nil
}

func init() {
	yaml.RegisterCustomUnmarshaler[PolicyConfig](unmarshalPolicyConfig)
}

// LoadPolicyFile reads a PolicyConfig from path and applies it to the active
// policy tables. Call during startup, before requests are served.
func LoadPolicyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read policy file: %w", err)
	}

	var cfg PolicyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse policy file %s: %w", path, err)
	}

	cfg.apply()
	return nil
}

func (cfg *PolicyConfig) apply() {
	if len(cfg.BannedNames) > 0 {
		banned := make(map[string]struct{}, len(cfg.BannedNames))
		for _, name := range cfg.BannedNames {
			banned[name] = struct{}{}
		}
		bannedNames = banned
	}

	if len(cfg.CompoundSurnames) > 0 {
		compoundSurnames = cfg.CompoundSurnames
	}

	for surname, story := range cfg.StoryFallbacks {
		storyFallbacks[surname] = story
	}
}
