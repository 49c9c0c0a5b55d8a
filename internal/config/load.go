package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultStateFile is the document name looked up in the working directory.
const DefaultStateFile = "hostctl.yaml"

// LoadFile reads and parses a state document from a YAML file.
func LoadFile(path string) (*Document, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state document: %w", err)
	}
	return Load(data)
}

// Load parses a state document from YAML bytes.
func Load(data []byte) (*Document, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var doc Document
	if err := decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode state document: %w", err)
	}

	if err := doc.applyDefaults(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("state document validation failed: %w", err)
	}
	return &doc, nil
}

// decode maps a raw YAML map onto a struct, understanding duration strings
// such as "300s".
func decode(raw, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     target,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// FindStateFile locates the default state document in the working directory.
func FindStateFile() (string, error) {
	if _, err := os.Stat(DefaultStateFile); err != nil {
		return "", fmt.Errorf("state document %s not found", DefaultStateFile)
	}
	return DefaultStateFile, nil
}
