package linkresolver

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// scriptFile is the on-disk shape of a user script overlay.
type scriptFile struct {
	Browsers map[string]Script `yaml:"browsers"`
	Aliases  map[string]string `yaml:"aliases"`
}

// LoadScriptFile reads a YAML overlay of browser scripts.
// Returns an empty registry if the file doesn't exist.
//
// Aliases may point at built-in bundle ids, so alias targets are only checked
// once the overlay is merged (see Registry.Validate).
func LoadScriptFile(path string) (*Registry, error) {
	reg := &Registry{
		ByBundleID: make(map[string]Script),
		ByName:     make(map[string]string),
	}
	if strings.TrimSpace(path) == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scripts file %s: %w", path, err)
	}

	return parseScriptFile(path, data)
}

func parseScriptFile(path string, data []byte) (*Registry, error) {
	var file scriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scripts file %s: %w", path, err)
	}

	reg := &Registry{
		ByBundleID: make(map[string]Script, len(file.Browsers)),
		ByName:     make(map[string]string, len(file.Aliases)),
	}
	for id, s := range file.Browsers {
		id = strings.TrimSpace(id)
		if strings.TrimSpace(s.Body) == "" {
			return nil, fmt.Errorf("scripts file %s: browser %s has no script", path, id)
		}
		if s.Name == "" {
			s.Name = id
		}
		reg.ByBundleID[id] = s
	}
	for name, id := range file.Aliases {
		name, id = strings.TrimSpace(name), strings.TrimSpace(id)
		if name == "" || id == "" {
			return nil, fmt.Errorf("scripts file %s: alias entries need a name and a bundle id", path)
		}
		reg.ByName[name] = id
	}
	return reg, nil
}
