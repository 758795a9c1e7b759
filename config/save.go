package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// SaveGlobal saves a key-value pair to the global settings file.
func (r *Resolver) SaveGlobal(key, value string) error {
	if r.globalPath == "" {
		return fmt.Errorf("global settings path not configured")
	}
	if len(r.config.ValidGlobalKeys) > 0 && !contains(r.config.ValidGlobalKeys, key) {
		return fmt.Errorf("unknown global settings key: %s\n\nValid keys: %s",
			key, strings.Join(r.config.ValidGlobalKeys, ", "))
	}

	return r.update(r.globalPath, 0o700, 0o600, func(m map[string]any) {
		m[key] = parseValue(value)
	})
}

// SaveLocal saves a key-value pair to the local settings file in the git root.
func (r *Resolver) SaveLocal(key, value string) error {
	if r.localPath == "" {
		return fmt.Errorf("git root not found")
	}
	if len(r.config.ValidLocalKeys) > 0 && !contains(r.config.ValidLocalKeys, key) {
		return fmt.Errorf("unknown local settings key: %s\n\nValid keys: %s",
			key, strings.Join(r.config.ValidLocalKeys, ", "))
	}

	// Local settings are shared and should be readable.
	return r.update(r.localPath, 0o755, 0o644, func(m map[string]any) {
		m[key] = parseValue(value)
	})
}

// DeleteGlobalKey removes a key from the global settings file.
// A missing file or key is not an error.
func (r *Resolver) DeleteGlobalKey(key string) error {
	if r.globalPath == "" {
		return fmt.Errorf("global settings path not configured")
	}

	existing, err := r.readFile(r.globalPath)
	if err != nil {
		return err
	}
	if _, ok := existing[key]; !ok {
		return nil
	}

	return r.update(r.globalPath, 0o700, 0o600, func(m map[string]any) {
		delete(m, key)
	})
}

// update applies fn to the settings stored at path and writes them back.
func (r *Resolver) update(path string, dirPerm, filePerm os.FileMode, fn func(map[string]any)) error {
	existing, err := r.readFile(path)
	if err != nil {
		return err
	}

	fn(existing)

	if err := r.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	data, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := util.WriteFile(r.fs, path, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// parseValue converts string values to appropriate types for YAML.
func parseValue(value string) any {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}
