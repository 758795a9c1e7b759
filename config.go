package repoconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is a resolved or loaded configuration: either present with a
// (possibly empty) mapping, or absent because no file exists.
type Config struct {
	values  map[string]any
	present bool
}

// Absent returns a Config signalling that no configuration exists.
func Absent() Config {
	return Config{}
}

// Present wraps values as an existing configuration. A nil map is treated
// as an empty one.
func Present(values map[string]any) Config {
	if values == nil {
		values = map[string]any{}
	}
	return Config{values: values, present: true}
}

// IsPresent reports whether the configuration exists.
func (c Config) IsPresent() bool {
	return c.present
}

// Values returns the configuration mapping, or nil when absent.
func (c Config) Values() map[string]any {
	return c.values
}

// Get returns a top-level value.
func (c Config) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Decode copies the configuration into target, a pointer to a struct or
// map with yaml tags.
func (c Config) Decode(target any) error {
	if !c.present {
		return ErrNoConfig
	}

	data, err := yaml.Marshal(c.values)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// without returns a present copy of c lacking key. The receiver is untouched.
func (c Config) without(key string) Config {
	if _, ok := c.values[key]; !ok {
		return c
	}
	values := make(map[string]any, len(c.values)-1)
	for k, v := range c.values {
		if k != key {
			values[k] = v
		}
	}
	return Present(values)
}
