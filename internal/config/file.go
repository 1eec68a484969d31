package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
	"studio-admin/pkg/logger"
)

var (
	fileMu     sync.RWMutex
	fileValues map[string]string
)

// loadConfigFile reads a flat YAML mapping of the same keys the env uses, e.g.
//
//	HTTP_PORT: 8080
//	MEDIA_DRIVER: cloudinary
//
// Values act as fallbacks: real env vars always win.
func loadConfigFile(log logger.Logger, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(contents, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		values[strings.ToUpper(strings.TrimSpace(key))] = fmt.Sprint(value)
	}

	setFileValues(values)
	log.Info("config: loaded file", "path", path, "count", len(values))
	return nil
}

func setFileValues(values map[string]string) {
	fileMu.Lock()
	defer fileMu.Unlock()
	fileValues = values
}

func fileValue(key string) (string, bool) {
	fileMu.RLock()
	defer fileMu.RUnlock()
	value, ok := fileValues[key]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
