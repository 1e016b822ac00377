package config

import (
	"encoding/json"
	"strings"

	"git.home.luguber.info/inful/apkopt/internal/errors"
)

// Validate checks the configuration before any filesystem work starts.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputAPK) == "" {
		return errors.ValidationFailed("input_apk", "an input APK is required")
	}
	if strings.TrimSpace(c.OutputAPK) == "" {
		return errors.ValidationFailed("out", "output path must not be empty")
	}
	if c.Sign && !c.Keystore.Complete() {
		return errors.ValidationFailed("keystore", "signing needs --keystore, --keyalias and --keypass (no debug keystore found)")
	}
	for _, kv := range c.Passthru {
		if key, _, ok := strings.Cut(kv, "="); !ok || key == "" {
			return errors.ValidationFailed("-S", "expected key=value, got "+kv)
		}
	}
	for _, kv := range c.PassthruJSON {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return errors.ValidationFailed("-J", "expected key=<json>, got "+kv)
		}
		if !json.Valid([]byte(value)) {
			return errors.ValidationFailed("-J", "value for "+key+" is not valid JSON")
		}
	}
	return nil
}
