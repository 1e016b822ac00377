package trace

import (
	"os"
	"strconv"
	"strings"
)

// EnvVar is the environment variable read by FromEnv.
const EnvVar = "TRACE"

// ModuleLauncher is the module name the launcher traces under.
const ModuleLauncher = "REDEX"

// Spec is a resolved set of trace directives.
type Spec struct {
	global  bool
	modules map[string]bool
}

// FromEnv resolves the TRACE environment variable. An unset variable
// disables tracing for every module.
func FromEnv() Spec {
	value, ok := os.LookupEnv(EnvVar)
	if !ok {
		return Spec{}
	}
	return Parse(value)
}

// Parse resolves a directive list. Malformed directives are dropped.
func Parse(value string) Spec {
	var s Spec
	for _, directive := range strings.Split(value, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		if level, err := strconv.Atoi(directive); err == nil {
			if level > 0 {
				s.global = true
			}
			continue
		}

		module, levelStr, found := strings.Cut(directive, ":")
		if !found || strings.Contains(levelStr, ":") {
			continue
		}
		level, err := strconv.Atoi(strings.TrimSpace(levelStr))
		if err != nil || level <= 0 {
			continue
		}
		if s.modules == nil {
			s.modules = make(map[string]bool)
		}
		s.modules[module] = true
	}
	return s
}

// Enabled reports whether tracing is on for module. Module names match
// case-sensitively.
func (s Spec) Enabled(module string) bool {
	return s.global || s.modules[module]
}
