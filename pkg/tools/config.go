package tools

import (
	"os"
	"strings"
	"sync"
)

// Settings contains the ambient options for this library
type Settings struct {
	// LogLevel controls the verbosity of logging (debug, info, warn,
	// error, off)
	LogLevel string
	// StrictMode makes toolbox configuration fail on unknown tools
	// instead of skipping them with a warning
	StrictMode bool
	// DefaultScope is the scope assumed for toolbox configurations
	// that do not name one
	DefaultScope string
}

var (
	globalSettings      *Settings
	globalSettingsMutex sync.RWMutex
	settingsOnce        sync.Once
)

func init() {
	// Initialize global settings from the environment
	settingsOnce.Do(func() {
		globalSettings = SettingsFromEnvironment()
	})
}

// DefaultSettings returns the default settings
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:     "info",
		StrictMode:   false,
		DefaultScope: ScopeRequest,
	}
}

// SettingsFromEnvironment creates settings from environment variables
func SettingsFromEnvironment() *Settings {
	settings := DefaultSettings()

	// VELOCITY_TOOLS_LOG_LEVEL
	if val := os.Getenv("VELOCITY_TOOLS_LOG_LEVEL"); val != "" {
		settings.LogLevel = val
	}

	// VELOCITY_TOOLS_STRICT_MODE
	if val := os.Getenv("VELOCITY_TOOLS_STRICT_MODE"); val != "" {
		settings.StrictMode = parseBool(val)
	}

	// VELOCITY_TOOLS_DEFAULT_SCOPE
	if val := os.Getenv("VELOCITY_TOOLS_DEFAULT_SCOPE"); val != "" {
		settings.DefaultScope = val
	}

	return settings
}

// Validate checks whether the settings are usable
func (s *Settings) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[strings.ToLower(s.LogLevel)] {
		return NewValidationError("log level", "unknown log level '"+s.LogLevel+"'")
	}

	if !ValidScope(s.DefaultScope) {
		return NewValidationError("default scope", "unknown scope '"+s.DefaultScope+"'")
	}

	return nil
}

// GetGlobalSettings returns a copy of the global settings
func GetGlobalSettings() *Settings {
	globalSettingsMutex.RLock()
	defer globalSettingsMutex.RUnlock()

	if globalSettings == nil {
		return DefaultSettings()
	}

	settingsCopy := *globalSettings
	return &settingsCopy
}

// SetGlobalSettings replaces the global settings
func SetGlobalSettings(settings *Settings) {
	if settings == nil {
		settings = DefaultSettings()
	}

	globalSettingsMutex.Lock()
	globalSettings = settings
	globalSettingsMutex.Unlock()

	// re-level the logger outside the lock
	UpdateLoggerFromSettings()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
