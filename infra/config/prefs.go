package config

import (
	"strconv"

	"github.com/CrestNiraj12/flick/app"
)

// DarkModeKey holds the UI theme preference as "true" or "false".
const DarkModeKey = "darkMode"

// LoadDarkMode reads the theme preference. Missing or unreadable values
// mean light mode.
func LoadDarkMode(kv app.KeyValueStore) bool {
	raw, ok, err := kv.Get(DarkModeKey)
	if err != nil || !ok {
		return false
	}
	on, err := strconv.ParseBool(raw)
	return err == nil && on
}

// SaveDarkMode persists the theme preference.
func SaveDarkMode(kv app.KeyValueStore, on bool) error {
	return kv.Set(DarkModeKey, strconv.FormatBool(on))
}
