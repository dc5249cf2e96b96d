package domain

import "time"

// setting keys shared by the engine and the theme handler
const (
	SettingLikedQuotes = "likedQuotes"
	SettingSavedQuotes = "savedQuotes"
	SettingTheme       = "theme"
)

// Setting represents a key-value configuration setting
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Theme is the presentation theme persisted alongside reactions
type Theme string

// supported themes
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme converts a stored value into a theme, defaulting to dark
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}
