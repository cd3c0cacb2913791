// Package ui provides the TapePlanner desktop application.
//
// This file defines a compact Fyne theme with an optional forced light/dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/TapePlanner/internal/ui/widgets"
)

// PlannerTheme wraps the default Fyne theme with compact sizing and the
// class colors used for result text.
type PlannerTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	forced  bool
}

// NewPlannerTheme creates a theme for a config theme name: "light",
// "dark" or anything else to follow the system.
func NewPlannerTheme(name string) *PlannerTheme {
	t := &PlannerTheme{base: theme.DefaultTheme()}
	t.SetThemeName(name)
	return t
}

// SetThemeName switches between forced light, forced dark and system variants.
func (t *PlannerTheme) SetThemeName(name string) {
	switch name {
	case "light":
		t.variant, t.forced = theme.VariantLight, true
	case "dark":
		t.variant, t.forced = theme.VariantDark, true
	default:
		t.forced = false
	}
}

// Color delegates to the base theme, overriding success and error with
// the class A and class B piece colors.
func (t *PlannerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.forced {
		variant = t.variant
	}
	switch name {
	case theme.ColorNameSuccess:
		return widgets.ClassAColor
	case theme.ColorNameError:
		return widgets.ClassBColor
	}
	return t.base.Color(name, variant)
}

func (t *PlannerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *PlannerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *PlannerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
