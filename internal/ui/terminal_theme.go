package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Terminal palette
var (
	ColorScreen   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	ColorPhosphor = color.RGBA{R: 51, G: 255, B: 102, A: 255}
	ColorDim      = color.RGBA{R: 34, G: 139, B: 60, A: 255}
	ColorAmber    = color.RGBA{R: 255, G: 193, B: 7, A: 255}
	ColorAlert    = color.RGBA{R: 255, G: 82, B: 82, A: 255}
	ColorCyan     = color.RGBA{R: 0, G: 229, B: 255, A: 255}
	ColorPanel    = color.RGBA{R: 12, G: 20, B: 14, A: 255}
)

// TerminalTheme renders every view as a green-on-black monospace terminal
// with compact spacing. The variant is ignored: the terminal is always dark.
type TerminalTheme struct{}

// NewTerminalTheme creates the terminal theme
func NewTerminalTheme() fyne.Theme {
	return &TerminalTheme{}
}

// Color returns theme colors
func (t *TerminalTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return ColorScreen
	case theme.ColorNameForeground, theme.ColorNameSuccess:
		return ColorPhosphor
	case theme.ColorNamePrimary, theme.ColorNameHyperlink, theme.ColorNameFocus:
		return ColorCyan
	case theme.ColorNameError:
		return ColorAlert
	case theme.ColorNameWarning:
		return ColorAmber
	case theme.ColorNamePlaceHolder, theme.ColorNameDisabled:
		return ColorDim
	case theme.ColorNameInputBackground, theme.ColorNameButton, theme.ColorNameHeaderBackground:
		return ColorPanel
	case theme.ColorNameInputBorder, theme.ColorNameSeparator:
		return ColorDim
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns the monospace face for every style
func (t *TerminalTheme) Font(style fyne.TextStyle) fyne.Resource {
	style.Monospace = true
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *TerminalTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *TerminalTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 0
	}

	return theme.DefaultTheme().Size(name)
}
