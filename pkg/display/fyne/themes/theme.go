// Package themes holds the fyne theme of the desktop driver.
package themes

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ColorNameCard is the background of the cards used by the debug views.
const ColorNameCard fyne.ThemeColorName = "card"

// rgb15 expands a BGR555 colour to an opaque NRGBA.
func rgb15(c uint16) color.NRGBA {
	expand := func(v uint16) uint8 { return uint8(v&0x1F)<<3 | uint8(v&0x1F)>>2 }
	return color.NRGBA{R: expand(c), G: expand(c >> 5), B: expand(c >> 10), A: 0xFF}
}

// the theme is built from 15-bit colours so it matches what the screens
// can show
var colours = map[fyne.ThemeColorName]color.Color{
	ColorNameCard:                  rgb15(0x18C5),
	theme.ColorNameBackground:      rgb15(0x1083),
	theme.ColorNameMenuBackground:  rgb15(0x2108),
	theme.ColorNameButton:          rgb15(0x2108),
	theme.ColorNameInputBackground: rgb15(0x2108),
	theme.ColorNameHover:           rgb15(0x318C),
	theme.ColorNameFocus:           rgb15(0x18C5),
	theme.ColorNamePrimary:         rgb15(0x0A5F),
	theme.ColorNameDisabled:        rgb15(0x14A5),
}

// Default is the dark theme of the desktop driver.
type Default struct{}

func (Default) Color(name fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	if c, ok := colours[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, v)
}

func (Default) Font(style fyne.TextStyle) fyne.Resource    { return theme.DefaultTheme().Font(style) }
func (Default) Icon(name fyne.ThemeIconName) fyne.Resource { return theme.DefaultTheme().Icon(name) }
func (Default) Size(name fyne.ThemeSizeName) float32       { return theme.DefaultTheme().Size(name) }
