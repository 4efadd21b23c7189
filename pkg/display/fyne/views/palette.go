package views

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/ppu/palette"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/display/event"
)

// Palette shows the 256 background and 256 object colours of an engine.
type Palette struct {
	vram   func() memory.VRAM
	engine types.Engine

	bgRects, objRects [256]*canvas.Rectangle
}

// NewPalette returns a palette view of engine e. vram is called on every
// refresh, so the view follows a reset.
func NewPalette(vram func() memory.VRAM, e types.Engine) *Palette {
	return &Palette{vram: vram, engine: e}
}

func (p *Palette) Title() string {
	return fmt.Sprintf("Palette (%s)", p.engine)
}

func toRGB(c palette.Colour) color.RGBA {
	argb := c.ARGB()
	return color.RGBA{R: uint8(argb >> 16), G: uint8(argb >> 8), B: uint8(argb), A: 0xFF}
}

func (p *Palette) grid(rects *[256]*canvas.Rectangle, title string, base int, selected *canvas.Rectangle, info *widget.Label) fyne.CanvasObject {
	grid := container.NewGridWithColumns(16)
	for i := range rects {
		index := base + i
		r := canvas.NewRectangle(color.Black)
		r.SetMinSize(fyne.NewSize(16, 16))
		rects[i] = r
		grid.Add(newWrappedTappable(func() {
			c := palette.Colour(p.vram().Palette(p.engine, index))
			selected.FillColor = toRGB(c)
			selected.Refresh()
			info.SetText(fmt.Sprintf("%s %d\n$%04X", title, index-base, uint16(c)))
		}, r))
	}
	return newCard(title, grid)
}

func (p *Palette) refresh() {
	v := p.vram()
	if v == nil {
		return
	}
	for i := 0; i < 256; i++ {
		for _, r := range []struct {
			rect  *canvas.Rectangle
			index int
		}{{p.bgRects[i], i}, {p.objRects[i], 256 + i}} {
			c := toRGB(palette.Colour(v.Palette(p.engine, r.index)))
			if r.rect.FillColor != c {
				r.rect.FillColor = c
				r.rect.Refresh()
			}
		}
	}
}

func (p *Palette) Run(window fyne.Window, events <-chan event.Event) error {
	selected := canvas.NewRectangle(color.Black)
	selected.SetMinSize(fyne.NewSize(48, 48))
	info := widget.NewLabel("")

	window.SetContent(container.NewVBox(
		container.NewHBox(
			p.grid(&p.bgRects, "Background", 0, selected, info),
			p.grid(&p.objRects, "Objects", 256, selected, info),
		),
		widget.NewSeparator(),
		container.NewHBox(selected, info),
	))
	p.refresh()

	go func() {
		last := time.Now()
		for e := range events {
			switch e.Type {
			case event.Quit:
				return
			case event.Stats:
				if time.Since(last) < 100*time.Millisecond {
					continue
				}
				last = time.Now()
				p.refresh()
			}
		}
	}()
	return nil
}
