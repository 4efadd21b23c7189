//go:build !test

// Package ebiten is a display driver drawing frames with ebiten.
package ebiten

import (
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/thelolagemann/gomeds/pkg/display"
	"github.com/thelolagemann/gomeds/pkg/display/event"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

var errQuit = errors.New("ebiten: quit")

type ebitenDriver struct {
	emu    display.Emulator
	fb     <-chan []byte
	events <-chan event.Event

	tex     *ebiten.Image
	frame   []byte
	title   string
	err     error
	overlay bool
	quit    chan struct{}

	scale float64
	vsync bool
}

func init() {
	d := &ebitenDriver{}
	display.Install("ebiten", d, []display.DriverOption{
		{
			Name:        "scale",
			Default:     2.0,
			Value:       &d.scale,
			Description: "window scale factor",
			Type:        "float",
		},
		{
			Name:        "vsync",
			Default:     true,
			Value:       &d.vsync,
			Description: "synchronise drawing with the monitor",
			Type:        "bool",
		},
	})
}

func (d *ebitenDriver) Initialize(emu display.Emulator) {
	d.emu = emu
}

func (d *ebitenDriver) Start(fb <-chan []byte, events <-chan event.Event) error {
	d.fb, d.events = fb, events
	d.frame = make([]byte, display.Width*display.Height*4)
	d.quit = make(chan struct{})
	if d.scale <= 0 {
		d.scale = 2
	}

	ebiten.SetWindowTitle("gomeds")
	ebiten.SetWindowSize(int(display.Width*d.scale), int(display.Height*d.scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(d.vsync)

	err := ebiten.RunGame(d)
	if d.emu != nil {
		d.emu.SendCommand(display.Close)
	}
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (d *ebitenDriver) Stop() error {
	if d.quit != nil {
		select {
		case <-d.quit:
		default:
			close(d.quit)
		}
	}
	return nil
}

func (d *ebitenDriver) Update() error {
	select {
	case <-d.quit:
		return errQuit
	default:
	}

	// drain pending events
	for done := false; !done; {
		select {
		case e, ok := <-d.events:
			if !ok {
				done = true
				break
			}
			switch e.Type {
			case event.Quit:
				return errQuit
			case event.Title:
				if s := e.Data.(string); s != d.title {
					d.title = s
					ebiten.SetWindowTitle(s)
				}
			case event.Error:
				d.err, _ = e.Data.(error)
			}
		default:
			done = true
		}
	}

	// keep only the newest frame
	for done := false; !done; {
		select {
		case f, ok := <-d.fb:
			if !ok {
				done = true
				break
			}
			copy(d.frame, f)
		default:
			done = true
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		display.TogglePause(d.emu)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		d.emu.SendCommand(display.Reset)
		d.err = nil
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		d.emu.SendCommand(display.Step)
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		d.overlay = !d.overlay
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		if err := d.saveScreenshot(); err != nil {
			fmt.Fprintf(os.Stderr, "screenshot: %v\n", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return errQuit
	}
	return nil
}

func (d *ebitenDriver) Draw(screen *ebiten.Image) {
	if d.tex == nil {
		d.tex = ebiten.NewImage(display.Width, display.Height)
	}
	d.tex.WritePixels(d.frame)
	screen.DrawImage(d.tex, nil)

	if d.err != nil {
		ebitenutil.DebugPrintAt(screen, d.err.Error(), 4, display.Height/2)
	}
	if d.overlay {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nTPS %.1f FPS %.1f\nspeed %.2fx",
			d.emu.Status(), ebiten.ActualTPS(), ebiten.ActualFPS(), d.emu.Speed()))
	}
}

func (d *ebitenDriver) Layout(int, int) (int, int) { return display.Width, display.Height }

func (d *ebitenDriver) saveScreenshot() error {
	img := &image.RGBA{
		Pix:    append([]byte(nil), d.frame...),
		Stride: 4 * display.Width,
		Rect:   image.Rect(0, 0, display.Width, display.Height),
	}
	f, err := os.Create(fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405")))
	if err != nil {
		return err
	}
	defer f.Close()
	return utils.EncodeImage(f, img, "png")
}
