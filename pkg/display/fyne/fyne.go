//go:build !test

package fyne

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/display"
	"github.com/thelolagemann/gomeds/pkg/display/event"
	"github.com/thelolagemann/gomeds/pkg/display/fyne/themes"
	"github.com/thelolagemann/gomeds/pkg/display/fyne/views"
	"github.com/thelolagemann/gomeds/pkg/emulator"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

var keyHandlers = map[fyne.KeyName]func(*fyneDriver){
	fyne.KeyP: func(f *fyneDriver) {
		display.TogglePause(f.emu)
	},
	fyne.KeyR: func(f *fyneDriver) {
		f.command(display.Reset)
	},
	fyne.KeyN: func(f *fyneDriver) {
		f.command(display.Step)
	},
	fyne.KeyC: func(f *fyneDriver) {
		if err := utils.CopyImage(f.snapshot()); err != nil {
			fmt.Fprintf(os.Stderr, "copy screenshot: %v\n", err)
		}
	},
	fyne.KeyS: func(f *fyneDriver) {
		if err := utils.SaveImage(f.snapshot()); err != nil {
			fmt.Fprintf(os.Stderr, "save screenshot: %v\n", err)
		}
	},
	fyne.KeyO: func(f *fyneDriver) {
		f.openScene()
	},
}

type fyneWindow struct {
	fyne.Window
	view   View
	events chan event.Event
}

type fyneDriver struct {
	app  fyne.App
	emu  display.Emulator
	main fyne.Window

	mu      sync.Mutex
	windows []*fyneWindow

	image     *image.RGBA
	raster    *canvas.Raster
	scale     float64
	frameSkip int
}

func init() {
	f := &fyneDriver{}
	display.Install("fyne", f, []display.DriverOption{
		{
			Name:        "scale",
			Default:     2.0,
			Value:       &f.scale,
			Description: "window scale factor",
			Type:        "float",
		},
	})
}

func (f *fyneDriver) Initialize(emu display.Emulator) {
	f.emu = emu
}

func (f *fyneDriver) command(c emulator.CommandPacket) {
	if resp := f.emu.SendCommand(c); resp.Error != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", c.Command, resp.Error)
	}
}

// snapshot returns a copy of the frame currently on screen.
func (f *fyneDriver) snapshot() image.Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewRGBA(f.image.Rect)
	copy(img.Pix, f.image.Pix)
	return img
}

func (f *fyneDriver) openScene() {
	path, err := utils.AskForFile("Open scene", ".")
	if err != nil {
		return // user cancelled
	}
	f.command(emulator.CommandPacket{Command: emulator.CommandLoadScene, Data: []byte(path)})
}

// openWindowIfNotOpen opens a window for view, unless a window with
// the same title is already open.
func (f *fyneDriver) openWindowIfNotOpen(view View) {
	f.mu.Lock()
	for _, w := range f.windows {
		if w.view.Title() == view.Title() {
			f.mu.Unlock()
			w.RequestFocus()
			return
		}
	}
	win := &fyneWindow{
		Window: f.app.NewWindow(view.Title()),
		view:   view,
		events: make(chan event.Event, 64),
	}
	f.windows = append(f.windows, win)
	f.mu.Unlock()

	win.SetOnClosed(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, w := range f.windows {
			if w == win {
				f.windows = append(f.windows[:i], f.windows[i+1:]...)
				break
			}
		}
		close(win.events)
	})
	if err := view.Run(win, win.events); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", view.Title(), err)
		return
	}
	win.Show()
}

// dispatch forwards an event to every open view.
func (f *fyneDriver) dispatch(e event.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.windows {
		select {
		case w.events <- e:
		default:
		}
	}
}

func (f *fyneDriver) mainMenu() *fyne.MainMenu {
	vram := func() memory.VRAM {
		if v, ok := f.emu.(interface{ VRAM() *memory.Flat }); ok {
			return v.VRAM()
		}
		return nil
	}
	hasVRAM := vram() != nil

	sceneMenu := fyne.NewMenu("Scene",
		fyne.NewMenuItem("Open", f.openScene),
		fyne.NewMenuItem("Reset", func() { f.command(display.Reset) }),
	)

	paused := menuItem("Paused", func() {}, toggled(f.emu.Status().IsPaused(), func() {
		display.TogglePause(f.emu)
	}))
	frameSkip := fyne.NewMenuItem("Frame Skip", func() {})
	frameSkip.ChildMenu = fyne.NewMenu("")
	for i := 0; i <= 3; i++ {
		n := i
		frameSkip.ChildMenu.Items = append(frameSkip.ChildMenu.Items, menuItem(strconv.Itoa(n), func() {
			f.command(emulator.CommandPacket{Command: emulator.CommandSetFrameSkip, Data: []byte{byte(n)}})
			f.frameSkip = n
			f.main.SetMainMenu(f.mainMenu())
		}, selected(n == f.frameSkip)))
	}
	pipelineMenu := fyne.NewMenu("Pipeline",
		paused,
		fyne.NewMenuItem("Step", func() { f.command(display.Step) }),
		frameSkip,
	)

	debugMenu := fyne.NewMenu("Debug",
		fyne.NewMenuItem("Performance", func() {
			f.openWindowIfNotOpen(&views.Performance{})
		}),
		fyne.NewMenuItem("Statistics", func() {
			f.openWindowIfNotOpen(&views.Statistics{})
		}),
		menuItem("Palette (Main)", func() {
			f.openWindowIfNotOpen(views.NewPalette(vram, types.EngineA))
		}, enabledIf(hasVRAM)),
		menuItem("Palette (Sub)", func() {
			f.openWindowIfNotOpen(views.NewPalette(vram, types.EngineB))
		}, enabledIf(hasVRAM)),
	)

	return fyne.NewMainMenu(sceneMenu, pipelineMenu, debugMenu)
}

func (f *fyneDriver) Start(fb <-chan []byte, events <-chan event.Event) error {
	f.app = app.New()
	f.app.Settings().SetTheme(themes.Default{})

	f.main = f.app.NewWindow("gomeds")
	f.main.SetMaster()
	f.main.SetPadded(false)
	if f.scale <= 0 {
		f.scale = 2
	}
	f.main.Resize(fyne.NewSize(float32(display.Width*f.scale), float32(display.Height*f.scale)))

	f.image = image.NewRGBA(image.Rect(0, 0, display.Width, display.Height))
	f.raster = canvas.NewRasterFromImage(f.image)
	f.raster.ScaleMode = canvas.ImageScalePixels
	f.raster.SetMinSize(fyne.NewSize(display.Width, display.Height))
	f.main.SetContent(f.raster)
	f.main.SetMainMenu(f.mainMenu())

	if desk, ok := f.main.Canvas().(desktop.Canvas); ok {
		desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
			if h, ok := keyHandlers[e.Name]; ok {
				h(f)
			}
		})
	}

	go func() {
		for frame := range fb {
			f.mu.Lock()
			copy(f.image.Pix, frame)
			f.mu.Unlock()
			f.raster.Refresh()
		}
	}()

	go func() {
		for e := range events {
			switch e.Type {
			case event.Title:
				f.main.SetTitle(e.Data.(string))
			case event.Error:
				f.main.SetTitle(fmt.Sprintf("gomeds | %v", e.Data))
				f.dispatch(e)
			case event.Quit:
				f.dispatch(e)
				f.app.Quit()
				return
			default:
				f.dispatch(e)
			}
		}
	}()

	f.main.ShowAndRun()
	f.command(display.Close)
	return nil
}

func (f *fyneDriver) Stop() error {
	if f.app != nil {
		f.app.Quit()
	}
	return nil
}
