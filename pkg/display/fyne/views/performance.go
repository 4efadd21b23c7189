package views

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gomeds/internal/gpu"
	"github.com/thelolagemann/gomeds/pkg/display/event"
	"github.com/thelolagemann/gomeds/pkg/perf"
)

// redrawEvery is the number of frames between plot redraws.
const redrawEvery = 30

// Performance plots the frame time and polygon count of recent frames.
type Performance struct {
	recorder *perf.Recorder
}

func (p *Performance) Title() string {
	return "Performance"
}

func (p *Performance) Run(window fyne.Window, events <-chan event.Event) error {
	p.recorder = perf.NewRecorder(perf.DefaultCapacity)

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	raster := canvas.NewRasterFromImage(img)
	raster.ScaleMode = canvas.ImageScalePixels
	raster.SetMinSize(fyne.NewSize(640, 480))
	average := widget.NewLabel("")

	window.SetContent(container.NewVBox(raster, average))

	go func() {
		n := 0
		for e := range events {
			switch e.Type {
			case event.Quit:
				return
			case event.Stats:
				st := e.Data.(gpu.Stats)
				p.recorder.Add(perf.Sample{Frame: st.Frame, Duration: st.Duration, Polygons: st.Polygons, Vertices: st.Vertices})
				if n++; n%redrawEvery != 0 {
					continue
				}
				if err := p.recorder.Draw(img); err != nil {
					average.SetText(err.Error())
					continue
				}
				average.SetText(fmt.Sprintf("average frame time %s over %d frames", p.recorder.Average(), p.recorder.Len()))
				raster.Refresh()
			}
		}
	}()

	return nil
}
