package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gomeds/internal/gpu"
	"github.com/thelolagemann/gomeds/pkg/display/event"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// Statistics shows the counters of the most recent frame.
type Statistics struct{}

func (s *Statistics) Title() string {
	return "Statistics"
}

func (s *Statistics) Run(window fyne.Window, events <-chan event.Event) error {
	frame := widget.NewLabel("0")
	polygons := widget.NewLabel("0")
	vertices := widget.NewLabel("0")
	swapped := widget.NewLabel("")
	drawn := widget.NewLabel("")
	duration := widget.NewLabel("")
	lastError := widget.NewLabel("")

	window.SetContent(container.NewVBox(
		newCard("Frame", container.NewGridWithColumns(2,
			bold("Number"), frame,
			bold("Duration"), duration,
			bold("Drawn"), drawn,
		)),
		newCard("Geometry", container.NewGridWithColumns(2,
			bold("Swapped"), swapped,
			bold("Polygons"), polygons,
			bold("Vertices"), vertices,
		)),
		lastError,
	))

	go func() {
		for e := range events {
			switch e.Type {
			case event.Quit:
				return
			case event.Error:
				lastError.SetText(fmt.Sprint(e.Data))
			case event.Stats:
				st := e.Data.(gpu.Stats)
				frame.SetText(fmt.Sprint(st.Frame))
				duration.SetText(st.Duration.String())
				drawn.SetText(utils.BoolToString(st.Drawn))
				swapped.SetText(utils.BoolToString(st.Swapped))
				polygons.SetText(fmt.Sprint(st.Polygons))
				vertices.SetText(fmt.Sprint(st.Vertices))
			}
		}
	}()

	return nil
}
