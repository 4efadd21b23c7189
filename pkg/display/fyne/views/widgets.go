package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gomeds/pkg/display/fyne/themes"
)

// bold is a small utility function for creating a bold label.
func bold(s string) *widget.Label { return widget.NewLabelWithStyle(s, 0, fyne.TextStyle{Bold: true}) }

// newCard wraps content in a rounded background with a bold title.
func newCard(title string, content fyne.CanvasObject) fyne.CanvasObject {
	bg := canvas.NewRectangle(themes.Default{}.Color(themes.ColorNameCard, 0))
	bg.StrokeWidth = 0
	return container.NewMax(bg, container.NewPadded(container.NewVBox(bold(title), content)))
}

type tappable struct {
	obj fyne.CanvasObject
	widget.BaseWidget
	tapHandler func()
}

func newWrappedTappable(onTap func(), obj fyne.CanvasObject) *tappable {
	if onTap == nil {
		onTap = func() {}
	}
	w := &tappable{obj: obj, tapHandler: onTap}
	w.ExtendBaseWidget(w)
	return w
}

func (t *tappable) CreateRenderer() fyne.WidgetRenderer { return widget.NewSimpleRenderer(t.obj) }
func (t *tappable) Cursor() desktop.Cursor              { return desktop.PointerCursor }
func (t *tappable) Tapped(*fyne.PointEvent)             { t.tapHandler() }
func (t *tappable) TappedSecondary(*fyne.PointEvent)    {}
