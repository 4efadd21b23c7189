package display

import (
	"flag"
	"testing"

	"github.com/thelolagemann/gomeds/pkg/display/event"
	"github.com/thelolagemann/gomeds/pkg/emulator"
)

type nopDriver struct{}

func (nopDriver) Initialize(Emulator)                           {}
func (nopDriver) Start(<-chan []byte, <-chan event.Event) error { return nil }
func (nopDriver) Stop() error                                   { return nil }

type fakeEmulator struct {
	status emulator.Status
}

func (f *fakeEmulator) SendCommand(c emulator.CommandPacket) emulator.ResponsePacket {
	switch c.Command {
	case emulator.CommandPause:
		f.status = emulator.Paused
	case emulator.CommandResume:
		f.status = emulator.Running
	}
	return emulator.ResponsePacket{Command: c.Command}
}

func (f *fakeEmulator) Speed() float64          { return 1 }
func (f *fakeEmulator) Status() emulator.Status { return f.status }

func withDrivers(t *testing.T) {
	t.Helper()
	saved := InstalledDrivers
	InstalledDrivers = nil
	t.Cleanup(func() { InstalledDrivers = saved })
}

func TestGetDriver(t *testing.T) {
	withDrivers(t)
	if GetDriver("auto") != nil {
		t.Error("expected no driver")
	}
	a, b := nopDriver{}, &nopDriver{}
	Install("a", a, nil)
	Install("b", b, nil)
	if GetDriver("b") != Driver(b) {
		t.Error("expected driver b")
	}
	if d, ok := GetDriver("auto").(*InstalledDriver); !ok || d.Name != "a" {
		t.Error("auto should select the first installed driver")
	}
	if GetDriver("c") != nil {
		t.Error("unknown driver resolved")
	}
}

func TestRegisterFlags(t *testing.T) {
	withDrivers(t)
	var scaleA, scaleB float64
	var addr string
	var vsync bool
	Install("a", nopDriver{}, []DriverOption{
		{Name: "scale", Default: 2.0, Value: &scaleA, Type: "float"},
		{Name: "vsync", Default: true, Value: &vsync, Type: "bool"},
	})
	Install("b", nopDriver{}, []DriverOption{
		{Name: "scale", Default: 2.0, Value: &scaleB, Type: "float"},
		{Name: "addr", Default: ":8090", Value: &addr, Type: "string"},
	})

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"-scale", "3", "-b-addr", ":9000", "-a-vsync=false"}); err != nil {
		t.Fatal(err)
	}
	if scaleA != 3 || scaleB != 3 {
		t.Errorf("shared option not applied to both drivers: %v %v", scaleA, scaleB)
	}
	if addr != ":9000" || vsync {
		t.Errorf("prefixed options not applied: %q %t", addr, vsync)
	}
}

func TestTogglePause(t *testing.T) {
	emu := &fakeEmulator{}
	TogglePause(emu)
	if !emu.status.IsPaused() {
		t.Error("expected a pause")
	}
	TogglePause(emu)
	if !emu.status.IsRunning() {
		t.Error("expected a resume")
	}
}
