package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"

	"github.com/thelolagemann/gomeds/internal/config"
	"github.com/thelolagemann/gomeds/internal/session"
	"github.com/thelolagemann/gomeds/pkg/display"
	_ "github.com/thelolagemann/gomeds/pkg/display/ebiten"
	_ "github.com/thelolagemann/gomeds/pkg/display/fyne"
	_ "github.com/thelolagemann/gomeds/pkg/display/web"
	"github.com/thelolagemann/gomeds/pkg/log"
	"github.com/thelolagemann/gomeds/pkg/perf"
)

func main() {
	var scene, pprof string
	var paused bool
	cfg, _, err := config.FromArgs(os.Args[0], os.Args[1:], func(fs *flag.FlagSet, c *config.Config) {
		fs.StringVar(&scene, "scene", "", "the scene to load, a Lua script or a trace")
		fs.StringVar(&pprof, "pprof", "", "serve pprof on this address")
		fs.BoolVar(&paused, "paused", false, "start paused")
		display.RegisterFlags(fs)
		if f := fs.Lookup("scale"); f != nil {
			f.Value.Set(strconv.Itoa(c.Display.Scale))
		}
	})
	if err == flag.ErrHelp {
		return
	}
	logger := log.NewWithOutput(os.Stderr, cfg.Log.Level)
	if err != nil {
		logger.Fatal(err.Error())
	}

	if pprof != "" {
		go func() {
			if err := http.ListenAndServe(pprof, nil); err != nil {
				logger.Errorf("pprof: %v", err)
			}
		}()
	}

	if len(display.InstalledDrivers) == 0 {
		logger.Fatal("No display drivers installed. Please compile with at least one display driver")
	}
	driver := display.GetDriver(cfg.Display.Driver)
	if driver == nil {
		logger.Fatal("invalid display driver " + cfg.Display.Driver)
	}

	opts := []session.Opt{
		session.WithLogger(logger),
		session.WithConfig(cfg.Pipeline),
		session.WithRecorder(perf.NewRecorder(perf.DefaultCapacity)),
	}
	if scene != "" {
		opts = append(opts, session.WithScene(scene))
	}
	if paused {
		opts = append(opts, session.Paused())
	}
	s, err := session.New(opts...)
	if err != nil {
		logger.Fatal(err.Error())
	}

	if err := s.Serve(driver); err != nil {
		logger.Fatal(err.Error())
	}
}
