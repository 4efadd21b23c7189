// Command gomeds renders a scene through the display pipeline, either
// headless, dumping frames and hashes, or through a display driver.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/thelolagemann/gomeds/internal/config"
	"github.com/thelolagemann/gomeds/internal/gpu"
	"github.com/thelolagemann/gomeds/internal/session"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/display"
	_ "github.com/thelolagemann/gomeds/pkg/display/ebiten"
	_ "github.com/thelolagemann/gomeds/pkg/display/fyne"
	_ "github.com/thelolagemann/gomeds/pkg/display/web"
	"github.com/thelolagemann/gomeds/pkg/log"
	"github.com/thelolagemann/gomeds/pkg/perf"
	"github.com/thelolagemann/gomeds/pkg/utils"
	"golang.org/x/term"
	"gonum.org/v1/plot/vg"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "gomeds:", err)
		os.Exit(1)
	}
}

type options struct {
	scene       string
	interactive bool
	hashes      bool
	dumpScale   int
	saveConfig  string
}

func run(args []string, stdout, stderr io.Writer) error {
	var o options
	cfg, _, err := config.FromArgs("gomeds", args, func(fs *flag.FlagSet, c *config.Config) {
		fs.StringVar(&o.scene, "scene", "", "the scene to render, a Lua script or a trace")
		fs.BoolVar(&o.interactive, "interactive", false, "show the scene through a display driver")
		fs.BoolVar(&o.hashes, "hash", true, "print the hash of every frame")
		fs.IntVar(&o.dumpScale, "dump-scale", 1, "scale factor of frame dumps")
		fs.StringVar(&o.saveConfig, "save-config", "", "write the effective configuration to this file")
		display.RegisterFlags(fs)
		if f := fs.Lookup("scale"); f != nil {
			f.Value.Set(strconv.Itoa(c.Display.Scale))
		}
	})
	if err != nil {
		return err
	}
	logger := log.NewWithOutput(stderr, cfg.Log.Level)

	if o.saveConfig != "" {
		if err := config.Save(o.saveConfig, cfg); err != nil {
			return err
		}
		logger.Infof("saved configuration to %s", o.saveConfig)
	}
	if o.scene == "" {
		return errors.New("no scene given, use -scene")
	}

	if !o.interactive {
		// headless runs go as fast as they can
		cfg.Pipeline.FrameLimiter = false
	}
	recorder := perf.NewRecorder(utils.Max(cfg.Output.Frames, perf.DefaultCapacity))
	s, err := session.New(
		session.WithLogger(logger),
		session.WithConfig(cfg.Pipeline),
		session.WithRecorder(recorder),
		session.WithScene(o.scene),
	)
	if err != nil {
		return err
	}

	if o.interactive {
		driver := display.GetDriver(cfg.Display.Driver)
		if driver == nil {
			return fmt.Errorf("invalid display driver %q", cfg.Display.Driver)
		}
		if err := s.Serve(driver); err != nil {
			return err
		}
	} else if err := render(s, cfg.Output, o, stdout, stderr, logger); err != nil {
		return err
	}

	if cfg.Output.Plot != "" {
		if err := recorder.Save(cfg.Output.Plot, 8*vg.Inch, 4*vg.Inch); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		logger.Infof("wrote frame time plot to %s", cfg.Output.Plot)
	}
	return nil
}

// render runs out.Frames frames of s, dumping and hashing them.
func render(s *session.Session, out config.OutputConfig, o options, stdout, stderr io.Writer, logger log.Logger) error {
	defer s.Close()
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var bar *progressbar.ProgressBar
	if f, ok := stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bar = progressbar.NewOptions(out.Frames,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for i := 0; i < out.Frames; i++ {
		if err := s.Step(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if bar != nil {
			bar.Add(1)
		}

		last := i == out.Frames-1
		dump := last
		if out.Every > 0 {
			dump = (i+1)%out.Every == 0
		}
		if !o.hashes && !dump {
			continue
		}

		top, bottom := s.Screens()
		if o.hashes {
			fmt.Fprintf(stdout, "%d %016x %016x\n", i, gpu.HashFrame(top), gpu.HashFrame(bottom))
		}
		if dump {
			path, err := dumpFrame(out, i, top, bottom, o.dumpScale)
			if err != nil {
				return err
			}
			logger.Debugf("wrote %s", path)
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return nil
}

// dumpFrame writes both screens, stacked, to the output directory.
func dumpFrame(out config.OutputConfig, n int, top, bottom []uint32, scale int) (string, error) {
	img := utils.ScaleImage(utils.StackScreens(
		utils.FrameToImage(top, types.ScreenWidth, types.ScreenHeight),
		utils.FrameToImage(bottom, types.ScreenWidth, types.ScreenHeight),
	), scale)

	path := filepath.Join(out.Dir, fmt.Sprintf("frame_%05d.%s", n, out.Format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := utils.EncodeImage(f, img, out.Format); err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, nil
}
