package session

import (
	"path/filepath"
	"strings"

	"github.com/thelolagemann/gomeds/internal/gpu"
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/pkg/log"
	"github.com/thelolagemann/gomeds/pkg/script"
	"github.com/thelolagemann/gomeds/pkg/trace"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// Scene feeds the pipeline with the writes of each frame.
type Scene interface {
	// Frame performs the writes of frame n.
	Frame(n int) error
	Close()
}

// openScene loads the scene at path into p and vram. Lua sources are run
// as scripts; everything else is read as a trace.
func openScene(path string, p *gpu.Pipeline, vram *memory.Flat, l log.Logger) (Scene, error) {
	if strings.EqualFold(filepath.Ext(utils.InnerName(path)), ".lua") {
		s := script.New(p, vram, script.WithLogger(l))
		if err := s.Load(path); err != nil {
			s.Close()
			return nil, err
		}
		return &scriptScene{s}, nil
	}

	records, err := trace.Load(path)
	if err != nil {
		return nil, err
	}
	return &traceScene{player: trace.NewPlayer(records), p: p, vram: vram}, nil
}

type scriptScene struct {
	*script.Script
}

func (s *scriptScene) Frame(n int) error {
	if !s.HasFrame() {
		return nil
	}
	return s.Script.Frame(n)
}

// traceScene replays a trace, looping once it ends.
type traceScene struct {
	player *trace.Player
	p      *gpu.Pipeline
	vram   *memory.Flat
}

func (t *traceScene) Frame(int) error {
	if t.player.Done() {
		t.player.Rewind()
	}
	return t.player.Frame(t.p, t.vram)
}

func (t *traceScene) Close() {}
