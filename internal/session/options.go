package session

import (
	"github.com/thelolagemann/gomeds/internal/config"
	"github.com/thelolagemann/gomeds/internal/gpu"
	"github.com/thelolagemann/gomeds/pkg/emulator"
	"github.com/thelolagemann/gomeds/pkg/log"
	"github.com/thelolagemann/gomeds/pkg/perf"
)

// Opt is a function that modifies a Session instance.
type Opt func(s *Session)

// WithLogger sets the logger of the session and its pipeline.
func WithLogger(l log.Logger) Opt {
	return func(s *Session) {
		s.log = l
	}
}

// WithConfig applies the pipeline settings of c.
func WithConfig(c config.PipelineConfig) Opt {
	return func(s *Session) {
		s.cfg = c
	}
}

// WithRecorder records the statistics of every frame into r.
func WithRecorder(r *perf.Recorder) Opt {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithScene loads the scene at path when the session is created.
func WithScene(path string) Opt {
	return func(s *Session) {
		s.scenePath = path
	}
}

// WithPipelineOpts passes extra options to every pipeline the session
// creates.
func WithPipelineOpts(opts ...gpu.Opt) Opt {
	return func(s *Session) {
		s.pipelineOpts = append(s.pipelineOpts, opts...)
	}
}

// Paused starts the session paused.
func Paused() Opt {
	return func(s *Session) {
		s.status = emulator.Paused
	}
}
