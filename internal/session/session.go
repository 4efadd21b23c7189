// Package session runs a scene through the display pipeline frame by
// frame, and serves frames and events to a display driver.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thelolagemann/gomeds/internal/config"
	"github.com/thelolagemann/gomeds/internal/gpu"
	"github.com/thelolagemann/gomeds/internal/interrupts"
	"github.com/thelolagemann/gomeds/internal/memory"
	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/display"
	"github.com/thelolagemann/gomeds/pkg/display/event"
	"github.com/thelolagemann/gomeds/pkg/emulator"
	"github.com/thelolagemann/gomeds/pkg/log"
	"github.com/thelolagemann/gomeds/pkg/perf"
)

const (
	// Width is the width of a frame handed to a driver.
	Width = types.ScreenWidth
	// Height is the height of a frame handed to a driver, both screens
	// stacked.
	Height = types.ScreenHeight * 2
)

// ErrClosed is returned by commands sent to a closed session.
var ErrClosed = errors.New("session: closed")

// Session owns the VRAM, the pipeline and the scene feeding it.
type Session struct {
	mu sync.Mutex

	vram       *memory.Flat
	pipeline   *gpu.Pipeline
	interrupts *interrupts.Service
	scene      Scene
	scenePath  string

	cfg          config.PipelineConfig
	pipelineOpts []gpu.Opt
	recorder     *perf.Recorder

	frame  int
	status emulator.Status
	err    error
	speed  float64
	step   chan struct{}
	close  chan struct{}
	closed bool

	top, bottom []uint32

	log log.Logger
}

// New returns a Session. If a scene was given with WithScene it is loaded
// immediately.
func New(opts ...Opt) (*Session, error) {
	s := &Session{
		cfg:    config.Default().Pipeline,
		log:    log.NewNullLogger(),
		step:   make(chan struct{}, 1),
		close:  make(chan struct{}),
		top:    make([]uint32, types.ScreenWidth*types.ScreenHeight),
		bottom: make([]uint32, types.ScreenWidth*types.ScreenHeight),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// reset creates a fresh pipeline and reloads the scene.
func (s *Session) reset() error {
	if s.scene != nil {
		s.scene.Close()
		s.scene = nil
	}
	s.vram = memory.NewFlat()
	s.interrupts = interrupts.NewService()
	opts := append([]gpu.Opt{
		gpu.WithLogger(s.log),
		gpu.WithIRQ(s.interrupts.Request),
		gpu.WithFrameSkip(s.cfg.FrameSkip),
		gpu.WithFrameLimiter(s.cfg.FrameLimiter),
		gpu.WithGeometryBudget(s.cfg.GeometryBudget),
	}, s.pipelineOpts...)
	s.pipeline = gpu.New(s.vram, opts...)
	s.frame = 0
	s.err = nil
	if s.status == emulator.Errored {
		s.status = emulator.Running
	}

	if s.scenePath == "" {
		return nil
	}
	scene, err := openScene(s.scenePath, s.pipeline, s.vram, s.log)
	if err != nil {
		return fmt.Errorf("open scene %s: %w", s.scenePath, err)
	}
	s.scene = scene
	s.log.Infof("loaded scene %s", s.scenePath)
	return nil
}

// Pipeline returns the current pipeline.
func (s *Session) Pipeline() *gpu.Pipeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline
}

// VRAM returns the current VRAM.
func (s *Session) VRAM() *memory.Flat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vram
}

// Interrupts returns the interrupts requested by the current pipeline.
func (s *Session) Interrupts() *interrupts.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interrupts
}

// Step runs the scene and the pipeline for one frame.
func (s *Session) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepLocked()
}

func (s *Session) stepLocked() error {
	if s.err != nil {
		return s.err
	}
	if s.scene != nil {
		if err := s.scene.Frame(s.frame); err != nil {
			s.err = err
			s.status = emulator.Errored
			s.log.Errorf("scene: %v", err)
			return err
		}
	}
	s.pipeline.RunFrame()
	s.frame++

	st := s.pipeline.Stats()
	if s.recorder != nil {
		s.recorder.Add(perf.Sample{Frame: st.Frame, Duration: st.Duration, Polygons: st.Polygons, Vertices: st.Vertices})
	}
	return nil
}

// Frames returns the number of frames run since the last reset.
func (s *Session) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Screens returns the last completed frame of both screens.
func (s *Session) Screens() (top, bottom []uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipeline.Framebuffer(types.EngineA, s.top)
	s.pipeline.Framebuffer(types.EngineB, s.bottom)
	return append([]uint32(nil), s.top...), append([]uint32(nil), s.bottom...)
}

// FrameRGBA returns both screens stacked as Width×Height RGBA bytes.
func (s *Session) FrameRGBA() []byte {
	top, bottom := s.Screens()
	out := make([]byte, Width*Height*4)
	for i, px := range append(top, bottom...) {
		out[i*4] = uint8(px >> 16)
		out[i*4+1] = uint8(px >> 8)
		out[i*4+2] = uint8(px)
		out[i*4+3] = 0xFF
	}
	return out
}

// Start runs the session until it is closed, sending every frame to fb
// and periodic events to events. Frames are dropped while fb is full.
func (s *Session) Start(fb chan<- []byte, events chan<- event.Event) {
	send := func(e event.Event) {
		if events == nil {
			return
		}
		select {
		case events <- e:
		default:
		}
	}
	defer send(event.Event{Type: event.Quit})

	frames, start := 0, time.Now()
	for {
		select {
		case <-s.close:
			return
		default:
		}

		if s.Status() != emulator.Running {
			select {
			case <-s.close:
				return
			case <-s.step:
			case <-time.After(10 * time.Millisecond):
				continue
			}
		}

		if err := s.Step(); err != nil {
			send(event.Event{Type: event.Error, Data: err})
			s.mu.Lock()
			s.status = emulator.Errored
			s.mu.Unlock()
			continue
		}
		frames++
		send(event.Event{Type: event.Stats, Data: s.Pipeline().Stats()})
		if fb != nil {
			select {
			case fb <- s.FrameRGBA():
			default:
			}
		}

		if elapsed := time.Since(start); elapsed >= time.Second {
			fps := float64(frames) / elapsed.Seconds()
			s.mu.Lock()
			s.speed = fps / gpu.FrameRate
			s.mu.Unlock()
			send(event.Event{Type: event.Title, Data: fmt.Sprintf("gomeds | %s | %.1f fps", s.scenePath, fps)})
			if s.recorder != nil {
				send(event.Event{Type: event.FrameTime, Data: s.recorder.FrameTimes()})
			}
			frames, start = 0, time.Now()
		}
	}
}

var _ display.Emulator = (*Session)(nil)

// Serve attaches d to the session and runs both until the driver
// returns, then closes the session.
func (s *Session) Serve(d display.Driver) error {
	fb := make(chan []byte, 2)
	events := make(chan event.Event, 64)
	d.Initialize(s)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Start(fb, events)
	}()

	err := d.Start(fb, events)
	s.Close()
	<-done
	return err
}

// Status returns the status of the session.
func (s *Session) Status() emulator.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Speed returns the measured frame rate relative to the hardware.
func (s *Session) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// Close stops Start and releases the scene.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.close)
	if s.scene != nil {
		s.scene.Close()
	}
}

// SendCommand handles a command from a display driver.
func (s *Session) SendCommand(command emulator.CommandPacket) emulator.ResponsePacket {
	resp := emulator.ResponsePacket{Command: command.Command}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		resp.Error = ErrClosed
		return resp
	}

	switch command.Command {
	case emulator.CommandPause:
		s.setStatus(emulator.Paused)
	case emulator.CommandResume:
		s.setStatus(emulator.Running)
	case emulator.CommandClose:
		s.Close()
	case emulator.CommandReset:
		s.mu.Lock()
		resp.Error = s.reset()
		s.mu.Unlock()
	case emulator.CommandLoadScene:
		s.mu.Lock()
		s.scenePath = string(command.Data)
		resp.Error = s.reset()
		s.mu.Unlock()
	case emulator.CommandSetFrameSkip:
		if len(command.Data) == 0 {
			resp.Error = fmt.Errorf("%v: missing frame skip", command.Command)
			break
		}
		s.mu.Lock()
		s.cfg.FrameSkip = int(command.Data[0])
		resp.Error = s.reset()
		s.mu.Unlock()
	case emulator.CommandStep:
		select {
		case s.step <- struct{}{}:
		default:
		}
	default:
		resp.Error = fmt.Errorf("unknown command %d", command.Command)
	}
	return resp
}

func (s *Session) setStatus(status emulator.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != emulator.Errored {
		s.status = status
	}
}
