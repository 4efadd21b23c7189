// Package web is a display driver streaming frames to websocket clients.
package web

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/thelolagemann/gomeds/internal/gpu"
	"github.com/thelolagemann/gomeds/pkg/display"
	"github.com/thelolagemann/gomeds/pkg/display/event"
	"github.com/thelolagemann/gomeds/pkg/log"
)

type webDriver struct {
	emu display.Emulator
	log log.Logger

	addr          string
	compression   bool
	patchRatio    int
	frameSkipping bool

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	cancel   context.CancelFunc
}

func init() {
	d := &webDriver{log: log.New()}
	display.Install("web", d, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &d.addr,
			Description: "address to serve websocket clients on",
			Type:        "string",
		},
		{
			Name:        "compression",
			Default:     true,
			Value:       &d.compression,
			Description: "brotli compress frames",
			Type:        "bool",
		},
		{
			Name:        "patch-ratio",
			Default:     2,
			Value:       &d.patchRatio,
			Description: "send a patch when fewer than n/8 of the pixels changed",
			Type:        "int",
		},
		{
			Name:        "frame-skipping",
			Default:     true,
			Value:       &d.frameSkipping,
			Description: "do not send unchanged frames",
			Type:        "bool",
		},
	})
}

func (d *webDriver) Initialize(emu display.Emulator) {
	d.emu = emu
}

func (d *webDriver) settings() settings {
	s := defaultSettings()
	s.Compression = d.compression
	s.FramePatchRatio = d.patchRatio
	s.FramePatching = d.patchRatio > 0
	s.FrameSkipping = d.frameSkipping
	return s
}

// Addr returns the address the driver is listening on, once started.
func (d *webDriver) Addr() net.Addr {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listener == nil {
		return nil
	}
	return d.listener.Addr()
}

func (d *webDriver) Start(fb <-chan []byte, events <-chan event.Event) error {
	ln, err := net.Listen("tcp", d.addr)
	if err != nil {
		return fmt.Errorf("web: listen: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := newHub(d.emu, d.settings(), d.log)
	server := &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}

	d.mu.Lock()
	d.server, d.listener, d.cancel = server, ln, cancel
	d.mu.Unlock()

	go h.run(ctx)
	go d.pump(ctx, h, fb, events)
	d.log.Infof("web: serving on %s", ln.Addr())

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		return err
	}
	return nil
}

// pump forwards frames and events to the hub, dropping frames the hub has
// not caught up with.
func (d *webDriver) pump(ctx context.Context, h *hub, fb <-chan []byte, events <-chan event.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-fb:
			if !ok {
				fb = nil
				continue
			}
			select {
			case h.frames <- f:
			default:
			}
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			var msg []byte
			switch e.Type {
			case event.Quit:
				d.Stop()
				return
			case event.Title:
				msg = message(Title, []byte(e.Data.(string)))
			case event.Error:
				msg = message(Error, []byte(fmt.Sprint(e.Data)))
			case event.Stats:
				st := e.Data.(gpu.Stats)
				buf := make([]byte, 16)
				binary.LittleEndian.PutUint64(buf, st.Frame)
				binary.LittleEndian.PutUint32(buf[8:], uint32(st.Polygons))
				binary.LittleEndian.PutUint32(buf[12:], uint32(st.Vertices))
				msg = message(Stats, buf)
			default:
				continue
			}
			select {
			case h.broadcast <- msg:
			default:
			}
		}
	}
}

func (d *webDriver) Stop() error {
	d.mu.Lock()
	server, cancel := d.server, d.cancel
	d.mu.Unlock()
	if server == nil {
		return nil
	}
	cancel()
	ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	return server.Shutdown(ctx)
}
