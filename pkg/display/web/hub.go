package web

import (
	"context"
	"encoding/binary"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gomeds/pkg/display"
	"github.com/thelolagemann/gomeds/pkg/emulator"
	"github.com/thelolagemann/gomeds/pkg/log"
)

type request struct {
	client *Client
	data   []byte
}

type hub struct {
	emu display.Emulator
	log log.Logger

	clients map[*Client]bool
	encoder *encoder

	broadcast            chan []byte
	frames               chan []byte
	register, unregister chan *Client
	requests             chan request
	done                 chan struct{}

	mu        sync.Mutex
	settings  settings
	currentID uint8
}

func newHub(emu display.Emulator, s settings, l log.Logger) *hub {
	return &hub{
		emu:        emu,
		log:        l,
		clients:    make(map[*Client]bool),
		encoder:    newEncoder(),
		broadcast:  make(chan []byte, 64),
		frames:     make(chan []byte, 2),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		requests:   make(chan request, 16),
		done:       make(chan struct{}),
		settings:   s,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeHTTP upgrades the request to a websocket client of the hub.
func (w *hub) ServeHTTP(wr http.ResponseWriter, r *http.Request) {
	wr.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(wr, r, nil)
	if err != nil {
		w.log.Errorf("web: upgrade %s: %v", r.RemoteAddr, err)
		return
	}

	w.mu.Lock()
	w.currentID++
	c := &Client{
		hub:         w,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          w.currentID,
		RemoteAddr:  r.RemoteAddr,
		UserAgent:   r.Header.Get("User-Agent"),
		connectedAt: time.Now(),
	}
	w.mu.Unlock()

	select {
	case w.register <- c:
	case <-w.done:
		conn.Close()
		return
	}
	go c.WritePump()
	go c.ReadPump()
}

// info returns the ServerInfo message: the settings byte followed by the
// id and latency of every client.
func (w *hub) info() []byte {
	w.mu.Lock()
	data := []byte{w.settings.info(w.emu != nil && w.emu.Status().IsPaused())}
	w.mu.Unlock()
	for c := range w.clients {
		latency := make([]byte, 2)
		binary.LittleEndian.PutUint16(latency, c.latency())
		data = append(data, c.ID)
		data = append(data, latency...)
	}
	return message(ServerInfo, data)
}

func (w *hub) send(c *Client, msg []byte) {
	select {
	case c.Send <- msg:
	default:
		close(c.Send)
		delete(w.clients, c)
	}
}

func (w *hub) sendAll(msg []byte) {
	for c := range w.clients {
		w.send(c, msg)
	}
}

// handle applies a request from a client.
func (w *hub) handle(r request) {
	cmd := func(p emulator.CommandPacket) {
		if w.emu == nil {
			return
		}
		if resp := w.emu.SendCommand(p); resp.Error != nil {
			w.log.Errorf("web: %v: %v", p.Command, resp.Error)
		}
	}

	switch r.data[0] {
	case RequestPause:
		cmd(display.Pause)
	case RequestResume:
		cmd(display.Resume)
	case RequestReset:
		cmd(display.Reset)
	case RequestStep:
		cmd(display.Step)
	case RequestSetting:
		if len(r.data) < 3 {
			return
		}
		w.mu.Lock()
		switch r.data[1] {
		case Compression:
			w.settings.Compression = r.data[2] == 1
		case CompressionLevel:
			w.settings.CompressionLevel = int(r.data[2]) % 12
		case FramePatching:
			w.settings.FramePatching = r.data[2] == 1
		case FramePatchRatio:
			w.settings.FramePatchRatio = int(r.data[2]) % 9
		case FrameSkipping:
			w.settings.FrameSkipping = r.data[2] == 1
		}
		w.mu.Unlock()
		// clients drop their caches on a settings change
		w.encoder.reset()
	default:
		w.log.Debugf("web: unknown request %d from client %d", r.data[0], r.client.ID)
		return
	}
	w.sendAll(w.info())
}

// run serves the hub until ctx is done.
func (w *hub) run(ctx context.Context) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	defer close(w.done)
	defer func() {
		for c := range w.clients {
			close(c.Send)
			delete(w.clients, c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-w.register:
			w.clients[c] = true
			w.mu.Lock()
			s := w.settings
			w.mu.Unlock()
			w.send(c, w.info())
			if msg, err := w.encoder.sync(s); err != nil {
				w.log.Errorf("web: sync client %d: %v", c.ID, err)
			} else {
				w.send(c, msg)
			}
		case c := <-w.unregister:
			if _, ok := w.clients[c]; ok {
				delete(w.clients, c)
				close(c.Send)
			}
		case r := <-w.requests:
			w.handle(r)
		case frame := <-w.frames:
			w.mu.Lock()
			s := w.settings
			w.mu.Unlock()
			msgs, err := w.encoder.encode(frame, s)
			if err != nil {
				w.log.Errorf("web: encode frame: %v", err)
			}
			for _, m := range msgs {
				w.sendAll(m)
			}
		case msg := <-w.broadcast:
			w.sendAll(msg)
		case <-t.C:
			w.sendAll(w.info())
		}
	}
}
