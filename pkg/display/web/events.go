package web

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// Frame is a full frame: cache index (2 bytes) then the pixels.
	Frame Type = iota
	// FramePatch holds only the changed pixels; unchanged pixels have a
	// zero alpha.
	FramePatch
	// FrameSkip reports the number of identical frames not sent.
	FrameSkip
	// PatchCache replays the cached patch at the given index.
	PatchCache
	// FrameCache replays the cached frame at the given index.
	FrameCache
	// FrameSync holds the current frame, always compressed when
	// compression is enabled, for a newly connected client.
	FrameSync
	// ServerInfo holds the settings byte and the latency of every client.
	ServerInfo
	// Title holds the window title as text.
	Title
	// Stats holds the frame number, polygon and vertex counts.
	Stats
	// Error holds the error of a failed scene as text.
	Error
)

// Request is the first byte of every message sent by a client.
type Request = uint8

const (
	RequestPause Request = iota
	RequestResume
	RequestReset
	RequestStep
	// RequestSetting is followed by a Setting and its value.
	RequestSetting
	// RequestClose asks the server to drop the client.
	RequestClose = 255
)

// Setting is a hub setting changed by RequestSetting.
type Setting = uint8

const (
	_ Setting = iota
	Compression
	CompressionLevel
	FramePatching
	FramePatchRatio
	FrameSkipping
)
