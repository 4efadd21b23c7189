package emulator

// CommandPacket is a command packet that is sent to the
// emulator to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the emulator to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the emulator to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandClose closes the emulator.
	CommandClose
	// CommandReset reloads the current scene into a fresh pipeline.
	CommandReset
	// CommandLoadScene loads the scene whose path is in Data.
	CommandLoadScene
	// CommandSetFrameSkip sets the frame skip to Data[0].
	CommandSetFrameSkip
	// CommandStep runs a single frame while paused.
	CommandStep
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "Pause"
	case CommandResume:
		return "Resume"
	case CommandClose:
		return "Close"
	case CommandReset:
		return "Reset"
	case CommandLoadScene:
		return "LoadScene"
	case CommandSetFrameSkip:
		return "SetFrameSkip"
	case CommandStep:
		return "Step"
	}
	return "Unknown"
}
