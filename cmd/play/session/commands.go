package session

// Command is a keyboard-derived request applied by the controller.
type Command int

const (
	CmdNone Command = iota
	CmdTogglePause
	CmdNext
	CmdPrevious
	CmdRestart
	CmdVolumeUp
	CmdVolumeDown
	CmdToggleShuffle
	CmdSeekForward
	CmdSeekBackward
	CmdCopyPath
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdTogglePause:
		return "toggle-pause"
	case CmdNext:
		return "next"
	case CmdPrevious:
		return "previous"
	case CmdRestart:
		return "restart"
	case CmdVolumeUp:
		return "volume-up"
	case CmdVolumeDown:
		return "volume-down"
	case CmdToggleShuffle:
		return "toggle-shuffle"
	case CmdSeekForward:
		return "seek-forward"
	case CmdSeekBackward:
		return "seek-backward"
	case CmdCopyPath:
		return "copy-path"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}
