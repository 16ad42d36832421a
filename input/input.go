package input

// Command is a discrete user action polled once per frame
type Command int

const (
	None Command = iota
	AddObject
	ClearActive
	RecordStart
	RecordStop
	ToggleDebug
	Quit
)

// String returns the command name used in logs
func (c Command) String() string {
	switch c {
	case AddObject:
		return "add"
	case ClearActive:
		return "clear"
	case RecordStart:
		return "record-start"
	case RecordStop:
		return "record-stop"
	case ToggleDebug:
		return "debug"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// KeyEscape is the key code reported for ESC
const KeyEscape = 27

// ParseKey maps a key code from the window to a command.
// Unknown keys and the "no key" code (-1) map to None. Commands are lowercase
// only: arrow and page keys reach waitKey as 'Q'..'U' once truncated to a byte.
func ParseKey(key int) Command {
	if key < 0 {
		return None
	}

	switch key {
	case 's':
		return AddObject
	case 'u':
		return ClearActive
	case 'r':
		return RecordStart
	case 'x':
		return RecordStop
	case 'd':
		return ToggleDebug
	case 'q', KeyEscape:
		return Quit
	}

	return None
}

// Help is the one-line key reference drawn on every frame
const Help = "Press 's'=select, 'u'=clear, 'r'=record, 'x'=stop, 'd'=debug, 'q'=quit"
