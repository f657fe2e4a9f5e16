package aseq

// Mode is what the scanner does with the next byte of the stream.
type Mode int

const (
	ModeSearching       Mode = 0 // default
	ModeEmittingContext Mode = 1
)

func (m Mode) String() string {
	switch m {
	case ModeSearching:
		return "searching"
	case ModeEmittingContext:
		return "emitting-context"
	}
	return "unknown"
}

// State is carried from one chunk to the next. The zero value is the state
// before the first chunk.
type State struct {
	Mode Mode

	// PartialMatchLen is the number of pattern bytes matched at the end of the
	// previous chunk, pending the next one. Always 0 while emitting context.
	// Values outside [0, pattern length) are treated as 0 by Feed.
	PartialMatchLen int

	// ContextRemaining is the number of context bytes still to be emitted.
	// A value of 0 or less closes the window at the next byte.
	ContextRemaining int

	Offset  int64 // bytes consumed by all previous chunks
	Matches int
}

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventMatchFound          EventKind = 1 // Index and Position are set
	EventContextByte         EventKind = 2 // Value is set
	EventContextWindowClosed EventKind = 3
)

func (k EventKind) String() string {
	switch k {
	case EventMatchFound:
		return "match"
	case EventContextByte:
		return "context-byte"
	case EventContextWindowClosed:
		return "window-closed"
	}
	return "unknown"
}

type Event struct {
	Kind     EventKind
	Index    int   // 1-based match number
	Position int64 // stream offset of the first matched byte
	Value    byte
}
