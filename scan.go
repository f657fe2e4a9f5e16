package aseq

// Feed scans chunk, the next piece of the stream, starting from st. Events
// are appended to events and the state to pass with the following chunk is
// returned. Chunks may have any length, including zero; splitting a stream
// differently never changes the events produced for it.
//
// A match switches the scanner to emitting the pattern's context length of
// following bytes, possibly across several chunks, before searching resumes.
// Matches therefore never overlap. A partial match still pending when the
// stream ends is never reported.
func Feed(p *Pattern, st State, chunk []byte, events []Event) (State, []Event) {
	seq := p.seq
	pos := 0

	if st.PartialMatchLen < 0 || st.PartialMatchLen >= len(seq) {
		st.PartialMatchLen = 0
	}

	for pos < len(chunk) {
		if st.Mode == ModeEmittingContext {
			for pos < len(chunk) && st.ContextRemaining > 0 {
				events = append(events, Event{Kind: EventContextByte, Value: chunk[pos]})
				st.ContextRemaining--
				pos++
			}
			if st.ContextRemaining <= 0 {
				st.ContextRemaining = 0
				st.Mode = ModeSearching
				events = append(events, Event{Kind: EventContextWindowClosed})
			}
			continue
		}

		i := 0
		for st.PartialMatchLen+i < len(seq) && pos+i < len(chunk) && seq[st.PartialMatchLen+i] == chunk[pos+i] {
			i++
		}

		switch {
		case st.PartialMatchLen+i == len(seq):
			st.Matches++
			events = append(events, Event{
				Kind:     EventMatchFound,
				Index:    st.Matches,
				Position: st.Offset + int64(pos) - int64(st.PartialMatchLen),
			})
			st.Mode = ModeEmittingContext
			st.ContextRemaining = p.contextLen
			st.PartialMatchLen = 0
			pos += i
		case pos+i == len(chunk):
			// Pattern continues past the end of the chunk.
			st.PartialMatchLen += i
			pos += i
		case st.PartialMatchLen > 0:
			// The candidate began in an earlier chunk; slide it over the carried
			// bytes and compare again from the same chunk position.
			st.PartialMatchLen = p.resume(st.PartialMatchLen)
		default:
			pos++
		}
	}

	st.Offset += int64(len(chunk))
	return st, events
}

// ScanAll scans src as a complete stream. It is equivalent to a single Feed
// from the zero State.
func ScanAll(p *Pattern, src []byte) (State, []Event) {
	return Feed(p, State{}, src, nil)
}
