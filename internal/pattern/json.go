package pattern

import (
	"encoding/json"
	"fmt"
)

// Encode serializes the document to its wire shape.
func (d *Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// Decode parses a document from its wire shape and enforces its invariants:
// nil slices are replaced with empty ones, while out-of-range fields and
// unsorted tracks are rejected.
func Decode(data []byte) (*Document, error) {
	doc := New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode pattern document: %w", err)
	}
	if doc.Imports == nil {
		doc.Imports = []ImportBinding{}
	}
	if doc.Tracks == nil {
		doc.Tracks = map[string][]NoteEvent{}
	}
	for name, events := range doc.Tracks {
		for _, ev := range events {
			if ev.Time < 0 {
				return nil, fmt.Errorf("track %q: negative time %v", name, ev.Time)
			}
			if ev.Velocity < 0 || ev.Velocity > 1 {
				return nil, fmt.Errorf("track %q: velocity %v out of range [0,1]", name, ev.Velocity)
			}
		}
		if !sorted(events) {
			return nil, fmt.Errorf("track %q: events not sorted by time", name)
		}
	}
	return doc, nil
}

func sorted(events []NoteEvent) bool {
	for i := 1; i < len(events); i++ {
		if events[i-1].Time > events[i].Time {
			return false
		}
	}
	return true
}
