package buttons

import "encoding/binary"

const evKey = 0x01

// Linux input-event-codes.h
const (
	KeyEsc       uint16 = 1
	KeyBackspace uint16 = 14
	KeyTab       uint16 = 15
	KeyEnter     uint16 = 28
	KeySpace     uint16 = 57
	KeyF4        uint16 = 62
	KeyLeft      uint16 = 105
	KeyRight     uint16 = 106
)

// DefaultKeys mirrors the simulator window bindings, plus F4 to exit.
func DefaultKeys() map[uint16]Event {
	return map[uint16]Event{
		KeyEnter:     Select,
		KeySpace:     Select,
		KeyBackspace: Back,
		KeyLeft:      Back,
		KeyRight:     Next,
		KeyTab:       Next,
		KeyEsc:       Exit,
		KeyF4:        Exit,
	}
}

// decodeKeyPresses parses a run of input_event records and returns the
// events of mapped key presses, in order. Repeats and releases are ignored.
// tvSize is the size of struct timeval on the running architecture.
func decodeKeyPresses(buf []byte, tvSize int, keys map[uint16]Event) []Event {
	size := tvSize + 2 + 2 + 4
	var out []Event
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off : off+size]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ != evKey || value != 1 {
			continue
		}
		if e, ok := keys[code]; ok {
			out = append(out, e)
		}
	}
	return out
}
