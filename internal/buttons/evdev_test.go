package buttons

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func inputEvent(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestDecodeKeyPresses(t *testing.T) {
	const tv = 16
	var buf []byte
	buf = append(buf, inputEvent(tv, evKey, KeyEnter, 1)...)
	buf = append(buf, inputEvent(tv, evKey, KeyEnter, 0)...)
	buf = append(buf, inputEvent(tv, evKey, KeyTab, 2)...)
	buf = append(buf, inputEvent(tv, 0x00, 0, 0)...)
	buf = append(buf, inputEvent(tv, evKey, 30, 1)...)
	buf = append(buf, inputEvent(tv, evKey, KeyF4, 1)...)
	buf = append(buf, 0x01, 0x02)

	assert.Equal(t, []Event{Select, Exit}, decodeKeyPresses(buf, tv, DefaultKeys()))
}

func TestDecodeKeyPressesSmallTimeval(t *testing.T) {
	buf := inputEvent(8, evKey, KeyBackspace, 1)
	assert.Equal(t, []Event{Back}, decodeKeyPresses(buf, 8, DefaultKeys()))
	assert.Empty(t, decodeKeyPresses(buf[:10], 8, DefaultKeys()))
}
