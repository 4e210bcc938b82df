package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrCorruptRecord marks a bucket value too short or malformed to decode.
var ErrCorruptRecord = errors.New("corrupt cell record")

// cellSerializer packs a cell's raw text under its A1 key into one
// bucket value, the same length-prefixed layout the teacher's
// CellSerializer.go used, so a record is self-describing even though the
// key is also the bbolt bucket key.
type cellSerializer struct{}

func (cellSerializer) Marshal(key string, text string) []byte {
	keyBytes := []byte(key)
	data := make([]byte, 0, 2+len(keyBytes)+len(text))
	data = binary.LittleEndian.AppendUint16(data, uint16(len(keyBytes)))
	data = append(data, keyBytes...)
	data = append(data, []byte(text)...)
	return data
}

func (cellSerializer) Unmarshal(data []byte) (key string, text string, err error) {
	if len(data) < 2 {
		return "", "", fmt.Errorf("%w: record shorter than header", ErrCorruptRecord)
	}
	keyLen := binary.LittleEndian.Uint16(data)
	if len(data) < int(keyLen)+2 {
		return "", "", fmt.Errorf("%w: key length %d exceeds record", ErrCorruptRecord, keyLen)
	}
	key = string(data[2 : keyLen+2])
	text = string(data[keyLen+2:])
	return key, text, nil
}
