package utils

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// BufReader is a read cursor over an in-memory file. Motion files are
// small enough to always be loaded whole, so every read is a slice of
// the backing buffer. Reading or seeking past the end is a format
// error, not a retryable condition.
type BufReader struct {
	buf []byte
	pos int
}

func NewBufReader(b []byte) *BufReader {
	return &BufReader{buf: b}
}

func (r *BufReader) Pos() int {
	return r.pos
}

func (r *BufReader) Size() int {
	return len(r.buf)
}

func (r *BufReader) Seek(off int) error {
	if off < 0 || off > len(r.buf) {
		return errors.Errorf("Seek to 0x%x outside of buffer (size 0x%x)", off, len(r.buf))
	}
	r.pos = off
	return nil
}

func (r *BufReader) read(amount int) ([]byte, error) {
	if r.pos+amount > len(r.buf) {
		return nil, errors.Errorf("Read of 0x%x bytes at 0x%x outside of buffer (size 0x%x)",
			amount, r.pos, len(r.buf))
	}
	oldPos := r.pos
	r.pos += amount
	return r.buf[oldPos:r.pos], nil
}

func (r *BufReader) ReadByte() (byte, error) {
	b, err := r.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *BufReader) ReadI8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

func (r *BufReader) ReadLU16() (uint16, error) {
	b, err := r.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *BufReader) ReadLI16() (int16, error) {
	v, err := r.ReadLU16()
	return int16(v), err
}

func (r *BufReader) ReadBU16() (uint16, error) {
	b, err := r.read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *BufReader) ReadLU32() (uint32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *BufReader) ReadLI32() (int32, error) {
	v, err := r.ReadLU32()
	return int32(v), err
}

func (r *BufReader) ReadLF() (float32, error) {
	v, err := r.ReadLU32()
	return math.Float32frombits(v), err
}

func (r *BufReader) ReadPGHalf() (float32, error) {
	v, err := r.ReadLU16()
	return PGHalfToFloat(v), err
}

// ReadZString reads up to limit bytes, stopping after a zero terminator.
func (r *BufReader) ReadZString(limit int) (string, error) {
	l := 0
	for i := 0; ; i++ {
		if i == limit {
			l = i
			break
		}
		if r.pos+i >= len(r.buf) {
			return "", errors.Errorf("String at 0x%x runs outside of buffer (size 0x%x)", r.pos, len(r.buf))
		}
		if r.buf[r.pos+i] == 0 {
			l = i + 1
			break
		}
	}

	s := BytesToString(r.buf[r.pos : r.pos+l])
	r.pos += l
	return s, nil
}
