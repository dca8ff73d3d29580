package utils_test

import (
	"testing"

	"github.com/nier-tools/mot_browser/utils"
)

func TestBufReaderReads(t *testing.T) {
	r := utils.NewBufReader([]byte{
		0x01, 0x02, // LE u16 0x0201
		0x03, 0x04, // BE u16 0x0304
		0xff,             // i8 -1
		0, 0, 0x80, 0x3f, // f32 1.0
	})

	if v, err := r.ReadLU16(); err != nil || v != 0x0201 {
		t.Errorf("ReadLU16 -> %v, %v", v, err)
	}
	if v, err := r.ReadBU16(); err != nil || v != 0x0304 {
		t.Errorf("ReadBU16 -> %v, %v", v, err)
	}
	if v, err := r.ReadI8(); err != nil || v != -1 {
		t.Errorf("ReadI8 -> %v, %v", v, err)
	}
	if v, err := r.ReadLF(); err != nil || v != 1.0 {
		t.Errorf("ReadLF -> %v, %v", v, err)
	}
	if r.Pos() != 9 {
		t.Errorf("Pos -> %v", r.Pos())
	}
}

func TestBufReaderSeek(t *testing.T) {
	r := utils.NewBufReader([]byte{1, 2, 3, 4})
	if err := r.Seek(2); err != nil {
		t.Fatal(err)
	}
	if b, err := r.ReadByte(); err != nil || b != 3 {
		t.Errorf("ReadByte after seek -> %v, %v", b, err)
	}
	if err := r.Seek(5); err == nil {
		t.Error("expected error seeking past the end")
	}
	if err := r.Seek(-1); err == nil {
		t.Error("expected error seeking before the start")
	}
}

func TestBufReaderOverrun(t *testing.T) {
	r := utils.NewBufReader([]byte{1, 2})
	if _, err := r.ReadLU32(); err == nil {
		t.Error("expected error reading past the end")
	}
}

func TestBufReaderZString(t *testing.T) {
	r := utils.NewBufReader([]byte{'a', 'b', 0, 'c'})
	s, err := r.ReadZString(12)
	if err != nil || s != "ab" {
		t.Errorf("ReadZString -> %q, %v", s, err)
	}
	// terminator is consumed
	if b, _ := r.ReadByte(); b != 'c' {
		t.Errorf("position after string read: got %q", b)
	}
}

func TestBufReaderZStringLimit(t *testing.T) {
	r := utils.NewBufReader([]byte{'a', 'b', 'c', 'd'})
	s, err := r.ReadZString(3)
	if err != nil || s != "abc" {
		t.Errorf("ReadZString -> %q, %v", s, err)
	}
}
