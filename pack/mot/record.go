package mot

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nier-tools/mot_browser/utils"
)

// SENTINEL_BONE marks the terminator record, it carries no payload.
const SENTINEL_BONE = 0x7fff

// PARENT_BONE is the raw reference of the motion root bone, used when
// a motion displaces the whole character.
const PARENT_BONE = -1

// RecordKind is the closed set of on-disk keyframe encodings. Decoding
// switches over it exhaustively, any value outside the set is a format
// error for the whole file.
type RecordKind int8

const (
	KindTerminator               RecordKind = -1
	KindConstant                 RecordKind = 0
	KindValues                   RecordKind = 1
	KindQuantized                RecordKind = 2
	KindQuantizedHalf            RecordKind = 3
	KindHermite                  RecordKind = 4
	KindHermiteQuantized         RecordKind = 5
	KindHermiteQuantizedHalf     RecordKind = 6
	KindHermiteQuantizedHalfRel  RecordKind = 7
	KindHermiteQuantizedHalfWide RecordKind = 8
)

func (k RecordKind) String() string {
	switch k {
	case KindTerminator:
		return "terminator"
	case KindConstant:
		return "constant"
	case KindValues:
		return "values"
	case KindQuantized:
		return "quantized"
	case KindQuantizedHalf:
		return "quantized pghalf"
	case KindHermite:
		return "hermite"
	case KindHermiteQuantized:
		return "hermite quantized"
	case KindHermiteQuantizedHalf:
		return "hermite quantized pghalf"
	case KindHermiteQuantizedHalfRel:
		return "hermite quantized pghalf relative index"
	case KindHermiteQuantizedHalfWide:
		return "hermite quantized pghalf wide index"
	default:
		return fmt.Sprintf("unknown kind %d", int8(k))
	}
}

// Channel selects which of the nine per-bone values a record animates.
// 0-2 translation, 3-5 rotation (radians), 7-9 scale, 6 unused.
type Channel uint8

func (c Channel) IsTranslation() bool { return c <= 2 }
func (c Channel) IsRotation() bool    { return c >= 3 && c <= 5 }
func (c Channel) IsScale() bool       { return c >= 7 && c <= 9 }

// Axis is the 0/1/2 component inside the channel triplet.
func (c Channel) Axis() int {
	switch {
	case c.IsTranslation():
		return int(c)
	case c.IsRotation():
		return int(c) - 3
	case c.IsScale():
		return int(c) - 7
	default:
		return -1
	}
}

func (c Channel) String() string {
	const axes = "xyz"
	switch {
	case c.IsTranslation():
		return fmt.Sprintf("translation.%c", axes[c.Axis()])
	case c.IsRotation():
		return fmt.Sprintf("rotation.%c", axes[c.Axis()])
	case c.IsScale():
		return fmt.Sprintf("scale.%c", axes[c.Axis()])
	default:
		return fmt.Sprintf("channel %d", uint8(c))
	}
}

// Payload holds the kind specific keyframe data of a record.
type Payload interface {
	payload()
}

// ConstantPayload broadcasts one value to every frame.
type ConstantPayload struct {
	Value float32
}

// ValuesPayload stores one value per frame, holding the last one when
// there are fewer values than frames.
type ValuesPayload struct {
	Values []float32
}

// QuantizedPayload reconstructs values as Base + Delta*quantum.
type QuantizedPayload struct {
	Base   float32
	Delta  float32
	Quanta []uint16
}

// HermiteKey is one cubic hermite control point. Values and slopes are
// already dequantized and Frame is always absolute, regardless of the
// on-disk index encoding.
type HermiteKey struct {
	Frame int
	Value float32
	In    float32 // incoming slope of the segment ending at this key
	Out   float32 // outgoing slope of the segment starting at this key
}

// HermitePayload interpolates between control points ordered by frame.
type HermitePayload struct {
	Keys []HermiteKey
}

func (*ConstantPayload) payload()  {}
func (*ValuesPayload) payload()    {}
func (*QuantizedPayload) payload() {}
func (*HermitePayload) payload()   {}

// Record is the keyframed value changes of one bone-channel pair.
type Record struct {
	Offset        int // of the 12 byte record header
	PayloadOffset int // absolute, 0 when the payload sits in the header

	Bone     int16 // packed reference, resolve via ResolveBoneIndex
	Channel  Channel
	Kind     RecordKind
	KeyCount int16
	Unk0x06  int16 // always -1 in known files

	Payload Payload
}

func readRecord(r *utils.BufReader) (*Record, error) {
	rec := &Record{Offset: r.Pos()}

	var kind int8
	var channel byte
	var err error
	if rec.Bone, err = r.ReadLI16(); err != nil {
		return nil, err
	}
	if channel, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if kind, err = r.ReadI8(); err != nil {
		return nil, err
	}
	if rec.KeyCount, err = r.ReadLI16(); err != nil {
		return nil, err
	}
	if rec.Unk0x06, err = r.ReadLI16(); err != nil {
		return nil, err
	}
	rec.Channel = Channel(channel)
	rec.Kind = RecordKind(kind)

	if rec.Kind == KindTerminator {
		return rec, nil
	}
	if rec.KeyCount < 0 {
		return nil, errors.Errorf("Negative key count %v", rec.KeyCount)
	}

	if rec.Kind == KindConstant {
		p := &ConstantPayload{}
		if p.Value, err = r.ReadLF(); err != nil {
			return nil, err
		}
		rec.Payload = p
		return rec, nil
	}

	// every remaining kind stores its keyframes out of line, at an
	// offset relative to this record's header
	relOffset, err := r.ReadLU32()
	if err != nil {
		return nil, err
	}
	rec.PayloadOffset = rec.Offset + int(relOffset)
	if err := r.Seek(rec.PayloadOffset); err != nil {
		return nil, errors.Wrapf(err, "Failed to seek to payload")
	}

	if rec.Payload, err = readPayload(r, rec.Kind, int(rec.KeyCount)); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse %v payload at 0x%x", rec.Kind, rec.PayloadOffset)
	}
	return rec, nil
}

func readPayload(r *utils.BufReader, kind RecordKind, count int) (Payload, error) {
	switch kind {
	case KindValues:
		p := &ValuesPayload{Values: make([]float32, count)}
		for i := range p.Values {
			var err error
			if p.Values[i], err = r.ReadLF(); err != nil {
				return nil, err
			}
		}
		return p, nil

	case KindQuantized:
		p := &QuantizedPayload{Quanta: make([]uint16, count)}
		var err error
		if p.Base, err = r.ReadLF(); err != nil {
			return nil, err
		}
		if p.Delta, err = r.ReadLF(); err != nil {
			return nil, err
		}
		for i := range p.Quanta {
			if p.Quanta[i], err = r.ReadLU16(); err != nil {
				return nil, err
			}
		}
		return p, nil

	case KindQuantizedHalf:
		p := &QuantizedPayload{Quanta: make([]uint16, count)}
		var err error
		if p.Base, err = r.ReadPGHalf(); err != nil {
			return nil, err
		}
		if p.Delta, err = r.ReadPGHalf(); err != nil {
			return nil, err
		}
		for i := range p.Quanta {
			var q byte
			if q, err = r.ReadByte(); err != nil {
				return nil, err
			}
			p.Quanta[i] = uint16(q)
		}
		return p, nil

	case KindHermite:
		p := &HermitePayload{Keys: make([]HermiteKey, count)}
		for i := range p.Keys {
			k := &p.Keys[i]
			index, err := r.ReadLU16()
			if err != nil {
				return nil, err
			}
			if _, err := r.ReadLU16(); err != nil { // alignment padding
				return nil, err
			}
			k.Frame = int(index)
			if k.Value, err = r.ReadLF(); err != nil {
				return nil, err
			}
			if k.In, err = r.ReadLF(); err != nil {
				return nil, err
			}
			if k.Out, err = r.ReadLF(); err != nil {
				return nil, err
			}
		}
		return p, nil

	case KindHermiteQuantized:
		b, err := readHermiteBases(r, false)
		if err != nil {
			return nil, err
		}
		p := &HermitePayload{Keys: make([]HermiteKey, count)}
		for i := range p.Keys {
			index, err := r.ReadLU16()
			if err != nil {
				return nil, err
			}
			var q [3]uint16
			for j := range q {
				if q[j], err = r.ReadLU16(); err != nil {
					return nil, err
				}
			}
			p.Keys[i] = b.key(int(index), q)
		}
		return p, nil

	case KindHermiteQuantizedHalf, KindHermiteQuantizedHalfRel:
		b, err := readHermiteBases(r, true)
		if err != nil {
			return nil, err
		}
		p := &HermitePayload{Keys: make([]HermiteKey, count)}
		frame := 0
		for i := range p.Keys {
			index, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			var q [3]uint16
			for j := range q {
				var v byte
				if v, err = r.ReadByte(); err != nil {
					return nil, err
				}
				q[j] = uint16(v)
			}
			if kind == KindHermiteQuantizedHalfRel {
				// stored index is a delta since the previous key
				frame += int(index)
			} else {
				frame = int(index)
			}
			p.Keys[i] = b.key(frame, q)
		}
		return p, nil

	case KindHermiteQuantizedHalfWide:
		// used instead of the relative kind when a delta would not
		// fit in 8 bits, the index is the only big endian field of
		// the whole format
		b, err := readHermiteBases(r, true)
		if err != nil {
			return nil, err
		}
		p := &HermitePayload{Keys: make([]HermiteKey, count)}
		for i := range p.Keys {
			index, err := r.ReadBU16()
			if err != nil {
				return nil, err
			}
			var q [3]uint16
			for j := range q {
				var v byte
				if v, err = r.ReadByte(); err != nil {
					return nil, err
				}
				q[j] = uint16(v)
			}
			p.Keys[i] = b.key(int(index), q)
		}
		return p, nil

	default:
		return nil, errors.Errorf("Unknown record kind %v", int8(kind))
	}
}

// hermiteBases are the base/delta pairs preceding quantized hermite
// keyframe lists: value, incoming slope, outgoing slope.
type hermiteBases struct {
	p, dp   float32
	m0, dm0 float32
	m1, dm1 float32
}

func readHermiteBases(r *utils.BufReader, half bool) (b hermiteBases, err error) {
	read := r.ReadLF
	if half {
		read = r.ReadPGHalf
	}
	for _, v := range []*float32{&b.p, &b.dp, &b.m0, &b.dm0, &b.m1, &b.dm1} {
		if *v, err = read(); err != nil {
			return b, err
		}
	}
	return b, nil
}

func (b *hermiteBases) key(frame int, q [3]uint16) HermiteKey {
	return HermiteKey{
		Frame: frame,
		Value: b.p + b.dp*float32(q[0]),
		In:    b.m0 + b.dm0*float32(q[1]),
		Out:   b.m1 + b.dm1*float32(q[2]),
	}
}
