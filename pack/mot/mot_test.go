package mot_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/nier-tools/mot_browser/pack/mot"
)

// le serializes values little endian, the way mot files store
// everything except the wide hermite frame index.
func le(vs ...interface{}) []byte {
	var b bytes.Buffer
	for _, v := range vs {
		if err := binary.Write(&b, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
	return b.Bytes()
}

type testRecord struct {
	bone    int16
	channel uint8
	kind    int8
	count   int16
	inline  []byte // trailing header field for terminator/constant
	payload []byte // out of line keyframe data
}

const testRecordsOffset = 0x24

// buildMot assembles a well-formed file: fixed header, name, record
// table at testRecordsOffset, payload blobs appended at the end with
// record-relative offsets.
func buildMot(frameCount int16, recs []testRecord) []byte {
	var b bytes.Buffer
	b.Write([]byte{'m', 'o', 't', 0})
	b.Write(le(uint32(0xdeadbeef), uint16(0), frameCount,
		uint32(testRecordsOffset), uint32(len(recs)), uint32(0x003c0000)))
	name := make([]byte, 12)
	copy(name, "test\x00")
	b.Write(name)

	payloadPos := testRecordsOffset + 12*len(recs)
	for i, r := range recs {
		recPos := testRecordsOffset + 12*i
		b.Write(le(r.bone, r.channel, r.kind, r.count, int16(-1)))
		switch {
		case r.payload != nil:
			b.Write(le(uint32(payloadPos - recPos)))
			payloadPos += len(r.payload)
		case r.inline != nil:
			b.Write(r.inline)
		default:
			b.Write(le(uint32(0)))
		}
	}
	for _, r := range recs {
		b.Write(r.payload)
	}
	return b.Bytes()
}

func TestHeaderParsing(t *testing.T) {
	data := buildMot(4, []testRecord{
		{bone: 1, channel: 3, kind: 0, count: 1, inline: le(float32(1.5))},
		{bone: mot.SENTINEL_BONE, channel: 0, kind: -1, count: 0},
	})

	f, err := mot.NewFromData(data)
	if err != nil {
		t.Fatal(err)
	}
	if f.Hash != 0xdeadbeef {
		t.Errorf("hash 0x%x", f.Hash)
	}
	if f.FrameCount != 4 {
		t.Errorf("frame count %v", f.FrameCount)
	}
	if f.Name != "test" {
		t.Errorf("name %q", f.Name)
	}
	if f.Unk0x14 != 0x003c0000 {
		t.Errorf("unk0x14 0x%x", f.Unk0x14)
	}
	if len(f.Records) != 2 {
		t.Fatalf("records %v", len(f.Records))
	}

	rec := f.Records[0]
	if rec.Kind != mot.KindConstant || rec.Bone != 1 || rec.Channel != 3 || rec.Unk0x06 != -1 {
		t.Errorf("record header %+v", rec)
	}
	if p, ok := rec.Payload.(*mot.ConstantPayload); !ok || p.Value != 1.5 {
		t.Errorf("payload %+v", rec.Payload)
	}
	if f.Records[1].Kind != mot.KindTerminator || f.Records[1].Bone != mot.SENTINEL_BONE {
		t.Errorf("terminator %+v", f.Records[1])
	}
}

func TestBadMagic(t *testing.T) {
	data := buildMot(1, nil)
	data[0] = 'X'
	if _, err := mot.NewFromData(data); err == nil {
		t.Error("expected magic error")
	}
}

func TestTruncatedHeader(t *testing.T) {
	data := buildMot(1, nil)
	if _, err := mot.NewFromData(data[:0x10]); err == nil {
		t.Error("expected truncation error")
	}
}

func TestTruncatedPayload(t *testing.T) {
	data := buildMot(4, []testRecord{
		{bone: 0, channel: 0, kind: 1, count: 2, payload: le(float32(1), float32(2))},
	})
	if _, err := mot.NewFromData(data[:len(data)-2]); err == nil {
		t.Error("expected truncation error")
	}
}

func TestUnknownKind(t *testing.T) {
	data := buildMot(4, []testRecord{
		{bone: 0, channel: 0, kind: 9, count: 1, payload: le(float32(1))},
	})
	if _, err := mot.NewFromData(data); err == nil {
		t.Error("expected unknown kind error")
	}
}

func TestHugeRecordCount(t *testing.T) {
	// a count pointing way past the end of the file must fail the
	// parse, not balloon the record slice
	data := buildMot(4, nil)
	binary.LittleEndian.PutUint32(data[0x10:], 0xffffffff)
	if _, err := mot.NewFromData(data); err == nil {
		t.Error("expected error for record table past the end of the file")
	}
}

func TestTerminatorEndsRecordStream(t *testing.T) {
	data := buildMot(4, []testRecord{
		{bone: 2, channel: 0, kind: 0, count: 1, inline: le(float32(3))},
		{bone: mot.SENTINEL_BONE, channel: 0, kind: -1, count: 0},
	})
	// header promises more records than the table holds
	binary.LittleEndian.PutUint32(data[0x10:], 100)

	f, err := mot.NewFromData(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Records) != 2 || f.Records[1].Kind != mot.KindTerminator {
		t.Errorf("records %v", len(f.Records))
	}
}

func TestDecodeDeterminism(t *testing.T) {
	data := buildMot(6, []testRecord{
		{bone: 0, channel: 1, kind: 1, count: 3, payload: le(float32(1), float32(2), float32(3))},
		{bone: 0, channel: 4, kind: 2, count: 2,
			payload: le(float32(10), float32(0.25), uint16(0), uint16(3))},
		{bone: 1, channel: 5, kind: 4, count: 2, payload: le(
			uint16(0), uint16(0), float32(0), float32(0), float32(1),
			uint16(5), uint16(0), float32(2), float32(-1), float32(0))},
		{bone: mot.SENTINEL_BONE, channel: 0, kind: -1, count: 0},
	})

	sampleAll := func() [][]uint32 {
		f, err := mot.NewFromData(data)
		if err != nil {
			t.Fatal(err)
		}
		out := make([][]uint32, 0)
		for _, rec := range f.Records {
			if rec.Kind == mot.KindTerminator {
				continue
			}
			frames, err := rec.Sample(int(f.FrameCount))
			if err != nil {
				t.Fatal(err)
			}
			bits := make([]uint32, len(frames))
			for i, v := range frames {
				bits[i] = math.Float32bits(v)
			}
			out = append(out, bits)
		}
		return out
	}

	first, second := sampleAll(), sampleAll()
	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("record %v frame %v differs between decodes", i, j)
			}
		}
	}
}
