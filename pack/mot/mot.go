package mot

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/nier-tools/mot_browser/utils"
)

var MOT_MAGIC = []byte{'m', 'o', 't', 0}

const (
	MOT_HEADER_SIZE = 0x18
	RECORD_SIZE     = 12
)

// File is a parsed motion file: the fixed header plus the record
// table. Records are decoded eagerly and never mutated afterwards,
// sampling works off the decoded payloads only.
type File struct {
	Hash          uint32
	Flags         uint16
	FrameCount    int16
	RecordsOffset uint32
	RecordsCount  uint32
	Unk0x14       uint32 // usually 0 or 0x003c0000, kept opaque
	Name          string

	Records []*Record
}

func NewFromData(data []byte) (*File, error) {
	if len(data) < MOT_HEADER_SIZE {
		return nil, errors.Errorf("File of size 0x%x is too small for a motion header", len(data))
	}
	if !bytes.Equal(data[0:4], MOT_MAGIC) {
		return nil, errors.Errorf("Invalid magic % x, not a mot file", data[0:4])
	}

	r := utils.NewBufReader(data)
	if err := r.Seek(4); err != nil {
		return nil, err
	}

	f := &File{}
	var err error
	if f.Hash, err = r.ReadLU32(); err != nil {
		return nil, err
	}
	if f.Flags, err = r.ReadLU16(); err != nil {
		return nil, err
	}
	if f.FrameCount, err = r.ReadLI16(); err != nil {
		return nil, err
	}
	if f.RecordsOffset, err = r.ReadLU32(); err != nil {
		return nil, err
	}
	if f.RecordsCount, err = r.ReadLU32(); err != nil {
		return nil, err
	}
	if f.Unk0x14, err = r.ReadLU32(); err != nil {
		return nil, err
	}
	if f.Name, err = r.ReadZString(12); err != nil {
		return nil, errors.Wrapf(err, "Failed to read motion name")
	}

	// Record slots are a flat array with fixed stride, but each
	// record's payload lives wherever its own offset field points.
	// The count is untrusted header data, cap the prealloc by how
	// many slots fit in the buffer so a hostile count cannot
	// balloon memory before the seek check fires.
	capHint := 0
	if off := int(f.RecordsOffset); off < len(data) {
		capHint = (len(data) - off) / RECORD_SIZE
	}
	if int64(capHint) > int64(f.RecordsCount) {
		capHint = int(f.RecordsCount)
	}
	f.Records = make([]*Record, 0, capHint)
	for i := uint32(0); i < f.RecordsCount; i++ {
		offset := int(f.RecordsOffset) + RECORD_SIZE*int(i)
		if err := r.Seek(offset); err != nil {
			return nil, errors.Wrapf(err, "Failed to seek to record %v", i)
		}

		rec, err := readRecord(r)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to parse record %v at 0x%x", i, offset)
		}
		f.Records = append(f.Records, rec)

		// terminator ends the stream even if the header promises more
		if rec.Kind == KindTerminator {
			break
		}
	}

	return f, nil
}
