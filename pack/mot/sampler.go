package mot

import (
	"github.com/pkg/errors"
)

// Sample expands a decoded record into one value per output frame.
// Frames are indexed from 0 here, the destination animation system is
// free to renumber them from 1.
func (rec *Record) Sample(frameCount int) ([]float32, error) {
	if frameCount < 0 {
		return nil, errors.Errorf("Negative frame count %v", frameCount)
	}
	frames := make([]float32, frameCount)

	switch p := rec.Payload.(type) {
	case *ConstantPayload:
		for i := range frames {
			frames[i] = p.Value
		}

	case *ValuesPayload:
		if len(p.Values) == 0 {
			return nil, errors.Errorf("Record at 0x%x has no values", rec.Offset)
		}
		for i := range frames {
			if i < len(p.Values) {
				frames[i] = p.Values[i]
			} else {
				frames[i] = p.Values[len(p.Values)-1]
			}
		}

	case *QuantizedPayload:
		if len(p.Quanta) == 0 {
			return nil, errors.Errorf("Record at 0x%x has no quanta", rec.Offset)
		}
		for i := range frames {
			q := i
			if q >= len(p.Quanta) {
				q = len(p.Quanta) - 1
			}
			frames[i] = p.Base + p.Delta*float32(p.Quanta[q])
		}

	case *HermitePayload:
		if len(p.Keys) == 0 {
			return nil, errors.Errorf("Record at 0x%x has no control points", rec.Offset)
		}
		sampleHermite(frames, p.Keys)

	default:
		return nil, errors.Errorf("Record %v at 0x%x has no sampleable payload", rec.Kind, rec.Offset)
	}

	return frames, nil
}

// sampleHermite fills frames from control points ordered by ascending
// frame index. Frames before the first key hold its value, frames
// after the last key hold its value. The normalized parameter always
// divides by the index span of the segment, also for keys decoded
// from relative indexes. When two keys share a frame index the later
// key's value wins for that exact frame, the zero length segment is
// never evaluated.
func sampleHermite(frames []float32, keys []HermiteKey) {
	ki := 0
	for f := range frames {
		for ki+1 < len(keys) && keys[ki+1].Frame <= f {
			ki++
		}

		if f <= keys[ki].Frame || ki == len(keys)-1 {
			frames[f] = keys[ki].Value
			continue
		}

		k0, k1 := &keys[ki], &keys[ki+1]
		t := float32(f-k0.Frame) / float32(k1.Frame-k0.Frame)
		frames[f] = hermite(t, k0.Value, k0.Out, k1.Value, k1.In)
	}
}

// hermite evaluates the cubic hermite basis at t in [0,1], m0 is the
// outgoing slope of the earlier point and m1 the incoming slope of the
// later point.
func hermite(t, p0, m0, p1, m1 float32) float32 {
	t2 := t * t
	t3 := t2 * t
	return (2*t3-3*t2+1)*p0 + (t3-2*t2+t)*m0 + (-2*t3+3*t2)*p1 + (t3-t2)*m1
}
