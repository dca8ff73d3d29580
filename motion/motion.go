package motion

import (
	"log"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/nier-tools/mot_browser/pack/mot"
)

// BoneTrack is the dense per-frame transform of one skeleton bone.
// Channels the file does not animate keep their defaults: parent
// relative rest offset for translation, 0 for rotation, 1 for scale.
type BoneTrack struct {
	Bone        int
	Translation []mgl32.Vec3
	Rotation    []mgl32.Vec3 // euler radians, applied in ZXY order
	Scale       []mgl32.Vec3
}

// Motion is a motion file resolved against one skeleton.
type Motion struct {
	Name       string
	FrameCount int
	Tracks     map[int]*BoneTrack
}

// Assemble samples every record of a parsed file and groups the curves
// by resolved bone. Records whose bone reference cannot be resolved
// through the translate table are skipped, one bad table entry should
// not lose the whole motion.
func Assemble(f *mot.File, table []int16, boneCount int, restOffsets map[int][3]float32) (*Motion, error) {
	if f.FrameCount < 0 {
		return nil, errors.Errorf("Motion %q has negative frame count %v", f.Name, f.FrameCount)
	}
	frameCount := int(f.FrameCount)

	m := &Motion{
		Name:       f.Name,
		FrameCount: frameCount,
		Tracks:     make(map[int]*BoneTrack),
	}

	for i, rec := range f.Records {
		if rec.Kind == mot.KindTerminator {
			break
		}

		bone := mot.ResolveBoneIndex(rec.Bone, table, boneCount)
		if bone == mot.BONE_RESOLVE_FAILED {
			log.Printf("[motion] %q record %v: no bone mapping for reference 0x%x, skipping",
				f.Name, i, uint16(rec.Bone))
			continue
		}
		if rec.Channel.Axis() < 0 {
			log.Printf("[motion] %q record %v: unused channel %v, skipping", f.Name, i, rec.Channel)
			continue
		}

		frames, err := rec.Sample(frameCount)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to sample record %v of %q", i, f.Name)
		}

		track := m.Tracks[bone]
		if track == nil {
			track = newBoneTrack(bone, frameCount, restOffsets[bone])
			m.Tracks[bone] = track
		}

		var dest []mgl32.Vec3
		switch {
		case rec.Channel.IsTranslation():
			dest = track.Translation
		case rec.Channel.IsRotation():
			dest = track.Rotation
		default:
			dest = track.Scale
		}
		axis := rec.Channel.Axis()
		for frame, v := range frames {
			dest[frame][axis] = v
		}
	}

	return m, nil
}

func newBoneTrack(bone, frameCount int, rest [3]float32) *BoneTrack {
	t := &BoneTrack{
		Bone:        bone,
		Translation: make([]mgl32.Vec3, frameCount),
		Rotation:    make([]mgl32.Vec3, frameCount),
		Scale:       make([]mgl32.Vec3, frameCount),
	}
	for i := 0; i < frameCount; i++ {
		t.Translation[i] = mgl32.Vec3(rest)
		t.Scale[i] = mgl32.Vec3{1, 1, 1}
	}
	return t
}

// Bones lists animated bone indexes in ascending order.
func (m *Motion) Bones() []int {
	bones := make([]int, 0, len(m.Tracks))
	for bone := range m.Tracks {
		bones = append(bones, bone)
	}
	sort.Ints(bones)
	return bones
}
