package motion_test

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/nier-tools/mot_browser/motion"
	"github.com/nier-tools/mot_browser/pack/mot"
)

// reference 0x000 resolves to bone 2, reference 0x001 walks outside
var testTable = []int16{3, -1, -1, 5, -1, 2}

func testFile() *mot.File {
	return &mot.File{
		Name:       "walk",
		FrameCount: 3,
		Records: []*mot.Record{
			{Bone: 0, Channel: 0, Kind: mot.KindConstant,
				Payload: &mot.ConstantPayload{Value: 7}},
			{Bone: 0, Channel: 5, Kind: mot.KindValues,
				Payload: &mot.ValuesPayload{Values: []float32{0.5}}},
			{Bone: 1, Channel: 1, Kind: mot.KindConstant,
				Payload: &mot.ConstantPayload{Value: 9}}, // unresolvable, skipped
			{Bone: mot.SENTINEL_BONE, Kind: mot.KindTerminator},
		},
	}
}

func TestAssemble(t *testing.T) {
	rest := map[int][3]float32{2: {1, 2, 3}}
	m, err := motion.Assemble(testFile(), testTable, 10, rest)
	if err != nil {
		t.Fatal(err)
	}

	if m.Name != "walk" || m.FrameCount != 3 {
		t.Errorf("motion %+v", m)
	}
	if len(m.Tracks) != 1 {
		t.Fatalf("tracks %v, expected only bone 2", len(m.Tracks))
	}

	track := m.Tracks[2]
	if track == nil {
		t.Fatal("no track for bone 2")
	}
	for f := 0; f < 3; f++ {
		// animated x, rest offset y/z
		if track.Translation[f] != (mgl32.Vec3{7, 2, 3}) {
			t.Errorf("frame %v translation %v", f, track.Translation[f])
		}
		if track.Rotation[f] != (mgl32.Vec3{0, 0, 0.5}) {
			t.Errorf("frame %v rotation %v", f, track.Rotation[f])
		}
		if track.Scale[f] != (mgl32.Vec3{1, 1, 1}) {
			t.Errorf("frame %v scale %v", f, track.Scale[f])
		}
	}
}

func TestAssembleParentBone(t *testing.T) {
	f := &mot.File{
		FrameCount: 2,
		Records: []*mot.Record{
			{Bone: mot.PARENT_BONE, Channel: 2, Kind: mot.KindConstant,
				Payload: &mot.ConstantPayload{Value: -1.5}},
		},
	}
	m, err := motion.Assemble(f, testTable, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	track := m.Tracks[10]
	if track == nil {
		t.Fatal("parent bone track missing, expected index boneCount")
	}
	if track.Translation[1].Z() != -1.5 {
		t.Errorf("translation %v", track.Translation[1])
	}
}

func TestExportGLTF(t *testing.T) {
	rest := map[int][3]float32{2: {1, 2, 3}}
	m, err := motion.Assemble(testFile(), testTable, 10, rest)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := m.ExportGLTF(&buf, 30); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("empty gltf output")
	}
	if !bytes.Equal(buf.Bytes()[0:4], []byte("glTF")) {
		t.Errorf("bad binary gltf magic % x", buf.Bytes()[0:4])
	}
}
