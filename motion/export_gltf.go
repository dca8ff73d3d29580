package motion

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/nier-tools/mot_browser/utils"
)

// ExportGLTF writes the motion as a binary glTF document: one node per
// animated bone, one animation with a translation/rotation/scale
// channel triple per bone. Rotation eulers are converted to
// quaternions since glTF has no euler target path. The densely sampled
// curves are emitted as LINEAR keyframes at fps frames per second.
func (m *Motion) ExportGLTF(w io.Writer, fps float32) error {
	doc := gltf.NewDocument()

	times := make([]float32, m.FrameCount)
	for i := range times {
		times[i] = float32(i) / fps
	}
	var timesAccessor uint32
	if m.FrameCount > 0 {
		timesAccessor = modeler.WriteAccessor(doc, 0, times)
	}

	anim := &gltf.Animation{Name: m.Name}

	for _, bone := range m.Bones() {
		track := m.Tracks[bone]

		nodeIndex := uint32(len(doc.Nodes))
		node := &gltf.Node{
			Name:     fmt.Sprintf("bone%d", bone),
			Rotation: [4]float32{0, 0, 0, 1},
			Scale:    [3]float32{1, 1, 1},
		}
		if m.FrameCount > 0 {
			node.Translation = track.Translation[0]
		}
		doc.Nodes = append(doc.Nodes, node)

		if m.FrameCount == 0 {
			continue
		}

		translation := make([][3]float32, m.FrameCount)
		rotation := make([][4]float32, m.FrameCount)
		scale := make([][3]float32, m.FrameCount)
		for f := 0; f < m.FrameCount; f++ {
			translation[f] = track.Translation[f]
			q := utils.EulerZXYToQuat(track.Rotation[f])
			rotation[f] = [4]float32{q.V[0], q.V[1], q.V[2], q.W}
			scale[f] = track.Scale[f]
		}

		for _, ch := range []struct {
			path     gltf.TRSProperty
			accessor uint32
		}{
			{gltf.TRSTranslation, modeler.WriteAccessor(doc, 0, translation)},
			{gltf.TRSRotation, modeler.WriteAccessor(doc, 0, rotation)},
			{gltf.TRSScale, modeler.WriteAccessor(doc, 0, scale)},
		} {
			samplerIndex := uint32(len(anim.Samplers))
			anim.Samplers = append(anim.Samplers, &gltf.AnimationSampler{
				Input:         gltf.Index(timesAccessor),
				Interpolation: gltf.InterpolationLinear,
				Output:        gltf.Index(ch.accessor),
			})
			anim.Channels = append(anim.Channels, &gltf.Channel{
				Sampler: gltf.Index(samplerIndex),
				Target: gltf.ChannelTarget{
					Node: gltf.Index(nodeIndex),
					Path: ch.path,
				},
			})
		}
	}

	if len(anim.Channels) != 0 {
		doc.Animations = append(doc.Animations, anim)
	}

	for iNode := range doc.Nodes {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(iNode))
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
