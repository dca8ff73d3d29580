package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Project describes the model side of a motion import: the bone
// translate table and rest pose extracted from the model file by
// whatever tool owns it. Motion decoding itself never reads a model,
// it only consumes this table.
type Project struct {
	// BoneCount is the count of bones in the target skeleton. A record
	// referencing the motion parent bone resolves to index BoneCount.
	BoneCount int `yaml:"bone_count"`

	// TranslateTable is the flat nibble-trie used to map packed bone
	// references to skeleton indexes, -1 entries mean "no mapping".
	TranslateTable []int16 `yaml:"translate_table"`

	// RestOffsets are parent relative rest translations per bone
	// index, the default value of translation channels.
	RestOffsets map[int][3]float32 `yaml:"rest_offsets"`

	// FPS used when exporting sampled frames on a time axis.
	FPS float32 `yaml:"fps"`
}

func LoadProject(path string) (*Project, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read project file %q", path)
	}

	p := &Project{FPS: 30}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal project file %q", path)
	}

	if p.FPS <= 0 {
		return nil, errors.Errorf("Project %q has non-positive fps %v", path, p.FPS)
	}

	return p, nil
}
