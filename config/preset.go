package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Preset is a stored set of offset parameters, so the same edit can be
// replayed over a batch of files. Command line flags override it.
//
//	offset:   [100, 0, -25.5]
//	rotation: [0, 90, 0]
//	order:    ZYX
type Preset struct {
	Offset   [3]float32 `yaml:"offset" toml:"offset"`
	Rotation [3]float32 `yaml:"rotation" toml:"rotation"`
	Order    string     `yaml:"order,omitempty" toml:"order,omitempty"`
	Encoding string     `yaml:"encoding,omitempty" toml:"encoding,omitempty"`
}

const DefaultAxisOrder = "ZYX"

func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't read preset %q", path)
	}

	p := &Preset{Order: DefaultAxisOrder}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, p)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, p)
	default:
		return nil, errors.Errorf("Unknown preset format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Can't parse preset %q", path)
	}

	if p.Encoding != "" {
		if err := SetEncoding(p.Encoding); err != nil {
			return nil, err
		}
	}
	return p, nil
}
