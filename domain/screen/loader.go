package screen

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// yamlScreenFile is the YAML structure for screen definition files. File
// order is priority order.
type yamlScreenFile struct {
	Screens []yamlScreen `yaml:"screens"`
}

type yamlScreen struct {
	Template  string  `yaml:"template"`
	State     string  `yaml:"state"`
	Threshold float64 `yaml:"threshold,omitempty"`
}

// LoadDefinitions reads an ordered screen definition list from a YAML file
// in the given filesystem (embedded defaults or an on-disk override).
func LoadDefinitions(fsys fs.FS, path string) ([]Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read screen definitions %s: %w", path, err)
	}

	var file yamlScreenFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse screen definitions %s: %w", path, err)
	}
	if len(file.Screens) == 0 {
		return nil, fmt.Errorf("screen definitions %s contain no screens", path)
	}

	defs := make([]Definition, 0, len(file.Screens))
	for i, ys := range file.Screens {
		if ys.Template == "" {
			return nil, fmt.Errorf("screen definition %d in %s has no template", i, path)
		}
		st, err := ParseState(ys.State)
		if err != nil {
			return nil, fmt.Errorf("screen definition %q in %s: %w", ys.Template, path, err)
		}
		defs = append(defs, Definition{
			Name:      ys.Template,
			State:     st,
			Threshold: ys.Threshold,
		})
	}

	return defs, nil
}
