package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/darkharvest/engine/world"
)

// LoadYAML decodes a single-document YAML adventure from r. Unknown keys
// are rejected so typos in content surface at load time.
func LoadYAML(r io.Reader, opts ...Option) (*world.Adventure, error) {
	var raw rawAdventure
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decoding adventure: empty document")
		}
		return nil, fmt.Errorf("decoding adventure: %w", err)
	}
	return build(&raw, &ValidationError{}, newOptions(opts))
}

// LoadYAMLFS loads the YAML adventure stored at name in fsys.
func LoadYAMLFS(fsys fs.FS, name string, opts ...Option) (*world.Adventure, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	adv, err := LoadYAML(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return adv, nil
}
