package directory

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Fixture files describe a seed tree as a list of entries:
//
//	[[entry]]
//	dn = "dc=example,dc=com"
//
//	  [entry.attributes]
//	  objectClass = ["top", "domain"]
//	  dc = ["example"]

type fixture struct {
	Entries []fixtureEntry `toml:"entry"`
}

type fixtureEntry struct {
	DN         string              `toml:"dn"`
	Attributes map[string][]string `toml:"attributes"`
}

// Load reads a TOML fixture file into a seed tree.
func Load(path string) (Directory, error) {
	var fx fixture
	if _, err := toml.DecodeFile(path, &fx); err != nil {
		return nil, fmt.Errorf("directory: decoding fixture %s: %w", path, err)
	}
	return fx.directory()
}

// Parse decodes TOML fixture bytes into a seed tree.
func Parse(data []byte) (Directory, error) {
	var fx fixture
	if _, err := toml.Decode(string(data), &fx); err != nil {
		return nil, fmt.Errorf("directory: decoding fixture: %w", err)
	}
	return fx.directory()
}

func (fx fixture) directory() (Directory, error) {
	dir := make(Directory, len(fx.Entries))
	for i, fe := range fx.Entries {
		if fe.DN == "" {
			return nil, fmt.Errorf("directory: fixture entry %d has no dn", i)
		}
		if _, dup := dir[fe.DN]; dup {
			return nil, fmt.Errorf("directory: fixture repeats dn %q", fe.DN)
		}
		attrs := make(Attributes, len(fe.Attributes))
		for name, values := range fe.Attributes {
			attrs[name] = append([]string(nil), values...)
		}
		dir[fe.DN] = attrs
	}
	return dir, nil
}
