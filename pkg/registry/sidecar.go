package registry

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/uiregistry/pkg/errors"
)

// SidecarSuffix is appended to an identifier to name its metadata file.
const SidecarSuffix = ".registry.toml"

// Sidecar is the optional per-component metadata file.
type Sidecar struct {
	RegistryDependencies []string       `toml:"registryDependencies"`
	Tailwind             map[string]any `toml:"tailwind"`
	CSSVars              map[string]any `toml:"cssVars"`
}

// ReadSidecar loads <dir>/<id>.registry.toml. A missing file yields
// (nil, nil); a file that exists but cannot be read or decoded is a
// BUILD_ABORT error.
func ReadSidecar(dir, id string) (*Sidecar, error) {
	path := filepath.Join(dir, id+SidecarSuffix)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBuildAbort, err, "read sidecar %s", path)
	}

	var sc Sidecar
	md, err := toml.Decode(string(data), &sc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBuildAbort, err, "parse sidecar %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeBuildAbort, "sidecar %s: unknown key %q", path, undecoded[0].String())
	}
	return &sc, nil
}
