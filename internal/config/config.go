// Package config loads uiregistry.toml.
//
// Values are layered: built-in defaults, then the config file, then CLI
// flags applied by the caller. A missing default config file is not an
// error; a missing explicitly named one is.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/uiregistry/pkg/detect"
	"github.com/matzehuels/uiregistry/pkg/errors"
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "uiregistry.toml"

// Default values.
const (
	DefaultSourceDir    = "components/ui"
	DefaultSuffix       = ".tsx"
	DefaultArtifactURL  = "registry/__generated__/registry.ts"
	DefaultAddr         = ":8080"
	DefaultNamespace    = "ui"
	DefaultExtension    = "tsx"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// Config is the full configuration.
type Config struct {
	Source   Source   `toml:"source"`
	Detect   Detect   `toml:"detect"`
	Artifact Artifact `toml:"artifact"`
	Serve    Serve    `toml:"serve"`
}

// Source locates component files.
type Source struct {
	Dir    string `toml:"dir"`
	Suffix string `toml:"suffix"`
}

// Detect configures dependency detection.
type Detect struct {
	Mode string `toml:"mode"`
}

// Artifact locates the generated registry.
type Artifact struct {
	URL string `toml:"url"`
}

// Serve configures the HTTP service.
type Serve struct {
	Addr         string   `toml:"addr"`
	Name         string   `toml:"name"`
	Namespace    string   `toml:"namespace"`
	Extension    string   `toml:"extension"`
	Fallback     bool     `toml:"fallback"`
	Coalesce     bool     `toml:"coalesce"`
	Metrics      bool     `toml:"metrics"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source:   Source{Dir: DefaultSourceDir, Suffix: DefaultSuffix},
		Detect:   Detect{Mode: string(detect.ModeSubstring)},
		Artifact: Artifact{URL: DefaultArtifactURL},
		Serve: Serve{
			Addr:         DefaultAddr,
			Namespace:    DefaultNamespace,
			Extension:    DefaultExtension,
			Fallback:     true,
			Metrics:      true,
			ReadTimeout:  Duration{DefaultReadTimeout},
			WriteTimeout: Duration{DefaultWriteTimeout},
		},
	}
}

// Load returns the defaults overlaid with the file at path. When path is
// empty DefaultFile is tried and silently skipped if absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Source.Dir == "":
		return errors.New(errors.ErrCodeInvalidConfig, "source.dir cannot be empty")
	case c.Source.Suffix == "":
		return errors.New(errors.ErrCodeInvalidConfig, "source.suffix cannot be empty")
	case c.Artifact.URL == "":
		return errors.New(errors.ErrCodeInvalidConfig, "artifact.url cannot be empty")
	case c.Serve.Addr == "":
		return errors.New(errors.ErrCodeInvalidConfig, "serve.addr cannot be empty")
	case c.Serve.ReadTimeout.Duration <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "serve.read_timeout must be positive")
	case c.Serve.WriteTimeout.Duration <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "serve.write_timeout must be positive")
	}
	if _, err := detect.ParseMode(c.Detect.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "detect.mode")
	}
	return nil
}

// Detector returns the detector described by the [detect] section.
func (c Config) Detector() (*detect.Detector, error) {
	mode, err := detect.ParseMode(c.Detect.Mode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "detect.mode")
	}
	return detect.New(detect.WithMode(mode)), nil
}
