package scheduler

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config carries every scheduler parameter named in spec.md §3, decodable
// from TOML via go-toml/v2, the same format the corpus's own root
// configuration layer depends on.
type Config struct {
	RAMQuadLimit int `toml:"ram_quad_limit"`
	GPUQuadLimit int `toml:"gpu_quad_limit"`

	PermissibleScreenSpaceError float32 `toml:"permissible_screen_space_error"`
	OrthoTilePixelSize          int     `toml:"ortho_tile_pixel_size"`
	HeightTilePixelSize         int     `toml:"height_tile_pixel_size"`
	MaxZoom                     uint8   `toml:"max_zoom"`

	UpdateTimeout time.Duration `toml:"update_timeout"`
	PurgeTimeout  time.Duration `toml:"purge_timeout"`

	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the configuration a freshly constructed Scheduler
// uses if none is supplied: a few-frames update debounce, a few-hundred-
// millisecond purge debounce, and the refinement defaults documented on
// refine.DefaultMaxZoom.
func DefaultConfig() Config {
	return Config{
		RAMQuadLimit:                256,
		GPUQuadLimit:                64,
		PermissibleScreenSpaceError: 2,
		OrthoTilePixelSize:          256,
		HeightTilePixelSize:         256,
		MaxZoom:                     20,
		UpdateTimeout:               50 * time.Millisecond,
		PurgeTimeout:                500 * time.Millisecond,
		Enabled:                     true,
	}
}

// LoadConfig reads and decodes a TOML configuration file, starting from
// DefaultConfig so a file that only overrides a few fields still produces
// a complete Config.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
