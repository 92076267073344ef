// Package config loads the dungeon generator's YAML configuration and turns
// it into generator options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/lawnchairsociety/delve/internal/archive"
	"github.com/lawnchairsociety/delve/internal/dice"
	"github.com/lawnchairsociety/delve/internal/generator"
	"github.com/lawnchairsociety/delve/internal/monster"
	"github.com/lawnchairsociety/delve/internal/theme"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document. The logging block in the
// same file is read by the logger package.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Content   ContentConfig   `yaml:"content"`
	Archive   archive.Config  `yaml:"archive"`
	Preview   PreviewConfig   `yaml:"preview"`
}

// GeneratorConfig holds the dungeon shape parameters.
type GeneratorConfig struct {
	DungeonKeywordCount int        `yaml:"dungeon_keyword_count" env:"DELVE_DUNGEON_KEYWORD_COUNT"`
	ArchKeywordCount    int        `yaml:"arch_keyword_count" env:"DELVE_ARCH_KEYWORD_COUNT"`
	AreaKeywordCount    int        `yaml:"area_keyword_count" env:"DELVE_AREA_KEYWORD_COUNT"`
	ArchCount           int        `yaml:"arch_count" env:"DELVE_ARCH_COUNT"`
	AreasPerArch        dice.Range `yaml:"areas_per_arch"`
	RoomsPerArea        dice.Range `yaml:"rooms_per_area"`
	ForceFirstRoomEmpty bool       `yaml:"force_first_room_empty" env:"DELVE_FORCE_FIRST_ROOM_EMPTY"`
}

// ContentConfig points at the data files the pools are loaded from.
type ContentConfig struct {
	Bestiary string `yaml:"bestiary" env:"DELVE_BESTIARY"`
	Themes   string `yaml:"themes" env:"DELVE_THEMES"`
}

// PreviewConfig holds the preview server's WebSocket settings.
type PreviewConfig struct {
	Addr string `yaml:"addr" env:"DELVE_PREVIEW_ADDR"`

	// AllowedOrigins lists origins allowed to connect. An empty list
	// enforces same-origin; "*" allows everything.
	AllowedOrigins []string `yaml:"allowed_origins" env:"DELVE_PREVIEW_ALLOWED_ORIGINS"`

	// MaxMessageSize caps the seed phrase a client may send, in bytes.
	MaxMessageSize int64 `yaml:"max_message_size" env:"DELVE_PREVIEW_MAX_MESSAGE_SIZE"`

	// MaxPerIP and MaxTotal limit concurrent connections. 0 means unlimited.
	MaxPerIP int `yaml:"max_per_ip" env:"DELVE_PREVIEW_MAX_PER_IP"`
	MaxTotal int `yaml:"max_total" env:"DELVE_PREVIEW_MAX_TOTAL"`
}

// DefaultConfig returns the stock three-arch dungeon shape.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			DungeonKeywordCount: 10,
			ArchKeywordCount:    5,
			AreaKeywordCount:    3,
			ArchCount:           3,
			AreasPerArch:        dice.NewRange(2, 2),
			RoomsPerArea:        dice.NewRange(4, 2),
			ForceFirstRoomEmpty: true,
		},
		Content: ContentConfig{
			Bestiary: "data/bestiary.yaml",
			Themes:   "data/themes.yaml",
		},
		Archive: archive.DefaultConfig("data/dungeons.db"),
		Preview: PreviewConfig{
			Addr:           ":4480",
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 1024,
			MaxPerIP:       3,
			MaxTotal:       100,
		},
	}
}

// LoadConfig loads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults; a malformed one yields the
// defaults and the parse error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return config, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := env.Parse(config); err != nil {
		return config, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for errors generation cannot recover
// from. Pool contents are checked later by generator.New.
func (c *Config) Validate() error {
	g := c.Generator
	if g.ArchCount < 1 {
		return generator.ErrNoArches
	}
	if g.DungeonKeywordCount < 1 || g.ArchKeywordCount < 1 || g.AreaKeywordCount < 1 {
		return generator.ErrKeywordCount
	}
	if err := g.AreasPerArch.Validate(); err != nil {
		return fmt.Errorf("areas_per_arch: %w", err)
	}
	if err := g.RoomsPerArea.Validate(); err != nil {
		return fmt.Errorf("rooms_per_area: %w", err)
	}
	if c.Content.Bestiary == "" || c.Content.Themes == "" {
		return errors.New("content: bestiary and themes paths are required")
	}
	if c.Preview.MaxMessageSize <= 0 {
		return errors.New("preview: max_message_size must be positive")
	}
	return nil
}

// Options builds generator options from the shape parameters and pools.
func (c *Config) Options(monsters []monster.Monster, keywords []theme.Keyword) generator.Options {
	g := c.Generator
	return generator.Options{
		Monsters:            monsters,
		Keywords:            keywords,
		DungeonKeywordCount: g.DungeonKeywordCount,
		ArchKeywordCount:    g.ArchKeywordCount,
		AreaKeywordCount:    g.AreaKeywordCount,
		ArchCount:           g.ArchCount,
		AreasPerArch:        g.AreasPerArch,
		RoomsPerArea:        g.RoomsPerArea,
		ForceFirstRoomEmpty: g.ForceFirstRoomEmpty,
	}
}

// LoadContent reads the bestiary and theme pool named by the content block.
func (c *Config) LoadContent() (*monster.Bestiary, []theme.Keyword, error) {
	bestiary, err := monster.LoadBestiary(c.Content.Bestiary)
	if err != nil {
		return nil, nil, err
	}
	keywords, err := theme.LoadPool(c.Content.Themes)
	if err != nil {
		return nil, nil, err
	}
	return bestiary, keywords, nil
}

// NewGenerator loads the content pools and builds a generator from them.
// The bestiary is returned as well for resolving monsters by name.
func (c *Config) NewGenerator() (*generator.Generator, *monster.Bestiary, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	bestiary, keywords, err := c.LoadContent()
	if err != nil {
		return nil, nil, err
	}
	gen, err := generator.New(c.Options(bestiary.Pool(), keywords))
	if err != nil {
		return nil, nil, err
	}
	return gen, bestiary, nil
}

// IsOriginAllowed checks if the given origin may open a preview connection.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *PreviewConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // Non-browser clients send no Origin header
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
