package config

import (
	"path/filepath"
	"strings"
)

type Driver interface {
	Exists() (bool, error)
	Write(config Config) error
	Read() (Config, error)
}

func NewStore(driver Driver) (Store, error) {
	exists, err := driver.Exists()
	if err != nil {
		return Store{}, err
	}
	if !exists {
		if err := driver.Write(defaultConfig); err != nil {
			return Store{}, err
		}
	}

	return Store{
		driver: driver,
	}, nil
}

type Store struct {
	driver Driver
}

func (p *Store) GetConfig() (Config, error) {
	cfg, err := p.driver.Read()
	if err != nil {
		return Config{}, err
	}
	return Normalize(cfg), nil
}

func (p *Store) UpdateConfig(fn func(cfg Config) (Config, error)) error {
	cfg, err := p.driver.Read()
	if err != nil {
		return err
	}

	cfg, err = fn(cfg)
	if err != nil {
		return err
	}

	return p.driver.Write(cfg)
}

// Rewrite writes the normalized config back to the driver and returns it.
func (p *Store) Rewrite() (Config, error) {
	var cfg Config
	err := p.UpdateConfig(func(c Config) (Config, error) {
		cfg = Normalize(c)
		return cfg, nil
	})
	return cfg, err
}

// Normalize fills zero values with defaults.
func Normalize(cfg Config) Config {
	if cfg.SurfaceID == "" {
		cfg.SurfaceID = defaultConfig.SurfaceID
	}
	if cfg.Density < 0 {
		cfg.Density = 0
	}
	if cfg.ClickScale <= 0 {
		cfg.ClickScale = defaultConfig.ClickScale
	}
	if cfg.Grid.CellSize <= 0 {
		cfg.Grid.CellSize = defaultConfig.Grid.CellSize
	}
	if cfg.Grid.MaxColumns <= 0 {
		cfg.Grid.MaxColumns = defaultConfig.Grid.MaxColumns
	}
	if cfg.Grid.MaxRows <= 0 {
		cfg.Grid.MaxRows = defaultConfig.Grid.MaxRows
	}
	if cfg.Grid.Scale <= 0 {
		cfg.Grid.Scale = defaultConfig.Grid.Scale
	}
	if cfg.Style.LineWidth <= 0 {
		cfg.Style.LineWidth = defaultConfig.Style.LineWidth
	}
	if cfg.Style.Stroke == "" {
		cfg.Style.Stroke = defaultConfig.Style.Stroke
	}
	if cfg.Style.Background == "" {
		cfg.Style.Background = defaultConfig.Style.Background
	}
	return cfg
}

// NewDriver picks the driver from the file extension, YAML unless it ends in .json.
func NewDriver(filePath string) Driver {
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		return NewJSON(filePath)
	}
	return NewYAML(filePath)
}
