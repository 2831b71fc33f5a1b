// Package daemon wires the storefront engine together and runs it.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the daemon configuration, loaded from ~/.khayr/config.toml.
type Config struct {
	API     APIConfig     `toml:"api"`
	Catalog CatalogConfig `toml:"catalog"`
	Storage StorageConfig `toml:"storage"`
	Offline OfflineConfig `toml:"offline"`
}

// APIConfig controls the local HTTP surface.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// Addr returns the host:port listen address.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CatalogConfig points at the content API the product set is fetched from.
// URL overrides the project/dataset pair when set (used for self-hosted
// mirrors and tests).
type CatalogConfig struct {
	ProjectID string `toml:"project_id"`
	Dataset   string `toml:"dataset"`
	URL       string `toml:"url"`
}

// StorageConfig controls local persistence.
type StorageConfig struct {
	Dir      string `toml:"dir"`
	CartSlot string `toml:"cart_slot"`
}

// OfflineConfig controls the offline asset cache.
type OfflineConfig struct {
	Enabled   bool   `toml:"enabled"`
	CacheName string `toml:"cache_name"`
}

// DefaultConfig returns the defaults the original storefront shipped with.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    8420,
			Metrics: true,
		},
		Catalog: CatalogConfig{
			ProjectID: "ptktp0wu",
			Dataset:   "production",
		},
		Storage: StorageConfig{
			Dir:      defaultStorageDir(),
			CartSlot: "khayrCart",
		},
		Offline: OfflineConfig{
			Enabled:   true,
			CacheName: "khayr-gifts-v1.21",
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; a malformed file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfigPath returns ~/.khayr/config.toml, honoring KHAYR_HOME.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), "config.toml")
}

func defaultStorageDir() string {
	return filepath.Join(homeDir(), "data")
}

func homeDir() string {
	if env := os.Getenv("KHAYR_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".khayr")
}
