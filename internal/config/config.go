// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package config loads medsupply configuration from file, environment,
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/teradata-labs/medsupply/internal/log"
)

// EnvPrefix is the prefix for environment variable overrides
// (e.g. MEDSUPPLY_LOG_LEVEL overrides log.level).
const EnvPrefix = "MEDSUPPLY"

// Config represents application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Catalog CatalogConfig `mapstructure:"catalog"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// File is the log file path. Empty means stderr. Stdout is never a
	// valid log destination: it carries the MCP stdio transport.
	File string `mapstructure:"file"`
}

// LedgerConfig configures the purchase order ledger.
type LedgerConfig struct {
	// SeedID is the first purchase order number issued (PO-<SeedID>).
	SeedID int64 `mapstructure:"seed_id"`
}

// CatalogConfig holds the reference data: stock levels and supplier
// records per item kind.
type CatalogConfig struct {
	Items map[string]ItemConfig `mapstructure:"items"`
}

// ItemConfig is the reference data for a single item kind.
type ItemConfig struct {
	Stock    int            `mapstructure:"stock"`
	Supplier SupplierConfig `mapstructure:"supplier"`
}

// SupplierConfig is the supplier record for an item kind.
type SupplierConfig struct {
	Name         string `mapstructure:"name"`
	LeadTimeDays int    `mapstructure:"lead_time_days"`
	AvailableQty int    `mapstructure:"available_qty"`
}

// DataDir returns the medsupply data directory.
//
// Priority:
// 1. MEDSUPPLY_DATA_DIR environment variable (if set and non-empty)
// 2. ~/.medsupply (default)
//
// Tilde (~) in MEDSUPPLY_DATA_DIR is expanded to the user's home directory.
func DataDir() string {
	if dataDir := os.Getenv("MEDSUPPLY_DATA_DIR"); dataDir != "" {
		return expandPath(dataDir)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".medsupply"
	}
	return filepath.Join(homeDir, ".medsupply")
}

// expandPath expands a leading ~ and makes the path absolute.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// setDefaults registers the built-in reference data and server defaults.
// These are the fixed demo values; a config file or MEDSUPPLY_* environment
// variables override them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("ledger.seed_id", 1001)

	v.SetDefault("catalog.items.oxygen_cylinders.stock", 1200)
	v.SetDefault("catalog.items.oxygen_cylinders.supplier.name", "MedOx Supplies Pvt Ltd")
	v.SetDefault("catalog.items.oxygen_cylinders.supplier.lead_time_days", 2)
	v.SetDefault("catalog.items.oxygen_cylinders.supplier.available_qty", 500)

	v.SetDefault("catalog.items.icu_beds.stock", 85)
	v.SetDefault("catalog.items.icu_beds.supplier.name", "Hospitech Equipments")
	v.SetDefault("catalog.items.icu_beds.supplier.lead_time_days", 5)
	v.SetDefault("catalog.items.icu_beds.supplier.available_qty", 20)

	v.SetDefault("catalog.items.ventilators.stock", 40)
	v.SetDefault("catalog.items.ventilators.supplier.name", "AirLife Medical Systems")
	v.SetDefault("catalog.items.ventilators.supplier.lead_time_days", 7)
	v.SetDefault("catalog.items.ventilators.supplier.available_qty", 15)
}

// Load reads configuration from the given file path. If path is empty,
// Load looks for config.yaml in DataDir() and falls back to defaults when
// no file exists. An explicitly given path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DataDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
			// No config file is fine, defaults apply.
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if used := v.ConfigFileUsed(); used != "" {
		log.Debug("loaded config file", zap.String("path", used))
	}

	return &cfg, nil
}
