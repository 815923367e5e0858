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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point the data dir at an empty temp dir so no real config is picked up.
	t.Setenv("MEDSUPPLY_DATA_DIR", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, int64(1001), cfg.Ledger.SeedID)

	require.Contains(t, cfg.Catalog.Items, "icu_beds")
	beds := cfg.Catalog.Items["icu_beds"]
	assert.Equal(t, 85, beds.Stock)
	assert.Equal(t, "Hospitech Equipments", beds.Supplier.Name)
	assert.Equal(t, 5, beds.Supplier.LeadTimeDays)
	assert.Equal(t, 20, beds.Supplier.AvailableQty)

	require.Contains(t, cfg.Catalog.Items, "oxygen_cylinders")
	assert.Equal(t, 1200, cfg.Catalog.Items["oxygen_cylinders"].Stock)

	require.Contains(t, cfg.Catalog.Items, "ventilators")
	assert.Equal(t, 7, cfg.Catalog.Items["ventilators"].Supplier.LeadTimeDays)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
log:
  level: debug
ledger:
  seed_id: 5001
catalog:
  items:
    icu_beds:
      stock: 10
      supplier:
        name: Acme Beds
        lead_time_days: 3
        available_qty: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, int64(5001), cfg.Ledger.SeedID)

	beds := cfg.Catalog.Items["icu_beds"]
	assert.Equal(t, 10, beds.Stock)
	assert.Equal(t, "Acme Beds", beds.Supplier.Name)
	assert.Equal(t, 3, beds.Supplier.LeadTimeDays)

	// Items not mentioned in the file keep their defaults.
	assert.Equal(t, 1200, cfg.Catalog.Items["oxygen_cylinders"].Stock)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MEDSUPPLY_DATA_DIR", t.TempDir())
	t.Setenv("MEDSUPPLY_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestDataDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEDSUPPLY_DATA_DIR", dir)
	assert.Equal(t, dir, DataDir())
}

func TestDataDir_Default(t *testing.T) {
	t.Setenv("MEDSUPPLY_DATA_DIR", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".medsupply"), DataDir())
}
