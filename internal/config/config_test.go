package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
bundle:
  path: "./data/bundle.db"
search:
  default_limit: 5
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.DefaultLimit != 5 {
		t.Errorf("default_limit = %d, want 5", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 100 {
		t.Errorf("max_limit should default to 100, got %d", cfg.Search.MaxLimit)
	}
	if cfg.Bundle.Path == "" {
		t.Error("bundle path should be set")
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_debugTrue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
bundle:
  path: "/tmp/bundle.db"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
bundle:
  path: "./data/bundle.db"
index:
  dataset_path: "./dataset/glamping.xlsx"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	wantBundle := filepath.Join(dir, "data", "bundle.db")
	if cfg.Bundle.Path != wantBundle {
		t.Errorf("bundle path = %s, want %s", cfg.Bundle.Path, wantBundle)
	}
	wantDataset := filepath.Join(dir, "dataset", "glamping.xlsx")
	if cfg.Index.DatasetPath != wantDataset {
		t.Errorf("dataset path = %s, want %s", cfg.Index.DatasetPath, wantDataset)
	}
}

func TestLoad_emptyDatasetPathStaysEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
bundle:
  path: "/tmp/bundle.db"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Index.DatasetPath != "" {
		t.Errorf("dataset path = %q, want empty", cfg.Index.DatasetPath)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Bundle.Path == "" {
		t.Error("default bundle path should be set")
	}
	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("default limit: got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 100 {
		t.Errorf("default max limit: got %d", cfg.Search.MaxLimit)
	}
	if cfg.Search.MinScore != 0 {
		t.Errorf("min score should default to 0, got %f", cfg.Search.MinScore)
	}
	if cfg.Index.Workers <= 0 {
		t.Errorf("default workers should be positive, got %d", cfg.Index.Workers)
	}
	if cfg.Index.WatchDebounceMS != 500 {
		t.Errorf("default watch debounce: got %d", cfg.Index.WatchDebounceMS)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Search: SearchConfig{DefaultLimit: 3, MaxLimit: 20, MinScore: 0.25},
		Index:  IndexConfig{Workers: 2},
	}
	ApplyDefaults(cfg)
	if cfg.Search.DefaultLimit != 3 || cfg.Search.MaxLimit != 20 {
		t.Errorf("explicit limits overwritten: %+v", cfg.Search)
	}
	if cfg.Search.MinScore != 0.25 {
		t.Errorf("explicit min score overwritten: %f", cfg.Search.MinScore)
	}
	if cfg.Index.Workers != 2 {
		t.Errorf("explicit workers overwritten: %d", cfg.Index.Workers)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := &Config{
		Bundle: BundleConfig{Path: "/tmp/bundle.db"},
		Search: SearchConfig{DefaultLimit: 7},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Search.DefaultLimit != 7 {
		t.Errorf("loaded default limit: got %d", loaded.Search.DefaultLimit)
	}
	if loaded.Bundle.Path != "/tmp/bundle.db" {
		t.Errorf("loaded bundle path: got %s", loaded.Bundle.Path)
	}
}
