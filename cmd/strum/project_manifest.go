package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noStrumTomlMessage = "no strum.toml found\nplease specify the pattern explicitly, e.g.:\n  strum play path/to/file.pat"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Play    playConfig    `toml:"play"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type playConfig struct {
	Main  string  `toml:"main"`
	Tempo float64 `toml:"tempo"`
}

func findStrumToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "strum.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findStrumToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("play") {
		return projectConfig{}, fmt.Errorf("%s: missing [play]", path)
	}
	if !meta.IsDefined("play", "main") || strings.TrimSpace(cfg.Play.Main) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [play].main", path)
	}
	if cfg.Play.Tempo < 0 {
		return projectConfig{}, fmt.Errorf("%s: [play].tempo must be positive", path)
	}
	return cfg, nil
}

// resolvePlayTarget maps the manifest's [play].main entry to a .pat file.
func resolvePlayTarget(manifest *projectManifest) (string, error) {
	if manifest == nil {
		return "", fmt.Errorf("missing project manifest")
	}
	mainRel := strings.TrimSpace(manifest.Config.Play.Main)
	mainPath := filepath.Join(manifest.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [play].main path does not exist: %s", manifest.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [play].main: %w", manifest.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: [play].main must be a .pat file, not a directory", manifest.Path)
	}
	if filepath.Ext(mainPath) != ".pat" {
		return "", fmt.Errorf("%s: [play].main must be a .pat file", manifest.Path)
	}
	return mainPath, nil
}
