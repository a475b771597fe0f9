// Package instances manages local Minecraft instances: a directory with a
// manifest.json describing the game version, mod loader and installed
// modpack state.
package instances

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/packsmith/packsmith/internals/assets"
	"github.com/packsmith/packsmith/internals/loader"
)

const manifestFile = "manifest.json"

// Manifest is the persisted instance configuration
type Manifest struct {
	// McVersion is the Minecraft version
	McVersion string `json:"mc_version"`
	// GameDir is the Minecraft directory, relative to the instance dir
	GameDir string `json:"game_dir"`
	// JavaPath optionally overrides the java binary, default is "java"
	// from PATH
	JavaPath string `json:"java_path,omitempty"`
	// JavaArgs are extra JVM arguments
	JavaArgs []string `json:"java_args,omitempty"`
	// ModLoader is the installed loader, nil for vanilla
	ModLoader *loader.ModLoader `json:"mod_loader,omitempty"`
	// Modpack tracks the installed modpack and its files, nil when the
	// instance was not created from a pack
	Modpack *ModpackState `json:"modpack,omitempty"`
}

// ModpackState records which pack version is installed and every file it
// placed in the game dir. The file list is what reconciliation diffs
// against on updates
type ModpackState struct {
	PackID    uint32   `json:"pack_id"`
	VersionID uint32   `json:"version_id"`
	Files     []string `json:"files"`
}

// Instance is an instance directory with its parsed manifest
type Instance struct {
	Manifest *Manifest

	// Dir is the absolute path of the instance directory
	Dir string
}

// Exists reports whether dir looks like an instance (has a manifest)
func Exists(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, manifestFile))
	return err == nil
}

// Create sets up a new instance directory. The given versions are
// validated by resolving their manifests before anything is written
func Create(ctx context.Context, dir string, mcVersion string, sel *loader.ModLoader, manager *assets.Manager) (*Instance, error) {
	if _, err := manager.GameManifest(ctx, mcVersion); err != nil {
		return nil, err
	}
	if sel != nil {
		if _, err := manager.LoaderManifest(ctx, *sel); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	instance := &Instance{
		Dir: absDir,
		Manifest: &Manifest{
			McVersion: mcVersion,
			GameDir:   "minecraft",
			ModLoader: sel,
		},
	}

	if err := instance.SaveManifest(); err != nil {
		return nil, err
	}
	return instance, nil
}

// Load reads an existing instance
func Load(dir string) (*Instance, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(absDir, manifestFile))
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing instance manifest: %w", err)
	}

	return &Instance{Manifest: &manifest, Dir: absDir}, nil
}

// SaveManifest writes the manifest back to disk
func (i *Instance) SaveManifest() error {
	data, err := json.MarshalIndent(i.Manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(i.Dir, manifestFile), data, 0644)
}

// SetVersions updates the game and loader version and persists the change
func (i *Instance) SetVersions(mcVersion string, sel *loader.ModLoader) error {
	i.Manifest.McVersion = mcVersion
	i.Manifest.ModLoader = sel
	return i.SaveManifest()
}

// PackFiles returns the files installed by the current modpack version,
// or nil when no pack is installed
func (i *Instance) PackFiles() []string {
	if i.Manifest.Modpack == nil {
		return nil
	}
	return i.Manifest.Modpack.Files
}

// SetModpack replaces the persisted modpack state wholesale and persists
// the manifest
func (i *Instance) SetModpack(state *ModpackState) error {
	i.Manifest.Modpack = state
	return i.SaveManifest()
}

// GameDir is the Minecraft working directory of the instance
func (i *Instance) GameDir() string {
	return filepath.Join(i.Dir, i.Manifest.GameDir)
}

// FmlLibsDir is where ancient Forge expects its helper libraries
func (i *Instance) FmlLibsDir() string {
	return filepath.Join(i.GameDir(), "lib")
}

// ModsDir holds the instance's mods
func (i *Instance) ModsDir() string {
	return filepath.Join(i.GameDir(), "mods")
}

// ResourcesDir is the legacy resources dir read by pre-1.6 versions
func (i *Instance) ResourcesDir() string {
	return filepath.Join(i.GameDir(), "resources")
}

// NativesDir is where native jars get extracted before launch
func (i *Instance) NativesDir() string {
	return filepath.Join(i.Dir, "natives")
}
