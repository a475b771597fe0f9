package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/packsmith/packsmith/internals/loader"
	"github.com/packsmith/packsmith/internals/minecraft"
)

// Manager is the gateway to the shared on-disk stores: game assets,
// libraries and cached version manifests. All instances share these so a
// library is only ever downloaded once
type Manager struct {
	client *Client

	assetsDir string
	cacheDir  string
	libsDir   string
}

// NewManager creates the store directories under globalDir and returns a
// manager working on them
func NewManager(globalDir string, client *Client) (*Manager, error) {
	if client == nil {
		client = NewClient(nil)
	}
	m := &Manager{
		client:    client,
		assetsDir: filepath.Join(globalDir, "assets"),
		cacheDir:  filepath.Join(globalDir, "cache"),
		libsDir:   filepath.Join(globalDir, "libraries"),
	}

	for _, dir := range []string{m.ObjectsDir(), m.IndexesDir(), m.VersionsDir(), m.libsDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// AssetsDir is the root of the asset store, passed to the game as
// ${assets_root}
func (m *Manager) AssetsDir() string {
	return m.assetsDir
}

// ObjectsDir is the content addressed asset store
func (m *Manager) ObjectsDir() string {
	return filepath.Join(m.assetsDir, "objects")
}

// IndexesDir holds the cached asset index documents
func (m *Manager) IndexesDir() string {
	return filepath.Join(m.assetsDir, "indexes")
}

// VersionsDir holds the cached version and loader manifests
func (m *Manager) VersionsDir() string {
	return filepath.Join(m.cacheDir, "versions")
}

// VirtualAssetsDir is where pre-1.7 assets get materialized under their
// real names
func (m *Manager) VirtualAssetsDir(assetIndexID string) string {
	return filepath.Join(m.assetsDir, "virtual", assetIndexID)
}

// LibrariesDir is the shared library store
func (m *Manager) LibrariesDir() string {
	return m.libsDir
}

// LibraryPath returns the absolute path of a library inside the store
func (m *Manager) LibraryPath(path string) string {
	return filepath.Join(m.libsDir, filepath.FromSlash(path))
}

// GameManifest resolves the version.json for the given Minecraft version.
// The raw document is cached on first fetch and reused forever after, the
// cache file is never rewritten. Library overrides are applied in memory
// on every load
func (m *Manager) GameManifest(ctx context.Context, mcVersion string) (*minecraft.GameManifest, error) {
	cacheFile := filepath.Join(m.VersionsDir(), mcVersion+".json")

	if _, err := os.Stat(cacheFile); err != nil {
		raw, err := m.client.GameManifestJSON(ctx, mcVersion)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cacheFile, raw, 0644); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil, err
	}

	var manifest minecraft.GameManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing cached manifest for %s: %w", mcVersion, err)
	}

	if err := ApplyLibraryOverrides(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// LoaderManifest resolves the loader manifest for the given selection,
// caching like GameManifest does. The fml lib tables are populated in
// memory after loading
func (m *Manager) LoaderManifest(ctx context.Context, sel loader.ModLoader) (*loader.Manifest, error) {
	cacheFile := filepath.Join(m.VersionsDir(), sel.CacheName())

	if _, err := os.Stat(cacheFile); err != nil {
		raw, err := m.client.LoaderManifestJSON(ctx, sel)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cacheFile, raw, 0644); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil, err
	}

	var manifest loader.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing cached manifest for %s: %w", sel.ID(), err)
	}

	if err := loader.PopulateFMLLibs(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// AssetIndex resolves the asset index referenced by a game manifest,
// caching it under the indexes dir
func (m *Manager) AssetIndex(ctx context.Context, gameManifest *minecraft.GameManifest) (*minecraft.AssetIndex, error) {
	indexFile := filepath.Join(m.IndexesDir(), gameManifest.AssetIndex.ID+".json")

	if _, err := os.Stat(indexFile); err != nil {
		raw, err := m.client.fetchBytes(ctx, gameManifest.AssetIndex.URL)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(indexFile, raw, 0644); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(indexFile)
	if err != nil {
		return nil, err
	}

	var index minecraft.AssetIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parsing asset index %s: %w", gameManifest.AssetIndex.ID, err)
	}

	return &index, nil
}

// LoaderVersions lists installable loader versions for a Minecraft
// version, newest first
func (m *Manager) LoaderVersions(ctx context.Context, name loader.Name, mcVersion string) ([]LoaderVersion, error) {
	return m.client.LoaderVersions(ctx, name, mcVersion)
}
