package installer

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/packsmith/packsmith/internals/loader"
	"github.com/packsmith/packsmith/internals/ziputil"
)

// PackManifest is the manifest.json inside a CurseForge pack zip
type PackManifest struct {
	Minecraft       PackMinecraft `json:"minecraft"`
	ManifestType    string        `json:"manifestType"`
	ManifestVersion int           `json:"manifestVersion"`
	Name            string        `json:"name"`
	Version         string        `json:"version"`
	Author          string        `json:"author"`
	Files           []PackFileRef `json:"files"`
	Overrides       string        `json:"overrides"`
}

// PackMinecraft pins the game version and loader of the pack
type PackMinecraft struct {
	Version    string          `json:"version"`
	ModLoaders []PackModLoader `json:"modLoaders"`
}

// PackModLoader is a loader entry of the pack manifest, its ID has the
// "[name]-[version]" form
type PackModLoader struct {
	ID      string `json:"id"`
	Primary bool   `json:"primary"`
}

// PackFileRef references one CurseForge file of the pack
type PackFileRef struct {
	ProjectID uint32 `json:"projectID"`
	FileID    uint32 `json:"fileID"`
	Required  bool   `json:"required"`
}

// FileIDs lists the referenced file ids
func (m *PackManifest) FileIDs() []uint32 {
	ids := make([]uint32, len(m.Files))
	for i, f := range m.Files {
		ids[i] = f.FileID
	}
	return ids
}

// ProjectIDs lists the referenced project ids
func (m *PackManifest) ProjectIDs() []uint32 {
	ids := make([]uint32, len(m.Files))
	for i, f := range m.Files {
		ids[i] = f.ProjectID
	}
	return ids
}

// ModLoader returns the pack's primary loader selection, or nil
func (m *PackManifest) ModLoader() (*loader.ModLoader, error) {
	for _, l := range m.Minecraft.ModLoaders {
		if l.Primary {
			sel, err := loader.ParseID(l.ID)
			if err != nil {
				return nil, err
			}
			return &sel, nil
		}
	}
	return nil, nil
}

// PackZip is an extracted CurseForge pack zip. Close removes the staging
// directory
type PackZip struct {
	Manifest PackManifest

	tempDir string
}

// LoadPackZip extracts the zip into a staging directory and parses its
// manifest.json
func LoadPackZip(zipPath string) (*PackZip, error) {
	stem := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	tempDir, err := os.MkdirTemp("", "packsmith-"+stem+"-")
	if err != nil {
		return nil, err
	}

	if err := ziputil.Extract(zipPath, tempDir, ziputil.Options{}); err != nil {
		os.RemoveAll(tempDir)
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "manifest.json"))
	if err != nil {
		os.RemoveAll(tempDir)
		return nil, err
	}

	pack := &PackZip{tempDir: tempDir}
	if err := json.Unmarshal(data, &pack.Manifest); err != nil {
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("parsing pack manifest: %w", err)
	}

	return pack, nil
}

// Close removes the staging directory
func (p *PackZip) Close() error {
	return os.RemoveAll(p.tempDir)
}

func (p *PackZip) overridesDir() string {
	return filepath.Join(p.tempDir, p.Manifest.Overrides)
}

// CopyGameData copies the pack's overrides into the game directory
func (p *PackZip) CopyGameData(gameDir string) error {
	return copyDirAll(p.overridesDir(), gameDir)
}

// ListOverrides returns the relative paths of every file in the pack's
// overrides directory
func (p *PackZip) ListOverrides() ([]string, error) {
	var files []string
	root := p.overridesDir()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func copyDirAll(src string, dst string) error {
	if err := os.MkdirAll(dst, os.ModePerm); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		source := filepath.Join(src, entry.Name())
		target := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDirAll(source, target); err != nil {
				return err
			}
			continue
		}

		data, err := os.ReadFile(source)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return err
		}
	}
	return nil
}
