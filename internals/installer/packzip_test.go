package installer

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/packsmith/packsmith/internals/loader"
)

func writePackZip(t *testing.T, path string) {
	t.Helper()
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	files := map[string]string{
		"manifest.json": `{
			"minecraft": {"version": "1.20.1", "modLoaders": [{"id": "forge-47.2.0", "primary": true}]},
			"manifestType": "minecraftModpack",
			"manifestVersion": 1,
			"name": "Test Pack",
			"version": "1.0.0",
			"author": "tester",
			"files": [
				{"projectID": 238222, "fileID": 4712866, "required": true},
				{"projectID": 32274, "fileID": 4615902, "required": true}
			],
			"overrides": "overrides"
		}`,
		"overrides/config/test.cfg":   "setting=1",
		"overrides/mods/included.jar": "jar",
		"modlist.html":                "<ul></ul>",
	}
	for name, content := range files {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPackZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "pack.zip")
	writePackZip(t, zipPath)

	pack, err := LoadPackZip(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	defer pack.Close()

	if pack.Manifest.Name != "Test Pack" || pack.Manifest.Minecraft.Version != "1.20.1" {
		t.Errorf("manifest = %+v", pack.Manifest)
	}

	sel, err := pack.Manifest.ModLoader()
	if err != nil {
		t.Fatal(err)
	}
	if sel == nil || sel.Name != loader.Forge || sel.Version != "47.2.0" {
		t.Errorf("ModLoader() = %+v", sel)
	}

	if ids := pack.Manifest.FileIDs(); len(ids) != 2 || ids[0] != 4712866 {
		t.Errorf("FileIDs() = %v", ids)
	}

	gameDir := filepath.Join(dir, "game")
	if err := pack.CopyGameData(gameDir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(gameDir, "config", "test.cfg")); err != nil {
		t.Error("override not copied")
	}

	overrides, err := pack.ListOverrides()
	if err != nil {
		t.Fatal(err)
	}
	if len(overrides) != 2 {
		t.Errorf("overrides = %v", overrides)
	}
}

func TestPackZipClose(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "pack.zip")
	writePackZip(t, zipPath)

	pack, err := LoadPackZip(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	tempDir := pack.tempDir
	if err := pack.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(tempDir); !os.IsNotExist(err) {
		t.Error("staging dir should be removed")
	}
}
