package loader

import (
	"encoding/json"
	"testing"
)

const currentManifest = `{
	"formatVersion": 1,
	"name": "Forge",
	"uid": "net.minecraftforge",
	"version": "47.2.0",
	"releaseTime": "2023-10-05T12:00:00+00:00",
	"requires": [{"uid": "net.minecraft", "equals": "1.20.1"}],
	"mainClass": "cpw.mods.bootstraplauncher.BootstrapLauncher",
	"mavenFiles": [
		{
			"name": "net.minecraftforge:forge:1.20.1-47.2.0:installer",
			"downloads": {
				"artifact": {
					"sha1": "aaaa",
					"size": 100,
					"url": "https://maven.minecraftforge.net/net/minecraftforge/forge/1.20.1-47.2.0/forge-1.20.1-47.2.0-installer.jar"
				}
			}
		}
	],
	"libraries": [
		{
			"name": "io.github.zekerzhayard:ForgeWrapper:prism-2022-11-01",
			"downloads": {
				"artifact": {
					"sha1": "bbbb",
					"size": 200,
					"url": "https://files.prismlauncher.org/maven/io/github/zekerzhayard/ForgeWrapper/prism-2022-11-01/ForgeWrapper-prism-2022-11-01.jar"
				}
			}
		},
		{
			"name": "net.minecraftforge:fmlloader:1.20.1-47.2.0",
			"url": "https://maven.minecraftforge.net/"
		},
		{
			"name": "org.ow2.asm:asm:9.5"
		}
	]
}`

const legacyManifest = `{
	"formatVersion": 1,
	"name": "Forge",
	"uid": "net.minecraftforge",
	"version": "1.5.2-7.8.1.738",
	"releaseTime": "2013-05-03T12:00:00+00:00",
	"requires": [{"uid": "net.minecraft", "equals": "1.5.2"}],
	"+tweakers": [],
	"jarMods": [
		{
			"name": "net.minecraftforge:forge:1.5.2-7.8.1.738:universal",
			"downloads": {
				"artifact": {
					"path": "net/minecraftforge/forge/1.5.2-7.8.1.738/forge-1.5.2-7.8.1.738-universal.jar",
					"sha1": "cccc",
					"size": 300,
					"url": "https://maven.minecraftforge.net/net/minecraftforge/forge/1.5.2-7.8.1.738/forge-1.5.2-7.8.1.738-universal.zip"
				}
			}
		}
	]
}`

func TestManifestUnmarshalCurrent(t *testing.T) {
	var m Manifest
	if err := json.Unmarshal([]byte(currentManifest), &m); err != nil {
		t.Fatal(err)
	}

	if m.Legacy != nil {
		t.Fatal("expected current variant, got legacy")
	}
	if m.Current == nil {
		t.Fatal("current variant not set")
	}
	if m.Current.MainClass != "cpw.mods.bootstraplauncher.BootstrapLauncher" {
		t.Errorf("MainClass = %q", m.Current.MainClass)
	}
	if len(m.Current.Libraries) != 3 || len(m.Current.MavenFiles) != 1 {
		t.Errorf("libraries = %d, mavenFiles = %d", len(m.Current.Libraries), len(m.Current.MavenFiles))
	}

	mcVersion, err := m.MinecraftVersion()
	if err != nil {
		t.Fatal(err)
	}
	if mcVersion != "1.20.1" {
		t.Errorf("MinecraftVersion() = %q", mcVersion)
	}

	if got := len(m.DownloadLibraries()); got != 4 {
		t.Errorf("DownloadLibraries() returned %d entries, want 4", got)
	}
}

func TestManifestUnmarshalLegacy(t *testing.T) {
	var m Manifest
	if err := json.Unmarshal([]byte(legacyManifest), &m); err != nil {
		t.Fatal(err)
	}

	if m.Current != nil {
		t.Fatal("expected legacy variant, got current")
	}
	if m.Legacy == nil {
		t.Fatal("legacy variant not set")
	}
	if len(m.Legacy.JarMods) != 1 {
		t.Errorf("jarMods = %d", len(m.Legacy.JarMods))
	}
}

func TestManifestRoundTrip(t *testing.T) {
	var m Manifest
	if err := json.Unmarshal([]byte(currentManifest), &m); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}

	var again Manifest
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatal(err)
	}
	if again.Current == nil {
		t.Fatal("variant lost in round trip")
	}
	if again.Current.MainClass != m.Current.MainClass {
		t.Errorf("MainClass = %q", again.Current.MainClass)
	}
}

func TestLibraryAssetPath(t *testing.T) {
	var m Manifest
	if err := json.Unmarshal([]byte(currentManifest), &m); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		lib  Library
		want string
	}{
		{
			name: "path derived from prism maven url",
			lib:  m.Current.Libraries[0],
			want: "io/github/zekerzhayard/ForgeWrapper/prism-2022-11-01/ForgeWrapper-prism-2022-11-01.jar",
		},
		{
			name: "path from maven name",
			lib:  m.Current.Libraries[1],
			want: "net/minecraftforge/fmlloader/1.20.1-47.2.0/fmlloader-1.20.1-47.2.0.jar",
		},
		{
			name: "path derived from forge maven url",
			lib:  m.Current.MavenFiles[0],
			want: "net/minecraftforge/forge/1.20.1-47.2.0/forge-1.20.1-47.2.0-installer.jar",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.lib.AssetPath()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("AssetPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLibraryDownloadURL(t *testing.T) {
	var m Manifest
	if err := json.Unmarshal([]byte(currentManifest), &m); err != nil {
		t.Fatal(err)
	}

	repoLib := m.Current.Libraries[1]
	got, err := repoLib.DownloadURL()
	if err != nil {
		t.Fatal(err)
	}
	want := "https://maven.minecraftforge.net/net/minecraftforge/fmlloader/1.20.1-47.2.0/fmlloader-1.20.1-47.2.0.jar"
	if got != want {
		t.Errorf("DownloadURL() = %q, want %q", got, want)
	}

	bareLib := m.Current.Libraries[2]
	got, err = bareLib.DownloadURL()
	if err != nil {
		t.Fatal(err)
	}
	want = "https://libraries.minecraft.net/org/ow2/asm/asm/9.5/asm-9.5.jar"
	if got != want {
		t.Errorf("DownloadURL() = %q, want %q", got, want)
	}
}

func TestPopulateFMLLibs(t *testing.T) {
	var m Manifest
	if err := json.Unmarshal([]byte(legacyManifest), &m); err != nil {
		t.Fatal(err)
	}

	if err := PopulateFMLLibs(&m); err != nil {
		t.Fatal(err)
	}

	if len(m.Legacy.FmlLibs) != 6 {
		t.Fatalf("FmlLibs = %d entries, want 6", len(m.Legacy.FmlLibs))
	}
	last := m.Legacy.FmlLibs[len(m.Legacy.FmlLibs)-1]
	if last.Name != "fmllibs:deobfuscation_data:1.5.2" {
		t.Errorf("last fml lib = %q", last.Name)
	}
}

func TestPopulateFMLLibsModern(t *testing.T) {
	var m Manifest
	if err := json.Unmarshal([]byte(currentManifest), &m); err != nil {
		t.Fatal(err)
	}

	if err := PopulateFMLLibs(&m); err != nil {
		t.Fatal(err)
	}
	if m.Legacy != nil {
		t.Error("modern manifest should stay untouched")
	}
}
