package instances

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/packsmith/packsmith/internals/assets"
	"github.com/packsmith/packsmith/internals/loader"
	"github.com/packsmith/packsmith/internals/minecraft"
)

var testPlatform = minecraft.Context{OSName: "linux", OSArch: "x64"}

func parseGameManifest(t *testing.T, raw string) *minecraft.GameManifest {
	t.Helper()
	var manifest minecraft.GameManifest
	if err := json.Unmarshal([]byte(raw), &manifest); err != nil {
		t.Fatal(err)
	}
	return &manifest
}

func TestComposeArgumentsModern(t *testing.T) {
	manifest := parseGameManifest(t, `{
		"id": "1.20.1",
		"mainClass": "net.minecraft.client.main.Main",
		"downloads": {},
		"libraries": [],
		"arguments": {
			"jvm": ["-Djava.library.path=${natives_directory}", "-cp", "${classpath}"],
			"game": ["--username", "${auth_player_name}"]
		}
	}`)

	args, err := composeArguments(manifest, nil, testPlatform)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"-Djava.library.path=${natives_directory}",
		"-cp", "${classpath}",
		"net.minecraft.client.main.Main",
		"--username", "${auth_player_name}",
	}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestComposeArgumentsLegacyVanilla(t *testing.T) {
	manifest := parseGameManifest(t, `{
		"id": "1.8.9",
		"mainClass": "net.minecraft.client.main.Main",
		"minecraftArguments": "--username ${auth_player_name} --version ${version_name}",
		"downloads": {},
		"libraries": []
	}`)

	args, err := composeArguments(manifest, nil, testPlatform)
	if err != nil {
		t.Fatal(err)
	}

	// legacy manifests don't carry jvm args, the fixed ones get prepended
	if args[0] != "-Djava.library.path=${natives_directory}" || args[1] != "-cp" {
		t.Errorf("args = %v", args)
	}
	if args[3] != "net.minecraft.client.main.Main" {
		t.Errorf("main class position wrong: %v", args)
	}
}

func TestComposeArgumentsLegacyForge(t *testing.T) {
	gameManifest := parseGameManifest(t, `{
		"id": "1.5.2",
		"mainClass": "net.minecraft.client.Minecraft",
		"minecraftArguments": "${auth_player_name} ${auth_session}",
		"downloads": {},
		"libraries": []
	}`)

	var loaderManifest loader.Manifest
	raw := `{
		"name": "Forge",
		"uid": "net.minecraftforge",
		"version": "1.5.2-7.8.1.738",
		"requires": [{"uid": "net.minecraft", "equals": "1.5.2"}],
		"jarMods": []
	}`
	if err := json.Unmarshal([]byte(raw), &loaderManifest); err != nil {
		t.Fatal(err)
	}

	args, err := composeArguments(gameManifest, &loaderManifest, testPlatform)
	if err != nil {
		t.Fatal(err)
	}

	if args[0] != "-Dminecraft.applet.TargetDirectory=${game_directory}" {
		t.Errorf("args = %v", args)
	}
	found := false
	for _, arg := range args {
		if arg == "-Dfml.ignoreInvalidMinecraftCertificates=true" {
			found = true
		}
	}
	if !found {
		t.Errorf("fml certificate arg missing: %v", args)
	}
}

func TestComposeArgumentsTweakers(t *testing.T) {
	gameManifest := parseGameManifest(t, `{
		"id": "1.12.2",
		"mainClass": "net.minecraft.client.main.Main",
		"minecraftArguments": "--username ${auth_player_name}",
		"downloads": {},
		"libraries": []
	}`)

	var loaderManifest loader.Manifest
	raw := `{
		"name": "Forge",
		"uid": "net.minecraftforge",
		"version": "14.23.5.2860",
		"requires": [{"uid": "net.minecraft", "equals": "1.12.2"}],
		"+tweakers": ["net.minecraftforge.fml.common.launcher.FMLTweaker"],
		"mainClass": "net.minecraft.launchwrapper.Launch",
		"libraries": [],
		"minecraftArguments": "--username ${auth_player_name} --tweakClass placeholder"
	}`
	if err := json.Unmarshal([]byte(raw), &loaderManifest); err != nil {
		t.Fatal(err)
	}
	// loader args win over the vanilla ones
	loaderManifest.Current.MinecraftArguments = "--username ${auth_player_name}"

	args, err := composeArguments(gameManifest, &loaderManifest, testPlatform)
	if err != nil {
		t.Fatal(err)
	}

	if args[len(args)-2] != "--tweakClass" || args[len(args)-1] != "net.minecraftforge.fml.common.launcher.FMLTweaker" {
		t.Errorf("tweaker args missing: %v", args)
	}
	mainFound := false
	for _, arg := range args {
		if arg == "net.minecraft.launchwrapper.Launch" {
			mainFound = true
		}
	}
	if !mainFound {
		t.Errorf("loader main class missing: %v", args)
	}
}

func TestExpandArgs(t *testing.T) {
	args := []string{"--username", "${auth_player_name}", "--unknown", "${not_a_var}"}
	vars := map[string]string{"auth_player_name": "steve"}

	got := expandArgs(args, vars)
	if got[1] != "steve" {
		t.Errorf("expansion failed: %v", got)
	}
	if got[3] != "${not_a_var}" {
		t.Errorf("unknown placeholder should stay untouched: %v", got)
	}
}

func TestBuildClasspath(t *testing.T) {
	manager, err := assets.NewManager(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}

	gameManifest := parseGameManifest(t, `{
		"id": "1.20.1",
		"mainClass": "net.minecraft.client.main.Main",
		"downloads": {},
		"libraries": [
			{"name": "org.ow2.asm:asm:9.2", "downloads": {"artifact": {"path": "org/ow2/asm/asm/9.2/asm-9.2.jar", "sha1": "a", "size": 1, "url": "u"}}},
			{"name": "org.ow2.asm:asm:9.5", "downloads": {"artifact": {"path": "org/ow2/asm/asm/9.5/asm-9.5.jar", "sha1": "b", "size": 1, "url": "u"}}},
			{"name": "osx.only:thing:1.0",
				"downloads": {"artifact": {"path": "osx/only/thing/1.0/thing-1.0.jar", "sha1": "c", "size": 1, "url": "u"}},
				"rules": [{"action": "allow", "os": {"name": "osx"}}]}
		]
	}`)

	mainJar := manager.LibraryPath(assets.ClientJarPath("1.20.1"))
	classpath, err := buildClasspath(manager, gameManifest, nil, testPlatform, mainJar)
	if err != nil {
		t.Fatal(err)
	}

	entries := strings.Split(classpath, string(os.PathListSeparator))
	if entries[0] != mainJar {
		t.Errorf("main jar should come first: %v", entries)
	}
	if len(entries) != 2 {
		t.Fatalf("classpath = %v, want main jar plus one deduped lib", entries)
	}
	if !strings.Contains(entries[1], "asm-9.5.jar") {
		t.Errorf("dedup should keep 9.5: %v", entries)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	instance := &Instance{
		Dir: dir,
		Manifest: &Manifest{
			McVersion: "1.20.1",
			GameDir:   "minecraft",
			ModLoader: &loader.ModLoader{Name: loader.Forge, Version: "47.2.0"},
			Modpack: &ModpackState{
				PackID:    25,
				VersionID: 101,
				Files:     []string{filepath.Join("mods", "a.jar")},
			},
		},
	}

	if err := instance.SaveManifest(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Manifest.McVersion != "1.20.1" {
		t.Errorf("McVersion = %q", loaded.Manifest.McVersion)
	}
	if loaded.Manifest.ModLoader == nil || loaded.Manifest.ModLoader.Version != "47.2.0" {
		t.Errorf("ModLoader = %+v", loaded.Manifest.ModLoader)
	}
	if len(loaded.PackFiles()) != 1 {
		t.Errorf("PackFiles() = %v", loaded.PackFiles())
	}

	if !Exists(dir) {
		t.Error("Exists() should report true")
	}
	if Exists(filepath.Join(dir, "nope")) {
		t.Error("Exists() should report false for missing dir")
	}
}
