package instances

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/packsmith/packsmith/internals/assets"
	"github.com/packsmith/packsmith/internals/downloadmgr"
	"github.com/packsmith/packsmith/internals/loader"
	"github.com/packsmith/packsmith/internals/minecraft"
)

// LaunchOptions carry the session values that end up in the game's
// argument placeholders
type LaunchOptions struct {
	PlayerName      string
	PlayerID        string
	AccessToken     string
	ClientID        string
	LauncherName    string
	LauncherVersion string
}

// Launch makes sure every asset, library and native the instance needs is
// in place, composes the java command line and starts the game process
func (i *Instance) Launch(ctx context.Context, manager *assets.Manager, opts LaunchOptions, progress downloadmgr.Progress) (*exec.Cmd, error) {
	platform := minecraft.HostContext()

	gameManifest, err := manager.GameManifest(ctx, i.Manifest.McVersion)
	if err != nil {
		return nil, err
	}
	assetIndex, err := manager.AssetIndex(ctx, gameManifest)
	if err != nil {
		return nil, err
	}

	var loaderManifest *loader.Manifest
	if i.Manifest.ModLoader != nil {
		loaderManifest, err = manager.LoaderManifest(ctx, *i.Manifest.ModLoader)
		if err != nil {
			return nil, err
		}
	}

	if err := manager.DownloadAssets(ctx, assetIndex, progress); err != nil {
		return nil, err
	}
	if err := manager.DownloadLibraries(ctx, gameManifest, platform, progress); err != nil {
		return nil, err
	}
	if loaderManifest != nil {
		if err := manager.DownloadLoaderLibraries(ctx, loaderManifest, progress); err != nil {
			return nil, err
		}
	}

	// pre-1.7 versions read assets from real paths instead of the object
	// store
	resourcesDir := ""
	switch {
	case assetIndex.Virtual:
		resourcesDir = manager.VirtualAssetsDir(gameManifest.AssetIndex.ID)
	case assetIndex.MapToResources:
		resourcesDir = i.ResourcesDir()
	}
	if resourcesDir != "" {
		if err := manager.CopyResources(assetIndex, resourcesDir, progress); err != nil {
			return nil, err
		}
	}

	if err := manager.ExtractNatives(gameManifest, platform, i.NativesDir(), progress); err != nil {
		return nil, err
	}

	mainJar := manager.LibraryPath(assets.ClientJarPath(gameManifest.ID))
	if loaderManifest != nil && loaderManifest.Legacy != nil {
		mainJar, err = i.prepareLegacyLoader(manager, gameManifest, loaderManifest)
		if err != nil {
			return nil, err
		}
	}

	args, err := composeArguments(gameManifest, loaderManifest, platform)
	if err != nil {
		return nil, err
	}

	classpath, err := buildClasspath(manager, gameManifest, loaderManifest, platform, mainJar)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(i.GameDir(), os.ModePerm); err != nil {
		return nil, err
	}

	vars := map[string]string{
		"version_name":      i.Manifest.McVersion,
		"version_type":      gameManifest.ReleaseType,
		"game_directory":    i.GameDir(),
		"assets_root":       manager.AssetsDir(),
		"assets_index_name": gameManifest.AssetIndex.ID,
		"classpath":         classpath,
		"natives_directory": i.NativesDir(),
		"user_type":         "msa",
		"clientid":          opts.ClientID,
		"auth_access_token": opts.AccessToken,
		"auth_session":      fmt.Sprintf("token:%s:%s", opts.AccessToken, opts.PlayerID),
		"auth_player_name":  opts.PlayerName,
		"auth_uuid":         opts.PlayerID,
		"launcher_name":     opts.LauncherName,
		"launcher_version":  opts.LauncherVersion,
		// minecraft fails to launch unless this is set to an empty json obj
		"user_properties": "{}",
	}
	if resourcesDir != "" {
		vars["game_assets"] = resourcesDir
	}

	java := i.Manifest.JavaPath
	if java == "" {
		java = "java"
	}

	cmdArgs := append([]string{}, i.Manifest.JavaArgs...)
	cmdArgs = append(cmdArgs, expandArgs(args, vars)...)

	cmd := exec.CommandContext(ctx, java, cmdArgs...)
	cmd.Dir = i.GameDir()
	return cmd, nil
}

// prepareLegacyLoader builds the modded client jar and copies the fml
// helper libs next to the game. Forge throws 404 errors on startup trying
// to download them itself otherwise
func (i *Instance) prepareLegacyLoader(manager *assets.Manager, gameManifest *minecraft.GameManifest, loaderManifest *loader.Manifest) (string, error) {
	moddedJar, err := manager.ModdedJar(gameManifest.ID, *i.Manifest.ModLoader, loaderManifest.Legacy.JarMods)
	if err != nil {
		return "", err
	}

	if len(loaderManifest.Legacy.FmlLibs) > 0 {
		if err := os.MkdirAll(i.FmlLibsDir(), os.ModePerm); err != nil {
			return "", err
		}
		for _, lib := range loaderManifest.Legacy.FmlLibs {
			assetPath, err := lib.AssetPath()
			if err != nil {
				return "", err
			}
			data, err := os.ReadFile(manager.LibraryPath(assetPath))
			if err != nil {
				return "", err
			}
			target := filepath.Join(i.FmlLibsDir(), path.Base(assetPath))
			if err := os.WriteFile(target, data, 0644); err != nil {
				return "", err
			}
		}
	}

	return moddedJar, nil
}

// composeArguments builds the java argument list, placeholders included.
// Three shapes exist: structured arguments (1.13+), the legacy flat
// minecraftArguments string, and the jar-mod era loader launch
func composeArguments(gameManifest *minecraft.GameManifest, loaderManifest *loader.Manifest, platform minecraft.Context) ([]string, error) {
	var args []string

	switch {
	case loaderManifest != nil && loaderManifest.Legacy != nil:
		args = append(args,
			"-Dminecraft.applet.TargetDirectory=${game_directory}",
			"-Djava.library.path=${natives_directory}",
			"-Dfml.ignoreInvalidMinecraftCertificates=true",
			"-Dfml.ignorePatchDiscrepancies=true",
			"-cp", "${classpath}",
			gameManifest.MainClass,
		)
		if gameManifest.MinecraftArguments != "" {
			args = append(args, strings.Split(gameManifest.MinecraftArguments, " ")...)
		}

	case loaderManifest != nil && loaderManifest.Current != nil:
		args = append(args,
			"-Djava.library.path=${natives_directory}",
			"-cp", "${classpath}",
			loaderManifest.Current.MainClass,
		)
		switch {
		case loaderManifest.Current.MinecraftArguments != "":
			args = append(args, strings.Split(loaderManifest.Current.MinecraftArguments, " ")...)
		case gameManifest.MinecraftArguments != "":
			args = append(args, strings.Split(gameManifest.MinecraftArguments, " ")...)
		}

	case gameManifest.Arguments != nil:
		args = append(args, gameManifest.Arguments.JVM.Matched(platform)...)
		args = append(args, gameManifest.MainClass)
		args = append(args, gameManifest.Arguments.Game.Matched(platform)...)

	case gameManifest.MinecraftArguments != "":
		// old versions don't include JVM args in the manifest
		args = append(args,
			"-Djava.library.path=${natives_directory}",
			"-cp", "${classpath}",
			gameManifest.MainClass,
		)
		args = append(args, strings.Split(gameManifest.MinecraftArguments, " ")...)

	default:
		return nil, fmt.Errorf("manifest %s has no launch arguments", gameManifest.ID)
	}

	if loaderManifest != nil && len(loaderManifest.Tweakers) > 0 {
		args = append(args, "--tweakClass", loaderManifest.Tweakers[0])
	}

	return args, nil
}

// buildClasspath collapses the combined library list down to one entry
// per artifact and joins the absolute paths with the platform separator.
// mainJar is placed first and skips dedup when it is an absolute path
// (the modded jar lives outside the library store)
func buildClasspath(manager *assets.Manager, gameManifest *minecraft.GameManifest, loaderManifest *loader.Manifest, platform minecraft.Context, mainJar string) (string, error) {
	var libs []string

	for _, lib := range minecraft.RequiredLibraries(gameManifest.Libraries, platform) {
		if lib.Downloads.Artifact != nil {
			libs = append(libs, lib.Downloads.Artifact.Path)
		}
	}

	if loaderManifest != nil && loaderManifest.Current != nil {
		for _, lib := range loaderManifest.Current.Libraries {
			path, err := lib.AssetPath()
			if err != nil {
				return "", err
			}
			libs = append(libs, path)
		}
	}

	deduped, err := minecraft.DedupLibraries(libs)
	if err != nil {
		return "", err
	}

	entries := make([]string, 0, len(deduped)+1)
	entries = append(entries, mainJar)
	for _, path := range deduped {
		entries = append(entries, manager.LibraryPath(path))
	}

	return strings.Join(entries, string(os.PathListSeparator)), nil
}

// expandArgs substitutes ${placeholder} values, leaving unknown
// placeholders untouched
func expandArgs(args []string, vars map[string]string) []string {
	expanded := make([]string, len(args))
	for i, arg := range args {
		expanded[i] = os.Expand(arg, func(key string) string {
			if value, ok := vars[key]; ok {
				return value
			}
			return "${" + key + "}"
		})
	}
	return expanded
}
