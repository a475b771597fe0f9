package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/packsmith/packsmith/internals/downloadmgr"
	"github.com/packsmith/packsmith/internals/loader"
	"github.com/packsmith/packsmith/internals/minecraft"
	"github.com/packsmith/packsmith/internals/ziputil"
)

// ClientJarPath returns the path of the minecraft client jar relative to
// the shared library store
func ClientJarPath(mcVersion string) string {
	return fmt.Sprintf("com/mojang/minecraft/%s/minecraft-%s-client.jar", mcVersion, mcVersion)
}

type noopProgress struct{}

func (noopProgress) Begin(string, int) {}
func (noopProgress) Advance(int)       {}
func (noopProgress) End()              {}

func orNoop(p downloadmgr.Progress) downloadmgr.Progress {
	if p == nil {
		return noopProgress{}
	}
	return p
}

// DownloadAssets fetches every asset object of the index that is not
// already in the object store. Presence of the file is the only check,
// existing objects are never re-verified
func (m *Manager) DownloadAssets(ctx context.Context, index *minecraft.AssetIndex, progress downloadmgr.Progress) error {
	mgr := downloadmgr.DownloadManager{Label: "Downloading assets", Progress: progress}

	for _, obj := range index.Objects {
		target := filepath.Join(m.ObjectsDir(), filepath.FromSlash(obj.UnixPath()))
		if _, err := os.Stat(target); err == nil {
			continue
		}

		item := downloadmgr.NewHTTPItem(obj.DownloadURL(), target)
		item.Sha1 = obj.Hash
		mgr.Add(item)
	}

	return mgr.Start(ctx)
}

// DownloadLibraries fetches the client jar and every library the manifest
// requires on the given platform into the shared library store
func (m *Manager) DownloadLibraries(ctx context.Context, gameManifest *minecraft.GameManifest, platform minecraft.Context, progress downloadmgr.Progress) error {
	mgr := downloadmgr.DownloadManager{Label: "Downloading libraries", Progress: progress}

	client, ok := gameManifest.Downloads["client"]
	if !ok {
		return fmt.Errorf("manifest %s has no client download", gameManifest.ID)
	}
	m.queueLibrary(&mgr, ClientJarPath(gameManifest.ID), client.URL, client.Sha1)

	for _, lib := range minecraft.RequiredLibraries(gameManifest.Libraries, platform) {
		artifacts, err := lib.DownloadArtifacts(platform)
		if err != nil {
			return err
		}
		for _, artifact := range artifacts {
			m.queueLibrary(&mgr, artifact.Path, artifact.URL, artifact.Sha1)
		}
	}

	return mgr.Start(ctx)
}

// DownloadLoaderLibraries fetches every library of the loader manifest
// into the shared library store
func (m *Manager) DownloadLoaderLibraries(ctx context.Context, manifest *loader.Manifest, progress downloadmgr.Progress) error {
	mgr := downloadmgr.DownloadManager{Label: "Downloading mod loader libraries", Progress: progress}

	for _, lib := range manifest.DownloadLibraries() {
		path, err := lib.AssetPath()
		if err != nil {
			return err
		}
		url, err := lib.DownloadURL()
		if err != nil {
			return err
		}
		sha := ""
		if lib.Downloads != nil {
			sha = lib.Downloads.Artifact.Sha1
		}
		m.queueLibrary(&mgr, path, url, sha)
	}

	return mgr.Start(ctx)
}

func (m *Manager) queueLibrary(mgr *downloadmgr.DownloadManager, path string, url string, sha1 string) {
	target := m.LibraryPath(path)
	if _, err := os.Stat(target); err == nil {
		return
	}

	item := downloadmgr.NewHTTPItem(url, target)
	item.Sha1 = sha1
	mgr.Add(item)
}

// CopyResources materializes asset objects under their real names in
// targetDir. Used for legacy versions that read assets straight from the
// filesystem instead of the object store
func (m *Manager) CopyResources(index *minecraft.AssetIndex, targetDir string, progress downloadmgr.Progress) error {
	p := orNoop(progress)
	p.Begin("Copying resources", len(index.Objects))
	defer p.End()

	i := 0
	for path, obj := range index.Objects {
		i++

		source := filepath.Join(m.ObjectsDir(), filepath.FromSlash(obj.UnixPath()))
		target := filepath.Join(targetDir, filepath.FromSlash(path))

		if _, err := os.Stat(target); err == nil {
			p.Advance(i)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
			return err
		}
		if err := copyFile(source, target); err != nil {
			return err
		}
		p.Advance(i)
	}

	return nil
}

// ExtractNatives unpacks the native jars of the manifest into targetDir
// (usually the instance's natives dir)
func (m *Manager) ExtractNatives(gameManifest *minecraft.GameManifest, platform minecraft.Context, targetDir string, progress downloadmgr.Progress) error {
	var natives []*minecraft.Artifact
	for _, lib := range minecraft.RequiredLibraries(gameManifest.Libraries, platform) {
		artifact, err := lib.NativesArtifact(platform)
		if err != nil {
			return err
		}
		if artifact != nil {
			natives = append(natives, artifact)
		}
	}

	p := orNoop(progress)
	p.Begin("Extracting native jars", len(natives))
	defer p.End()

	if err := os.MkdirAll(targetDir, os.ModePerm); err != nil {
		return err
	}

	for i, artifact := range natives {
		jar := m.LibraryPath(artifact.Path)
		if err := ziputil.Extract(jar, targetDir, ziputil.Options{SkipMetaInf: true}); err != nil {
			return err
		}
		p.Advance(i + 1)
	}

	return nil
}

// ModdedJar builds (or reuses) the patched client jar for jar-mod era
// Forge versions: the vanilla jar with META-INF stripped and the jar mods
// overlaid. Returns the path of the modded jar
func (m *Manager) ModdedJar(mcVersion string, sel loader.ModLoader, jarMods []loader.Library) (string, error) {
	moddedJar := filepath.Join(m.cacheDir, fmt.Sprintf("minecraft+%s.jar", sel.ID()))
	if _, err := os.Stat(moddedJar); err == nil {
		return moddedJar, nil
	}

	stage, err := os.MkdirTemp("", "packsmith-jar-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(stage)

	vanillaJar := m.LibraryPath(ClientJarPath(mcVersion))
	if err := ziputil.Extract(vanillaJar, stage, ziputil.Options{SkipMetaInf: true}); err != nil {
		return "", err
	}

	for _, mod := range jarMods {
		path, err := mod.AssetPath()
		if err != nil {
			return "", err
		}
		if err := ziputil.Extract(m.LibraryPath(path), stage, ziputil.Options{SkipMetaInf: true}); err != nil {
			return "", err
		}
	}

	if err := ziputil.Create(moddedJar, stage); err != nil {
		return "", err
	}
	return moddedJar, nil
}

func copyFile(source string, target string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	return os.WriteFile(target, data, 0644)
}
