// Package installer reconciles modpack file lists against an instance's
// game directory: it downloads hosted files, pairs CurseForge references
// with their project metadata and removes files dropped between versions.
package installer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/packsmith/packsmith/internals/curse"
	"github.com/packsmith/packsmith/internals/downloadmgr"
	"github.com/packsmith/packsmith/internals/modpacksch"
)

// FileType buckets CurseForge projects into the directory their files
// belong in
type FileType int

const (
	TypeMod FileType = iota
	TypeResource
	TypeShaders
	TypeDatapack
)

// ErrUnknownClassID is returned for CurseForge projects of a class this
// tool cannot place in the game directory
type ErrUnknownClassID struct {
	ClassID uint32
}

func (e *ErrUnknownClassID) Error() string {
	return fmt.Sprintf("unimplemented curseforge class id %d", e.ClassID)
}

// ErrPairingMismatch is returned when the CurseForge file and mod lookups
// disagree in length and can not be zipped into pairs
type ErrPairingMismatch struct {
	FileCount int
	ModCount  int
}

func (e *ErrPairingMismatch) Error() string {
	return fmt.Sprintf(
		"curseforge file list (%d) and mod list (%d) don't match",
		e.FileCount, e.ModCount,
	)
}

// FileDownload is one CurseForge file resolved against its project. For
// files the author opted out of API distribution CanAutoDownload is false
// and URL points at the project's website download page instead
type FileDownload struct {
	FileName        string
	FileSize        uint64
	FileType        FileType
	CanAutoDownload bool
	URL             string
}

// NewFileDownload pairs a file with its project metadata
func NewFileDownload(f *curse.File, m *curse.Mod) (FileDownload, error) {
	// it feels brittle using hard coded classId, but there is nothing
	// else that can differentiate mods|resource pack|etc
	var fileType FileType
	switch m.ClassID {
	case 6:
		fileType = TypeMod
	case 12:
		fileType = TypeResource
	case 6552:
		fileType = TypeShaders
	case 6945:
		fileType = TypeDatapack
	default:
		return FileDownload{}, &ErrUnknownClassID{ClassID: m.ClassID}
	}

	download := FileDownload{
		FileName:        f.FileName,
		FileSize:        f.FileSize,
		FileType:        fileType,
		CanAutoDownload: f.DownloadURL != nil && m.DistributionAllowed(),
	}
	if download.CanAutoDownload {
		download.URL = *f.DownloadURL
	} else {
		// url for the user to download the file manually
		download.URL = fmt.Sprintf("%s/download/%d", m.Links.WebsiteURL, f.FileID)
	}
	return download, nil
}

// Installer installs modpack files into a single game directory
type Installer struct {
	destDir string
	curse   *curse.Client
	http    *http.Client
}

// New returns an installer working on destDir
func New(destDir string, curseClient *curse.Client) *Installer {
	return &Installer{
		destDir: destDir,
		curse:   curseClient,
		http:    http.DefaultClient,
	}
}

func (in *Installer) modsDir() string {
	return filepath.Join(in.destDir, "mods")
}

func (in *Installer) fileTypeDir(t FileType) string {
	switch t {
	case TypeResource:
		return filepath.Join(in.destDir, "resourcepacks")
	case TypeShaders:
		return filepath.Join(in.destDir, "shaderpacks")
	case TypeDatapack:
		return filepath.Join(in.destDir, "config", "openloader", "data")
	default:
		return in.modsDir()
	}
}

func (in *Installer) filePath(f *FileDownload) string {
	return filepath.Join(in.fileTypeDir(f.FileType), f.FileName)
}

// InstallBlocked copies a manually downloaded file into its place in the
// game directory
func (in *Installer) InstallBlocked(file *FileDownload, srcPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	target := in.filePath(file)
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0644)
}

// InstallPack installs the files of a modpack version. Returns the
// relative paths of every installed (or already present) file and the
// list of downloads the user has to do manually
func (in *Installer) InstallPack(ctx context.Context, pack *modpacksch.VersionManifest, server bool, progress downloadmgr.Progress) ([]string, []FileDownload, error) {
	packFiles := make([]modpacksch.File, 0, len(pack.Files))
	for _, f := range pack.Files {
		if server && f.ClientOnly {
			continue
		}
		packFiles = append(packFiles, f)
	}

	var installed []string

	for _, f := range packFiles {
		if f.URL == "" {
			continue
		}

		// curse packs from modpacks.ch can include a single asset file
		// which is the full curse zip, download and extract its overrides
		if f.Type == "cf-extract" {
			overrides, err := in.installNestedPack(ctx, f.URL, f.Name)
			if err != nil {
				return nil, nil, err
			}
			installed = append(installed, overrides...)
			continue
		}

		target := filepath.Join(in.destDir, filepath.FromSlash(f.Path), f.Name)

		// save time/bandwidth and skip download if dest file exists
		if _, err := os.Stat(target); err != nil {
			item := downloadmgr.NewHTTPItem(f.URL, target)
			item.Client = in.http
			item.Sha1 = f.Sha1
			if err := item.Download(ctx); err != nil {
				return nil, nil, err
			}
		}

		installed = append(installed, filepath.Join(filepath.FromSlash(f.Path), f.Name))
	}

	var fileIDs, projectIDs []uint32
	for _, f := range packFiles {
		if f.CurseForge != nil {
			fileIDs = append(fileIDs, f.CurseForge.FileID)
			projectIDs = append(projectIDs, f.CurseForge.ProjectID)
		}
	}

	return in.downloadCurseFiles(ctx, fileIDs, projectIDs, installed, progress)
}

// InstallPackZip installs a local CurseForge pack zip: overrides first,
// then the referenced CurseForge files
func (in *Installer) InstallPackZip(ctx context.Context, pack *PackZip, progress downloadmgr.Progress) ([]string, []FileDownload, error) {
	if err := pack.CopyGameData(in.destDir); err != nil {
		return nil, nil, err
	}
	installed, err := pack.ListOverrides()
	if err != nil {
		return nil, nil, err
	}

	return in.downloadCurseFiles(ctx, pack.Manifest.FileIDs(), pack.Manifest.ProjectIDs(), installed, progress)
}

// InstallCurseForgeFile installs a single file from CurseForge. The
// returned download list is non-empty when the file needs a manual download
func (in *Installer) InstallCurseForgeFile(ctx context.Context, modID uint32, fileID uint32, progress downloadmgr.Progress) ([]FileDownload, error) {
	_, blocked, err := in.downloadCurseFiles(ctx, []uint32{fileID}, []uint32{modID}, nil, progress)
	return blocked, err
}

func (in *Installer) installNestedPack(ctx context.Context, url string, name string) ([]string, error) {
	tempFile := filepath.Join(os.TempDir(), name)
	item := downloadmgr.NewHTTPItem(url, tempFile)
	item.Client = in.http
	if err := item.Download(ctx); err != nil {
		return nil, err
	}
	defer os.Remove(tempFile)

	pack, err := LoadPackZip(tempFile)
	if err != nil {
		return nil, err
	}
	defer pack.Close()

	if err := pack.CopyGameData(in.destDir); err != nil {
		return nil, err
	}
	return pack.ListOverrides()
}

func (in *Installer) downloadCurseFiles(ctx context.Context, fileIDs []uint32, projectIDs []uint32, installed []string, progress downloadmgr.Progress) ([]string, []FileDownload, error) {
	files, err := in.curse.Files(ctx, fileIDs)
	if err != nil {
		return nil, nil, err
	}
	mods, err := in.curse.Mods(ctx, projectIDs)
	if err != nil {
		return nil, nil, err
	}

	if len(files) != len(mods) {
		return nil, nil, &ErrPairingMismatch{FileCount: len(files), ModCount: len(mods)}
	}

	// sort the lists so they can be zipped into pairs
	sort.Slice(files, func(i, j int) bool { return files[i].ModID < files[j].ModID })
	sort.Slice(mods, func(i, j int) bool { return mods[i].ModID < mods[j].ModID })

	downloads := make([]FileDownload, 0, len(files))
	for i := range files {
		download, err := NewFileDownload(&files[i], &mods[i])
		if err != nil {
			return nil, nil, err
		}
		downloads = append(downloads, download)
	}

	var blocked []FileDownload
	mgr := downloadmgr.DownloadManager{Label: "Downloading mods", Progress: progress}

	// create the mods dir even when every download is manual
	if err := os.MkdirAll(in.modsDir(), os.ModePerm); err != nil {
		return nil, nil, err
	}

	for i := range downloads {
		download := &downloads[i]
		if !download.CanAutoDownload {
			blocked = append(blocked, *download)
			continue
		}

		target := in.filePath(download)
		// save time/bandwidth and skip download if dest file exists
		if _, err := os.Stat(target); err == nil {
			continue
		}

		item := downloadmgr.NewHTTPItem(download.URL, target)
		item.Client = in.http
		mgr.Add(item)
	}

	if err := mgr.Start(ctx); err != nil {
		return nil, nil, err
	}

	// every paired file counts as installed, blocked ones included, so a
	// later reconcile doesn't delete manually installed files
	for i := range downloads {
		rel, err := filepath.Rel(in.destDir, in.filePath(&downloads[i]))
		if err != nil {
			return nil, nil, err
		}
		installed = append(installed, rel)
	}

	return installed, blocked, nil
}

// CleanPackFiles removes files that were part of the previous pack
// version but are gone from the new file list
func (in *Installer) CleanPackFiles(oldFiles []string, newFiles []string) error {
	return RemoveDiffFiles(in.destDir, oldFiles, newFiles)
}

// RemoveDiffFiles deletes every file of oldFiles (relative to root) that
// is not in newFiles. Files already gone are skipped silently
func RemoveDiffFiles(root string, oldFiles []string, newFiles []string) error {
	keep := make(map[string]struct{}, len(newFiles))
	for _, f := range newFiles {
		keep[filepath.Clean(f)] = struct{}{}
	}

	for _, f := range oldFiles {
		if _, ok := keep[filepath.Clean(f)]; ok {
			continue
		}
		err := os.Remove(filepath.Join(root, f))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
