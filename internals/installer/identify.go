package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/packsmith/packsmith/internals/curse"
)

// InstalledMod is a file in the mods directory matched against CurseForge
// by its fingerprint. ModID is 0 when the fingerprint matched nothing
// (hand-installed or non-CurseForge jars)
type InstalledMod struct {
	FileName    string
	Fingerprint uint32
	ModID       uint32
	FileID      uint32
}

// IdentifyMods fingerprints every file in the mods directory and resolves
// the fingerprints against CurseForge. A missing mods directory yields an
// empty list
func (in *Installer) IdentifyMods(ctx context.Context) ([]InstalledMod, error) {
	entries, err := os.ReadDir(in.modsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var mods []InstalledMod
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		hash, err := curse.FingerprintFile(filepath.Join(in.modsDir(), entry.Name()))
		if err != nil {
			return nil, err
		}
		mods = append(mods, InstalledMod{FileName: entry.Name(), Fingerprint: hash})
	}
	if len(mods) == 0 {
		return nil, nil
	}

	fingerprints := make([]uint32, len(mods))
	for i := range mods {
		fingerprints[i] = mods[i].Fingerprint
	}

	matches, err := in.curse.Fingerprints(ctx, fingerprints)
	if err != nil {
		return nil, err
	}

	for i := range mods {
		for _, match := range matches.ExactMatches {
			if match.File.Fingerprint == mods[i].Fingerprint {
				mods[i].ModID = match.File.ModID
				mods[i].FileID = match.File.FileID
				break
			}
		}
	}

	return mods, nil
}

// RemoveMod deletes the installed file of the given mod. Used to drop the
// old version before installing a newer file of the same mod
func (in *Installer) RemoveMod(mods []InstalledMod, modID uint32) error {
	for _, mod := range mods {
		if mod.ModID == modID {
			return os.Remove(filepath.Join(in.modsDir(), mod.FileName))
		}
	}
	return nil
}
