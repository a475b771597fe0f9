// Package modpacksch talks to the modpacks.ch / Feed the Beast modpack APIs.
package modpacksch

import (
	"fmt"

	"github.com/packsmith/packsmith/internals/loader"
)

// Search is the result of a modpack search
// https://api.modpacks.ch/public/modpack/search/{limit}?term={term}
type Search struct {
	PackIDs       []uint32 `json:"packs"`
	CurseForgeIDs []uint32 `json:"curseforge"`
	Total         uint32   `json:"total"`
	Limit         uint32   `json:"limit"`
	Refreshed     uint64   `json:"refreshed"`
}

// PackManifest describes a modpack and its published versions
// https://api.modpacks.ch/public/modpack/{pack_id}
type PackManifest struct {
	PackID      uint32        `json:"id"`
	Name        string        `json:"name"`
	Synopsis    string        `json:"synopsis"`
	Description string        `json:"description"`
	Authors     []Author      `json:"authors"`
	Versions    []PackVersion `json:"versions"`
	ReleaseType string        `json:"type"`
	Provider    string        `json:"provider"`
}

// Author of a modpack
type Author struct {
	ID      int32  `json:"id"`
	Website string `json:"website"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Updated uint64 `json:"updated"`
}

// PackVersion is one published version of a modpack
type PackVersion struct {
	VersionID   uint32   `json:"id"`
	Name        string   `json:"name"`
	ReleaseType string   `json:"type"`
	Updated     uint64   `json:"updated"`
	Private     bool     `json:"private,omitempty"`
	Specs       *Specs   `json:"specs,omitempty"`
	Targets     []Target `json:"targets"`
}

// Specs are the pack's memory requirements in MB
type Specs struct {
	ID          int32  `json:"id"`
	Minimum     uint32 `json:"minimum"`
	Recommended uint32 `json:"recommended"`
}

// Target pins a runtime component of the pack (game, modloader, java)
type Target struct {
	ID      int32  `json:"id"`
	Version string `json:"version"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Updated uint64 `json:"updated"`
}

// VersionManifest is the full file list of one modpack version
// https://api.modpacks.ch/public/modpack/{pack_id}/{version_id}
type VersionManifest struct {
	VersionID   uint32   `json:"id"`
	PackID      uint32   `json:"parent"`
	Name        string   `json:"name"`
	Files       []File   `json:"files"`
	Specs       *Specs   `json:"specs,omitempty"`
	Targets     []Target `json:"targets"`
	ReleaseType string   `json:"type"`
}

// MinecraftVersion returns the Minecraft version the pack targets
func (m *VersionManifest) MinecraftVersion() (string, error) {
	for _, target := range m.Targets {
		if target.Name == "minecraft" {
			return target.Version, nil
		}
	}
	return "", fmt.Errorf("pack %q has no minecraft target", m.Name)
}

// ModLoader returns the pack's mod loader selection, or nil for vanilla packs
func (m *VersionManifest) ModLoader() (*loader.ModLoader, error) {
	for _, target := range m.Targets {
		if target.Type == "modloader" {
			name, err := loader.ParseName(target.Name)
			if err != nil {
				return nil, err
			}
			return &loader.ModLoader{Name: name, Version: target.Version}, nil
		}
	}
	return nil, nil
}

// File is one file of a modpack version. URL is empty for files that are
// not hosted directly, those carry a CurseForge reference instead
type File struct {
	ID         uint32         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Path       string         `json:"path"`
	URL        string         `json:"url"`
	Sha1       string         `json:"sha1"`
	Size       int64          `json:"size"`
	ClientOnly bool           `json:"clientonly"`
	ServerOnly bool           `json:"serveronly"`
	Optional   bool           `json:"optional"`
	Updated    uint64         `json:"updated"`
	CurseForge *CurseForgeRef `json:"curseforge,omitempty"`
}

// CurseForgeRef points at a file hosted on CurseForge
type CurseForgeRef struct {
	ProjectID uint32 `json:"project"`
	FileID    uint32 `json:"file"`
}
