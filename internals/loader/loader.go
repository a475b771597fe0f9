// Package loader models Forge and NeoForge mod loader manifests as served
// by the PrismLauncher meta service.
package loader

import (
	"fmt"
	"strings"
)

// Name is a supported mod loader name
type Name string

const (
	// Forge is the classic Minecraft Forge loader
	Forge Name = "forge"
	// NeoForge is the Forge fork started in 2023
	NeoForge Name = "neoforge"
)

// ParseName parses a mod loader name
func ParseName(s string) (Name, error) {
	switch strings.ToLower(s) {
	case "forge":
		return Forge, nil
	case "neoforge":
		return NeoForge, nil
	}
	return "", fmt.Errorf("invalid mod loader name %q", s)
}

// ModLoader is a loader selection (name plus version)
type ModLoader struct {
	Name    Name   `json:"name"`
	Version string `json:"version"`
}

// ParseID parses a loader id in the "[name]-[version]" format
// used by modpack manifests (e.g. "forge-47.2.0")
func ParseID(id string) (ModLoader, error) {
	name, version, ok := strings.Cut(id, "-")
	if !ok {
		return ModLoader{}, fmt.Errorf("invalid mod loader id format %q; expected [name]-[version]", id)
	}

	parsed, err := ParseName(name)
	if err != nil {
		return ModLoader{}, err
	}

	return ModLoader{Name: parsed, Version: version}, nil
}

// ID returns the "[name]-[version]" form of the selection
func (m ModLoader) ID() string {
	return string(m.Name) + "-" + m.Version
}

// CacheName returns the file name used to cache the resolved manifest
func (m ModLoader) CacheName() string {
	return fmt.Sprintf("%s_%s.json", m.Name, m.Version)
}
