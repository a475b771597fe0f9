package minecraft

import (
	"encoding/json"
	"fmt"
)

// Library is a minecraft library
type Library struct {
	// Name is the maven style coordinate (group:artifact:version[:classifier])
	Name      string           `json:"name"`
	Downloads LibraryDownloads `json:"downloads,omitempty"`
	// Rules determine whether this library is included on the host platform
	Rules []Rule `json:"rules,omitempty"`
	// Natives maps an OS name to the classifier key of its native jar.
	// This field is no longer used after 1.19, newer versions extract
	// natives from the jar at runtime
	Natives map[string]string `json:"natives,omitempty"`
	Extract *ExtractRule      `json:"extract,omitempty"`
}

// LibraryDownloads holds the direct artifact and the per-classifier
// artifacts (native jars)
type LibraryDownloads struct {
	Artifact    *Artifact           `json:"artifact,omitempty"`
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

// Artifact is an object describing a "thing" that can be downloaded
type Artifact struct {
	// Path of the jar file relative to the libraries folder
	Path string      `json:"path"`
	Sha1 string      `json:"sha1"`
	Size json.Number `json:"size"`
	URL  string      `json:"url"`
}

// ExtractRule lists paths excluded when extracting a native jar
type ExtractRule struct {
	Exclude []string `json:"exclude"`
}

// RulesMatch reports whether this library is included for the given context.
// A library without rules is always included
func (l *Library) RulesMatch(ctx Context) bool {
	if len(l.Rules) == 0 {
		return true
	}
	return MatchLibraryRules(l.Rules, ctx)
}

// NativesArtifact returns the native classifier artifact for the context's
// OS, nil if the library has no natives, or an error if the natives map or
// classifiers are missing an entry for this platform
func (l *Library) NativesArtifact(ctx Context) (*Artifact, error) {
	if len(l.Natives) == 0 {
		return nil, nil
	}

	key, ok := l.Natives[ctx.OSName]
	if !ok {
		return nil, fmt.Errorf("os name %q not found in lib %s natives", ctx.OSName, l.Name)
	}

	if len(l.Downloads.Classifiers) == 0 {
		return nil, fmt.Errorf("lib %s missing classifiers object", l.Name)
	}

	artifact, ok := l.Downloads.Classifiers[key]
	if !ok {
		return nil, fmt.Errorf("expected key %q in lib %s classifiers", key, l.Name)
	}

	return &artifact, nil
}

// DownloadArtifacts returns every artifact this library contributes on the
// given platform: the direct artifact (if any) plus the native classifier
// (if any). A library with neither is malformed
func (l *Library) DownloadArtifacts(ctx Context) ([]*Artifact, error) {
	native, err := l.NativesArtifact(ctx)
	if err != nil {
		return nil, err
	}

	artifacts := make([]*Artifact, 0, 2)
	if l.Downloads.Artifact != nil {
		artifacts = append(artifacts, l.Downloads.Artifact)
	}
	if native != nil {
		artifacts = append(artifacts, native)
	}

	if len(artifacts) == 0 {
		return nil, fmt.Errorf("unhandled download for %s", l.Name)
	}

	return artifacts, nil
}

// RequiredLibraries filters libs down to the ones included on the given platform
func RequiredLibraries(libs []Library, ctx Context) []Library {
	required := make([]Library, 0, len(libs))
	for _, lib := range libs {
		if lib.RulesMatch(ctx) {
			required = append(required, lib)
		}
	}
	return required
}
