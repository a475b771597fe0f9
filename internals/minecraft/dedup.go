package minecraft

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidLibraryPath is returned when a library path does not have the
// expected <group…>/<version>/<artifact> shape
type ErrInvalidLibraryPath struct {
	Path string
}

func (e *ErrInvalidLibraryPath) Error() string {
	return fmt.Sprintf("expected library path %q in format '<_>/<version>/<artifact>'", e.Path)
}

// sentinelVersion is used for version segments that are not parseable as
// SemVer. Such entries always win over parseable siblings instead of crashing
var sentinelVersion = semver.New(9, 9, 9, "", "")

// DedupLibraries collapses multiple versions of the same artifact down to
// the highest SemVer, keeping only one classpath entry per artifact.
//
// Native jars have the same artifact path and version as their companion
// jar and would get incorrectly removed in the dedup process. This naive
// approach splits native jars, assuming these jars will always have the
// substring "natives" in the path, and includes them after the dedup
// process is complete
func DedupLibraries(libs []string) ([]string, error) {
	natives := make([]string, 0, len(libs))
	nonNatives := make([]string, 0, len(libs))
	for _, path := range libs {
		if strings.Contains(path, "natives") {
			natives = append(natives, path)
		} else {
			nonNatives = append(nonNatives, path)
		}
	}

	type entry struct {
		version *semver.Version
		path    string
	}
	libMap := make(map[string]entry)

	for _, path := range nonNatives {
		idx := strings.LastIndex(path, "/")
		if idx < 0 {
			return nil, &ErrInvalidLibraryPath{Path: path}
		}
		rest := path[:idx]

		idx = strings.LastIndex(rest, "/")
		if idx < 0 {
			return nil, &ErrInvalidLibraryPath{Path: path}
		}
		artifactID, sversion := rest[:idx], rest[idx+1:]

		// some paths don't have a valid version
		// e.g. "mmc2" -> io/github/zekerzhayard/ForgeWrapper/mmc2/ForgeWrapper-mmc2.jar
		// for these, lets invent some meaningless version instead of crashing.
		// fingers crossed these types of libs will never have duplicates
		version := ParseVersionLenient(sversion)

		if existing, ok := libMap[artifactID]; ok {
			if existing.version.Compare(version) <= 0 {
				libMap[artifactID] = entry{version, path}
			}
		} else {
			libMap[artifactID] = entry{version, path}
		}
	}

	result := make([]string, 0, len(libMap)+len(natives))
	for _, e := range libMap {
		result = append(result, e.path)
	}
	result = append(result, natives...)

	return result, nil
}

// ParseVersionLenient parses a version string as SemVer, substituting the
// 9.9.9 sentinel when the string is not parseable at all
func ParseVersionLenient(s string) *semver.Version {
	v, err := semver.NewVersion(s)
	if err != nil {
		return sentinelVersion
	}
	return v
}
