package assets

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/packsmith/packsmith/internals/minecraft"
)

// This logic is taken from the PrismLauncher meta data generator
// https://github.com/PrismLauncher/meta/blob/44d7582f91ae87fdf9d99ef8715e6a5562b5a715/generateMojang.py
// in response to the nasty log4j vulnerability. The Forge meta data
// doesn't include log4j at all, so patching the game manifest covers
// modded instances too
var log4jRange = mustConstraint(">2.0.0, <2.17.1")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ApplyLibraryOverrides replaces vulnerable log4j libraries in the
// manifest with pinned 2.17.1 builds
func ApplyLibraryOverrides(manifest *minecraft.GameManifest) error {
	for i := range manifest.Libraries {
		name := manifest.Libraries[i].Name
		parts := strings.Split(name, ":")
		if len(parts) < 3 {
			return fmt.Errorf("invalid library name %q", name)
		}
		groupID, artifact, sversion := parts[0], parts[1], parts[2]

		if groupID != "org.apache.logging.log4j" {
			continue
		}

		version, err := semver.NewVersion(sversion)
		if err != nil {
			return fmt.Errorf("unable to parse log4j version %q: %w", sversion, err)
		}

		if artifact == "log4j-api" && log4jRange.Check(version) {
			manifest.Libraries[i] = log4jAPI2171()
		}
		if artifact == "log4j-core" && log4jRange.Check(version) {
			manifest.Libraries[i] = log4jCore2171()
		}
	}
	return nil
}

func mustParseLibrary(raw string) minecraft.Library {
	var lib minecraft.Library
	if err := json.Unmarshal([]byte(raw), &lib); err != nil {
		panic("overrides: invalid embedded library: " + err.Error())
	}
	return lib
}

func log4jAPI2171() minecraft.Library {
	return mustParseLibrary(`{
		"downloads": {
			"artifact": {
				"path": "org/apache/logging/log4j/log4j-api/2.17.1/log4j-api-2.17.1.jar",
				"sha1": "d771af8e336e372fb5399c99edabe0919aeaf5b2",
				"size": 301872,
				"url": "https://repo1.maven.org/maven2/org/apache/logging/log4j/log4j-api/2.17.1/log4j-api-2.17.1.jar"
			}
		},
		"name": "org.apache.logging.log4j:log4j-api:2.17.1"
	}`)
}

func log4jCore2171() minecraft.Library {
	return mustParseLibrary(`{
		"downloads": {
			"artifact": {
				"path": "org/apache/logging/log4j/log4j-core/2.17.1/log4j-core-2.17.1.jar",
				"sha1": "779f60f3844dadc3ef597976fcb1e5127b1f343d",
				"size": 1790452,
				"url": "https://repo1.maven.org/maven2/org/apache/logging/log4j/log4j-core/2.17.1/log4j-core-2.17.1.jar"
			}
		},
		"name": "org.apache.logging.log4j:log4j-core:2.17.1"
	}`)
}
