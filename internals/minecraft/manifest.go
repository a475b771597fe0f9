package minecraft

import "encoding/json"

// VersionIndex is the Mojang version manifest v2. It maps version ids to
// the per-version manifest documents
type VersionIndex struct {
	Versions []VersionIndexEntry `json:"versions"`
}

// VersionIndexEntry is one version in the index
type VersionIndexEntry struct {
	ID              string `json:"id"`
	ReleaseType     string `json:"type"`
	URL             string `json:"url"`
	Time            string `json:"time"`
	ReleaseTime     string `json:"releaseTime"`
	Sha1            string `json:"sha1"`
	ComplianceLevel int    `json:"complianceLevel"`
}

// Find returns the entry with the given version id, or nil
func (v *VersionIndex) Find(id string) *VersionIndexEntry {
	for i := range v.Versions {
		if v.Versions[i].ID == id {
			return &v.Versions[i]
		}
	}
	return nil
}

// GameManifest is a version.json manifest that is used to launch minecraft instances.
// Either Arguments (1.13+) or MinecraftArguments (legacy flat string) is set, never both
type GameManifest struct {
	// MinecraftArguments are used before 1.13
	MinecraftArguments string `json:"minecraftArguments,omitempty"`
	// Arguments is the new (complicated) system
	Arguments       *ArgumentsIndex     `json:"arguments,omitempty"`
	Downloads       map[string]Download `json:"downloads"`
	Libraries       []Library           `json:"libraries"`
	ID              string              `json:"id"`
	ReleaseType     string              `json:"type"`
	MainClass       string              `json:"mainClass"`
	Assets          string              `json:"assets"`
	AssetIndex      AssetIndexRef       `json:"assetIndex"`
	JavaVersion     *JavaVersion        `json:"javaVersion,omitempty"`
	ComplianceLevel int                 `json:"complianceLevel,omitempty"`
	ReleaseTime     string              `json:"releaseTime,omitempty"`
	Time            string              `json:"time,omitempty"`
}

// ArgumentsIndex holds the rule gated jvm & game argument lists
type ArgumentsIndex struct {
	Game Arguments `json:"game"`
	JVM  Arguments `json:"jvm"`
}

// AssetIndexRef points at the asset index document for a version
type AssetIndexRef struct {
	ID        string `json:"id"`
	Sha1      string `json:"sha1"`
	Size      int    `json:"size"`
	TotalSize int    `json:"totalSize"`
	URL       string `json:"url"`
}

// Download is a downloadable file (client/server jar, log config …)
type Download struct {
	Sha1 string      `json:"sha1"`
	Size json.Number `json:"size"`
	URL  string      `json:"url"`
}

// JavaVersion is the java runtime required by a version
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}
