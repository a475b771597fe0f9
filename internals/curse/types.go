// Package curse talks to the CurseForge v1 API.
package curse

// File is a single downloadable file of a mod
// https://docs.curseforge.com/#tocS_File
type File struct {
	FileID      uint32 `json:"id"`
	ModID       uint32 `json:"modId"`
	IsAvailable bool   `json:"isAvailable"`
	DisplayName string `json:"displayName"`
	FileName    string `json:"fileName"`
	FileSize    uint64 `json:"fileLength"`
	// DownloadURL is null when the author opted out of third party
	// distribution. Those files have to be downloaded manually
	DownloadURL *string `json:"downloadUrl"`
	Fingerprint uint32  `json:"fileFingerprint"`
}

// Mod is a CurseForge project
// https://docs.curseforge.com/#tocS_Mod
type Mod struct {
	ModID                uint32   `json:"id"`
	Slug                 string   `json:"slug"`
	Name                 string   `json:"name"`
	Links                ModLinks `json:"links"`
	ClassID              uint32   `json:"classId"`
	MainFileID           uint32   `json:"mainFileId"`
	AllowModDistribution *bool    `json:"allowModDistribution"`
}

// DistributionAllowed reports whether files of this mod may be fetched
// through the API. A missing field counts as allowed
func (m *Mod) DistributionAllowed() bool {
	return m.AllowModDistribution == nil || *m.AllowModDistribution
}

// ModLinks are the project's external links
type ModLinks struct {
	WebsiteURL string `json:"websiteUrl"`
	WikiURL    string `json:"wikiUrl"`
	IssuesURL  string `json:"issuesUrl"`
	SourceURL  string `json:"sourceUrl"`
}

// FingerprintMatches is the result of a fingerprint lookup
type FingerprintMatches struct {
	IsCacheBuilt      bool               `json:"isCacheBuilt"`
	ExactMatches      []FingerprintMatch `json:"exactMatches"`
	ExactFingerprints []uint32           `json:"exactFingerprints"`
}

// FingerprintMatch pairs a matched file with the mod's latest files
type FingerprintMatch struct {
	MatchID     uint32 `json:"id"`
	File        File   `json:"file"`
	LatestFiles []File `json:"latestFiles"`
}

type response[T any] struct {
	Data T `json:"data"`
}
