package minecraft

// AssetIndex is the per-version index of asset objects
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
	// Virtual assets are copied to assets/virtual/<index-id> before launch
	Virtual bool `json:"virtual,omitempty"`
	// MapToResources assets are copied into the game "resources" dir
	MapToResources bool `json:"map_to_resources,omitempty"`
}

// AssetObject is one minecraft asset, stored content addressed
type AssetObject struct {
	Hash string `json:"hash"`
	Size int    `json:"size"`
}

// UnixPath returns the path inside the objects folder
// example: fe/fe32f3b8…
func (a *AssetObject) UnixPath() string {
	return a.Hash[:2] + "/" + a.Hash
}

// DownloadURL returns the download url for this asset
func (a *AssetObject) DownloadURL() string {
	return "https://resources.download.minecraft.net/" + a.UnixPath()
}
