package modpacksch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	defaultAPIURL = "https://api.modpacks.ch/public/"
	// the FTB api serves the same documents but with fewer data glitches
	// (modpacks.ch gets the clientonly flag wrong for some packs)
	defaultFTBAPIURL = "https://api.feed-the-beast.com/v1/modpacks/modpack/"
)

// Client is a modpacks.ch / FTB API client
type Client struct {
	HTTP      *http.Client
	APIURL    string
	FTBAPIURL string
}

// NewClient returns a client using the given http client (nil for
// http.DefaultClient)
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		HTTP:      httpClient,
		APIURL:    defaultAPIURL,
		FTBAPIURL: defaultFTBAPIURL,
	}
}

func (c *Client) get(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return fmt.Errorf("invalid status code: %s from %s", res.Status, url)
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response from %s: %w", url, err)
	}
	return nil
}

// FTBPackVersions fetches the version list of an FTB pack
func (c *Client) FTBPackVersions(ctx context.Context, packID uint32) (*PackManifest, error) {
	var manifest PackManifest
	if err := c.get(ctx, fmt.Sprintf("%s%d", c.FTBAPIURL, packID), &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// FTBPack fetches the file list of one FTB pack version
func (c *Client) FTBPack(ctx context.Context, packID uint32, versionID uint32) (*VersionManifest, error) {
	var manifest VersionManifest
	if err := c.get(ctx, fmt.Sprintf("%s%d/%d", c.FTBAPIURL, packID, versionID), &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// CursePackVersions fetches the version list of a CurseForge pack through
// the modpacks.ch mirror
func (c *Client) CursePackVersions(ctx context.Context, packID uint32) (*PackManifest, error) {
	var manifest PackManifest
	if err := c.get(ctx, fmt.Sprintf("%scurseforge/%d", c.APIURL, packID), &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// CursePack fetches the file list of one CurseForge pack version
func (c *Client) CursePack(ctx context.Context, packID uint32, versionID uint32) (*VersionManifest, error) {
	var manifest VersionManifest
	if err := c.get(ctx, fmt.Sprintf("%scurseforge/%d/%d", c.APIURL, packID, versionID), &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// SearchPacks searches for modpacks by name. limit is capped to 50 by the API
func (c *Client) SearchPacks(ctx context.Context, term string, limit uint8) (*Search, error) {
	var search Search
	searchURL := fmt.Sprintf("%smodpack/search/%d?term=%s", c.APIURL, limit, url.QueryEscape(term))
	if err := c.get(ctx, searchURL, &search); err != nil {
		return nil, err
	}
	return &search, nil
}
