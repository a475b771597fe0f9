// Package assets resolves and caches Minecraft version metadata and keeps
// the shared asset, library and version stores filled.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/packsmith/packsmith/internals/loader"
	"github.com/packsmith/packsmith/internals/minecraft"
)

const (
	defaultVersionManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	defaultForgeIndexURL      = "https://meta.prismlauncher.org/v1/net.minecraftforge/index.json"
	defaultNeoForgeIndexURL   = "https://meta.prismlauncher.org/v1/net.neoforged/index.json"
)

// Client fetches version metadata from the Mojang and PrismLauncher meta
// services. The URL fields exist so tests can point it at a local server
type Client struct {
	HTTP *http.Client

	VersionManifestURL string
	ForgeIndexURL      string
	NeoForgeIndexURL   string
}

// NewClient returns a Client using the given http client (pass nil for
// http.DefaultClient)
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		HTTP:               httpClient,
		VersionManifestURL: defaultVersionManifestURL,
		ForgeIndexURL:      defaultForgeIndexURL,
		NeoForgeIndexURL:   defaultNeoForgeIndexURL,
	}
}

// ErrVersionNotFound is returned when the Mojang version index has no
// entry for the requested version
type ErrVersionNotFound struct {
	ID string
}

func (e *ErrVersionNotFound) Error() string {
	return fmt.Sprintf("minecraft version %q not found", e.ID)
}

// ErrLoaderVersionNotFound is returned when the meta service index has no
// entry for the requested loader version
type ErrLoaderVersionNotFound struct {
	Loader loader.ModLoader
}

func (e *ErrLoaderVersionNotFound) Error() string {
	return fmt.Sprintf("%s version %q not found", e.Loader.Name, e.Loader.Version)
}

func (c *Client) fetchJSON(ctx context.Context, url string, v interface{}) error {
	data, err := c.fetchBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing response from %s: %w", url, err)
	}
	return nil
}

func (c *Client) fetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return nil, fmt.Errorf("invalid status code: %s from %s", res.Status, url)
	}
	return io.ReadAll(res.Body)
}

// VersionIndex fetches the Mojang version index
func (c *Client) VersionIndex(ctx context.Context) (*minecraft.VersionIndex, error) {
	var index minecraft.VersionIndex
	if err := c.fetchJSON(ctx, c.VersionManifestURL, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

// GameManifestJSON fetches the raw version.json document for the given
// Minecraft version
func (c *Client) GameManifestJSON(ctx context.Context, mcVersion string) ([]byte, error) {
	index, err := c.VersionIndex(ctx)
	if err != nil {
		return nil, err
	}

	entry := index.Find(mcVersion)
	if entry == nil {
		return nil, &ErrVersionNotFound{ID: mcVersion}
	}

	return c.fetchBytes(ctx, entry.URL)
}

func (c *Client) loaderIndexURL(name loader.Name) string {
	if name == loader.NeoForge {
		return c.NeoForgeIndexURL
	}
	return c.ForgeIndexURL
}

type loaderIndex struct {
	Versions []loaderIndexEntry `json:"versions"`
}

type loaderIndexEntry struct {
	Recommended bool                 `json:"recommended"`
	ReleaseTime string               `json:"releaseTime"`
	Requires    []loader.Requirement `json:"requires"`
	Version     string               `json:"version"`
}

func (e *loaderIndexEntry) forMinecraft(mcVersion string) bool {
	for _, req := range e.Requires {
		if req.UID == "net.minecraft" && req.Equals == mcVersion {
			return true
		}
	}
	return false
}

// LoaderManifestJSON fetches the raw loader manifest document for the
// given loader version. The version is checked against the index first so
// an unknown version fails with a useful error instead of a 404
func (c *Client) LoaderManifestJSON(ctx context.Context, sel loader.ModLoader) ([]byte, error) {
	indexURL := c.loaderIndexURL(sel.Name)

	var index loaderIndex
	if err := c.fetchJSON(ctx, indexURL, &index); err != nil {
		return nil, err
	}

	found := false
	for _, entry := range index.Versions {
		if entry.Version == sel.Version {
			found = true
			break
		}
	}
	if !found {
		return nil, &ErrLoaderVersionNotFound{Loader: sel}
	}

	url := strings.Replace(indexURL, "index.json", sel.Version+".json", 1)
	return c.fetchBytes(ctx, url)
}

// LoaderVersion is one installable loader version for a Minecraft version
type LoaderVersion struct {
	Version     string
	Recommended bool
}

// LoaderVersions lists the loader versions available for the given
// Minecraft version, newest first
func (c *Client) LoaderVersions(ctx context.Context, name loader.Name, mcVersion string) ([]LoaderVersion, error) {
	var index loaderIndex
	if err := c.fetchJSON(ctx, c.loaderIndexURL(name), &index); err != nil {
		return nil, err
	}

	var versions []LoaderVersion
	for _, entry := range index.Versions {
		if entry.forMinecraft(mcVersion) {
			versions = append(versions, LoaderVersion{
				Version:     entry.Version,
				Recommended: entry.Recommended,
			})
		}
	}

	sort.Slice(versions, func(i, j int) bool {
		a := minecraft.ParseVersionLenient(versions[i].Version)
		b := minecraft.ParseVersionLenient(versions[j].Version)
		return a.GreaterThan(b)
	})

	return versions, nil
}
