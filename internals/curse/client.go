package curse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultAPIURL = "https://api.curseforge.com/v1/"

// minecraft's game id in the CurseForge API
const minecraftGameID = 432

// Client is a CurseForge v1 API client. All endpoints require an API key
type Client struct {
	HTTP   *http.Client
	APIURL string
	APIKey string
}

// NewClient returns a client using the given http client (nil for
// http.DefaultClient) and API key
func NewClient(httpClient *http.Client, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		HTTP:   httpClient,
		APIURL: defaultAPIURL,
		APIKey: apiKey,
	}
}

func post[T any](ctx context.Context, c *Client, uri string, body interface{}) (T, error) {
	var parsed response[T]

	raw, err := json.Marshal(body)
	if err != nil {
		return parsed.Data, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.APIURL+uri, bytes.NewReader(raw))
	if err != nil {
		return parsed.Data, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return parsed.Data, err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return parsed.Data, fmt.Errorf("invalid status code: %s from %s", res.Status, c.APIURL+uri)
	}

	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return parsed.Data, fmt.Errorf("parsing response from %s: %w", uri, err)
	}
	return parsed.Data, nil
}

// Files fetches file metadata for the given file ids
func (c *Client) Files(ctx context.Context, fileIDs []uint32) ([]File, error) {
	// avoid 400 bad request
	if len(fileIDs) == 0 {
		return nil, nil
	}

	files, err := post[[]File](ctx, c, "mods/files", map[string][]uint32{"fileIds": fileIDs})
	if err != nil {
		return nil, err
	}

	// randomly curseforge returns duplicate entries, remove consecutive
	// duplicates the same way slices dedup would
	deduped := files[:0]
	for i, file := range files {
		if i > 0 && file.ModID == files[i-1].ModID {
			continue
		}
		deduped = append(deduped, file)
	}

	return deduped, nil
}

// Mods fetches project metadata for the given mod ids
func (c *Client) Mods(ctx context.Context, modIDs []uint32) ([]Mod, error) {
	// avoid 400 bad request
	if len(modIDs) == 0 {
		return nil, nil
	}

	return post[[]Mod](ctx, c, "mods", map[string][]uint32{"modIds": modIDs})
}

// Fingerprints looks up files by their murmur2 fingerprints
func (c *Client) Fingerprints(ctx context.Context, fingerprints []uint32) (*FingerprintMatches, error) {
	uri := fmt.Sprintf("fingerprints/%d", minecraftGameID)

	matches, err := post[FingerprintMatches](ctx, c, uri, map[string][]uint32{"fingerprints": fingerprints})
	if err != nil {
		return nil, err
	}
	return &matches, nil
}
