package loader

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/packsmith/packsmith/internals/minecraft"
)

// Manifest is a PrismLauncher style mod loader manifest. The meta service
// serves two structurally different payloads under the same endpoint:
// modern loaders carry a library list and main class ("Current"), ancient
// Forge builds carry a list of jar mods that have to be merged into the
// vanilla client jar ("Legacy"). Exactly one of Current/Legacy is set
type Manifest struct {
	Traits      []string      `json:"+traits,omitempty"`
	Tweakers    []string      `json:"+tweakers,omitempty"`
	Name        string        `json:"name"`
	ReleaseTime string        `json:"releaseTime"`
	Requires    []Requirement `json:"requires"`
	UID         string        `json:"uid"`
	Version     string        `json:"version"`

	Current *Current `json:"-"`
	Legacy  *Legacy  `json:"-"`
}

// Current is the distribution shape of modern loader versions
type Current struct {
	Libraries          []Library `json:"libraries"`
	MainClass          string    `json:"mainClass"`
	MavenFiles         []Library `json:"mavenFiles,omitempty"`
	MinecraftArguments string    `json:"minecraftArguments,omitempty"`
}

// Legacy is the distribution shape of jar-mod era Forge versions.
// FmlLibs is never present in the remote manifest, it is populated from
// the embedded tables after resolution
type Legacy struct {
	JarMods []Library `json:"jarMods"`
	FmlLibs []Library `json:"fmlLibs,omitempty"`
}

// Requirement pins a dependency of the loader version (e.g. net.minecraft)
type Requirement struct {
	UID    string `json:"uid"`
	Equals string `json:"equals"`
}

// UnmarshalJSON probes the payload structure to decide between the
// Current and Legacy distribution variants
func (m *Manifest) UnmarshalJSON(data []byte) error {
	type plain Manifest
	var head plain
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	*m = Manifest(head)

	var legacy Legacy
	if err := json.Unmarshal(data, &legacy); err == nil && legacy.JarMods != nil {
		m.Legacy = &legacy
		return nil
	}

	var current Current
	if err := json.Unmarshal(data, &current); err != nil {
		return err
	}
	if current.MainClass == "" && current.Libraries == nil {
		return fmt.Errorf("loader manifest %s is neither a library list nor a jar mod list", m.Name)
	}
	m.Current = &current
	return nil
}

// MarshalJSON keeps the variant fields inline, mirroring the wire format
func (m Manifest) MarshalJSON() ([]byte, error) {
	type plain Manifest
	head, err := json.Marshal(plain(m))
	if err != nil {
		return nil, err
	}

	var variant []byte
	switch {
	case m.Legacy != nil:
		variant, err = json.Marshal(m.Legacy)
	case m.Current != nil:
		variant, err = json.Marshal(m.Current)
	default:
		return head, nil
	}
	if err != nil {
		return nil, err
	}

	// merge the two objects
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(head, &merged); err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(variant, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// MinecraftVersion returns the Minecraft version this loader version requires
func (m *Manifest) MinecraftVersion() (string, error) {
	for _, req := range m.Requires {
		if req.UID == "net.minecraft" {
			return req.Equals, nil
		}
	}
	return "", fmt.Errorf("missing 'net.minecraft' in loader manifest requires list")
}

// DownloadLibraries returns every library the loader distribution needs
// in the shared library store
func (m *Manifest) DownloadLibraries() []Library {
	var downloads []Library
	switch {
	case m.Legacy != nil:
		downloads = append(downloads, m.Legacy.JarMods...)
		downloads = append(downloads, m.Legacy.FmlLibs...)
	case m.Current != nil:
		downloads = append(downloads, m.Current.Libraries...)
		downloads = append(downloads, m.Current.MavenFiles...)
	}
	return downloads
}

// Library is a loader library entry. The meta service uses two shapes:
// one with a "downloads" object and one with just a repository "url"
// (or nothing, defaulting to the Mojang library mirror)
type Library struct {
	Name      string     `json:"name"`
	Downloads *Downloads `json:"downloads,omitempty"`
	URL       string     `json:"url,omitempty"`
}

// Downloads wraps the direct artifact of a library
type Downloads struct {
	Artifact Artifact `json:"artifact"`
}

// Artifact is a downloadable loader library file
type Artifact struct {
	// Path is missing for a few artifacts (ForgeWrapper, forge installers),
	// it is then derived from the URL
	Path string      `json:"path,omitempty"`
	Sha1 string      `json:"sha1"`
	Size json.Number `json:"size"`
	URL  string      `json:"url"`
}

// AssetPath returns the library path relative to the shared library store
func (l *Library) AssetPath() (string, error) {
	if l.Downloads != nil {
		return l.Downloads.Artifact.AssetPath()
	}
	return minecraft.PathFromName(l.Name)
}

// DownloadURL returns the URL the library is fetched from
func (l *Library) DownloadURL() (string, error) {
	if l.Downloads != nil {
		return l.Downloads.Artifact.URL, nil
	}

	path, err := l.AssetPath()
	if err != nil {
		return "", err
	}

	if l.URL != "" {
		return strings.TrimSuffix(l.URL, "/") + "/" + path, nil
	}
	return "https://libraries.minecraft.net/" + path, nil
}

// AssetPath returns the artifact's path field, or extracts the path from
// the URL when the path field is missing
func (a *Artifact) AssetPath() (string, error) {
	if a.Path != "" {
		return a.Path, nil
	}

	u, err := url.Parse(a.URL)
	if err != nil {
		return "", fmt.Errorf("deriving path for artifact: %w", err)
	}

	// strip "/maven/" from files.prismlauncher.org URLs,
	// plain "/" from maven.minecraftforge.net URLs
	if path, ok := strings.CutPrefix(u.Path, "/maven/"); ok {
		return path, nil
	}
	return strings.TrimPrefix(u.Path, "/"), nil
}
