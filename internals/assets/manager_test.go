package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/packsmith/packsmith/internals/loader"
	"github.com/packsmith/packsmith/internals/minecraft"
)

func testManager(t *testing.T, handler http.Handler) (*Manager, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.Client())
	client.VersionManifestURL = server.URL + "/mc/game/version_manifest_v2.json"
	client.ForgeIndexURL = server.URL + "/v1/net.minecraftforge/index.json"
	client.NeoForgeIndexURL = server.URL + "/v1/net.neoforged/index.json"

	manager, err := NewManager(t.TempDir(), client)
	if err != nil {
		t.Fatal(err)
	}
	return manager, server
}

func TestGameManifestCaching(t *testing.T) {
	var fetches int64
	mux := http.NewServeMux()
	mux.HandleFunc("/mc/game/version_manifest_v2.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fetches, 1)
		fmt.Fprintf(w, `{"versions": [{"id": "1.20.1", "type": "release", "url": "http://%s/versions/1.20.1.json"}]}`, r.Host)
	})
	mux.HandleFunc("/versions/1.20.1.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fetches, 1)
		fmt.Fprint(w, `{
			"id": "1.20.1",
			"type": "release",
			"mainClass": "net.minecraft.client.main.Main",
			"assets": "5",
			"assetIndex": {"id": "5", "url": "http://unused/5.json"},
			"downloads": {"client": {"sha1": "a", "size": 1, "url": "http://unused/client.jar"}},
			"libraries": []
		}`)
	})

	manager, _ := testManager(t, mux)

	manifest, err := manager.GameManifest(context.Background(), "1.20.1")
	if err != nil {
		t.Fatal(err)
	}
	if manifest.MainClass != "net.minecraft.client.main.Main" {
		t.Errorf("MainClass = %q", manifest.MainClass)
	}

	after := atomic.LoadInt64(&fetches)
	if after != 2 {
		t.Fatalf("first resolve made %d requests, want 2", after)
	}

	// second resolve must be served from the cache file
	if _, err := manager.GameManifest(context.Background(), "1.20.1"); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt64(&fetches); got != after {
		t.Errorf("second resolve made %d extra requests", got-after)
	}
}

func TestGameManifestNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mc/game/version_manifest_v2.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"versions": []}`)
	})

	manager, _ := testManager(t, mux)

	_, err := manager.GameManifest(context.Background(), "9.9.9")
	notFound, ok := err.(*ErrVersionNotFound)
	if !ok {
		t.Fatalf("expected ErrVersionNotFound, got %v", err)
	}
	if notFound.ID != "9.9.9" {
		t.Errorf("ID = %q", notFound.ID)
	}
}

func TestLoaderManifestCaching(t *testing.T) {
	var manifestFetches int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/net.minecraftforge/index.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"versions": [
			{"version": "47.2.0", "recommended": true, "requires": [{"uid": "net.minecraft", "equals": "1.20.1"}]}
		]}`)
	})
	mux.HandleFunc("/v1/net.minecraftforge/47.2.0.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&manifestFetches, 1)
		fmt.Fprint(w, `{
			"name": "Forge",
			"uid": "net.minecraftforge",
			"version": "47.2.0",
			"requires": [{"uid": "net.minecraft", "equals": "1.20.1"}],
			"mainClass": "cpw.mods.bootstraplauncher.BootstrapLauncher",
			"libraries": []
		}`)
	})

	manager, _ := testManager(t, mux)
	sel := loader.ModLoader{Name: loader.Forge, Version: "47.2.0"}

	manifest, err := manager.LoaderManifest(context.Background(), sel)
	if err != nil {
		t.Fatal(err)
	}
	if manifest.Current == nil || manifest.Current.MainClass == "" {
		t.Fatalf("manifest variant not resolved: %+v", manifest)
	}

	if _, err := manager.LoaderManifest(context.Background(), sel); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt64(&manifestFetches); got != 1 {
		t.Errorf("loader manifest fetched %d times, want 1", got)
	}
}

func TestLoaderManifestUnknownVersion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/net.minecraftforge/index.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"versions": []}`)
	})

	manager, _ := testManager(t, mux)

	_, err := manager.LoaderManifest(context.Background(), loader.ModLoader{Name: loader.Forge, Version: "1.0.0"})
	if _, ok := err.(*ErrLoaderVersionNotFound); !ok {
		t.Fatalf("expected ErrLoaderVersionNotFound, got %v", err)
	}
}

func TestLoaderVersionsSorted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/net.minecraftforge/index.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"versions": [
			{"version": "47.1.3", "requires": [{"uid": "net.minecraft", "equals": "1.20.1"}]},
			{"version": "47.2.0", "recommended": true, "requires": [{"uid": "net.minecraft", "equals": "1.20.1"}]},
			{"version": "46.0.14", "requires": [{"uid": "net.minecraft", "equals": "1.20"}]}
		]}`)
	})

	manager, _ := testManager(t, mux)

	versions, err := manager.LoaderVersions(context.Background(), loader.Forge, "1.20.1")
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != 2 {
		t.Fatalf("versions = %+v, want 2 entries", versions)
	}
	if versions[0].Version != "47.2.0" || !versions[0].Recommended {
		t.Errorf("first version = %+v, want newest first", versions[0])
	}
}

func TestDownloadAssetsSkipsExisting(t *testing.T) {
	var downloads int64
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&downloads, 1)
		http.NotFound(w, r)
	})

	manager, server := testManager(t, mux)

	hash := "da39a3ee5e6b4b0d3255bfef95601890afd80709"
	target := filepath.Join(manager.ObjectsDir(), hash[:2], hash)
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	// empty file so the sha1 would actually match
	if err := os.WriteFile(target, nil, 0644); err != nil {
		t.Fatal(err)
	}

	raw := fmt.Sprintf(`{"objects": {"icons/icon_16x16.png": {"hash": %q, "size": 0}}}`, hash)
	var index minecraft.AssetIndex
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		t.Fatal(err)
	}

	if err := manager.DownloadAssets(context.Background(), &index, nil); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt64(&downloads); got != 0 {
		t.Errorf("existing object was re-downloaded (%d requests to %s)", got, server.URL)
	}
}

func TestApplyLibraryOverrides(t *testing.T) {
	raw := `{
		"id": "1.18",
		"downloads": {},
		"libraries": [
			{"name": "org.apache.logging.log4j:log4j-api:2.14.0"},
			{"name": "org.apache.logging.log4j:log4j-core:2.14.0"},
			{"name": "org.apache.logging.log4j:log4j-core:2.18.0"},
			{"name": "com.google.guava:guava:31.0-jre"}
		]
	}`

	var manifest minecraft.GameManifest
	if err := json.Unmarshal([]byte(raw), &manifest); err != nil {
		t.Fatal(err)
	}

	if err := ApplyLibraryOverrides(&manifest); err != nil {
		t.Fatal(err)
	}

	libs := manifest.Libraries
	if libs[0].Name != "org.apache.logging.log4j:log4j-api:2.17.1" {
		t.Errorf("api not pinned: %q", libs[0].Name)
	}
	if libs[1].Name != "org.apache.logging.log4j:log4j-core:2.17.1" {
		t.Errorf("core not pinned: %q", libs[1].Name)
	}
	if libs[1].Downloads.Artifact == nil || libs[1].Downloads.Artifact.Sha1 != "779f60f3844dadc3ef597976fcb1e5127b1f343d" {
		t.Errorf("pinned core artifact wrong: %+v", libs[1].Downloads)
	}
	if libs[2].Name != "org.apache.logging.log4j:log4j-core:2.18.0" {
		t.Errorf("2.18.0 should stay untouched: %q", libs[2].Name)
	}
	if libs[3].Name != "com.google.guava:guava:31.0-jre" {
		t.Errorf("unrelated lib touched: %q", libs[3].Name)
	}
}
