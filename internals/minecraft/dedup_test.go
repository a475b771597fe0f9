package minecraft

import (
	"errors"
	"sort"
	"testing"
)

func dedupSorted(t *testing.T, input []string) []string {
	t.Helper()
	result, err := DedupLibraries(input)
	if err != nil {
		t.Fatalf("DedupLibraries() error = %v", err)
	}
	sort.Strings(result)
	return result
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDedupLibrariesSimple(t *testing.T) {
	input := []string{"a/b/1.2.3/b-1.2.3.jar", "a/b/1.2.4/b-1.2.4.jar"}
	result := dedupSorted(t, input)
	if !equalSlices(result, []string{"a/b/1.2.4/b-1.2.4.jar"}) {
		t.Errorf("DedupLibraries() = %v", result)
	}
}

func TestDedupLibrariesSemverOrder(t *testing.T) {
	// a pure string comparison would incorrectly prefer 45.1.2
	input := []string{"a/b/45.1.2/b-45.1.2.jar", "a/b/45.1.16/b-45.1.16.jar"}
	result := dedupSorted(t, input)
	if !equalSlices(result, []string{"a/b/45.1.16/b-45.1.16.jar"}) {
		t.Errorf("DedupLibraries() = %v", result)
	}
}

func TestDedupLibrariesWackyVersion(t *testing.T) {
	input := []string{
		"net/minecraftforge/forge/1.7.10-10.13.4.1566-1.7.10/forge-1.7.10-10.13.4.1566-1.7.10-universal.jar",
		"net/minecraftforge/forge/1.7.10-10.13.4.1614-1.7.10/forge-1.7.10-10.13.4.1614-1.7.10-universal.jar",
	}
	result := dedupSorted(t, input)
	want := []string{"net/minecraftforge/forge/1.7.10-10.13.4.1614-1.7.10/forge-1.7.10-10.13.4.1614-1.7.10-universal.jar"}
	if !equalSlices(result, want) {
		t.Errorf("DedupLibraries() = %v", result)
	}
}

func TestDedupLibrariesKeepsNatives(t *testing.T) {
	input := []string{
		"org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar",
		"org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar",
	}
	result := dedupSorted(t, input)
	if len(result) != 2 {
		t.Errorf("DedupLibraries() = %v, want both jars kept", result)
	}
}

func TestDedupLibrariesInvalidVersion(t *testing.T) {
	input := []string{
		"io/github/zekerzhayard/ForgeWrapper/mmc2/ForgeWrapper-mmc2.jar",
		"org/ow2/asm/asm/9.5/asm-9.5.jar",
	}
	result := dedupSorted(t, input)
	if len(result) != 2 {
		t.Errorf("DedupLibraries() = %v, want both jars kept", result)
	}
}

func TestDedupLibrariesIdempotent(t *testing.T) {
	input := []string{
		"a/b/1.2.3/b-1.2.3.jar",
		"a/b/1.2.4/b-1.2.4.jar",
		"org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar",
		"org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar",
	}
	once := dedupSorted(t, input)
	twice := dedupSorted(t, once)
	if !equalSlices(once, twice) {
		t.Errorf("dedup not idempotent: %v != %v", once, twice)
	}
}

func TestDedupLibrariesInvalidPath(t *testing.T) {
	_, err := DedupLibraries([]string{"b-1.2.3.jar"})
	var pathErr *ErrInvalidLibraryPath
	if !errors.As(err, &pathErr) {
		t.Fatalf("DedupLibraries() error = %v, want ErrInvalidLibraryPath", err)
	}
	if pathErr.Path != "b-1.2.3.jar" {
		t.Errorf("ErrInvalidLibraryPath.Path = %q", pathErr.Path)
	}
}
