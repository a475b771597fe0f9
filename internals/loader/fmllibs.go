package loader

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Ancient Forge builds expect a handful of helper libraries next to the
// game that the meta service doesn't list. Without them FML tries to
// download the files itself on startup and dies on 404s. The tables below
// are the ones PrismLauncher injects, keyed by Minecraft version range

var (
	v14Range = mustConstraint(">=1.4.0, <1.5.0")
	v15Range = mustConstraint(">=1.5.0, <1.6.0")
)

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// PopulateFMLLibs fills in the fml lib list on legacy distributions of
// Minecraft 1.3.x/1.4.x/1.5.x. It is a no-op for any other manifest
func PopulateFMLLibs(m *Manifest) error {
	if m.Legacy == nil {
		return nil
	}

	mcVersion, err := m.MinecraftVersion()
	if err != nil {
		return err
	}

	version, err := semver.NewVersion(mcVersion)
	if err != nil {
		return fmt.Errorf("unable to parse loader minecraft version %q: %w", mcVersion, err)
	}

	switch {
	case mcVersion == "1.3.2":
		m.Legacy.FmlLibs = fmlLibs13()
	case v14Range.Check(version):
		m.Legacy.FmlLibs = fmlLibs14()
	case v15Range.Check(version):
		libs, err := fmlLibs15(mcVersion)
		if err != nil {
			return err
		}
		m.Legacy.FmlLibs = libs
	}

	return nil
}

func mustParseLibs(raw string) []Library {
	var libs []Library
	if err := json.Unmarshal([]byte(raw), &libs); err != nil {
		panic("fmllibs: invalid embedded library table: " + err.Error())
	}
	return libs
}

func fmlLibs13() []Library {
	return mustParseLibs(`[
		{
			"name": "fmllibs:argo:2.25",
			"downloads": {
				"artifact": {
					"path": "argo-2.25.jar",
					"sha1": "bb672829fde76cb163004752b86b0484bd0a7f4b",
					"size": 123642,
					"url": "https://files.prismlauncher.org/fmllibs/argo-2.25.jar"
				}
			}
		},
		{
			"name": "fmllibs:guava:12.0.1",
			"downloads": {
				"artifact": {
					"path": "fmllibs/guava-12.0.1.jar",
					"sha1": "b8e78b9af7bf45900e14c6f958486b6ca682195f",
					"size": 1795932,
					"url": "https://files.prismlauncher.org/fmllibs/guava-12.0.1.jar"
				}
			}
		},
		{
			"name": "fmllibs:asm-all:4.0",
			"downloads": {
				"artifact": {
					"path": "fmllibs/asm-all-4.0.jar",
					"sha1": "98308890597acb64047f7e896638e0d98753ae82",
					"size": 212767,
					"url": "https://files.prismlauncher.org/fmllibs/asm-all-4.0.jar"
				}
			}
		}
	]`)
}

func fmlLibs14() []Library {
	return mustParseLibs(`[
		{
			"name": "fmllibs:argo:2.25",
			"downloads": {
				"artifact": {
					"path": "fmllibs/argo-2.25.jar",
					"sha1": "bb672829fde76cb163004752b86b0484bd0a7f4b",
					"size": 123642,
					"url": "https://files.prismlauncher.org/fmllibs/argo-2.25.jar"
				}
			}
		},
		{
			"name": "fmllibs:guava:12.0.1",
			"downloads": {
				"artifact": {
					"path": "fmllibs/guava-12.0.1.jar",
					"sha1": "b8e78b9af7bf45900e14c6f958486b6ca682195f",
					"size": 1795932,
					"url": "https://files.prismlauncher.org/fmllibs/guava-12.0.1.jar"
				}
			}
		},
		{
			"name": "fmllibs:asm-all:4.0",
			"downloads": {
				"artifact": {
					"path": "fmllibs/asm-all-4.0.jar",
					"sha1": "98308890597acb64047f7e896638e0d98753ae82",
					"size": 212767,
					"url": "https://files.prismlauncher.org/fmllibs/asm-all-4.0.jar"
				}
			}
		},
		{
			"name": "fmllibs:bcprov-jdk15on:147",
			"downloads": {
				"artifact": {
					"path": "fmllibs/bcprov-jdk15on-147.jar",
					"sha1": "b6f5d9926b0afbde9f4dbe3db88c5247be7794bb",
					"size": 1997327,
					"url": "https://files.prismlauncher.org/fmllibs/bcprov-jdk15on-147.jar"
				}
			}
		}
	]`)
}

func fmlLibs15(mcVersion string) ([]Library, error) {
	libs := mustParseLibs(`[
		{
			"name": "fmllibs:argo-small:3.2",
			"downloads": {
				"artifact": {
					"path": "fmllibs/argo-small-3.2.jar",
					"sha1": "58912ea2858d168c50781f956fa5b59f0f7c6b51",
					"size": 91333,
					"url": "https://files.prismlauncher.org/fmllibs/argo-small-3.2.jar"
				}
			}
		},
		{
			"name": "fmllibs:guava:14.0:rc3",
			"downloads": {
				"artifact": {
					"path": "fmllibs/guava-14.0-rc3.jar",
					"sha1": "931ae21fa8014c3ce686aaa621eae565fefb1a6a",
					"size": 2189140,
					"url": "https://files.prismlauncher.org/fmllibs/guava-14.0-rc3.jar"
				}
			}
		},
		{
			"name": "fmllibs:asm-all:4.1",
			"downloads": {
				"artifact": {
					"path": "fmllibs/asm-all-4.1.jar",
					"sha1": "054986e962b88d8660ae4566475658469595ef58",
					"size": 214592,
					"url": "https://files.prismlauncher.org/fmllibs/asm-all-4.1.jar"
				}
			}
		},
		{
			"name": "fmllibs:bcprov-jdk15on:148",
			"downloads": {
				"artifact": {
					"path": "fmllibs/bcprov-jdk15on-148.jar",
					"sha1": "960dea7c9181ba0b17e8bab0c06a43f0a5f04e65",
					"size": 2318161,
					"url": "https://files.prismlauncher.org/fmllibs/bcprov-jdk15on-148.jar"
				}
			}
		},
		{
			"name": "fmllibs:scala-library",
			"downloads": {
				"artifact": {
					"path": "fmllibs/scala-library.jar",
					"sha1": "458d046151ad179c85429ed7420ffb1eaf6ddf85",
					"size": 7114640,
					"url": "https://files.prismlauncher.org/fmllibs/scala-library.jar"
				}
			}
		}
	]`)

	var deobf string
	switch mcVersion {
	case "1.5":
		deobf = `{
			"name": "fmllibs:deobfuscation_data:1.5",
			"downloads": {
				"artifact": {
					"path": "fmllibs/deobfuscation_data_1.5.zip",
					"sha1": "5f7c142d53776f16304c0bbe10542014abad6af8",
					"size": 200547,
					"url": "https://files.prismlauncher.org/fmllibs/deobfuscation_data_1.5.zip"
				}
			}
		}`
	case "1.5.1":
		deobf = `{
			"name": "fmllibs:deobfuscation_data:1.5.1",
			"downloads": {
				"artifact": {
					"path": "fmllibs/deobfuscation_data_1.5.1.zip",
					"sha1": "22e221a0d89516c1f721d6cab056a7e37471d0a6",
					"size": 200886,
					"url": "https://files.prismlauncher.org/fmllibs/deobfuscation_data_1.5.1.zip"
				}
			}
		}`
	case "1.5.2":
		deobf = `{
			"name": "fmllibs:deobfuscation_data:1.5.2",
			"downloads": {
				"artifact": {
					"path": "fmllibs/deobfuscation_data_1.5.2.zip",
					"sha1": "446e55cd986582c70fcf12cb27bc00114c5adfd9",
					"size": 201404,
					"url": "https://files.prismlauncher.org/fmllibs/deobfuscation_data_1.5.2.zip"
				}
			}
		}`
	default:
		return nil, fmt.Errorf("expected minecraft version 1.5.x, found %s", mcVersion)
	}

	var lib Library
	if err := json.Unmarshal([]byte(deobf), &lib); err != nil {
		panic("fmllibs: invalid embedded library table: " + err.Error())
	}

	return append(libs, lib), nil
}
