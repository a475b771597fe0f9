package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/packsmith/packsmith/internals/curse"
	"github.com/packsmith/packsmith/internals/installer"
	"github.com/packsmith/packsmith/internals/instances"
	"github.com/packsmith/packsmith/internals/modpacksch"
	"github.com/spf13/cobra"
)

var (
	modpackCurse  bool
	modpackDir    string
	modpackServer bool
)

func init() {
	modpackInstallCmd.Flags().BoolVar(&modpackCurse, "curseforge", false, "treat the pack id as a CurseForge project id")
	modpackInstallCmd.Flags().StringVar(&modpackDir, "dir", ".", "instance directory to install into")
	modpackInstallCmd.Flags().BoolVar(&modpackServer, "server", false, "install for a server (skips client only files)")

	modpackCmd.AddCommand(modpackSearchCmd)
	modpackCmd.AddCommand(modpackInstallCmd)
	rootCmd.AddCommand(modpackCmd)
}

var modpackCmd = &cobra.Command{
	Use:   "modpack",
	Short: "Search and install FTB and CurseForge modpacks",
}

var stylePackName = lipgloss.NewStyle().Bold(true)
var stylePackID = lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("#888"))

var modpackSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search for modpacks by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newModpackClient()

		s := newSpinner("Searching")
		search, err := client.SearchPacks(cmd.Context(), args[0], 10)
		s.Stop()
		if err != nil {
			logger.Fail(err.Error())
		}
		if len(search.PackIDs) == 0 && len(search.CurseForgeIDs) == 0 {
			logger.Info("Nothing found")
			return
		}

		for _, id := range search.PackIDs {
			pack, err := client.FTBPackVersions(cmd.Context(), id)
			if err != nil {
				logger.Warn(fmt.Sprintf("pack %d: %s", id, err))
				continue
			}
			printPackLine(id, pack, "")
		}
		for _, id := range search.CurseForgeIDs {
			pack, err := client.CursePackVersions(cmd.Context(), id)
			if err != nil {
				logger.Warn(fmt.Sprintf("curseforge pack %d: %s", id, err))
				continue
			}
			printPackLine(id, pack, "--curseforge")
		}
	},
}

func printPackLine(id uint32, pack *modpacksch.PackManifest, extraFlag string) {
	install := fmt.Sprintf("packsmith modpack install %d", id)
	if extraFlag != "" {
		install += " " + extraFlag
	}
	fmt.Println(lipgloss.JoinHorizontal(
		lipgloss.Top,
		stylePackID.Render(fmt.Sprintf("%d", id)),
		stylePackName.Render(pack.Name),
	))
	if pack.Synopsis != "" {
		fmt.Println("         " + gchalk.Gray(pack.Synopsis))
	}
	fmt.Println("         " + gchalk.Gray(install))
}

var modpackInstallCmd = &cobra.Command{
	Use:   "install <pack-id> [version-id]",
	Short: "Install a modpack version into an instance",
	Long: `Install a modpack version into an instance. Without a version id the
latest published version is installed. Updating works the same way:
installing over an existing pack removes files the new version dropped.`,
	Args: cobra.RangeArgs(1, 2),
	Example: `
  packsmith modpack install 35 --dir revelation
  packsmith modpack install 715572 --curseforge --dir allthemods`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client := newModpackClient()

		var packID, versionID uint32
		if _, err := fmt.Sscanf(args[0], "%d", &packID); err != nil {
			logger.Fail("invalid pack id " + args[0])
		}
		if len(args) == 2 {
			if _, err := fmt.Sscanf(args[1], "%d", &versionID); err != nil {
				logger.Fail("invalid version id " + args[1])
			}
		}

		s := newSpinner("Resolving pack")
		pack, err := resolvePackVersion(ctx, client, packID, versionID)
		s.Stop()
		if err != nil {
			logger.Fail(err.Error())
		}

		mcVersion, err := pack.MinecraftVersion()
		if err != nil {
			logger.Fail(err.Error())
		}
		sel, err := pack.ModLoader()
		if err != nil {
			logger.Fail(err.Error())
		}

		desc := pack.Name + " (minecraft " + mcVersion
		if sel != nil {
			desc += ", " + sel.ID()
		}
		logger.Headline("Installing " + desc + ")")

		manager := newManager()
		var instance *instances.Instance
		if instances.Exists(modpackDir) {
			instance, err = instances.Load(modpackDir)
			if err == nil {
				err = instance.SetVersions(mcVersion, sel)
			}
		} else {
			instance, err = instances.Create(ctx, modpackDir, mcVersion, sel, manager)
		}
		if err != nil {
			logger.Fail(err.Error())
		}

		// only reach for the curseforge api when the pack needs it
		var curseClient *curse.Client
		for _, f := range pack.Files {
			if f.CurseForge != nil {
				curseClient = newCurseClient()
				break
			}
		}
		if curseClient == nil {
			curseClient = curse.NewClient(nil, "")
		}

		in := installer.New(instance.GameDir(), curseClient)
		task := logger.NewTask()
		installed, blocked, err := in.InstallPack(ctx, pack, modpackServer, task)
		if err != nil {
			logger.Fail(err.Error())
		}

		// drop files the previous pack version installed but this one lost
		if err := in.CleanPackFiles(instance.PackFiles(), installed); err != nil {
			logger.Fail(err.Error())
		}

		state := &instances.ModpackState{
			PackID:    packID,
			VersionID: pack.VersionID,
			Files:     installed,
		}
		if err := instance.SetModpack(state); err != nil {
			logger.Fail(err.Error())
		}

		handleBlockedDownloads(in, blocked)
		logger.Info(fmt.Sprintf("Installed %s (%d files)", pack.Name, len(installed)))
	},
}

// resolvePackVersion fetches the file list for the wanted pack version,
// defaulting to the newest published version
func resolvePackVersion(ctx context.Context, client *modpacksch.Client, packID uint32, versionID uint32) (*modpacksch.VersionManifest, error) {
	if versionID == 0 {
		var manifest *modpacksch.PackManifest
		var err error
		if modpackCurse {
			manifest, err = client.CursePackVersions(ctx, packID)
		} else {
			manifest, err = client.FTBPackVersions(ctx, packID)
		}
		if err != nil {
			return nil, err
		}
		if len(manifest.Versions) == 0 {
			return nil, fmt.Errorf("pack %d has no published versions", packID)
		}

		versions := manifest.Versions
		sort.Slice(versions, func(i, j int) bool {
			return versions[i].Updated > versions[j].Updated
		})
		versionID = versions[0].VersionID
	}

	if modpackCurse {
		return client.CursePack(ctx, packID, versionID)
	}
	return client.FTBPack(ctx, packID, versionID)
}
