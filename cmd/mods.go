package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/packsmith/packsmith/internals/installer"
	"github.com/spf13/cobra"
)

var modsDir string

func init() {
	modsCmd.Flags().StringVar(&modsDir, "dir", ".", "instance directory to inspect")
	rootCmd.AddCommand(modsCmd)
}

var modsCmd = &cobra.Command{
	Use:   "mods",
	Short: "List installed mods, identified against CurseForge",
	Long: `List the files in the instance's mods directory. Every file is
fingerprinted and looked up on CurseForge, so renamed jars still get
identified. Files CurseForge does not know stay listed as unknown.`,
	Run: func(cmd *cobra.Command, args []string) {
		instance := instanceFromArgs([]string{modsDir})
		in := installer.New(instance.GameDir(), newCurseClient())

		s := newSpinner("Identifying mods")
		mods, err := in.IdentifyMods(cmd.Context())
		s.Stop()
		if err != nil {
			logger.Fail(err.Error())
		}
		if len(mods) == 0 {
			logger.Info("No mods in " + instance.ModsDir())
			return
		}

		names := modNames(cmd, mods)

		logger.Headline(fmt.Sprintf("%d mod(s) in %s", len(mods), instance.ModsDir()))
		for _, mod := range mods {
			switch {
			case mod.ModID == 0:
				fmt.Printf("  %s %s\n", mod.FileName, gchalk.Gray("(not on curseforge)"))
			case names[mod.ModID] != "":
				fmt.Printf("  %s %s\n", mod.FileName, gchalk.Gray(fmt.Sprintf("(%s, project %d)", names[mod.ModID], mod.ModID)))
			default:
				fmt.Printf("  %s %s\n", mod.FileName, gchalk.Gray(fmt.Sprintf("(project %d)", mod.ModID)))
			}
		}
	},
}

// modNames resolves project names for the identified mods, tolerating
// lookup failures (the listing still works without names)
func modNames(cmd *cobra.Command, mods []installer.InstalledMod) map[uint32]string {
	var ids []uint32
	for _, mod := range mods {
		if mod.ModID != 0 {
			ids = append(ids, mod.ModID)
		}
	}

	names := make(map[uint32]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	projects, err := newCurseClient().Mods(cmd.Context(), ids)
	if err != nil {
		logger.Warn("Could not resolve project names: " + err.Error())
		return names
	}
	for _, p := range projects {
		names[p.ModID] = p.Name
	}
	return names
}
