package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/packsmith/packsmith/internals/loader"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionsCmd)
}

var versionsCmd = &cobra.Command{
	Use:   "versions <loader> <minecraft-version>",
	Short: "List installable mod loader versions for a Minecraft version",
	Args:  cobra.ExactArgs(2),
	Example: `
  packsmith versions forge 1.20.1
  packsmith versions neoforge 1.20.4`,
	Run: func(cmd *cobra.Command, args []string) {
		name, err := loader.ParseName(args[0])
		if err != nil {
			logger.Fail(err.Error())
		}
		mcVersion := args[1]

		s := newSpinner("Fetching versions")
		versions, err := newManager().LoaderVersions(cmd.Context(), name, mcVersion)
		s.Stop()
		if err != nil {
			logger.Fail(err.Error())
		}
		if len(versions) == 0 {
			logger.Fail(fmt.Sprintf("No %s versions found for minecraft %s", name, mcVersion))
		}

		logger.Headline(fmt.Sprintf("%s versions for minecraft %s", name, mcVersion))
		for _, v := range versions {
			if v.Recommended {
				fmt.Println("  " + gchalk.Green(v.Version) + gchalk.Gray(" (recommended)"))
			} else {
				fmt.Println("  " + v.Version)
			}
		}
	},
}
