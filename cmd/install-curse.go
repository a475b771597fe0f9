package cmd

import (
	"fmt"

	"github.com/packsmith/packsmith/internals/installer"
	"github.com/spf13/cobra"
)

var installDir string

func init() {
	installCmd.Flags().StringVar(&installDir, "dir", ".", "instance directory to install into")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <project-id> <file-id>",
	Short: "Install a single CurseForge file into an instance",
	Args:  cobra.ExactArgs(2),
	Example: `
  packsmith install 238222 4712866`,
	Run: func(cmd *cobra.Command, args []string) {
		var projectID, fileID uint32
		if _, err := fmt.Sscanf(args[0], "%d", &projectID); err != nil {
			logger.Fail("invalid project id " + args[0])
		}
		if _, err := fmt.Sscanf(args[1], "%d", &fileID); err != nil {
			logger.Fail("invalid file id " + args[1])
		}

		instance := instanceFromArgs([]string{installDir})
		in := installer.New(instance.GameDir(), newCurseClient())

		// drop an older file of the same mod before installing the new one
		mods, err := in.IdentifyMods(cmd.Context())
		if err != nil {
			logger.Warn("Could not identify installed mods: " + err.Error())
		}
		if err := in.RemoveMod(mods, projectID); err != nil {
			logger.Fail(err.Error())
		}

		task := logger.NewTask()
		blocked, err := in.InstallCurseForgeFile(cmd.Context(), projectID, fileID, task)
		if err != nil {
			logger.Fail(err.Error())
		}

		handleBlockedDownloads(in, blocked)
		logger.Info("Done")
	},
}
