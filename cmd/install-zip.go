package cmd

import (
	"fmt"

	"github.com/packsmith/packsmith/internals/installer"
	"github.com/packsmith/packsmith/internals/instances"
	"github.com/spf13/cobra"
)

var installZipDir string

func init() {
	installZipCmd.Flags().StringVar(&installZipDir, "dir", ".", "instance directory to install into")
	rootCmd.AddCommand(installZipCmd)
}

var installZipCmd = &cobra.Command{
	Use:   "install-zip <pack.zip>",
	Short: "Install a downloaded CurseForge modpack zip into an instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		pack, err := installer.LoadPackZip(args[0])
		if err != nil {
			logger.Fail(err.Error())
		}
		defer pack.Close()

		sel, err := pack.Manifest.ModLoader()
		if err != nil {
			logger.Fail(err.Error())
		}
		mcVersion := pack.Manifest.Minecraft.Version

		desc := pack.Manifest.Name + " (minecraft " + mcVersion
		if sel != nil {
			desc += ", " + sel.ID()
		}
		logger.Headline("Installing " + desc + ")")

		manager := newManager()
		var instance *instances.Instance
		if instances.Exists(installZipDir) {
			instance, err = instances.Load(installZipDir)
			if err == nil {
				err = instance.SetVersions(mcVersion, sel)
			}
		} else {
			instance, err = instances.Create(ctx, installZipDir, mcVersion, sel, manager)
		}
		if err != nil {
			logger.Fail(err.Error())
		}

		in := installer.New(instance.GameDir(), newCurseClient())
		task := logger.NewTask()
		installed, blocked, err := in.InstallPackZip(ctx, pack, task)
		if err != nil {
			logger.Fail(err.Error())
		}

		if err := in.CleanPackFiles(instance.PackFiles(), installed); err != nil {
			logger.Fail(err.Error())
		}
		if err := instance.SetModpack(&instances.ModpackState{Files: installed}); err != nil {
			logger.Fail(err.Error())
		}

		handleBlockedDownloads(in, blocked)
		logger.Info(fmt.Sprintf("Installed %s (%d files)", pack.Manifest.Name, len(installed)))
	},
}
