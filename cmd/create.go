package cmd

import (
	"fmt"

	"github.com/packsmith/packsmith/internals/instances"
	"github.com/packsmith/packsmith/internals/loader"
	"github.com/spf13/cobra"
)

var (
	createMinecraft     string
	createLoader        string
	createLoaderVersion string
)

func init() {
	createCmd.Flags().StringVarP(&createMinecraft, "minecraft", "m", "", "Minecraft version (eg. 1.20.1)")
	createCmd.Flags().StringVarP(&createLoader, "loader", "l", "", "mod loader to install (forge or neoforge)")
	createCmd.Flags().StringVar(&createLoaderVersion, "loader-version", "latest", "mod loader version (latest, recommended or a version number)")
	createCmd.MarkFlagRequired("minecraft")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <directory>",
	Short: "Create a new Minecraft instance",
	Args:  cobra.ExactArgs(1),
	Example: `
  packsmith create vanilla-thing -m 1.20.1
  packsmith create forge-pack -m 1.20.1 -l forge
  packsmith create old-school -m 1.5.2 -l forge --loader-version 1.5.2-7.8.1.738`,
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		if instances.Exists(dir) {
			logger.Fail(dir + " already is an instance")
		}

		ctx := cmd.Context()
		manager := newManager()

		var sel *loader.ModLoader
		if createLoader != "" {
			name, err := loader.ParseName(createLoader)
			if err != nil {
				logger.Fail(err.Error())
			}
			version, err := pickLoaderVersion(cmd, name)
			if err != nil {
				logger.Fail(err.Error())
			}
			sel = &loader.ModLoader{Name: name, Version: version}
		}

		s := newSpinner("Resolving " + createMinecraft)
		instance, err := instances.Create(ctx, dir, createMinecraft, sel, manager)
		s.Stop()
		if err != nil {
			logger.Fail(err.Error())
		}

		logger.Info("Created instance at " + instance.Dir)
		if sel != nil {
			logger.Info("  with " + sel.ID())
		}
		logger.Info("Run \"packsmith launch " + dir + "\" to play")
	},
}

// pickLoaderVersion resolves the loader version flag. "latest" takes the
// newest version for the Minecraft version, "recommended" the newest one
// the meta service flags as recommended
func pickLoaderVersion(cmd *cobra.Command, name loader.Name) (string, error) {
	switch createLoaderVersion {
	case "latest", "recommended":
	default:
		return createLoaderVersion, nil
	}

	versions, err := newManager().LoaderVersions(cmd.Context(), name, createMinecraft)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no %s versions available for minecraft %s", name, createMinecraft)
	}

	if createLoaderVersion == "recommended" {
		for _, v := range versions {
			if v.Recommended {
				return v.Version, nil
			}
		}
		logger.Warn("No recommended version found, using the latest")
	}
	return versions[0].Version, nil
}
