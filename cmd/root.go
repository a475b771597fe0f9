package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/mitchellh/go-homedir"
	"github.com/packsmith/packsmith/internals/assets"
	"github.com/packsmith/packsmith/internals/cmdlog"
	"github.com/packsmith/packsmith/internals/curse"
	"github.com/packsmith/packsmith/internals/modpacksch"
	"github.com/packsmith/packsmith/internals/ownhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the packsmith version, set by main
var Version = "dev"

// Commit is the git commit packsmith was built from, set by main
var Commit = ""

var logger *cmdlog.Logger = cmdlog.New()

var (
	cfgFile       string
	globalDir     = "/tmp"
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "packsmith",
	Short: "Minecraft instances without the clicking",
	Long:  "Create, update and launch modded Minecraft instances",

	Example: `
  packsmith create my-instance --minecraft 1.20.1 --loader forge
  packsmith modpack search "direwolf"
  packsmith launch my-instance`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main()
func Execute() {
	if Version == "" {
		Version = "dev"
	}
	if Commit != "" {
		rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	} else {
		rootCmd.Version = Version
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	home, err := homedir.Dir()
	if err != nil {
		panic(err)
	}
	globalDir = filepath.Join(home, ".packsmith")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.packsmith/config.toml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		color.Disable()
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(filepath.Join(globalDir))
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("packsmith")
	viper.AutomaticEnv()
	// the official env var name used in CurseForge API docs also works
	viper.BindEnv("curseApiKey", "PACKSMITH_CURSE_API_KEY", "CURSEFORGE_API_KEY")

	if err := viper.ReadInConfig(); err == nil {
		logger.Log("Using config file: " + viper.ConfigFileUsed())
	}
}

// newManager sets up the shared asset / library / cache stores under the
// global directory
func newManager() *assets.Manager {
	manager, err := assets.NewManager(globalDir, nil)
	if err != nil {
		logger.Fail("Could not set up the global directory: " + err.Error())
	}
	return manager
}

func newCurseClient() *curse.Client {
	key := viper.GetString("curseApiKey")
	if key == "" {
		logger.Fail("No CurseForge API key set. Set curseApiKey in the config or the CURSEFORGE_API_KEY env variable")
	}
	// the curseforge api throttles aggressively, stay below the radar
	return curse.NewClient(ownhttp.NewThrottled(4), key)
}

func newModpackClient() *modpacksch.Client {
	return modpacksch.NewClient(nil)
}
