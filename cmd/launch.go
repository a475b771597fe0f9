package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/packsmith/packsmith/internals/instances"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var launchPlayerName string

func init() {
	launchCmd.Flags().StringVar(&launchPlayerName, "player-name", "", "player name to launch with")
	rootCmd.AddCommand(launchCmd)
}

var styleLaunch = lipgloss.NewStyle().
	Background(lipgloss.Color("#7a9a2f")).
	Foreground(lipgloss.Color("#FFF")).
	Padding(0, 1)

var launchCmd = &cobra.Command{
	Use:     "launch [directory]",
	Short:   "Launch a Minecraft instance",
	Aliases: []string{"run", "start", "play"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		instance := instanceFromArgs(args)

		desc := instance.Manifest.McVersion
		if instance.Manifest.ModLoader != nil {
			desc += " with " + instance.Manifest.ModLoader.ID()
		}
		fmt.Println(styleLaunch.Render("Launching Minecraft " + desc))

		playerName := launchPlayerName
		if playerName == "" {
			playerName = viper.GetString("playerName")
		}
		if playerName == "" {
			playerName = "Player"
		}

		opts := instances.LaunchOptions{
			PlayerName:      playerName,
			LauncherName:    "packsmith",
			LauncherVersion: Version,
		}

		task := logger.NewTask()
		gameCmd, err := instance.Launch(cmd.Context(), newManager(), opts, task)
		if err != nil {
			logger.Fail(err.Error())
		}

		gameCmd.Stdin = os.Stdin
		gameCmd.Stdout = os.Stdout
		gameCmd.Stderr = os.Stderr

		if err := gameCmd.Run(); err != nil {
			// exit code 130 is minecraft's way of saying "stopped normally"
			if gameCmd.ProcessState != nil && gameCmd.ProcessState.ExitCode() == 130 {
				fmt.Println("\nMinecraft was stopped normally")
				return
			}
			logger.Fail("Minecraft exited with an error: " + err.Error())
		}

		fmt.Println(gchalk.Gray("\nMinecraft was stopped"))
	},
}
