package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jwalton/gchalk"
	"github.com/mitchellh/go-homedir"
	"github.com/packsmith/packsmith/internals/installer"
	"github.com/packsmith/packsmith/internals/watcher"
	"github.com/spf13/viper"
)

// downloadsDir is where manually downloaded files are expected to show up
func downloadsDir() string {
	if dir := viper.GetString("downloadsDir"); dir != "" {
		return dir
	}
	home, err := homedir.Dir()
	if err != nil {
		logger.Fail(err.Error())
	}
	return filepath.Join(home, "Downloads")
}

// handleBlockedDownloads walks the user through files that can not be
// fetched from the CurseForge API. It watches the downloads directory and
// moves every file into place as soon as it shows up
func handleBlockedDownloads(in *installer.Installer, blocked []installer.FileDownload) {
	if len(blocked) == 0 {
		return
	}

	watchDir := downloadsDir()

	logger.Warn(fmt.Sprintf("%d mod(s) have to be downloaded manually", len(blocked)))
	logger.Info("Download these files with your browser:")
	byName := make(map[string]*installer.FileDownload, len(blocked))
	for i := range blocked {
		file := &blocked[i]
		byName[file.FileName] = file
		fmt.Printf(
			"  %s %s\n    %s\n",
			file.FileName,
			gchalk.Gray("("+humanize.Bytes(file.FileSize)+")"),
			gchalk.Blue(file.URL),
		)
	}
	logger.Info("Waiting for them to appear in " + watchDir + " …")

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	w := watcher.New(watchDir, names)

	// files downloaded on an earlier run are picked up right away
	for name, file := range byName {
		if w.FileComplete(name) {
			installBlocked(in, file, filepath.Join(watchDir, name))
		}
	}
	if w.AllComplete() {
		logger.Info("All mods in place")
		return
	}

	messages, err := w.Watch()
	if err != nil {
		logger.Fail(err.Error())
	}
	defer w.Stop()

	for msg := range messages {
		switch msg.Kind {
		case watcher.FileComplete:
			name := filepath.Base(msg.Path)
			if file, ok := byName[name]; ok {
				installBlocked(in, file, msg.Path)
			}
		case watcher.AllComplete:
			logger.Info("All mods in place")
			return
		case watcher.Error:
			logger.Fail(msg.Err.Error())
		}
	}
}

func installBlocked(in *installer.Installer, file *installer.FileDownload, srcPath string) {
	if err := in.InstallBlocked(file, srcPath); err != nil {
		logger.Fail(err.Error())
	}
	logger.Info("  ✓ " + file.FileName)
}
