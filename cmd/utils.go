package cmd

import (
	"time"

	"github.com/briandowns/spinner"
	"github.com/packsmith/packsmith/internals/instances"
)

// newSpinner returns a started spinner with the given suffix text
func newSpinner(text string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 300*time.Millisecond)
	s.Prefix = " "
	s.Suffix = " " + text
	s.Start()
	return s
}

// instanceFromArgs loads the instance from the first argument, falling
// back to the current directory
func instanceFromArgs(args []string) *instances.Instance {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if !instances.Exists(dir) {
		logger.Fail("No instance found at " + dir + " (missing manifest.json)")
	}

	instance, err := instances.Load(dir)
	if err != nil {
		logger.Fail("Could not read the instance: " + err.Error())
	}
	return instance
}
