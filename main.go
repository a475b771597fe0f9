package main

import (
	"net/http"

	"github.com/packsmith/packsmith/cmd"
	"github.com/packsmith/packsmith/internals/ownhttp"
)

// set by goreleaser
var (
	version string
	commit  string
)

func main() {
	// replace default http client
	http.DefaultClient = ownhttp.New()

	cmd.Version = version
	cmd.Commit = commit
	cmd.Execute()
}
