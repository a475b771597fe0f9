package minecraft

import "runtime"

// Rule gates a library or launch argument on properties of the host platform.
type Rule struct {
	Action   string          `json:"action"`
	OS       *OSPredicate    `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// OSPredicate matches properties of the host OS. Missing fields are wildcards.
type OSPredicate struct {
	Name string `json:"name,omitempty"`
	// Version of the os (can be a regex string). It is parsed but never
	// compared, matching the behavior of every launcher we checked against
	Version string `json:"version,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

// Context describes the host platform rules are evaluated against
type Context struct {
	OSName    string
	OSVersion string
	OSArch    string
	Features  map[string]bool
}

// HostContext returns the rule Context for the current platform.
// Names are translated to the values Mojang manifests use
func HostContext() Context {
	os := runtime.GOOS
	if os == "darwin" {
		os = "osx"
	}

	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x64"
	case "386":
		arch = "x86"
	case "arm":
		arch = "arm32"
	}
	// note: we don't know how other platforms are named

	return Context{OSName: os, OSArch: arch}
}

// MatchLibraryRules evaluates rules the way library inclusion does.
// An empty rule list does NOT match under this variant.
func MatchLibraryRules(rules []Rule, ctx Context) bool {
	result := false

	for _, rule := range rules {
		if rule.Action == "allow" {
			result = true

			// an allow block with OS properties decides immediately,
			// based on inspecting manifest data this appears to be desired
			if rule.OS != nil {
				return rule.OS.matches(ctx)
			}
		}

		if rule.Action == "disallow" && rule.OS != nil && rule.OS.matches(ctx) {
			return false
		}
	}

	return result
}

// MatchArgumentRules evaluates rules the way launch arguments do.
// An empty rule list matches under this variant. Feature gated arguments
// are never enabled (demo mode, custom resolution and the like)
func MatchArgumentRules(rules []Rule, ctx Context) bool {
	for _, rule := range rules {
		if rule.Action == "allow" {
			if len(rule.Features) != 0 {
				return false
			}

			if rule.OS != nil {
				return rule.OS.matches(ctx)
			}
		}
	}

	return true
}

func (p *OSPredicate) matches(ctx Context) bool {
	if p.Name != "" && p.Name != ctx.OSName {
		return false
	}
	if p.Arch != "" && p.Arch != ctx.OSArch {
		return false
	}
	// p.Version is intentionally not compared
	return true
}
