// Package buildinfo reports the version of the running binary.
package buildinfo

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// These values are injected by GoReleaser via ldflags for release binaries.
// They default to empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

const defaultModulePath = "github.com/aidanlsb/xcproj"

// Info describes the running binary.
type Info struct {
	Version    string
	ModulePath string
	Commit     string
	CommitTime string
	Modified   bool
	GoVersion  string
	GOOS       string
	GOARCH     string
}

var readBuildInfo = debug.ReadBuildInfo

// Current returns build information from the embedded module data, falling
// back to ldflags values.
func Current() Info {
	info := Info{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok || bi == nil {
		applyLdflagsFallback(&info)
		return info
	}

	if bi.Main.Path != "" {
		info.ModulePath = bi.Main.Path
	}
	info.Version = normalizeVersion(bi.Main.Version)
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}

	info.Commit = setting(bi, "vcs.revision")
	info.CommitTime = setting(bi, "vcs.time")
	info.Modified = strings.EqualFold(setting(bi, "vcs.modified"), "true")
	if val := setting(bi, "GOOS"); val != "" {
		info.GOOS = val
	}
	if val := setting(bi, "GOARCH"); val != "" {
		info.GOARCH = val
	}
	applyLdflagsFallback(&info)

	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func setting(bi *debug.BuildInfo, key string) string {
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

func applyLdflagsFallback(info *Info) {
	if info.Version == "devel" && Version != "" {
		info.Version = normalizeVersion(Version)
	}
	if info.Commit == "" && Commit != "" {
		info.Commit = Commit
	}
	if info.CommitTime == "" && Date != "" {
		info.CommitTime = Date
	}
}
