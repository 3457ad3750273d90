// Package version reports build information for colordropper binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the release version, set via ldflags.
	Version = "dev"
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the VCS revision the binary was built from.
	Revision = revision(debug.ReadBuildInfo)
)

// Info describes a build.
type Info struct {
	Version   string
	Revision  string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Revision:  Revision,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats i on one line, omitting unknown fields.
func (i Info) String() string {
	parts := []string{i.Version}
	if i.Revision != "" {
		parts = append(parts, "revision "+i.Revision)
	}

	if i.BuildDate != "" {
		parts = append(parts, "built "+i.BuildDate)
	}

	return fmt.Sprintf("%s (%s, %s)", strings.Join(parts, ", "), i.GoVersion, i.Platform)
}

func revision(read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok {
		return ""
	}

	var rev string

	dirty := false

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if rev != "" && dirty {
		rev += "-dirty"
	}

	return rev
}
