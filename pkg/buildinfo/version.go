// Package buildinfo carries the version stamped in at build time. It shows
// up in `starbar --version`, the badge server's /healthz body, and cache
// keys, so artifacts rendered by one build are never served by another.
//
// Set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/starbar/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/starbar/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/starbar/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is a snapshot of the build variables.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

func (i Info) String() string {
	return fmt.Sprintf("version %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the cobra version template, e.g.
// "starbar version v1.0.0\ncommit: ...".
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
