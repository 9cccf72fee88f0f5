package version

import "runtime"

// Build information, injected via ldflags:
//
//	-X github.com/mogiel/konec/internal/platform/version.Version=v1.2.0
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info is served at GET /version.
type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

const serviceName = "konec-api"

func Get() Info {
	return Info{
		Service:   serviceName,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String renders a compact one-line build description for startup logs.
func (i Info) String() string {
	return i.Service + " " + i.Version + " (" + i.Commit + ", " + i.GoVersion + ")"
}
