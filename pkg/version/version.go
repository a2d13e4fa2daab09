package version

import (
	"fmt"
	"runtime"
)

// These variables are set via ldflags during build.
var (
	Version   = "dev"
	Commit    = "none"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

// Summary returns the version with a short commit suffix when one is known.
func Summary() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" && Commit != "none" {
		short := Commit
		if len(short) > 7 {
			short = short[:7]
		}
		return fmt.Sprintf("%s (%s)", v, short)
	}
	return v
}

// Info returns the multi-line build report printed by `knowva version`.
func Info() string {
	return fmt.Sprintf("knowva version %s\n  commit: %s\n  built: %s\n  go: %s\n  platform: %s/%s",
		Version, Commit, Date, GoVersion, runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent with every request to the answer service.
func UserAgent() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	return "knowva_cli/" + v
}
