// Package version reports build metadata injected at link time.
package version

import (
	"errors"
	"fmt"
	"time"
)

// Set through -ldflags "-X tactics-server/internal/version.BuildDate=...".
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// buildEpoch is build 0.
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// VersionInfo is served on /version.
type VersionInfo struct {
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate"`
	Commit     string `json:"commit"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID is the number of days between the epoch and BuildDate.
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, errors.New("build date not set")
	}
	day, err := time.ParseInLocation(time.DateOnly, BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", BuildDate, err)
	}
	if day.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before %s", BuildDate, buildEpoch.Format(time.DateOnly))
	}
	return int(day.Sub(buildEpoch).Hours() / 24), nil
}

// Info never fails; a missing or bad date is reported in Error.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}
	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

// String is the one-line banner logged at startup.
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("Build unknown (%s)", info.Error)
	}
	return fmt.Sprintf("Build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.BuildID, info.BuildDate,
		orDefault(info.Commit, "unknown"),
		orDefault(info.Branch, "unknown"),
		orDefault(info.CI, "local"),
	)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
