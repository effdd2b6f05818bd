// Package upgrade provides self-update functionality for minitext using GitHub releases.
package upgrade

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
)

// Slug is the GitHub repository releases are published to.
const Slug = "sungur/minitext"

// UpdateInfo holds information about an available update.
type UpdateInfo struct {
	Version string
	Notes   string
	release *selfupdate.Release
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}
	return updater, nil
}

// CheckUpdate checks GitHub releases for a version newer than currentVersion.
// Returns nil (no error) if already up to date.
func CheckUpdate(ctx context.Context, currentVersion string) (*UpdateInfo, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(Slug))
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return nil, nil
	}
	if !IsDevBuild(currentVersion) && !latest.GreaterThan(currentVersion) {
		return nil, nil
	}

	return &UpdateInfo{
		Version: latest.Version(),
		Notes:   latest.ReleaseNotes,
		release: latest,
	}, nil
}

// PerformUpdate downloads and applies the update described by info.
func PerformUpdate(ctx context.Context, info *UpdateInfo) error {
	if info == nil || info.release == nil {
		return fmt.Errorf("no update information available")
	}

	updater, err := newUpdater()
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to determine executable path: %w", err)
	}

	if err := updater.UpdateTo(ctx, info.release, exe); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}
	return nil
}

// IsDevBuild reports whether version is an unreleased build. Dev builds are
// always offered the latest release.
func IsDevBuild(version string) bool {
	v := strings.TrimPrefix(strings.TrimSpace(version), "v")
	return v == "" || v == "dev" || strings.HasSuffix(v, "-dirty")
}

// VersionString returns a formatted version string with optional build metadata.
func VersionString(version, commit, date string) string {
	var b strings.Builder
	b.WriteString("minitext ")
	b.WriteString(version)
	if commit != "" {
		b.WriteString(" (" + shortCommit(commit) + ")")
	}
	if date != "" {
		b.WriteString(" built " + date)
	}
	b.WriteString(" " + runtime.GOOS + "/" + runtime.GOARCH)
	return b.String()
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
