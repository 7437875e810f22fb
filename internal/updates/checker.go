package updates

import (
	"context"
	"log/slog"

	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/engine"
	"retreivr-launcher/internal/probe"
)

const (
	// TagsURL lists repository tags, newest first, up to one page.
	TagsURL = "https://api.github.com/repos/sudostacks/retreivr/tags?per_page=100"

	// ReleasesURL is the human-facing release page.
	ReleasesURL = "https://github.com/sudostacks/retreivr/releases"
)

// Checker answers "is there something newer" for the launcher itself and for
// the configured service image.
type Checker struct {
	runner   probe.Runner
	platform URLFetcher
	docker   *engine.Docker
	logger   *slog.Logger
	tagsURL  string
}

// NewChecker wires the update checker. platform may be nil.
func NewChecker(runner probe.Runner, platform URLFetcher, docker *engine.Docker, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		runner:   runner,
		platform: platform,
		docker:   docker,
		logger:   logger,
		tagsURL:  TagsURL,
	}
}

// TagURL is the release page of one tag.
func TagURL(tag string) string {
	return ReleasesURL + "/tag/" + tag
}

// LauncherVersionInfo compares the running launcher with the newest
// launcher tag. Failures are reported in CheckError, never returned.
func (c *Checker) LauncherVersionInfo(ctx context.Context, current string) domain.LauncherVersionInfo {
	info := domain.LauncherVersionInfo{
		CurrentVersion: current,
		ReleaseURL:     ReleasesURL,
	}

	names, err := c.fetchTagNames(ctx)
	if err != nil {
		info.CheckError = err.Error()
		return info
	}

	latest, ok := PickLatestTag(names)
	if !ok {
		return info
	}
	info.LatestVersion = NormalizeReleaseTag(latest)
	info.UpdateAvailable = IsNewer(latest, current)
	info.ReleaseURL = TagURL(latest)
	return info
}

// ImageUpdateStatus pulls image and reports whether its local ID changed.
// A missing local image never counts as an available update.
func (c *Checker) ImageUpdateStatus(ctx context.Context, image string) domain.ImageUpdateStatus {
	status := domain.ImageUpdateStatus{Image: image}
	status.LocalImageID = c.docker.ImageID(ctx, image)

	if _, err := c.docker.Pull(ctx, image); err != nil {
		status.CheckError = err.Error()
		c.logger.Debug("image pull failed", "image", image, "err", err)
		return status
	}

	status.RemoteImageID = c.docker.ImageID(ctx, image)
	status.UpdateAvailable = status.LocalImageID != "" &&
		status.RemoteImageID != "" &&
		status.LocalImageID != status.RemoteImageID
	return status
}
