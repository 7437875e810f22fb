package updates

import (
	"context"
	"errors"
	"strings"
	"testing"

	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/engine"
	"retreivr-launcher/internal/probe"
)

const tagsJSON = `[{"name":"launcher-v0.9.0"},{"name":"v3.0.0"},{"name":"launcher-v0.10.1"}]`

type fakeFetcher struct {
	body  string
	err   error
	calls int
}

func (f *fakeFetcher) FetchURL(context.Context, string, string) (string, error) {
	f.calls++
	return f.body, f.err
}

func curlLine() string {
	return "curl -fsSL -H User-Agent: " + UserAgent + " " + TagsURL
}

func wgetLine() string {
	return "wget -qO- --header=User-Agent: " + UserAgent + " " + TagsURL
}

func newChecker(runner *probe.FakeRunner, platform URLFetcher) *Checker {
	return NewChecker(runner, platform, engine.NewDocker(runner, "/runtime"), nil)
}

// TestLauncherVersionInfoCurlWins validates the first strategy short-circuits.
func TestLauncherVersionInfoCurlWins(t *testing.T) {
	runner := probe.NewFakeRunner().OK(curlLine(), tagsJSON)
	platform := &fakeFetcher{err: errors.New("should not be called")}

	info := newChecker(runner, platform).LauncherVersionInfo(context.Background(), "0.9.6")

	if info.CheckError != "" {
		t.Fatalf("unexpected check error %q", info.CheckError)
	}
	if info.LatestVersion != "0.10.1" || !info.UpdateAvailable {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.ReleaseURL != ReleasesURL+"/tag/launcher-v0.10.1" {
		t.Fatalf("unexpected release url %q", info.ReleaseURL)
	}
	if platform.calls != 0 || runner.Called(wgetLine()) {
		t.Fatal("later strategies should not run after curl succeeds")
	}
}

// TestLauncherVersionInfoFallsBackToWget validates the chain order.
func TestLauncherVersionInfoFallsBackToWget(t *testing.T) {
	runner := probe.NewFakeRunner().
		Fail(curlLine(), "curl: (6) Could not resolve host").
		OK(wgetLine(), tagsJSON)
	platform := &fakeFetcher{err: errors.ErrUnsupported}

	info := newChecker(runner, platform).LauncherVersionInfo(context.Background(), "0.10.1")

	if info.CheckError != "" {
		t.Fatalf("unexpected check error %q", info.CheckError)
	}
	if info.UpdateAvailable {
		t.Fatal("current version should not report an update")
	}
	if platform.calls != 1 {
		t.Fatalf("expected platform fetch attempt, got %d", platform.calls)
	}
}

// TestLauncherVersionInfoPlatformSingleObject validates collapsed arrays.
func TestLauncherVersionInfoPlatformSingleObject(t *testing.T) {
	runner := probe.NewFakeRunner().Fail(curlLine(), "")
	platform := &fakeFetcher{body: `{"name":"launcher-v1.0.0"}`}

	info := newChecker(runner, platform).LauncherVersionInfo(context.Background(), "0.9.6")

	if info.LatestVersion != "1.0.0" || !info.UpdateAvailable {
		t.Fatalf("unexpected info %+v", info)
	}
}

// TestLauncherVersionInfoAllStrategiesFail validates error aggregation.
func TestLauncherVersionInfoAllStrategiesFail(t *testing.T) {
	runner := probe.NewFakeRunner().
		Fail(curlLine(), "curl failed").
		OK(wgetLine(), "<html>rate limited</html>")
	platform := &fakeFetcher{err: errors.New("powershell blocked")}
	checker := newChecker(runner, platform)

	_, err := checker.fetchTagNames(context.Background())
	if !errors.Is(err, domain.ErrNetworkUnavailable) {
		t.Fatalf("expected ErrNetworkUnavailable, got %v", err)
	}
	for _, part := range []string{"curl: curl failed", "platform: powershell blocked", "wget: decode tags"} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("expected %q in %q", part, err.Error())
		}
	}

	info := checker.LauncherVersionInfo(context.Background(), "0.9.6")
	if info.CheckError == "" || info.ReleaseURL != ReleasesURL || info.UpdateAvailable {
		t.Fatalf("unexpected info %+v", info)
	}
}

// TestLauncherVersionInfoNoLauncherTags validates the empty result.
func TestLauncherVersionInfoNoLauncherTags(t *testing.T) {
	runner := probe.NewFakeRunner().OK(curlLine(), `[{"name":"v2.0.0"}]`)

	info := newChecker(runner, nil).LauncherVersionInfo(context.Background(), "0.9.6")

	if info.CheckError != "" || info.LatestVersion != "" || info.UpdateAvailable {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.ReleaseURL != ReleasesURL {
		t.Fatalf("expected release page, got %q", info.ReleaseURL)
	}
}

const image = "ghcr.io/sudostacks/retreivr:latest"

func inspectLine() string {
	return "docker image inspect " + image + " --format {{.Id}}"
}

// TestImageUpdateStatusChanged validates a pulled newer image.
func TestImageUpdateStatusChanged(t *testing.T) {
	runner := probe.NewFakeRunner().
		OK(inspectLine(), "sha256:old").
		OK(inspectLine(), "sha256:new").
		OK("docker pull "+image, "Status: Downloaded newer image")

	status := newChecker(runner, nil).ImageUpdateStatus(context.Background(), image)

	if !status.UpdateAvailable || status.LocalImageID != "sha256:old" || status.RemoteImageID != "sha256:new" {
		t.Fatalf("unexpected status %+v", status)
	}
}

// TestImageUpdateStatusNoLocalImage validates a first pull is not an update.
func TestImageUpdateStatusNoLocalImage(t *testing.T) {
	runner := probe.NewFakeRunner().
		Fail(inspectLine(), "No such image").
		OK(inspectLine(), "sha256:new").
		OK("docker pull "+image, "ok")

	status := newChecker(runner, nil).ImageUpdateStatus(context.Background(), image)

	if status.UpdateAvailable {
		t.Fatalf("expected no update without a local image, got %+v", status)
	}
	if status.RemoteImageID != "sha256:new" {
		t.Fatalf("unexpected remote id %q", status.RemoteImageID)
	}
}

// TestImageUpdateStatusPullFailure validates check_error reporting.
func TestImageUpdateStatusPullFailure(t *testing.T) {
	runner := probe.NewFakeRunner().
		OK(inspectLine(), "sha256:old").
		Fail("docker pull "+image, "denied: requested access to the resource is denied")

	status := newChecker(runner, nil).ImageUpdateStatus(context.Background(), image)

	if status.UpdateAvailable || status.RemoteImageID != "" {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.CheckError != "denied: requested access to the resource is denied" {
		t.Fatalf("unexpected check error %q", status.CheckError)
	}
}
