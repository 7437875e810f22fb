package updates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/probe"
)

// UserAgent identifies the launcher to the release host.
const UserAgent = "retreivr-launcher"

// URLFetcher is a platform-specific way to download a URL, typically via a
// scripting host. It returns errors.ErrUnsupported where none exists.
type URLFetcher interface {
	FetchURL(ctx context.Context, url, userAgent string) (string, error)
}

type fetchStrategy struct {
	name  string
	fetch func(ctx context.Context, url string) (string, error)
}

type tag struct {
	Name string `json:"name"`
}

// fetchChain returns the strategies in the order they are attempted.
func (c *Checker) fetchChain() []fetchStrategy {
	chain := []fetchStrategy{{
		name: "curl",
		fetch: func(ctx context.Context, url string) (string, error) {
			return c.runner.Output(ctx, probe.Command{
				Name: "curl",
				Args: []string{"-fsSL", "-H", "User-Agent: " + UserAgent, url},
			})
		},
	}}
	if c.platform != nil {
		chain = append(chain, fetchStrategy{
			name: "platform",
			fetch: func(ctx context.Context, url string) (string, error) {
				return c.platform.FetchURL(ctx, url, UserAgent)
			},
		})
	}
	return append(chain, fetchStrategy{
		name: "wget",
		fetch: func(ctx context.Context, url string) (string, error) {
			return c.runner.Output(ctx, probe.Command{
				Name: "wget",
				Args: []string{"-qO-", "--header=User-Agent: " + UserAgent, url},
			})
		},
	})
}

// fetchTagNames downloads the tag list with the first strategy that returns
// parseable JSON.
func (c *Checker) fetchTagNames(ctx context.Context) ([]string, error) {
	failures := make([]string, 0, 3)
	for _, strategy := range c.fetchChain() {
		body, err := strategy.fetch(ctx, c.tagsURL)
		if errors.Is(err, errors.ErrUnsupported) {
			continue
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", strategy.name, err))
			continue
		}
		names, err := decodeTags(body)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", strategy.name, err))
			continue
		}
		c.logger.Debug("fetched launcher tags", "strategy", strategy.name, "count", len(names))
		return names, nil
	}

	c.logger.Debug("launcher tag fetch failed", "failures", strings.Join(failures, " | "))
	return nil, fmt.Errorf("%w: unable to check launcher tag metadata (curl/powershell/wget not available or request failed): %s",
		domain.ErrNetworkUnavailable, strings.Join(failures, " | "))
}

// decodeTags accepts a JSON tag array. A bare object is treated as a
// one-element array because PowerShell collapses single-item arrays.
func decodeTags(body string) ([]string, error) {
	body = strings.TrimSpace(body)
	var tags []tag
	if strings.HasPrefix(body, "{") {
		var single tag
		if err := json.Unmarshal([]byte(body), &single); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
		tags = []tag{single}
	} else if err := json.Unmarshal([]byte(body), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}
