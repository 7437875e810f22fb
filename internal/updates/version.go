// Package updates checks for newer launcher releases and service images.
package updates

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// TagPrefix marks launcher release tags in the shared repository.
const TagPrefix = "launcher-v"

// Version is a plain major.minor.patch triple.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// String renders the version as a canonical semver string with a leading v.
func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders two versions numerically: -1, 0 or +1.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.String(), other.String())
}

// NormalizeReleaseTag trims whitespace and strips the launcher prefix and a
// leading "v".
func NormalizeReleaseTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, TagPrefix)
	return strings.TrimPrefix(tag, "v")
}

// ParseVersion accepts exactly three dot-separated unsigned integers after
// normalization.
func ParseVersion(tag string) (Version, bool) {
	parts := strings.Split(NormalizeReleaseTag(tag), ".")
	if len(parts) != 3 {
		return Version{}, false
	}
	var nums [3]uint64
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// PickLatestTag returns the launcher tag with the highest numeric version.
// Tags without the launcher prefix or with unparseable versions are ignored.
func PickLatestTag(names []string) (string, bool) {
	var (
		best    string
		bestVer Version
		found   bool
	)
	for _, name := range names {
		if !strings.HasPrefix(strings.TrimSpace(name), TagPrefix) {
			continue
		}
		ver, ok := ParseVersion(name)
		if !ok {
			continue
		}
		if !found || ver.Compare(bestVer) > 0 {
			best, bestVer, found = name, ver, true
		}
	}
	return best, found
}

// IsNewer reports whether latest should be offered over current. Versions
// compare numerically when both parse; otherwise any difference counts.
func IsNewer(latest, current string) bool {
	remote, okRemote := ParseVersion(latest)
	local, okLocal := ParseVersion(current)
	if okRemote && okLocal {
		return remote.Compare(local) > 0
	}
	return NormalizeReleaseTag(latest) != NormalizeReleaseTag(current)
}
