// Package release resolves vtx release tags and derives the artifact names
// published for each platform.
package release

import (
	"fmt"
	"strings"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

// Latest is the requested version that selects the newest published release.
const Latest = "latest"

// Spec identifies the release an install run targets.
// Resolved is empty until Resolver.Resolve returns a copy with it filled in.
type Spec struct {
	Repo      string
	Requested string
	Resolved  string
}

// IsLatest reports whether requested selects the newest release.
// An empty request is treated as latest.
func IsLatest(requested string) bool {
	trimmed := strings.TrimSpace(requested)
	return trimmed == "" || strings.EqualFold(trimmed, Latest)
}

// NormalizeTag returns requested with a leading "v", adding one when absent.
func NormalizeTag(requested string) string {
	tag := strings.TrimSpace(requested)
	if strings.HasPrefix(tag, "v") {
		return tag
	}
	return "v" + tag
}

// splitRepo validates an owner/name repository identifier.
func splitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(repo), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf(messages.ResolveInvalidRepoFmt, repo)
	}
	return owner, name, nil
}

// validTag rejects tags that cannot be placed in a release download path.
func validTag(tag string) bool {
	if tag == "" || tag == "v" {
		return false
	}
	if strings.ContainsAny(tag, "/\\?#% \t\r\n") {
		return false
	}
	return !strings.Contains(tag, "..")
}
