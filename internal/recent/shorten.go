package recent

import "strings"

// ShortenPath shortens a slash-separated relative path that has more than
// limit segments to first/../second-to-last/last. Shorter paths, and paths
// with a single segment, are returned joined as-is.
func ShortenPath(rel string, limit int) string {
	var segments []string
	for _, s := range strings.Split(rel, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	n := len(segments)
	if n <= limit || n < 2 {
		return strings.Join(segments, "/")
	}
	return segments[0] + "/../" + segments[n-2] + "/" + segments[n-1]
}
