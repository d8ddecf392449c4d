package social

import "strings"

// NormalizeContent appends each hashtag to the content, space-separated, in
// input order. A hashtag not starting with "#" gets the prefix added; one
// already carrying it is left alone. With no hashtags the content is
// returned unchanged.
func NormalizeContent(content string, hashtags []string) string {
	if len(hashtags) == 0 {
		return content
	}
	parts := make([]string, 0, len(hashtags)+1)
	parts = append(parts, content)
	for _, tag := range hashtags {
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		parts = append(parts, tag)
	}
	return strings.Join(parts, " ")
}
