package domain

import "regexp"

var (
	tagPattern = regexp.MustCompile(`#(\w+)`)
	urlPattern = regexp.MustCompile(`https?://[^\s]+`)
)

// ExtractTags returns the set of #tag tokens embedded in text, without
// the leading hash, in order of first appearance.
func ExtractTags(text string) []string {
	matches := tagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		tags = append(tags, m[1])
	}
	return tags
}

// HasTag reports whether text carries the given #tag.
func HasTag(text, tag string) bool {
	for _, t := range ExtractTags(text) {
		if t == tag {
			return true
		}
	}
	return false
}

// ExtractURLs returns the http(s) links embedded in text.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// ContainsNSFW reports whether any of the task's tags is in the
// configured hide list. An empty hide list masks nothing.
func ContainsNSFW(text string, hidden []string) bool {
	if len(hidden) == 0 {
		return false
	}
	for _, tag := range ExtractTags(text) {
		for _, h := range hidden {
			if tag == h {
				return true
			}
		}
	}
	return false
}
