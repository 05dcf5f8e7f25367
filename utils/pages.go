package utils

import (
	"sort"
	"strings"
)

// SplitPages splits a comma separated Sider value into trimmed, non-empty tags
func SplitPages(pages string) []string {
	if strings.TrimSpace(pages) == "" {
		return nil
	}
	parts := strings.Split(pages, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// MergePages returns the sorted, deduplicated union of several Sider values joined by ','
func MergePages(values ...string) string {
	seen := make(map[string]bool)
	var merged []string
	for _, v := range values {
		for _, tag := range SplitPages(v) {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			merged = append(merged, tag)
		}
	}
	sort.Strings(merged)
	return strings.Join(merged, ",")
}
