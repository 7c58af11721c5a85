package github

import "strings"

// ExtractDescription returns the first content line under a "# Description"
// heading. A heading reached before any content ends that section.
func ExtractDescription(content string) (string, bool) {
	if content == "" {
		return "", false
	}

	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	for i, line := range lines {
		if strings.ToLower(line) != "# description" {
			continue
		}

		for _, next := range lines[i+1:] {
			if strings.HasPrefix(next, "#") {
				break
			}
			if next != "" {
				return next, true
			}
		}
	}

	return "", false
}
