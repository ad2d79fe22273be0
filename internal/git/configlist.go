package git

import (
	"strings"
)

// ConfigEntry is one git configuration setting from a config listing.
type ConfigEntry struct {
	Scope      string `json:"scope"`
	Category   string `json:"category"`
	Name       string `json:"name"`
	Setting    string `json:"setting"`
	SourceFile string `json:"source_file,omitempty"`
}

// ParseConfigList parses `git config --list` output into entries.
// Each line is split on the first = only (values may contain =), and
// the key on the first . into category and name (deeper keys keep
// their remaining dots in the name). With showOrigin set, lines carry
// a leading tab-separated origin column as produced by
// `git config --list --show-origin`.
//
// Malformed lines are skipped and returned for warning-level
// reporting; they are never fatal.
func ParseConfigList(text, scope string, showOrigin bool) (entries []ConfigEntry, skipped []string) {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		sourceFile := ""
		kv := line
		if showOrigin {
			origin, rest, found := strings.Cut(line, "\t")
			if !found {
				skipped = append(skipped, line)
				continue
			}
			kv = rest
			sourceFile = strings.TrimPrefix(origin, "file:")
		}

		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			skipped = append(skipped, line)
			continue
		}

		category, name, found := strings.Cut(key, ".")
		if !found || name == "" {
			skipped = append(skipped, line)
			continue
		}

		entries = append(entries, ConfigEntry{
			Scope:      scope,
			Category:   category,
			Name:       name,
			Setting:    value,
			SourceFile: sourceFile,
		})
	}
	return entries, skipped
}
