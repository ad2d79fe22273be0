package git

import (
	"regexp"
	"strings"
)

// RemoteField is one labeled value from `git remote show` output.
type RemoteField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RemoteInfo is the parsed remote description for one repository.
type RemoteInfo struct {
	Repo   string        `json:"repo"`
	Fields []RemoteField `json:"fields"`
}

// Get returns the value for label, or empty when absent.
func (r RemoteInfo) Get(label string) string {
	for _, f := range r.Fields {
		if strings.EqualFold(f.Label, label) {
			return f.Value
		}
	}
	return ""
}

// labelRe matches "Label: value" lines. The label runs to the first
// colon; the value may itself contain colons (URLs).
var labelRe = regexp.MustCompile(`^\s*([A-Za-z][^:]*):\s*(.*)$`)

// ParseRemoteShow parses the semi-structured block printed by
// `git remote show <name>`. Most lines are "Label: value"; some
// labels (Remote branch, Local branch configured for 'git pull') are
// followed by indented continuation lines instead of an inline value.
// Continuation lines accumulate into the preceding label's value
// until the next label line. Lines before the first label (the
// "* remote origin" banner) are skipped.
func ParseRemoteShow(text string) []RemoteField {
	var fields []RemoteField

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := labelRe.FindStringSubmatch(line); m != nil {
			fields = append(fields, RemoteField{
				Label: strings.TrimSpace(m[1]),
				Value: strings.TrimSpace(m[2]),
			})
			continue
		}

		if len(fields) == 0 {
			continue
		}
		last := &fields[len(fields)-1]
		cont := strings.TrimSpace(line)
		if last.Value == "" {
			last.Value = cont
		} else {
			last.Value += ", " + cont
		}
	}

	return fields
}
