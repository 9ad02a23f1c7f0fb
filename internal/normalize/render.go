package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/teamforge/profile-extractor/constants"
)

// RenderSection renders a section's items into one multi-line text block.
// Dispatch is keyed on the section kind, never guessed from field presence.
// An item matching no known shape is rendered as its raw serialized form so
// nothing is silently dropped.
func RenderSection(section constants.Section, items []any) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := renderItem(section, item)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func renderItem(section constants.Section, item any) string {
	m, ok := item.(map[string]any)
	if !ok {
		return rawForm(item)
	}

	var line string
	switch section {
	case constants.SectionEducation:
		line = renderEducation(m)
	case constants.SectionExperience:
		line = renderExperience(m)
	case constants.SectionSkills:
		line = renderSkill(m)
	case constants.SectionLanguages:
		line = renderLanguage(m)
	case constants.SectionCertifications:
		line = renderCertification(m)
	}
	if line == "" {
		return rawForm(m)
	}
	return line
}

func renderEducation(m map[string]any) string {
	degree := field(m, "degree")
	study := field(m, "field")
	inst := field(m, "institution")

	head := degree
	if study != "" {
		if head != "" {
			head += " in " + study
		} else {
			head = study
		}
	}
	return joinParts(head, inst)
}

func renderExperience(m map[string]any) string {
	role := field(m, "role")
	company := field(m, "company")
	duration := field(m, "duration")

	head := joinParts(role, company)
	if head != "" && duration != "" {
		head += " (" + duration + ")"
	} else if duration != "" {
		head = duration
	}

	resp := responsibilities(m)
	if head == "" {
		return resp
	}
	if resp != "" {
		return head + "\n" + resp
	}
	return head
}

func renderSkill(m map[string]any) string {
	name := field(m, "name")
	level := field(m, "level")
	if name == "" {
		return ""
	}
	if level != "" {
		return name + " (" + level + ")"
	}
	return name
}

func renderLanguage(m map[string]any) string {
	lang := field(m, "language")
	prof := field(m, "proficiency")
	if lang == "" {
		return ""
	}
	if prof != "" {
		return lang + " (" + prof + ")"
	}
	return lang
}

func renderCertification(m map[string]any) string {
	name := field(m, "name")
	issuer := field(m, "issuer")
	year := field(m, "year")

	head := joinParts(name, issuer)
	if head != "" && year != "" {
		head += " (" + year + ")"
	}
	return head
}

// responsibilities accepts either a plain string or a sequence of strings.
func responsibilities(m map[string]any) string {
	switch v := m["responsibilities"].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(fmt.Sprintf("%v", item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// field reads a loosely-typed value as trimmed display text. Numbers (JSON
// decodes them as float64) are formatted without a trailing ".0" so years
// come out clean.
func field(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func joinParts(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func rawForm(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
