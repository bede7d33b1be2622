package niriwindows

import "strings"

// Status is what gets handed to the bar: one glyph per window and a tooltip
// listing them.
type Status struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
}

func GlyphLine(icon string, count int) string {
	if count <= 0 {
		return ""
	}

	glyphs := make([]string, count)
	for i := range glyphs {
		glyphs[i] = icon
	}
	return strings.Join(glyphs, " ")
}

func Tooltip(windows []Window) string {
	lines := make([]string, 0, len(windows))
	for _, w := range windows {
		lines = append(lines, w.String())
	}
	return strings.Join(lines, "\n")
}

func (s *State) Project(icon string, scope Scope) (Status, error) {
	count, err := s.CountFor(scope)
	if err != nil {
		return Status{}, err
	}

	windows, err := s.WindowsFor(scope)
	if err != nil {
		return Status{}, err
	}

	return Status{
		Text:    GlyphLine(icon, count),
		Tooltip: Tooltip(windows),
	}, nil
}
