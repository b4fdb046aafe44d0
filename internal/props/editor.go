package props

import "strings"

// Outcome is the result of UpdateProperty.
// Matched is true when at least one line defines the key.
// Updated is true when the effective (last) definition differed from the requested value.
type Outcome struct {
	Lines   []string
	Matched bool
	Updated bool
}

// UpdateProperty rewrites every line defining key whose trimmed value differs from value to `key=value`
// and leaves all other lines untouched.
// Matched/Updated follow the last matching line, so an earlier duplicate may be rewritten while Updated
// stays false.
func UpdateProperty(lines []string, key, value string) Outcome {
	m := NewMatcher(key)
	acc := Outcome{Lines: make([]string, 0, len(lines))}
	for _, line := range lines {
		acc = step(acc, m, line, key, value)
	}
	return acc
}

func step(acc Outcome, m *Matcher, line, key, value string) Outcome {
	current, ok := m.Match(line)
	if !ok {
		acc.Lines = append(acc.Lines, line)
		return acc
	}
	acc.Matched = true
	// assignment, not OR: the last match decides
	acc.Updated = strings.TrimSpace(current) != value
	if acc.Updated {
		acc.Lines = append(acc.Lines, key+"="+value)
	} else {
		acc.Lines = append(acc.Lines, line)
	}
	return acc
}

// Editor applies UpdateProperty to a properties file on disk.
type Editor struct {
	Path string
}

func NewEditor(path string) *Editor {
	return &Editor{Path: path}
}

// UpdateProperty loads the file and computes the edit. Nothing is written.
func (e *Editor) UpdateProperty(key, value string) (Outcome, error) {
	lines, err := Load(e.Path)
	if err != nil {
		return Outcome{}, err
	}
	return UpdateProperty(lines, key, value), nil
}

// Save persists lines to the editor's file.
func (e *Editor) Save(lines []string) error {
	return Save(e.Path, lines)
}
