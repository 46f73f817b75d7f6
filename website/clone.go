package website

import "sort"

// Clone returns a deep copy of the document. Section payloads are copied
// recursively so the result shares no mutable state with the receiver.
func (d Document) Clone() Document {
	out := d
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for idx, section := range d.Sections {
			out.Sections[idx] = section.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	out.Data = CloneMap(s.Data)
	out.Style = CloneMap(s.Style)
	return out
}

// SortedSections returns cloned sections ordered by Order ascending. Ties keep
// their slice position.
func (d Document) SortedSections() []Section {
	out := make([]Section, len(d.Sections))
	for idx, section := range d.Sections {
		out[idx] = section.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// CloneMap deep-copies JSON-like maps.
func CloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneSlice(input []any) []any {
	if input == nil {
		return nil
	}
	out := make([]any, len(input))
	for idx, value := range input {
		out[idx] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneMap(typed)
	case []any:
		return cloneSlice(typed)
	case []map[string]any:
		out := make([]map[string]any, len(typed))
		for idx, entry := range typed {
			out[idx] = CloneMap(entry)
		}
		return out
	case []string:
		out := make([]string, len(typed))
		copy(out, typed)
		return out
	default:
		return value
	}
}
