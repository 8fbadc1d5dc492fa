package idea

import (
	"bytes"
	"encoding/json"

	"github.com/futig/architech-backend/internal/entity"
)

var defaultAudience = []entity.Audience{
	{Icon: "user", Text: "General users interested in this application"},
	{Icon: "professional", Text: "Professionals seeking productivity tools"},
	{Icon: "student", Text: "Students and learners"},
}

var defaultMetrics = []entity.SuccessMetric{
	{Type: "Kuantitatif", Text: "Achieve 1,000 monthly active users within 6 months"},
	{Type: "Kuantitatif", Text: "Maintain 40% user retention after 30 days"},
	{Type: "Kualitatif", Text: "Achieve NPS score above 50"},
}

// repairList replaces a list whose first element lacks the marker key with
// fallback. An empty or non-list value becomes an empty list.
func repairList(raw json.RawMessage, marker string, fallback any) json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return json.RawMessage("[]")
	}

	var first map[string]json.RawMessage
	if err := json.Unmarshal(items[0], &first); err == nil {
		if _, ok := first[marker]; ok {
			return raw
		}
	}

	repaired, _ := json.Marshal(fallback)
	return repaired
}

// decodeProjectData applies the list repairs and decodes the result.
func decodeProjectData(fields map[string]json.RawMessage) (entity.ProjectData, error) {
	if raw, ok := fields["target_audience"]; ok {
		fields["target_audience"] = repairList(raw, "icon", defaultAudience)
	}
	if raw, ok := fields["success_metrics"]; ok {
		fields["success_metrics"] = repairList(raw, "type", defaultMetrics)
	}

	var pd entity.ProjectData
	encoded, err := json.Marshal(fields)
	if err != nil {
		return pd, err
	}
	if err := json.Unmarshal(encoded, &pd); err != nil {
		return pd, err
	}

	if pd.TargetAudience == nil {
		pd.TargetAudience = []entity.Audience{}
	}
	if pd.SuccessMetrics == nil {
		pd.SuccessMetrics = []entity.SuccessMetric{}
	}
	if pd.TechStack == nil {
		pd.TechStack = []string{}
	}
	return pd, nil
}

// parseIdeas accepts a bare array, {"ideas": [...]}, {"projectIdeas": [...]}
// or the first array-valued key of an object. Anything else yields no ideas.
func parseIdeas(raw json.RawMessage) ([]entity.IdeaOption, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []entity.IdeaOption{}, nil
	}

	switch raw[0] {
	case '[':
		return decodeIdeas(raw)
	case '{':
	default:
		return []entity.IdeaOption{}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}

	for _, key := range []string{"ideas", "projectIdeas"} {
		if list, ok := obj[key]; ok {
			return decodeIdeas(list)
		}
	}

	// map order is random; walk keys in document order
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if _, isKey := tok.(string); isKey && bytes.HasPrefix(bytes.TrimSpace(value), []byte("[")) {
			return decodeIdeas(value)
		}
	}

	return []entity.IdeaOption{}, nil
}

func decodeIdeas(raw json.RawMessage) ([]entity.IdeaOption, error) {
	ideas := []entity.IdeaOption{}
	if raw = bytes.TrimSpace(raw); len(raw) == 0 || raw[0] != '[' {
		return ideas, nil
	}
	if err := json.Unmarshal(raw, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}
