package questions

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	minPerTech = 3
	maxPerTech = 5
)

// Question is a single generated interview question with optional guidance on
// what a strong answer should cover.
type Question struct {
	Question         string `json:"question"`
	IdealAnswerFocus string `json:"ideal_answer_focus"`
}

// Set maps a technology name to its normalized questions.
type Set map[string][]Question

// entryKind classifies the raw value supplied for a single technology. The
// kind is decided once up front and each kind is handled by its own function.
type entryKind int

const (
	kindString entryKind = iota
	kindList
	kindScalar
)

func classify(v any) entryKind {
	switch v.(type) {
	case string:
		return kindString
	case []any:
		return kindList
	default:
		return kindScalar
	}
}

// Normalize converts an arbitrary-shaped question map, as decoded from LLM
// output, into a Set containing exactly the requested technologies. Each
// technology ends up with between minPerTech and maxPerTech well-shaped
// questions; oversupply is silently truncated to the first maxPerTech while
// undersupply is an InsufficientQuestionsError. Technologies present in raw
// but not requested are ignored.
func Normalize(raw map[string]any, techs []string) (Set, error) {
	out := make(Set, len(techs))

	for _, tech := range techs {
		entry, ok := raw[tech]
		if !ok {
			return nil, &MissingTechnologyError{Tech: tech}
		}

		var list []Question
		switch classify(entry) {
		case kindString:
			list = normalizeString(entry.(string))
		case kindList:
			list = normalizeList(entry.([]any))
		case kindScalar:
			list = normalizeScalar(entry)
		}

		if len(list) < minPerTech {
			return nil, &InsufficientQuestionsError{Tech: tech, Got: len(list)}
		}

		if len(list) > maxPerTech {
			list = list[:maxPerTech]
		}

		out[tech] = list
	}

	return out, nil
}

func normalizeString(s string) []Question {
	return []Question{{Question: strings.TrimSpace(s)}}
}

func normalizeScalar(v any) []Question {
	return []Question{{Question: stringify(v)}}
}

func normalizeList(items []any) []Question {
	list := make([]Question, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case string:
			list = append(list, Question{Question: strings.TrimSpace(it)})
		case map[string]any:
			list = append(list, normalizeMapEntry(it))
		default:
			list = append(list, Question{Question: stringify(it)})
		}
	}
	return list
}

// questionKeys are tried in order when extracting the question text from an
// object-shaped entry. focusKeys likewise for the guidance string.
var (
	questionKeys = []string{"question", "q", "prompt"}
	focusKeys    = []string{"ideal_answer_focus", "focus"}
)

func normalizeMapEntry(entry map[string]any) Question {
	var q string
	for _, key := range questionKeys {
		if s, ok := entry[key].(string); ok && strings.TrimSpace(s) != "" {
			q = s
			break
		}
	}
	if q == "" {
		q = firstStringValue(entry)
	}
	if q == "" {
		q = stringify(entry)
	}

	var focus string
	for _, key := range focusKeys {
		if v, ok := entry[key]; ok && v != nil {
			if s, ok := v.(string); ok {
				focus = s
			} else {
				focus = stringify(v)
			}
			break
		}
	}

	return Question{
		Question:         strings.TrimSpace(q),
		IdealAnswerFocus: strings.TrimSpace(focus),
	}
}

func firstStringValue(entry map[string]any) string {
	// JSON objects have no field order; sort keys so the fallback is stable.
	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if s, ok := entry[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return strings.TrimSpace(string(data))
}
