package llm

import (
	"encoding/json"
	"strings"
)

// Shape classifies a response payload. The endpoint answers with either
// a list of result objects or a single result object; anything else
// (error bodies included) is unrecognized.
type Shape int

const (
	ShapeList Shape = iota
	ShapeObject
	ShapeUnrecognized
)

func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeObject:
		return "object"
	default:
		return "unrecognized"
	}
}

// Result is one generation result. GeneratedText is a pointer so an
// absent field can be told apart from an empty one.
type Result struct {
	GeneratedText *string `json:"generated_text"`
}

// DecodePayload classifies a raw response body and extracts its first
// result, if any. A list payload yields its first element (nil when
// the list is empty); an object payload yields itself; anything that
// parses as neither is ShapeUnrecognized with a nil result.
func DecodePayload(body []byte) (Shape, *Result) {
	var list []Result
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) == 0 {
			return ShapeList, nil
		}
		return ShapeList, &list[0]
	}

	var obj Result
	if err := json.Unmarshal(body, &obj); err == nil {
		return ShapeObject, &obj
	}

	return ShapeUnrecognized, nil
}

// GeneratedText extracts the generated text from a raw response body.
// The second return is false when the payload shape is unrecognized or
// the text field is absent. A present-but-empty field counts as absent:
// an empty reply rendered as nothing would look like a hang.
func GeneratedText(body []byte) (string, bool) {
	_, res := DecodePayload(body)
	if res == nil || res.GeneratedText == nil || *res.GeneratedText == "" {
		return "", false
	}
	return *res.GeneratedText, true
}

// StripPromptEcho removes the first literal occurrence of the prompt
// from the generated text and trims surrounding whitespace. The
// endpoint tends to echo the prompt back as a prefix of the output.
// The removal is a plain substring match, not anchored to the start,
// so a prompt that recurs later in the output has only its first
// occurrence removed.
func StripPromptEcho(text, prompt string) string {
	if prompt != "" {
		if i := strings.Index(text, prompt); i >= 0 {
			text = text[:i] + text[i+len(prompt):]
		}
	}
	return strings.TrimSpace(text)
}
