package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/common"
)

// ListDecoder extracts the JSON array stored under key from a model reply.
type ListDecoder interface {
	DecodeList(text, key string) (json.RawMessage, error)
}

// ObjectDecoder expects a JSON object, as produced in JSON response mode. A
// missing key yields an empty list.
type ObjectDecoder struct{}

func (ObjectDecoder) DecodeList(text, key string) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorMalformedResult, err)
	}
	return listValue(obj[key])
}

// FencedDecoder accepts free-form replies: surrounding markdown code fences
// are stripped, then either a bare array or an object holding key is read.
type FencedDecoder struct{}

func (FencedDecoder) DecodeList(text, key string) (json.RawMessage, error) {
	s := StripFences(text)

	if strings.HasPrefix(s, "[") {
		return listValue(json.RawMessage(s))
	}
	return ObjectDecoder{}.DecodeList(s, key)
}

// DecoderFor returns the decoder matching a generator backend name.
func DecoderFor(backend string) ListDecoder {
	if backend == "groq" {
		return ObjectDecoder{}
	}
	return FencedDecoder{}
}

// StripFences removes a leading ``` line (with optional language tag) and a
// trailing ``` from s.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func listValue(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("[]"), nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: expected a list: %v", common.ErrorMalformedResult, err)
	}
	return raw, nil
}
