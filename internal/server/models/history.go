package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the persisted, second-resolution local time format.
const TimestampLayout = "2006-01-02 15:04:05"

// ActivityType tags what produced a history entry.
type ActivityType string

const (
	ActivityExplain    ActivityType = "explain"
	ActivitySummarize  ActivityType = "summarize"
	ActivityQuiz       ActivityType = "quiz"
	ActivityFlashcards ActivityType = "flashcards"
)

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityExplain, ActivitySummarize, ActivityQuiz, ActivityFlashcards:
		return true
	}
	return false
}

// HistoryEntry records one generation activity. Result holds the raw JSON
// value returned to the client: a string for explain/summarize, an array for
// quiz/flashcards.
type HistoryEntry struct {
	Type      ActivityType    `json:"type"`
	Input     string          `json:"input"`
	Result    json.RawMessage `json:"result"`
	Timestamp string          `json:"timestamp"`
}

// NewHistoryEntry encodes result and stamps the entry with now in local time.
func NewHistoryEntry(t ActivityType, input string, result any, now time.Time) (HistoryEntry, error) {
	if !t.Valid() {
		return HistoryEntry{}, fmt.Errorf("unknown activity type %q", t)
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("encode result: %w", err)
	}
	return HistoryEntry{
		Type:      t,
		Input:     input,
		Result:    raw,
		Timestamp: now.Local().Format(TimestampLayout),
	}, nil
}

// UnmarshalJSON compacts Result so entries read back from indented storage
// compare equal to the ones that were written.
func (e *HistoryEntry) UnmarshalJSON(b []byte) error {
	type plain HistoryEntry
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if len(p.Result) > 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, p.Result); err != nil {
			return err
		}
		p.Result = buf.Bytes()
	}
	*e = HistoryEntry(p)
	return nil
}
