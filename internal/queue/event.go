// Package queue defines the entry.recorded event, its publisher and the
// background consumer that journals events to disk.
package queue

// EntryRecordedEvent is published after a journal entry is created. It
// carries enough for downstream consumers to log or aggregate without
// querying the primary database.
type EntryRecordedEvent struct {
	EntryID    string   `json:"entry_id"`
	UserID     string   `json:"user_id"`
	OccurredOn string   `json:"occurred_on"`
	Total      int      `json:"total"`
	Exposures  []string `json:"exposures"`
}
