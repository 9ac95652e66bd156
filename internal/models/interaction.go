// Package models defines the data structures persisted and served by the service.
package models

import "encoding/json"

// Request types for an interaction.
const (
	RequestTypeChat       = "chat"
	RequestTypeTranscribe = "transcribe"
)

// InteractionRecord is one logged transaction: a user query and the
// provider's answer. Records are append-only; they are never updated
// or deleted once written.
type InteractionRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamp   string `gorm:"not null" json:"timestamp"` // RFC3339, set at orchestration time
	UserQuery   string `gorm:"not null" json:"user_query"`
	AIResponse  string `json:"ai_response"`
	RequestType string `gorm:"not null" json:"request_type"` // chat | transcribe
	VoiceOutput bool   `json:"voice_output"`
}

// TableName keeps the original table name from the first deployment.
func (InteractionRecord) TableName() string { return "logs" }

// AggregateCount is a derived view: how often a distinct query text
// appears in the log.
type AggregateCount struct {
	UserQuery string `json:"user_query"`
	Count     int64  `json:"count"`
}

// MarshalJSON serializes the aggregate as a [query, count] pair, the
// shape the analytics endpoint has always returned.
func (a AggregateCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.UserQuery, a.Count})
}

// InteractionEvent is the payload published to Kafka after a record
// has been durably appended.
type InteractionEvent struct {
	EventType   string `json:"eventType"`
	RecordID    uint   `json:"recordId"`
	Timestamp   string `json:"timestamp"`
	UserQuery   string `json:"userQuery"`
	RequestType string `json:"requestType"`
	VoiceOutput bool   `json:"voiceOutput"`
}
