package models

import "time"

// MetadataKind says how a metadata type constrains its values: free text or
// dictionary-constrained.
type MetadataKind string

const (
	MetadataTextKind MetadataKind = "TEXT"
	MetadataDictKind MetadataKind = "DICT"
)

// MetadataType declares a custom field. Name doubles as the key referenced
// by values and dictionary entries.
type MetadataType struct {
	Name      string       `json:"name" db:"name"`
	Kind      MetadataKind `json:"kind" db:"kind"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// MetadataDictEntry enumerates one legal value for a DICT-kind type.
type MetadataDictEntry struct {
	MetadataType string `json:"metadata_type" db:"metadata_type"`
	Value        string `json:"value" db:"value"`
}

// MetadataValue binds a (ticket, metadata type) pair to a concrete value.
// For DICT types the value must appear in the dictionary for that type.
type MetadataValue struct {
	ID           string    `json:"id" db:"id"`
	TicketID     string    `json:"ticket_id" db:"ticket_id"`
	MetadataType string    `json:"metadata_type" db:"metadata_type"`
	Value        string    `json:"value" db:"value"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// MetadataTypePriority is the well-known dictionary type used by the
// agent's priority tool.
const MetadataTypePriority = "PRIORITY"
