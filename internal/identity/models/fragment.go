package models

// RawIdentityFragment is one source record's contact data, as read. It is produced per query
// and never persisted. Values are raw; normalization happens downstream.
type RawIdentityFragment struct {
	Email          string       `json:"email,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Name           string       `json:"name,omitempty"`
	SourceSystem   SourceSystem `json:"source_system"`
	SourceRecordID string       `json:"source_record_id"`
}

// Filter selects fragments by contact identifier. At least one field must be set; an empty
// filter matches nothing.
type Filter struct {
	Email string
	Phone string
}

// IsEmpty reports whether neither identifier is set.
func (f Filter) IsEmpty() bool {
	return f.Email == "" && f.Phone == ""
}
