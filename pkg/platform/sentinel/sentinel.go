package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Source readers return these (optionally
// wrapped) so adapters can translate them into results or adapter failures.
//
// - ErrNotFound: record does not exist in the source system
// - ErrUnavailable: source system temporarily unavailable
// - ErrBadData: source returned a record that cannot be decoded
// - ErrTooManyMatches: a lookup matched more records than the reader will return
var (
	ErrNotFound       = errors.New("not found")
	ErrUnavailable    = errors.New("unavailable")
	ErrBadData        = errors.New("bad data")
	ErrTooManyMatches = errors.New("too many matches")
)
