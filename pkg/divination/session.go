package divination

import "errors"

// ErrSessionNotFound indicates the requested session does not exist in the
// backing store.
var ErrSessionNotFound = errors.New("session not found")

// Session is the state of one consultation: at most one original hexagram
// and at most one derived (changing) hexagram. The derived hexagram holds
// no back-reference to its source.
type Session struct {
	Question string    `json:"question,omitempty"`
	Original *Hexagram `json:"original,omitempty"`
	Changed  *Hexagram `json:"changed,omitempty"`
}
