package entity

import "time"

// DateCandidate is a parsed calendar date together with the literal substring
// it was read from and that substring's byte offset in the source text. The
// offset is what lets keyword-proximity classification say which date sits
// closest to "due date" wording.
type DateCandidate struct {
	Date    time.Time `json:"date"`
	Matched string    `json:"matched"`
	Offset  int       `json:"offset"`
}
