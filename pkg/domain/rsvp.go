package domain

// RSVP is one registration in the ledger. Identity fields are fixed at
// creation; only the two status flags and their paired timestamps change
// afterwards.
type RSVP struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Handle     string  `json:"handle"`
	Email      string  `json:"email,omitempty"`
	Event      string  `json:"event"`
	Code       string  `json:"code"`
	CreatedAt  string  `json:"created_at"`
	Attended   bool    `json:"attended"`
	AttendedAt *string `json:"attended_at"`
	Claimed    bool    `json:"claimed"`
	ClaimedAt  *string `json:"claimed_at"`
}

// Key returns the merge identity of the record: the redemption code, or
// the ID for records that predate codes. Two records sharing a key are
// the same logical registration.
func (r RSVP) Key() string {
	if r.Code != "" {
		return r.Code
	}
	return r.ID
}
