package ledger

import (
	"slices"
	"strings"
	"time"

	"github.com/halverson/doorlist/pkg/domain"
)

// Persisted keys. The ledger value is the structured export format;
// the other two are plain strings.
const (
	keyEventName  = "event_name"
	keyPassphrase = "admin_pass"
	keyLedger     = "rsvps"
)

// KV is the persistence port injected into the store. Reads fall back
// to the caller's default on a missing or unreadable key; writes are
// best-effort and swallow failures. There is nothing to recover to if
// storage misbehaves, so neither direction surfaces errors.
type KV interface {
	Get(key, fallback string) string
	Put(key, value string)
}

// StatusField selects which status flag Toggle flips.
type StatusField int

const (
	FieldAttended StatusField = iota
	FieldClaimed
)

// CreateInput is the attendee-supplied registration form.
type CreateInput struct {
	Name   string
	Handle string
	Email  string
}

// Store owns the RSVP collection and the two persisted settings. It is
// the only writer: every mutation goes through a method here and is
// persisted synchronously before the method returns. Single-threaded
// run-to-completion callers; no locking.
type Store struct {
	kv         KV
	records    []domain.RSVP
	eventName  string
	passphrase string
}

// NewStore loads persisted state through the given port. Absent or
// corrupt persisted records load as an empty ledger; startup never
// fails on bad state.
func NewStore(kv KV, defaultEvent, defaultPass string) *Store {
	s := &Store{
		kv:         kv,
		eventName:  kv.Get(keyEventName, defaultEvent),
		passphrase: kv.Get(keyPassphrase, defaultPass),
	}
	if raw := kv.Get(keyLedger, ""); raw != "" {
		if records, err := DecodeRecords([]byte(raw)); err == nil {
			s.records = records
		}
	}
	return s
}

// All returns a snapshot of the ledger, newest first.
func (s *Store) All() []domain.RSVP {
	return slices.Clone(s.records)
}

// Len returns the number of registrations.
func (s *Store) Len() int {
	return len(s.records)
}

// Create validates the form, builds a record with fresh id and code,
// and inserts it at the front of the ledger. The returned record is the
// attendee's only copy of the plaintext code, so callers render it
// immediately.
func (s *Store) Create(in CreateInput) (domain.RSVP, error) {
	name := strings.TrimSpace(in.Name)
	handle := strings.TrimSpace(in.Handle)
	if name == "" {
		return domain.RSVP{}, &ValidationError{Field: "name"}
	}
	if handle == "" {
		return domain.RSVP{}, &ValidationError{Field: "handle"}
	}

	rec := domain.RSVP{
		ID:        domain.NewID(),
		Name:      name,
		Handle:    handle,
		Email:     strings.TrimSpace(in.Email),
		Event:     s.eventName,
		Code:      domain.NewCode(),
		CreatedAt: now(),
	}
	s.records = append([]domain.RSVP{rec}, s.records...)
	s.persist()
	return rec, nil
}

// Toggle flips a status flag on the record with the given id, setting
// the paired timestamp on the false-to-true transition and clearing it
// on the way back. Two identical toggles restore the original flag.
// Returns ErrNotFound for an unknown id.
func (s *Store) Toggle(id string, field StatusField) (domain.RSVP, error) {
	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		rec := &s.records[i]
		switch field {
		case FieldAttended:
			rec.Attended = !rec.Attended
			rec.AttendedAt = stampIf(rec.Attended)
		case FieldClaimed:
			rec.Claimed = !rec.Claimed
			rec.ClaimedAt = stampIf(rec.Claimed)
		}
		s.persist()
		return *rec, nil
	}
	return domain.RSVP{}, ErrNotFound
}

// Delete removes the record with the given id. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persist()
			return
		}
	}
}

// ReplaceAll swaps in a whole new collection atomically.
func (s *Store) ReplaceAll(records []domain.RSVP) {
	s.records = slices.Clone(records)
	s.persist()
}

// Import decodes a structured export and reconciles it into the ledger
// as one atomic replacement. A payload that fails to decode leaves the
// ledger unchanged and returns a ParseError for the caller to absorb.
func (s *Store) Import(data []byte) error {
	raws, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	s.ReplaceAll(Merge(s.records, raws))
	return nil
}

// EventName returns the configured event display name.
func (s *Store) EventName() string {
	return s.eventName
}

// SetEventName updates and persists the event display name. Existing
// records keep the name they were created under.
func (s *Store) SetEventName(name string) {
	s.eventName = name
	s.kv.Put(keyEventName, name)
}

// Passphrase returns the shared admin passphrase.
func (s *Store) Passphrase() string {
	return s.passphrase
}

// SetPassphrase overwrites the stored passphrase. This is the only
// recovery flow: whoever can reach the gate can reset it.
func (s *Store) SetPassphrase(pass string) {
	s.passphrase = pass
	s.kv.Put(keyPassphrase, pass)
}

func (s *Store) persist() {
	s.kv.Put(keyLedger, string(EncodeJSON(s.records)))
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func stampIf(on bool) *string {
	if !on {
		return nil
	}
	ts := now()
	return &ts
}
