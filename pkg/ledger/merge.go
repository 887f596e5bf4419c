package ledger

import (
	"sort"
	"time"

	"github.com/halverson/doorlist/pkg/domain"
)

// Merge reconciles an imported record collection into the live ledger.
// Records are matched by merge identity (code, falling back to id); for
// each collision the side with the newer created_at wins, ties going to
// the incoming record so a re-import of the current state is a no-op.
// The merged entry is the field union of both sides with the winner's
// fields taking precedence, so a field present only on the losing side
// survives. Live records with no incoming counterpart are untouched:
// import is never destructive by omission. The result is sorted newest
// first; records with a missing or unparseable timestamp sort last.
func Merge(live []domain.RSVP, incoming []RawRecord) []domain.RSVP {
	index := make(map[string]RawRecord, len(live))
	keys := make([]string, 0, len(live)+len(incoming))
	for _, rec := range live {
		key := rec.Key()
		if _, ok := index[key]; !ok {
			keys = append(keys, key)
		}
		index[key] = rawOf(rec)
	}

	for _, in := range incoming {
		key := rawKey(in)
		existing, ok := index[key]
		if !ok {
			index[key] = in
			keys = append(keys, key)
			continue
		}
		winner, loser := in, existing
		if stampOf(in).Before(stampOf(existing)) {
			winner, loser = existing, in
		}
		index[key] = union(loser, winner)
	}

	merged := make([]domain.RSVP, 0, len(keys))
	for _, key := range keys {
		merged = append(merged, index[key].Record())
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return parseStamp(merged[i].CreatedAt).After(parseStamp(merged[j].CreatedAt))
	})
	return merged
}

// rawKey mirrors domain.RSVP.Key for the raw form.
func rawKey(r RawRecord) string {
	if code, ok := r["code"].(string); ok && code != "" {
		return code
	}
	if id, ok := r["id"].(string); ok {
		return id
	}
	return ""
}

func stampOf(r RawRecord) time.Time {
	ts, _ := r["created_at"].(string)
	return parseStamp(ts)
}

// parseStamp reads an ISO-8601 timestamp, with the zero time standing
// in for anything missing or malformed.
func parseStamp(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}

// union overlays every field of the winner onto the loser's fields.
func union(loser, winner RawRecord) RawRecord {
	out := make(RawRecord, len(loser)+len(winner))
	for k, v := range loser {
		out[k] = v
	}
	for k, v := range winner {
		out[k] = v
	}
	return out
}
