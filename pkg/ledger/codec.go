package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/halverson/doorlist/pkg/domain"
)

// CSVFields is the default export column set: every record field, in
// schema order. Exports may pass a narrower list.
var CSVFields = []string{
	"id", "name", "handle", "email", "event", "code",
	"created_at", "attended", "attended_at", "claimed", "claimed_at",
}

// RawRecord is a decoded record with its original field set intact.
// The reconciler works on this form because "field present on one side
// but not the other" is meaningful to the merge: an old snapshot that
// never had a claimed_at column must not erase one set locally.
type RawRecord map[string]any

// Record converts a raw record to the typed form. Fields of the wrong
// type are dropped rather than failing; an import is never rejected for
// a single bad value.
func (r RawRecord) Record() domain.RSVP {
	var rec domain.RSVP
	b, _ := json.Marshal(map[string]any(r))
	_ = json.Unmarshal(b, &rec)
	return rec
}

// rawOf expands a typed record into its raw form with every schema key
// present. Live records always dominate field presence during a merge.
func rawOf(rec domain.RSVP) RawRecord {
	b, _ := json.Marshal(rec)
	raw := make(RawRecord)
	_ = json.Unmarshal(b, &raw)
	return raw
}

// EncodeJSON renders records as the round-trippable structured export
// format, also used verbatim as the persisted ledger value.
func EncodeJSON(records []domain.RSVP) []byte {
	b, _ := json.MarshalIndent(records, "", "  ")
	return b
}

// EncodeTicket renders a single record for the attendee's ticket file.
func EncodeTicket(rec domain.RSVP) []byte {
	b, _ := json.MarshalIndent(rec, "", "  ")
	return b
}

// DecodeJSON parses a structured export back into raw records. Returns
// a ParseError when the payload is not well-formed JSON or not a
// sequence; callers treat that as "no valid import".
func DecodeJSON(data []byte) ([]RawRecord, error) {
	var raws []RawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &ParseError{Err: err}
	}
	return raws, nil
}

// DecodeRecords parses a structured export straight into typed records.
func DecodeRecords(data []byte) ([]domain.RSVP, error) {
	raws, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	records := make([]domain.RSVP, len(raws))
	for i, raw := range raws {
		records[i] = raw.Record()
	}
	return records, nil
}

// EncodeCSV renders records as delimited text: a header line of field
// names, then one line per record, every value wrapped in double quotes
// with embedded quotes doubled. A nil field list means CSVFields. An
// empty record set encodes to the empty string. Export-only; never
// parsed back.
func EncodeCSV(records []domain.RSVP, fields []string) string {
	if len(records) == 0 {
		return ""
	}
	if fields == nil {
		fields = CSVFields
	}

	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f)
	}
	for _, rec := range records {
		raw := rawOf(rec)
		sb.WriteByte('\n')
		for i, f := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quoteCSV(csvValue(raw[f])))
		}
	}
	return sb.String()
}

func csvValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSVFilename returns the dated tabular export filename.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("rsvp_export_%s.csv", now.Format("2006-01-02"))
}

// JSONFilename is the structured export filename.
const JSONFilename = "rsvp_export.json"

// TicketFilename returns the per-attendee ticket filename.
func TicketFilename(code string) string {
	return fmt.Sprintf("ticket_%s.json", code)
}
