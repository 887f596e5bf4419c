package ledger

import (
	"reflect"
	"testing"

	"github.com/halverson/doorlist/pkg/domain"
)

func ts(s string) *string { return &s }

func TestMergeIncomingNewerWins(t *testing.T) {
	live := []domain.RSVP{
		{ID: "a", Code: "AAA111", CreatedAt: "2024-01-01T00:00:00Z", Attended: false},
	}
	incoming, err := DecodeJSON([]byte(`[{"id":"a","code":"AAA111","created_at":"2024-01-02T00:00:00Z","attended":true}]`))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(live, incoming)
	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1", len(merged))
	}
	if !merged[0].Attended {
		t.Error("attended = false, want true (newer incoming wins)")
	}
	if merged[0].Code != "AAA111" {
		t.Errorf("code = %q, want unchanged key", merged[0].Code)
	}
}

func TestMergeExistingNewerWinsButUnionKeeps(t *testing.T) {
	live := []domain.RSVP{
		{ID: "b", Code: "BBB", CreatedAt: "2024-02-02T00:00:00Z", Claimed: true, ClaimedAt: ts("2024-02-03T00:00:00Z")},
	}
	// older snapshot: claimed was still false, but it carries an email
	// the live record never had
	incoming, err := DecodeJSON([]byte(`[{"id":"b","code":"BBB","created_at":"2024-01-01T00:00:00Z","claimed":false,"email":"b@example.com"}]`))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(live, incoming)
	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1", len(merged))
	}
	if !merged[0].Claimed {
		t.Error("claimed = false, want true (existing is newer)")
	}
	if merged[0].ClaimedAt == nil {
		t.Error("claimed_at lost in merge")
	}
	if merged[0].Email != "b@example.com" {
		t.Errorf("email = %q, want loser-only field carried over", merged[0].Email)
	}
}

func TestMergeTieFavorsIncoming(t *testing.T) {
	live := []domain.RSVP{
		{ID: "c", Code: "CCC", CreatedAt: "2024-01-01T00:00:00Z", Name: "Old Name"},
	}
	incoming, err := DecodeJSON([]byte(`[{"id":"c","code":"CCC","created_at":"2024-01-01T00:00:00Z","name":"New Name"}]`))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(live, incoming)
	if merged[0].Name != "New Name" {
		t.Errorf("name = %q, want incoming to win on equal timestamps", merged[0].Name)
	}
}

func TestMergeIdempotent(t *testing.T) {
	live := []domain.RSVP{
		{ID: "a", Code: "AAA", Name: "Ada", CreatedAt: "2024-01-02T00:00:00Z", Attended: true, AttendedAt: ts("2024-01-03T00:00:00Z")},
		{ID: "b", Code: "BBB", Name: "Bo", CreatedAt: "2024-01-01T00:00:00Z"},
	}
	snapshot := EncodeJSON(live)

	incoming, err := DecodeJSON(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	once := Merge(live, incoming)
	if !reflect.DeepEqual(once, live) {
		t.Errorf("merging own snapshot changed the ledger:\n got %+v\nwant %+v", once, live)
	}

	incoming, _ = DecodeJSON(snapshot)
	twice := Merge(once, incoming)
	if !reflect.DeepEqual(twice, once) {
		t.Error("second merge of the same snapshot is not a no-op")
	}
}

func TestMergeNeverRemovesLiveRecords(t *testing.T) {
	live := []domain.RSVP{
		{ID: "a", Code: "AAA", CreatedAt: "2024-01-02T00:00:00Z"},
		{ID: "b", Code: "BBB", CreatedAt: "2024-01-01T00:00:00Z"},
	}
	// import mentions only one key
	incoming, err := DecodeJSON([]byte(`[{"id":"a","code":"AAA","created_at":"2024-01-05T00:00:00Z"}]`))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(live, incoming)
	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2 (import is additive, never destructive)", len(merged))
	}
	keys := map[string]bool{}
	for _, rec := range merged {
		keys[rec.Key()] = true
	}
	if !keys["AAA"] || !keys["BBB"] {
		t.Errorf("merged keys = %v", keys)
	}
}

func TestMergeAddsUnknownKeys(t *testing.T) {
	live := []domain.RSVP{
		{ID: "a", Code: "AAA", CreatedAt: "2024-01-02T00:00:00Z"},
	}
	incoming, err := DecodeJSON([]byte(`[{"id":"n","code":"NEW","name":"Grace","created_at":"2024-01-03T00:00:00Z"}]`))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(live, incoming)
	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
}

func TestMergeKeyFallsBackToID(t *testing.T) {
	live := []domain.RSVP{
		{ID: "legacy-1", CreatedAt: "2024-01-01T00:00:00Z", Name: "Old"},
	}
	incoming, err := DecodeJSON([]byte(`[{"id":"legacy-1","created_at":"2024-01-02T00:00:00Z","name":"Updated"}]`))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(live, incoming)
	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1 (codeless records match by id)", len(merged))
	}
	if merged[0].Name != "Updated" {
		t.Errorf("name = %q, want %q", merged[0].Name, "Updated")
	}
}

func TestMergeSortsNewestFirst(t *testing.T) {
	live := []domain.RSVP{
		{ID: "old", Code: "OLD", CreatedAt: "2024-01-01T00:00:00Z"},
	}
	incoming, err := DecodeJSON([]byte(`[
		{"id":"new","code":"NEW","created_at":"2024-06-01T00:00:00Z"},
		{"id":"bad","code":"BAD","created_at":"not a timestamp"},
		{"id":"mid","code":"MID","created_at":"2024-03-01T00:00:00Z"}
	]`))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(live, incoming)
	var order []string
	for _, rec := range merged {
		order = append(order, rec.Code)
	}
	want := []string{"NEW", "MID", "OLD", "BAD"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v (unparseable timestamps sort last)", order, want)
	}
}

func TestMergeDuplicateCodesLastWriteWins(t *testing.T) {
	// two unrelated registrations that happen to share a code collapse
	// to one entry rather than crashing
	live := []domain.RSVP{
		{ID: "x", Code: "SAME", CreatedAt: "2024-01-01T00:00:00Z", Name: "First"},
	}
	incoming, err := DecodeJSON([]byte(`[{"id":"y","code":"SAME","created_at":"2024-01-02T00:00:00Z","name":"Second"}]`))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(live, incoming)
	if len(merged) != 1 {
		t.Fatalf("len(merged) = %d, want 1", len(merged))
	}
	if merged[0].Name != "Second" {
		t.Errorf("name = %q, want last write", merged[0].Name)
	}
}
