package leaderboard

import "testing"

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "Smith, John Jr.", want: "john smith"},
		{in: "john smith", want: "john smith"},
		{in: "  Ronald Acuna Jr.  ", want: "ronald acuna"},
		{in: "Griffey, Ken III", want: "ken griffey"},
		{in: "Guerrero Jr., Vladimir", want: "vladimir guerrero"},
		{in: "Judge, Aaron", want: "aaron judge"},
		{in: "", want: ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("NormalizeName(%q) got=%q want=%q", tc.in, got, tc.want)
		}
	}

	if NormalizeName("Smith, John Jr.") != NormalizeName("john smith") {
		t.Fatalf("expected suffix and order variants to normalize equal")
	}
}

type testRecord struct {
	Team  string
	XWOBA *float64
}

func buildBoard(t *testing.T, rows []Row) *Board[testRecord] {
	t.Helper()

	entries := make([]Entry[testRecord], 0, len(rows))
	for _, row := range rows {
		entry, ok := EntryFromRow(row, testRecord{Team: row["team"], XWOBA: row.Float("est_woba")})
		if ok {
			entries = append(entries, entry)
		}
	}
	return NewBoard(entries)
}

func TestBoard_FindExactOnAlternateColumns(t *testing.T) {
	t.Parallel()

	board := buildBoard(t, []Row{
		{ColumnLastFirst: "Soto, Juan", ColumnPlayerID: "665742", "team": "NYM"},
		{ColumnPlayerName: "Aaron Judge", ColumnPlayerID: "592450", "team": "NYY"},
		{ColumnName: "Bobby Witt Jr.", "team": "KC"},
	})

	cases := map[string]string{
		"Juan Soto":   "NYM",
		"aaron judge": "NYY",
		"Bobby Witt":  "KC",
	}
	for query, want := range cases {
		record, ok := board.Find(query)
		if !ok {
			t.Fatalf("expected to find %q", query)
		}
		if record.Team != want {
			t.Fatalf("Find(%q) returned wrong record: %+v", query, record)
		}
	}
}

func TestBoard_FindFuzzyReturnsFirstInInsertionOrder(t *testing.T) {
	t.Parallel()

	board := buildBoard(t, []Row{
		{ColumnLastFirst: "Smith, Will", "team": "LAD"},
		{ColumnLastFirst: "Smith, Dominic", "team": "NYM"},
	})

	record, ok := board.Find("smith")
	if !ok {
		t.Fatalf("expected fuzzy match")
	}
	if record.Team != "LAD" {
		t.Fatalf("expected first inserted candidate, got %+v", record)
	}

	if _, ok := board.Find("Unknown Player XYZ"); ok {
		t.Fatalf("did not expect a match for unknown player")
	}
}

func TestBoard_FindByIDAndLookup(t *testing.T) {
	t.Parallel()

	board := buildBoard(t, []Row{
		{ColumnLastFirst: "Ohtani, Shohei", ColumnPlayerID: "660271", "team": "LAD"},
		{ColumnPlayerID: "999", "team": "TBD"},
		{"team": "dropped"},
	})

	if board.Len() != 2 {
		t.Fatalf("rows without name or id must be skipped, len=%d", board.Len())
	}
	if _, ok := board.FindByID(660271); !ok {
		t.Fatalf("expected id lookup hit")
	}
	if record, ok := board.FindByID(999); !ok || record.Team != "TBD" {
		t.Fatalf("rows with only an id must still be indexed")
	}
	if _, ok := board.FindByID(0); ok {
		t.Fatalf("zero id must not match")
	}
	if record, ok := board.Lookup("Shohei Ohtani", 0); !ok || record.Team != "LAD" {
		t.Fatalf("expected name fallback in Lookup, got %+v ok=%v", record, ok)
	}
}

func TestBoard_ValuesSkipsMissingMetric(t *testing.T) {
	t.Parallel()

	board := buildBoard(t, []Row{
		{ColumnPlayerName: "A", "est_woba": ".350"},
		{ColumnPlayerName: "B", "est_woba": ".300"},
		{ColumnPlayerName: "C", "est_woba": "n/a"},
	})

	values := board.Values(func(r testRecord) *float64 { return r.XWOBA })
	if len(values) != 2 || values[0] != 0.35 || values[1] != 0.3 {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestRow_FloatProbesFallbackColumns(t *testing.T) {
	t.Parallel()

	row := Row{"avg_hit_speed": "", "exit_velocity_avg": "91.5"}
	got := row.Float("avg_hit_speed", "exit_velocity_avg")
	if got == nil || *got != 91.5 {
		t.Fatalf("unexpected probed value: %v", got)
	}
	if row.Float("missing") != nil {
		t.Fatalf("expected nil for missing column")
	}
}

func TestNameIndex_Find(t *testing.T) {
	t.Parallel()

	idx := NewNameIndex[int]()
	idx.Put("Mookie Betts", 1)
	idx.Put("Freddie Freeman", 2)
	idx.Put("mookie betts", 3)

	if v, ok := idx.Find("Betts, Mookie"); !ok || v != 1 {
		t.Fatalf("expected direct hit keeping first value, got %d ok=%v", v, ok)
	}
	if v, ok := idx.Find("freeman"); !ok || v != 2 {
		t.Fatalf("expected fuzzy hit, got %d ok=%v", v, ok)
	}
	if _, ok := idx.Find(""); ok {
		t.Fatalf("empty query must miss")
	}
}
