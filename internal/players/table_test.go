package players

import (
	"reflect"
	"testing"
)

func sampleTable() *Table {
	return NewTable([]Record{
		{TeamName: "TeamA", Division: "Mixed", FirstName: "Alice", Goals: 3, Assists: 1},
		{TeamName: "TeamA", Division: "Mixed", FirstName: "Bob", Goals: 0, Assists: 2},
		{TeamName: "TeamB", Division: "Mixed", FirstName: "Carl", Goals: 5, Assists: 0},
		{TeamName: "TeamA", Division: "Open", FirstName: "Dana", Goals: 7, Assists: 4},
	})
}

func TestNewTable_CopiesInput(t *testing.T) {
	records := []Record{{TeamName: "India", Division: "Mixed", FirstName: "Asha"}}
	tbl := NewTable(records)
	records[0].FirstName = "Changed"

	if got := tbl.Rows()[0].FirstName; got != "Asha" {
		t.Errorf("FirstName = %q, want %q", got, "Asha")
	}
}

func TestTable_RowsReturnsCopy(t *testing.T) {
	tbl := sampleTable()
	rows := tbl.Rows()
	rows[0].Goals = 99

	if got := tbl.Rows()[0].Goals; got != 3 {
		t.Errorf("Goals = %d, want 3", got)
	}
	if tbl.Len() != 4 {
		t.Errorf("Len = %d, want 4", tbl.Len())
	}
}

func TestTable_Filter(t *testing.T) {
	tbl := sampleTable()

	got := tbl.Filter("Mixed", "TeamA")
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].FirstName != "Alice" || got[1].FirstName != "Bob" {
		t.Errorf("rows out of order: %+v", got)
	}
}

func TestTable_FilterIsExactMatch(t *testing.T) {
	tbl := sampleTable()

	cases := []struct {
		division, team string
	}{
		{"mixed", "TeamA"},
		{"Mixed", "teama"},
		{"Mixed ", "TeamA"},
		{"Open", "TeamB"},
		{"", ""},
	}
	for _, c := range cases {
		got := tbl.Filter(c.division, c.team)
		if got == nil {
			t.Errorf("Filter(%q, %q) returned nil, want empty slice", c.division, c.team)
		}
		if len(got) != 0 {
			t.Errorf("Filter(%q, %q) returned %d rows, want 0", c.division, c.team, len(got))
		}
	}
}

func TestTable_Teams(t *testing.T) {
	tbl := NewTable([]Record{
		{TeamName: "India", Division: "Mixed"},
		{TeamName: "India", Division: "Mixed"},
		{TeamName: "Brazil", Division: "Open"},
	})

	teams := tbl.Teams()
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d: %v", len(teams), teams)
	}
	set := map[string]bool{}
	for _, team := range teams {
		set[team] = true
	}
	if !set["India"] || !set["Brazil"] {
		t.Errorf("teams = %v, want India and Brazil", teams)
	}
}

func TestTable_DivisionsFirstSeenOrder(t *testing.T) {
	tbl := sampleTable()
	want := []string{"Mixed", "Open"}
	if got := tbl.Divisions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Divisions() = %v, want %v", got, want)
	}
}

func TestTable_Options(t *testing.T) {
	tbl := sampleTable()

	teams := tbl.TeamOptions()
	want := []Option{{Label: "TeamA", Value: "TeamA"}, {Label: "TeamB", Value: "TeamB"}}
	if !reflect.DeepEqual(teams, want) {
		t.Errorf("TeamOptions() = %v, want %v", teams, want)
	}

	divisions := tbl.DivisionOptions()
	if len(divisions) != 2 {
		t.Errorf("DivisionOptions() returned %d options, want 2", len(divisions))
	}
}

func TestTable_EmptyOptions(t *testing.T) {
	tbl := NewTable(nil)
	if opts := tbl.TeamOptions(); opts == nil || len(opts) != 0 {
		t.Errorf("TeamOptions() = %v, want empty slice", opts)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len = %d, want 0", tbl.Len())
	}
}
