package players

// Table is the loaded roster. It is never mutated after construction, so it
// can be shared between request goroutines without locking.
type Table struct {
	rows []Record
}

// NewTable copies records into a new table, keeping their order.
func NewTable(records []Record) *Table {
	rows := make([]Record, len(records))
	copy(rows, records)
	return &Table{rows: rows}
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of every record in file order.
func (t *Table) Rows() []Record {
	rows := make([]Record, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Filter returns the rows whose team and division match exactly, in file
// order. No match yields an empty, non-nil slice.
func (t *Table) Filter(division, team string) []Record {
	matched := make([]Record, 0)
	for _, r := range t.rows {
		if r.TeamName == team && r.Division == division {
			matched = append(matched, r)
		}
	}
	return matched
}

// Teams lists distinct team names in first-seen order.
func (t *Table) Teams() []string {
	return t.unique(func(r Record) string { return r.TeamName })
}

// Divisions lists distinct divisions in first-seen order.
func (t *Table) Divisions() []string {
	return t.unique(func(r Record) string { return r.Division })
}

func (t *Table) TeamOptions() []Option {
	return toOptions(t.Teams())
}

func (t *Table) DivisionOptions() []Option {
	return toOptions(t.Divisions())
}

func (t *Table) unique(column func(Record) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, r := range t.rows {
		v := column(r)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

func toOptions(values []string) []Option {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Label: v, Value: v})
	}
	return opts
}
