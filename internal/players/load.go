package players

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names the roster file must provide.
const (
	ColTeamName  = "TeamName"
	ColDivision  = "Division"
	ColFirstName = "FirstName"
	ColGoals     = "Goals"
	ColAssists   = "Assists"
)

var RequiredColumns = []string{ColTeamName, ColDivision, ColFirstName, ColGoals, ColAssists}

var (
	ErrEmptyFile     = errors.New("roster file is empty")
	ErrMissingColumn = errors.New("missing required column")
)

// LoadFile opens path and reads the roster from it. The file is closed
// before returning.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}

// Load reads a comma separated roster with a header row. Columns are found
// by name, so their order is free and extra columns are ignored.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var rows []Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		goals, err := parseCount(fields[index[ColGoals]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColGoals, err)
		}
		assists, err := parseCount(fields[index[ColAssists]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColAssists, err)
		}

		rows = append(rows, Record{
			TeamName:  fields[index[ColTeamName]],
			Division:  fields[index[ColDivision]],
			FirstName: fields[index[ColFirstName]],
			Goals:     goals,
			Assists:   assists,
		})
	}
	return &Table{rows: rows}, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
