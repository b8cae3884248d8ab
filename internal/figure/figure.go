// Package figure turns a team/division selection into a plotly figure
// description with two donut charts: goals on the left, assists on the right.
package figure

import (
	"fmt"

	"wcbustats/internal/players"
)

const (
	HoleFraction     = 0.4
	AnnotationSize   = 20
	TitleFormat      = "Player Statistics - %s - %s"
	GoalsName        = "Goals"
	AssistsName      = "Assists"
	pieType          = "pie"
	textInfo         = "value"
	textPosition     = "inside"
	goalsHoverInfo   = "label+value+name"
	assistsHoverInfo = "label+value+name+percent"
)

// Selection is the pair of dropdown values driving the chart.
type Selection struct {
	Division string `json:"division"`
	Team     string `json:"team"`
}

type Figure struct {
	Data   []Pie  `json:"data"`
	Layout Layout `json:"layout"`
}

type Pie struct {
	Values       []int    `json:"values"`
	Labels       []string `json:"labels"`
	Domain       Domain   `json:"domain"`
	Name         string   `json:"name"`
	TextPosition string   `json:"textposition"`
	HoverInfo    string   `json:"hoverinfo"`
	Hole         float64  `json:"hole"`
	Type         string   `json:"type"`
	TextInfo     string   `json:"textinfo"`
}

type Domain struct {
	X [2]float64 `json:"x"`
}

type Layout struct {
	Title       string       `json:"title"`
	Annotations []Annotation `json:"annotations"`
}

type Annotation struct {
	Font      Font    `json:"font"`
	ShowArrow bool    `json:"showarrow"`
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type Font struct {
	Size int `json:"size"`
}

// Title formats the chart title for a selection.
func Title(sel Selection) string {
	return fmt.Sprintf(TitleFormat, sel.Team, sel.Division)
}

// Build filters the table by the selection and describes both donuts. A
// selection matching no rows gives two empty pies.
func Build(t *players.Table, sel Selection) Figure {
	return fromRows(t.Filter(sel.Division, sel.Team), sel)
}

// fromRows describes the donuts for rows that are already filtered.
func fromRows(rows []players.Record, sel Selection) Figure {
	labels := make([]string, 0, len(rows))
	goals := make([]int, 0, len(rows))
	assists := make([]int, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, r.FirstName)
		goals = append(goals, r.Goals)
		assists = append(assists, r.Assists)
	}

	// the pies must not share a backing array
	assistLabels := make([]string, len(labels))
	copy(assistLabels, labels)

	return Figure{
		Data: []Pie{
			{
				Values:       goals,
				Labels:       labels,
				Domain:       Domain{X: [2]float64{0, 0.48}},
				Name:         GoalsName,
				TextPosition: textPosition,
				HoverInfo:    goalsHoverInfo,
				Hole:         HoleFraction,
				Type:         pieType,
				TextInfo:     textInfo,
			},
			{
				Values:       assists,
				Labels:       assistLabels,
				Domain:       Domain{X: [2]float64{0.52, 1}},
				Name:         AssistsName,
				TextPosition: textPosition,
				HoverInfo:    assistsHoverInfo,
				Hole:         HoleFraction,
				Type:         pieType,
				TextInfo:     textInfo,
			},
		},
		Layout: Layout{
			Title: Title(sel),
			Annotations: []Annotation{
				{Font: Font{Size: AnnotationSize}, Text: GoalsName, X: 0.22, Y: 0.5},
				{Font: Font{Size: AnnotationSize}, Text: AssistsName, X: 0.785, Y: 0.5},
			},
		},
	}
}

// Empty reports whether the figure has no slices.
func (f Figure) Empty() bool {
	for _, p := range f.Data {
		if len(p.Values) > 0 {
			return false
		}
	}
	return true
}
