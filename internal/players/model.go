package players

// Record is one row of the roster.
type Record struct {
	TeamName  string `json:"team_name"`
	Division  string `json:"division"`
	FirstName string `json:"first_name"`
	Goals     int    `json:"goals"`
	Assists   int    `json:"assists"`
}

// Option is a dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
