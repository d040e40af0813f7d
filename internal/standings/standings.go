// Package standings derives the league table from canonical match results.
// It is a pure computation: callers feed it every match of the season and it
// never touches the store, so a new match always re-ranks the whole table.
package standings

import "sort"

// Match is one played league match, identified by canonical team names.
type Match struct {
	HomeTeam string
	AwayTeam string
	HomeSets int
	AwaySets int
	HomeLegs int
	AwayLegs int
}

// Row is one team's line in the league table.
type Row struct {
	Team        string `json:"team"`
	Played      int    `json:"played"`
	Points      int    `json:"points"`
	LegsFor     int    `json:"legs_for"`
	LegsAgainst int    `json:"legs_against"`
	LegDiff     int    `json:"leg_diff"`
	Position    int    `json:"position"`
}

// Calculate accumulates every match into per-team totals and ranks the teams.
// Points are sets won; ties are broken by leg difference. Teams that remain
// fully tied keep their first-seen order.
func Calculate(matches []Match) []Row {
	totals := make(map[string]*Row)
	var order []string

	teamRow := func(name string) *Row {
		row, ok := totals[name]
		if !ok {
			row = &Row{Team: name}
			totals[name] = row
			order = append(order, name)
		}
		return row
	}

	for _, m := range matches {
		home := teamRow(m.HomeTeam)
		home.Played++
		home.Points += m.HomeSets
		home.LegsFor += m.HomeLegs
		home.LegsAgainst += m.AwayLegs

		away := teamRow(m.AwayTeam)
		away.Played++
		away.Points += m.AwaySets
		away.LegsFor += m.AwayLegs
		away.LegsAgainst += m.HomeLegs
	}

	rows := make([]Row, 0, len(order))
	for _, name := range order {
		row := totals[name]
		row.LegDiff = row.LegsFor - row.LegsAgainst
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].LegDiff > rows[j].LegDiff
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}
