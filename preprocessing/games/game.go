// Package games turns basketball game results into discrete feature records
// for the Naive Bayes classifier: it loads result CSVs, removes the mirrored
// duplicate of each game, derives per-game history features and converts
// them to boolean comparisons between the two teams.
package games

import (
	"bufio"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// DateLayout is the date format of the Date column.
const DateLayout = "01/02/2006"

// Column names of the game results file.
const (
	ColDate                 = "Date"
	ColTeam                 = "Team"
	ColOpponent             = "Opponent"
	ColTeamLocation         = "Team Location"
	ColOpponentLocation     = "Opponent Location"
	ColTeamDifferential     = "Team Differential"
	ColOpponentDifferential = "Opponent Differential"
)

// Location values.
const (
	Home = "Home"
	Away = "Away"
)

// ScoreStat is the stat root that decides the winner of a game. It is always
// loaded, whether or not it is listed as a feature stat.
const ScoreStat = "Score"

// DefaultStatVars are the stat roots used when none are configured.
var DefaultStatVars = []string{ScoreStat}

// Game is one row of the results file, seen from Team's side.
type Game struct {
	Date             time.Time
	Team             string
	Opponent         string
	TeamLocation     string
	OpponentLocation string

	// nil when the cell is blank
	TeamDifferential     *float64
	OpponentDifferential *float64

	// keyed by stat root, e.g. "Score"
	TeamStats     map[string]int
	OpponentStats map[string]int
}

// Involves reports whether team played in g.
func (g Game) Involves(team string) bool {
	return team == g.Team || team == g.Opponent
}

// AtHome reports whether team played g at home.
func (g Game) AtHome(team string) bool {
	return (team == g.Team && g.TeamLocation == Home) ||
		(team == g.Opponent && g.OpponentLocation == Away)
}

// AtOpponent reports whether team played g at the opponent's home.
func (g Game) AtOpponent(team string) bool {
	return (team == g.Team && g.TeamLocation == Away) ||
		(team == g.Opponent && g.OpponentLocation == Home)
}

// WonBy reports whether team won g. Equal scores count as an opponent win.
func (g Game) WonBy(team string) bool {
	if g.TeamStats[ScoreStat] > g.OpponentStats[ScoreStat] {
		return team == g.Team
	}
	return team == g.Opponent
}

// gained returns team's own value of stat in g.
func (g Game) gained(team, stat string) int {
	if team == g.Team {
		return g.TeamStats[stat]
	}
	return g.OpponentStats[stat]
}

// allowed returns the value of stat scored against team in g.
func (g Game) allowed(team, stat string) int {
	if team == g.Team {
		return g.OpponentStats[stat]
	}
	return g.TeamStats[stat]
}

// LoadGames reads a game results CSV. Besides the fixed columns, every stat
// root s in statVars and ScoreStat needs integer columns "Team s" and
// "Opponent s".
func LoadGames(r io.Reader, statVars []string) ([]Game, error) {
	statVars = withScore(statVars)
	reader := csv.NewReader(bufio.NewReader(r))
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading games header")
	}
	cols, err := columnIndex("LoadGames", header, requiredGameColumns(statVars))
	if err != nil {
		return nil, err
	}

	var games []Game
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading games line %d", line)
		}
		g, err := parseGame(row, cols, statVars)
		if err != nil {
			return nil, errors.Wrapf(err, "games line %d", line)
		}
		games = append(games, g)
	}
	return games, nil
}

func withScore(statVars []string) []string {
	for _, s := range statVars {
		if s == ScoreStat {
			return statVars
		}
	}
	return append([]string{ScoreStat}, statVars...)
}

func requiredGameColumns(statVars []string) []string {
	cols := []string{ColDate, ColTeam, ColOpponent, ColTeamLocation, ColOpponentLocation,
		ColTeamDifferential, ColOpponentDifferential}
	for _, s := range statVars {
		cols = append(cols, "Team "+s, "Opponent "+s)
	}
	return cols
}

func parseGame(row []string, cols map[string]int, statVars []string) (Game, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(row[cols[ColDate]]))
	if err != nil {
		return Game{}, errors.Wrap(err, "parsing date")
	}
	g := Game{
		Date:             date,
		Team:             row[cols[ColTeam]],
		Opponent:         row[cols[ColOpponent]],
		TeamLocation:     row[cols[ColTeamLocation]],
		OpponentLocation: row[cols[ColOpponentLocation]],
		TeamStats:        make(map[string]int, len(statVars)),
		OpponentStats:    make(map[string]int, len(statVars)),
	}
	if g.TeamDifferential, err = parseOptionalFloat(row[cols[ColTeamDifferential]]); err != nil {
		return Game{}, errors.Wrap(err, ColTeamDifferential)
	}
	if g.OpponentDifferential, err = parseOptionalFloat(row[cols[ColOpponentDifferential]]); err != nil {
		return Game{}, errors.Wrap(err, ColOpponentDifferential)
	}
	for _, s := range statVars {
		if g.TeamStats[s], err = strconv.Atoi(strings.TrimSpace(row[cols["Team "+s]])); err != nil {
			return Game{}, errors.Wrapf(err, "Team %s", s)
		}
		if g.OpponentStats[s], err = strconv.Atoi(strings.TrimSpace(row[cols["Opponent "+s]])); err != nil {
			return Game{}, errors.Wrapf(err, "Opponent %s", s)
		}
	}
	return g, nil
}

func parseOptionalFloat(cell string) (*float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func columnIndex(op string, header []string, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, errors.NewValueError(op, "missing column "+strconv.Quote(name))
		}
	}
	return cols, nil
}

// UniqueGames drops the mirrored copy of each game. Within one date a game
// is kept only if its team is not the opponent of a game already kept that
// day. The result is ordered by date, keeping file order within a date.
func UniqueGames(games []Game) []Game {
	byDate := make(map[time.Time][]Game)
	var dates []time.Time
	for _, g := range games {
		if _, ok := byDate[g.Date]; !ok {
			dates = append(dates, g.Date)
		}
		byDate[g.Date] = append(byDate[g.Date], g)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var unique []Game
	for _, d := range dates {
		var kept []Game
		for _, g := range byDate[d] {
			mirrored := false
			for _, h := range kept {
				if g.Team == h.Opponent {
					mirrored = true
					break
				}
			}
			if !mirrored {
				kept = append(kept, g)
			}
		}
		unique = append(unique, kept...)
	}
	return unique
}
