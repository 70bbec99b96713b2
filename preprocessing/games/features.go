package games

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/YuminosukeSato/scibayes/core/parallel"
	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// Feature column names.
const (
	ColAtHome     = "at_home"
	ColAtOpp      = "at_opp"
	ColTeamWins   = "team_wins"
	ColTeamLosses = "team_losses"
	ColOppWins    = "opp_wins"
	ColOppLosses  = "opp_losses"
	ColTeamWon    = "team_won"

	teamAvgPrefix = "team_avg_"
	oppAvgPrefix  = "opp_avg_"
	allowedSuffix = "Allowed"
)

// History indexes games by participating team.
type History struct {
	byTeam map[string][]Game
}

// NewHistory indexes games for both of their teams.
func NewHistory(games []Game) *History {
	h := &History{byTeam: make(map[string][]Game)}
	for _, g := range games {
		h.byTeam[g.Team] = append(h.byTeam[g.Team], g)
		if g.Opponent != g.Team {
			h.byTeam[g.Opponent] = append(h.byTeam[g.Opponent], g)
		}
	}
	return h
}

// Before returns the games team played strictly before date.
func (h *History) Before(team string, date time.Time) []Game {
	var out []Game
	for _, g := range h.byTeam[team] {
		if g.Date.Before(date) {
			out = append(out, g)
		}
	}
	return out
}

// Record returns team's wins and losses over games.
func Record(team string, games []Game) (wins, losses int) {
	for _, g := range games {
		if !g.Involves(team) {
			continue
		}
		if g.WonBy(team) {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses
}

// averages returns team's mean gained and allowed value of stat, 0 with no games.
func averages(team, stat string, games []Game) (gained, allowed float64) {
	n := 0
	var sumGained, sumAllowed int
	for _, g := range games {
		if !g.Involves(team) {
			continue
		}
		n++
		sumGained += g.gained(team, stat)
		sumAllowed += g.allowed(team, stat)
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sumGained) / float64(n), float64(sumAllowed) / float64(n)
}

// Features describes one game by the teams' form before it was played.
type Features struct {
	Date     time.Time
	Team     string
	Opponent string

	TeamDifferential     *float64
	OpponentDifferential *float64

	AtHome bool
	AtOpp  bool

	TeamWins, TeamLosses int
	OppWins, OppLosses   int

	// keyed by stat root ("Score") and allowed root ("ScoreAllowed")
	TeamAvg map[string]float64
	OppAvg  map[string]float64

	TeamWon bool
}

// MakeFeatures derives the features of game from the games both teams
// played before its date.
func MakeFeatures(game Game, history *History, statVars []string) Features {
	teamHistory := history.Before(game.Team, game.Date)
	oppHistory := history.Before(game.Opponent, game.Date)

	f := Features{
		Date:                 game.Date,
		Team:                 game.Team,
		Opponent:             game.Opponent,
		TeamDifferential:     game.TeamDifferential,
		OpponentDifferential: game.OpponentDifferential,
		AtHome:               game.AtHome(game.Team),
		AtOpp:                game.AtOpponent(game.Team),
		TeamAvg:              make(map[string]float64, 2*len(statVars)),
		OppAvg:               make(map[string]float64, 2*len(statVars)),
		TeamWon:              game.WonBy(game.Team),
	}
	f.TeamWins, f.TeamLosses = Record(game.Team, teamHistory)
	f.OppWins, f.OppLosses = Record(game.Opponent, oppHistory)

	for _, s := range statVars {
		f.TeamAvg[s], f.TeamAvg[s+allowedSuffix] = averages(game.Team, s, teamHistory)
		f.OppAvg[s], f.OppAvg[s+allowedSuffix] = averages(game.Opponent, s, oppHistory)
	}
	return f
}

// MakeAllFeatures computes features for every game against the history of
// all of them. Output order follows games.
func MakeAllFeatures(ctx context.Context, games []Game, statVars []string) ([]Features, error) {
	history := NewHistory(games)
	out := make([]Features, len(games))
	err := parallel.ForEach(ctx, len(games), func(i int) error {
		out[i] = MakeFeatures(games[i], history, statVars)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FeatureColumns returns the feature CSV header in sorted order.
func FeatureColumns(statVars []string) []string {
	cols := []string{
		ColDate, ColTeam, ColOpponent, ColTeamDifferential, ColOpponentDifferential,
		ColAtHome, ColAtOpp, ColTeamWins, ColTeamLosses, ColOppWins, ColOppLosses, ColTeamWon,
	}
	for _, s := range statVars {
		cols = append(cols,
			teamAvgPrefix+s, teamAvgPrefix+s+allowedSuffix,
			oppAvgPrefix+s, oppAvgPrefix+s+allowedSuffix)
	}
	sort.Strings(cols)
	return cols
}

// WriteFeatures writes features as CSV with a sorted header.
func WriteFeatures(w io.Writer, features []Features, statVars []string) error {
	cols := FeatureColumns(statVars)
	writer := csv.NewWriter(w)
	if err := writer.Write(cols); err != nil {
		return errors.Wrap(err, "writing features header")
	}

	row := make([]string, len(cols))
	for _, f := range features {
		cells := f.cells(statVars)
		for i, c := range cols {
			row[i] = cells[c]
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "writing features row")
		}
	}
	writer.Flush()
	return writer.Error()
}

func (f Features) cells(statVars []string) map[string]string {
	cells := map[string]string{
		ColDate:                 f.Date.Format(DateLayout),
		ColTeam:                 f.Team,
		ColOpponent:             f.Opponent,
		ColTeamDifferential:     formatOptionalFloat(f.TeamDifferential),
		ColOpponentDifferential: formatOptionalFloat(f.OpponentDifferential),
		ColAtHome:               formatBool(f.AtHome),
		ColAtOpp:                formatBool(f.AtOpp),
		ColTeamWins:             strconv.Itoa(f.TeamWins),
		ColTeamLosses:           strconv.Itoa(f.TeamLosses),
		ColOppWins:              strconv.Itoa(f.OppWins),
		ColOppLosses:            strconv.Itoa(f.OppLosses),
		ColTeamWon:              formatBool(f.TeamWon),
	}
	for _, s := range statVars {
		for _, k := range []string{s, s + allowedSuffix} {
			cells[teamAvgPrefix+k] = strconv.FormatFloat(f.TeamAvg[k], 'g', -1, 64)
			cells[oppAvgPrefix+k] = strconv.FormatFloat(f.OppAvg[k], 'g', -1, 64)
		}
	}
	return cells
}

// ReadFeatures reads a CSV written by WriteFeatures.
func ReadFeatures(r io.Reader, statVars []string) ([]Features, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading features header")
	}
	cols, err := columnIndex("ReadFeatures", header, FeatureColumns(statVars))
	if err != nil {
		return nil, err
	}

	var out []Features
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading features line %d", line)
		}
		f, err := parseFeatures(row, cols, statVars)
		if err != nil {
			return nil, errors.Wrapf(err, "features line %d", line)
		}
		out = append(out, f)
	}
	return out, nil
}

func parseFeatures(row []string, cols map[string]int, statVars []string) (Features, error) {
	cell := func(name string) string { return strings.TrimSpace(row[cols[name]]) }

	var (
		f   Features
		err error
	)
	if f.Date, err = time.Parse(DateLayout, cell(ColDate)); err != nil {
		return Features{}, errors.Wrap(err, ColDate)
	}
	f.Team = row[cols[ColTeam]]
	f.Opponent = row[cols[ColOpponent]]
	if f.TeamDifferential, err = parseOptionalFloat(cell(ColTeamDifferential)); err != nil {
		return Features{}, errors.Wrap(err, ColTeamDifferential)
	}
	if f.OpponentDifferential, err = parseOptionalFloat(cell(ColOpponentDifferential)); err != nil {
		return Features{}, errors.Wrap(err, ColOpponentDifferential)
	}

	ints := []struct {
		col string
		dst *int
	}{
		{ColTeamWins, &f.TeamWins},
		{ColTeamLosses, &f.TeamLosses},
		{ColOppWins, &f.OppWins},
		{ColOppLosses, &f.OppLosses},
	}
	for _, c := range ints {
		if *c.dst, err = strconv.Atoi(cell(c.col)); err != nil {
			return Features{}, errors.Wrap(err, c.col)
		}
	}

	bools := []struct {
		col string
		dst *bool
	}{
		{ColAtHome, &f.AtHome},
		{ColAtOpp, &f.AtOpp},
		{ColTeamWon, &f.TeamWon},
	}
	for _, c := range bools {
		v, err := strconv.Atoi(cell(c.col))
		if err != nil {
			return Features{}, errors.Wrap(err, c.col)
		}
		*c.dst = v == 1
	}

	f.TeamAvg = make(map[string]float64, 2*len(statVars))
	f.OppAvg = make(map[string]float64, 2*len(statVars))
	for _, s := range statVars {
		for _, k := range []string{s, s + allowedSuffix} {
			if f.TeamAvg[k], err = strconv.ParseFloat(cell(teamAvgPrefix+k), 64); err != nil {
				return Features{}, errors.Wrap(err, teamAvgPrefix+k)
			}
			if f.OppAvg[k], err = strconv.ParseFloat(cell(oppAvgPrefix+k), 64); err != nil {
				return Features{}, errors.Wrap(err, oppAvgPrefix+k)
			}
		}
	}
	return f, nil
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
