// Package export renders tournament and league snapshots as PDF documents.
package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/Dosada05/matchday-predictor/brackets"
	"github.com/Dosada05/matchday-predictor/models"
	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	rowHeight  = 6.0
)

var (
	headerGroup    = [3]int{0, 0, 0}
	headerKnockout = [3]int{139, 0, 0}
	headerLeague   = [3]int{0, 0, 139}
)

type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(title string) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252; team names like "Türkiye" need translating.
	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	d.title(title)
	return d
}

func (d *document) title(text string) {
	d.pdf.SetFont(fontFamily, "B", 18)
	d.pdf.CellFormat(0, 12, d.tr(text), "", 1, "C", false, 0, "")
	d.pdf.Ln(4)
}

func (d *document) heading(text string) {
	d.pdf.SetFont(fontFamily, "B", 13)
	d.pdf.CellFormat(0, 9, d.tr(text), "", 1, "L", false, 0, "")
}

func (d *document) line(text string) {
	d.pdf.SetFont(fontFamily, "", 10)
	d.pdf.CellFormat(0, rowHeight, d.tr(text), "", 1, "L", false, 0, "")
}

// table draws a header row on a coloured background followed by the rows.
func (d *document) table(widths []float64, header []string, rows [][]string, color [3]int) {
	d.pdf.SetFont(fontFamily, "B", 9)
	d.pdf.SetFillColor(color[0], color[1], color[2])
	d.pdf.SetTextColor(255, 255, 255)
	for i, h := range header {
		d.pdf.CellFormat(widths[i], rowHeight+1, d.tr(h), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont(fontFamily, "", 9)
	d.pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for i, cell := range row {
			align := "C"
			if header[i] == "Team" || header[i] == "Match" {
				align = "L"
			}
			d.pdf.CellFormat(widths[i], rowHeight, d.tr(cell), "1", 0, align, false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(4)
}

func (d *document) write(w io.Writer) error {
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// TournamentPDF writes the group tables, every generated knockout round and,
// once known, the champion.
func TournamentPDF(w io.Writer, state *models.TournamentState, username string) error {
	if err := brackets.ValidateState(state); err != nil {
		return err
	}
	d := newDocument("FIFA World Cup Tournament Record")
	if username != "" {
		d.line("Predicted by: " + username)
	}
	if !state.CreatedAt.IsZero() {
		d.line("Created: " + state.CreatedAt.Format("2006-01-02 15:04 MST"))
	}
	if champion, ok := state.Champion(); ok {
		d.heading("Champion: " + champion)
	}
	d.pdf.Ln(2)

	d.heading("Group stage")
	for _, g := range state.GroupNames() {
		d.line("Group " + g)
		var rows [][]string
		for _, r := range brackets.Rank(state.GroupTables[g]) {
			rows = append(rows, []string{r.Team, itoa(r.Played), itoa(r.Won), itoa(r.Drawn), itoa(r.Lost), itoa(r.GoalDifference), itoa(r.GoalsFor), itoa(r.Points)})
		}
		d.table([]float64{70, 14, 14, 14, 14, 16, 16, 16}, []string{"Team", "P", "W", "D", "L", "GD", "GF", "Pts"}, rows, headerGroup)
	}

	rounds := []struct {
		stage string
		title string
	}{
		{models.StageRoundOf32, "Round of 32"},
		{models.StageRoundOf16, "Round of 16"},
		{models.StageQuarterFinal, "Quarter-finals"},
		{models.StageSemiFinal, "Semi-finals"},
	}
	for _, r := range rounds {
		round, _ := state.Round(r.stage)
		if len(round) == 0 {
			continue
		}
		var rows [][]string
		for _, slot := range round.SlotIDs() {
			rows = append(rows, knockoutRow(slot, round[slot]))
		}
		d.heading(r.title)
		d.table(knockoutWidths, knockoutHeader, rows, headerKnockout)
	}
	if state.ThirdPlace != nil {
		d.heading("Third place")
		d.table(knockoutWidths, knockoutHeader, [][]string{knockoutRow(models.StageThirdPlace, state.ThirdPlace)}, headerKnockout)
	}
	if state.Final != nil {
		d.heading("Final")
		d.table(knockoutWidths, knockoutHeader, [][]string{knockoutRow(models.StageFinal, state.Final)}, headerKnockout)
	}
	return d.write(w)
}

var (
	knockoutWidths = []float64{24, 90, 26, 50}
	knockoutHeader = []string{"Slot", "Match", "Score", "Winner"}
)

func knockoutRow(slot string, m *models.Match) []string {
	score := ""
	if m.Played && m.ScoreA != nil && m.ScoreB != nil {
		score = fmt.Sprintf("%d-%d", *m.ScoreA, *m.ScoreB)
		if m.PenaltyWinner != nil {
			score += " (pens)"
		}
	}
	winner := string(m.Status())
	if m.IsResolved() {
		winner = *m.Winner
	}
	return []string{slot, m.TeamA + " vs " + m.TeamB, score, winner}
}

// LeaguePDF writes the predicted scores followed by the resulting league table.
func LeaguePDF(w io.Writer, league string, rows []models.LeagueTableRow, progress models.Progress) error {
	d := newDocument(league + " Predictions Summary")

	if len(progress) > 0 {
		keys := make([]string, 0, len(progress))
		for k := range progress {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var scores [][]string
		for _, k := range keys {
			s := progress[k]
			scores = append(scores, []string{k, fmt.Sprintf("%d-%d", s[0], s[1])})
		}
		d.heading("Results and predictions")
		d.table([]float64{140, 40}, []string{"Match", "Score"}, scores, headerLeague)
	}

	d.heading("League table")
	var table [][]string
	for i, r := range rows {
		table = append(table, []string{itoa(i + 1), r.Team, itoa(r.Played), itoa(r.Won), itoa(r.Draw), itoa(r.Lost), itoa(r.GD), itoa(r.Points)})
	}
	d.table([]float64{14, 70, 14, 14, 14, 14, 18, 18}, []string{"Pos", "Team", "P", "W", "D", "L", "GD", "Pts"}, table, headerLeague)
	return d.write(w)
}

func itoa(n int) string { return strconv.Itoa(n) }
