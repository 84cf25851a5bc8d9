package contest

import (
	"fmt"
	"strconv"
	"strings"
)

// RankingRows returns the ranking as a header plus one row per contestant in
// registration order. Problems appear in creation order; a missing score
// renders as "-". The same rows feed the chat table, the CSV export and the
// spreadsheet mirror.
func RankingRows(s *State) (header []string, rows [][]string) {
	header = []string{"Contestant"}
	for _, p := range s.Problems {
		header = append(header, p.Name)
	}
	header = append(header, "Total")

	for _, c := range s.Contestants {
		row := []string{c.Name}
		total := 0
		for _, p := range s.Problems {
			if score, ok := s.FindScore(c.Name, p.Name); ok {
				row = append(row, strconv.Itoa(score))
				total += score
			} else {
				row = append(row, "-")
			}
		}
		row = append(row, strconv.Itoa(total))
		rows = append(rows, row)
	}
	return header, rows
}

// RankingTable renders the ranking as fixed-width text: a 20-char contestant
// column followed by 10-char columns for each problem and the total.
func RankingTable(s *State) string {
	header, rows := RankingRows(s)

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString(fmt.Sprintf("%-20s", cells[0]))
		for _, c := range cells[1:] {
			b.WriteString(fmt.Sprintf("%-10s", c))
		}
	}

	writeRow(header)
	for _, row := range rows {
		b.WriteString("\n")
		writeRow(row)
	}
	return b.String()
}

// RankingCSV renders the ranking for the HTTP export.
func RankingCSV(s *State) string {
	header, rows := RankingRows(s)

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(escapeCSV(c))
		}
	}

	writeRow(header)
	for _, row := range rows {
		b.WriteString("\n")
		writeRow(row)
	}
	return b.String()
}

func escapeCSV(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	if strings.ContainsAny(s, ",\n\r") {
		return `"` + s + `"`
	}
	return s
}

// HelpText builds the /help reply from the descriptor table.
func HelpText() string {
	var b strings.Builder
	b.WriteString("*CodeContest* helps you managing a contest of competitive programming.")
	for _, d := range Descriptors {
		b.WriteString("\n\n*" + d.Title + "*")
		if d.AdminOnly {
			b.WriteString(" (admins only)")
		}
		if d.ContestantOnly {
			b.WriteString(" (contestants only)")
		}
		b.WriteString("\n")
		b.WriteString(d.Usage)
	}
	return strings.ReplaceAll(b.String(), "_", `\_`)
}
