package contest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankingFixture() *State {
	s := NewState()
	s.Contestants = []User{{Name: "C1", ChatID: 1}, {Name: "C2", ChatID: 2}}
	s.Problems = []Problem{{Name: "P1", T1: 10, T2: 20}, {Name: "P2", T1: 10, T2: 20}}
	s.CurrentProblem = "P2"
	s.Scores = []ScoreEntry{
		{Contestant: "C1", Problem: "P1", Score: 100},
		{Contestant: "C1", Problem: "P2", Score: 50},
		{Contestant: "C2", Problem: "P1", Score: 0},
	}
	return s
}

func TestRankingRows(t *testing.T) {
	header, rows := RankingRows(rankingFixture())

	assert.Equal(t, []string{"Contestant", "P1", "P2", "Total"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"C1", "100", "50", "150"}, rows[0])
	assert.Equal(t, []string{"C2", "0", "-", "0"}, rows[1])
}

func TestRankingTableLayout(t *testing.T) {
	table := RankingTable(rankingFixture())
	lines := strings.Split(table, "\n")
	require.Len(t, lines, 3)

	// 20-char name column, 10-char score columns
	assert.Equal(t, "Contestant          P1        P2        Total", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "C1                  100       50        150", strings.TrimRight(lines[1], " "))
	assert.Equal(t, "C2                  0         -         0", strings.TrimRight(lines[2], " "))
	assert.True(t, strings.HasPrefix(lines[1], "C1                  100       "))
}

func TestRankingTableEmptyContest(t *testing.T) {
	table := RankingTable(NewState())
	assert.Equal(t, "Contestant          Total", strings.TrimRight(table, " "))
}

func TestRankingCSV(t *testing.T) {
	csv := RankingCSV(rankingFixture())
	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Contestant,P1,P2,Total", lines[0])
	assert.Equal(t, "C1,100,50,150", lines[1])
	assert.Equal(t, "C2,0,-,0", lines[2])
}

func TestRankingCSVEscapesCells(t *testing.T) {
	s := NewState()
	s.Contestants = []User{{Name: `Del Piero, "Ale"`, ChatID: 1}}
	csv := RankingCSV(s)
	assert.Contains(t, csv, `"Del Piero, ""Ale"""`)
}

func TestHelpTextListsEveryCommand(t *testing.T) {
	text := HelpText()
	for _, d := range Descriptors {
		assert.Contains(t, text, "*"+d.Title+"*")
	}
	assert.NotContains(t, text, "/i_am_admin", "underscores must be escaped for Markdown")
	assert.Contains(t, text, `/i\_am\_admin <password>`)
}
