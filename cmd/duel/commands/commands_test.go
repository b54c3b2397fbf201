package commands

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/battlesnakeio/duel/config"
	"github.com/battlesnakeio/duel/stats"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func prompt(input string, defaults [2]string) (*linePrompt, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &linePrompt{
		in:       bufio.NewReader(strings.NewReader(input)),
		out:      out,
		defaults: defaults,
	}, out
}

func TestLinePrompt(t *testing.T) {
	p, out := prompt("ann\n\n  \nben\n", [2]string{})
	p1, p2, err := p.PlayerNames(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ann", p1)
	require.Equal(t, "ben", p2)
	require.Equal(t, "Player 1 name: Player 2 name: Player 2 name: Player 2 name: ", out.String())
}

func TestLinePromptDefaults(t *testing.T) {
	p, out := prompt("ben", [2]string{" ann ", ""})
	p1, p2, err := p.PlayerNames(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ann", p1)
	// A final line without newline still counts.
	require.Equal(t, "ben", p2)
	require.Equal(t, "Player 2 name: ", out.String())
}

func TestLinePromptEOF(t *testing.T) {
	p, _ := prompt("ann\n", [2]string{})
	_, _, err := p.PlayerNames(context.Background())
	require.EqualError(t, err, "no name given for player 2")
}

func TestLinePromptCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, _ := prompt("ann\nben\n", [2]string{})
	_, _, err := p.PlayerNames(ctx)
	require.Equal(t, context.Canceled, err)
}

func TestOpenStore(t *testing.T) {
	s, err := openStore(config.BackendInMem, "")
	require.NoError(t, err)
	require.NoError(t, s.RecordResult(context.Background(), "ann", stats.OutcomeWin, 1))
	closeStore(s)

	s, err = openStore(config.BackendFile, filepath.Join(t.TempDir(), "stats.jsonl"))
	require.NoError(t, err)
	require.NoError(t, s.EnsurePlayer(context.Background(), "ann"))
	require.NoError(t, closeIfCloser(s))

	_, err = openStore("csv", "")
	require.EqualError(t, err, `invalid backend "csv"`)

	_, err = openStore(config.BackendRedis, "not a url")
	require.Error(t, err)
}

func TestWriteLeaderboard(t *testing.T) {
	buf := &bytes.Buffer{}
	writeLeaderboard(buf, nil, 0)
	require.Equal(t, "no games played yet\n", buf.String())

	buf.Reset()
	writeLeaderboard(buf, []*stats.Record{
		{Name: "ann", Wins: 3, Losses: 1, TotalScore: 40},
		{Name: "蛇蛇", Wins: 1, Losses: 2, TotalScore: 12},
		{Name: "carol", Losses: 4, TotalScore: 3},
	}, 2)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "   #  name                    wins  losses    score", lines[0])
	require.Equal(t, "   1  ann                        3       1       40", lines[1])
	require.Equal(t, "   2  蛇蛇                       1       2       12", lines[2])
}

func TestWriteLeaderboardCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, writeLeaderboardCSV(buf, []*stats.Record{
		{Name: "ann", Wins: 3, Losses: 1, TotalScore: 40},
		{Name: "smith, bob", Wins: 1, Losses: 2, TotalScore: 12},
		{Name: "carol", Losses: 4, TotalScore: 3},
	}, 2))
	require.Equal(t, "rank,name,wins,losses,total_score\n"+
		"1,ann,3,1,40\n"+
		"2,\"smith, bob\",1,2,12\n", buf.String())

	buf.Reset()
	require.NoError(t, writeLeaderboardCSV(buf, nil, 0))
	require.Equal(t, "rank,name,wins,losses,total_score\n", buf.String())
}

func TestMergeFlags(t *testing.T) {
	old := flagCfg
	defer func() { flagCfg = old }()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.IntVar(&flagCfg.Width, "width", flagCfg.Width, "")
	fs.IntVar(&flagCfg.TickRate, "tick-rate", flagCfg.TickRate, "")
	fs.StringVar(&flagCfg.Display, "display", flagCfg.Display, "")
	require.NoError(t, fs.Parse([]string{"--width", "600", "--display", "tcell"}))

	loaded := config.Default()
	loaded.TickRate = 30
	mergeFlags(fs, &loaded)
	require.Equal(t, 600, loaded.Width)
	require.Equal(t, "tcell", loaded.Display)
	// Unset flags leave the loaded value alone.
	require.Equal(t, 30, loaded.TickRate)
}
