package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/battlesnakeio/duel/api"
	"github.com/battlesnakeio/duel/stats"
	"github.com/mattn/go-runewidth"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	statsListen string
	statsLimit  int
	statsCSV    bool
)

func init() {
	statsCmd.Flags().StringVarP(&statsListen, "listen", "l", "", "serve the leaderboard over http on this address instead of printing it")
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 0, "number of players to print, 0 for all")
	statsCmd.Flags().BoolVar(&statsCSV, "csv", false, "print the leaderboard as csv")
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "shows the leaderboard",
	RunE: func(c *cobra.Command, args []string) error {
		logs, err := setupLogging(cfg.LogLevel, "")
		if err != nil {
			return err
		}
		defer logs.Close()
		startPrometheus(cfg.PrometheusListen)

		store, err := openStore(cfg.StatsBackend, cfg.StatsBackendArgs)
		if err != nil {
			return err
		}
		defer closeStore(store)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if statsListen != "" {
			return serveLeaderboard(ctx, store, statsListen)
		}
		records, err := store.ListPlayers(ctx)
		if err != nil {
			return err
		}
		if statsCSV {
			return writeLeaderboardCSV(os.Stdout, records, statsLimit)
		}
		writeLeaderboard(os.Stdout, records, statsLimit)
		return nil
	},
}

func serveLeaderboard(ctx context.Context, store stats.Store, listen string) error {
	srv := api.New(listen, store, nil)
	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("unable to stop leaderboard server")
	}
	return nil
}

const nameColumnWidth = 20

// writeLeaderboard prints records as a table. Names are padded and cut by
// display width so wide characters line up.
func writeLeaderboard(w io.Writer, records []*stats.Record, limit int) {
	if len(records) == 0 {
		fmt.Fprintln(w, "no games played yet")
		return
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	fmt.Fprintf(w, "%4s  %s  %6s  %6s  %7s\n", "#", runewidth.FillRight("name", nameColumnWidth), "wins", "losses", "score")
	for i, r := range records {
		name := runewidth.Truncate(r.Name, nameColumnWidth, "…")
		fmt.Fprintf(w, "%4d  %s  %6d  %6d  %7d\n",
			i+1, runewidth.FillRight(name, nameColumnWidth), r.Wins, r.Losses, r.TotalScore)
	}
}

// writeLeaderboardCSV prints records as csv with a header row.
func writeLeaderboardCSV(w io.Writer, records []*stats.Record, limit int) error {
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "name", "wins", "losses", "total_score"}); err != nil {
		return err
	}
	for i, r := range records {
		row := []string{
			strconv.Itoa(i + 1),
			r.Name,
			strconv.FormatInt(r.Wins, 10),
			strconv.FormatInt(r.Losses, 10),
			strconv.FormatInt(r.TotalScore, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
