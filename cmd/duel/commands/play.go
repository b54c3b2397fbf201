package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/battlesnakeio/duel/api"
	"github.com/battlesnakeio/duel/stats"
	"github.com/battlesnakeio/duel/terminal"
	"github.com/battlesnakeio/duel/worker"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	player1 string
	player2 string
)

func init() {
	f := playCmd.Flags()
	f.StringVar(&player1, "player1", "", "name of player one, prompted for when empty")
	f.StringVar(&player2, "player2", "", "name of player two, prompted for when empty")
	f.IntVar(&flagCfg.Width, "width", flagCfg.Width, "board width")
	f.IntVar(&flagCfg.Height, "height", flagCfg.Height, "board height")
	f.IntVar(&flagCfg.BlockSize, "block-size", flagCfg.BlockSize, "size of one board cell, must divide width and height")
	f.IntVar(&flagCfg.FruitCount, "fruit", flagCfg.FruitCount, "number of fruits on the board")
	f.IntVar(&flagCfg.TickRate, "tick-rate", flagCfg.TickRate, "ticks per second")
	f.StringVar(&flagCfg.Display, "display", flagCfg.Display, "terminal backend, as one of: [termbox, tcell]")
	f.StringVar(&flagCfg.SpectateListen, "spectate-listen", flagCfg.SpectateListen, "address for the spectator api, empty to disable")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "play a match between two players on this terminal",
	RunE: func(c *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return play(ctx)
	},
}

func play(ctx context.Context) error {
	logs, err := setupLogging(cfg.LogLevel, cfg.LogFile)
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

	// Names are read before the terminal takes over stdin.
	names := &linePrompt{
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		defaults: [2]string{player1, player2},
	}
	p1, p2, err := names.PlayerNames(ctx)
	if err != nil {
		return err
	}
	for _, name := range []string{p1, p2} {
		if err := store.EnsurePlayer(ctx, name); err != nil {
			log.WithError(err).WithField("Name", name).Error("unable to register player")
		}
	}

	renderers := worker.MultiRenderer{}
	if cfg.SpectateListen != "" {
		hub := api.NewHub()
		srv := api.New(cfg.SpectateListen, store, hub)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				log.WithError(err).Warn("spectator api stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("unable to stop spectator api")
			}
		}()
		renderers = append(renderers, hub)
	}

	term, err := terminal.Open(cfg.Display, terminal.DefaultKeyMap())
	if err != nil {
		return err
	}
	defer term.Close()
	renderers = append(renderers, term)

	runner := &worker.Runner{
		Config:   cfg.MatchConfig(),
		TickRate: rate.Limit(cfg.TickRate),
		Names:    worker.StaticNames{Player1: p1, Player2: p2},
		Input:    term,
		Renderer: renderers,
		Stats:    store,
	}
	result, err := runner.Run(ctx)
	if errors.Cause(err) == worker.ErrQuit || errors.Cause(err) == context.Canceled {
		term.Close()
		fmt.Println("match abandoned")
		return nil
	}
	if err != nil {
		return err
	}
	if err := term.WaitForDismiss(ctx); err != nil {
		log.WithError(err).Debug("result screen interrupted")
	}
	term.Close()

	fmt.Printf("%s wins %d to %d against %s\n",
		result.Winner, result.WinnerScore, result.LoserScore, result.Loser)
	return nil
}

func closeStore(s stats.Store) {
	if err := closeIfCloser(s); err != nil {
		log.WithError(err).Error("unable to close store")
	}
}
