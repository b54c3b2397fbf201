package commands

import (
	"fmt"
	"os"

	"github.com/battlesnakeio/duel/config"
	"github.com/battlesnakeio/duel/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:     "duel",
	Short:   "duel is a two player snake game for one terminal",
	Version: version.Version,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		return loadConfig(c.Flags())
	},
	RunE: func(c *cobra.Command, args []string) error {
		return playCmd.RunE(c, args)
	},
}

var (
	envFiles []string
	// flagCfg receives flag values; only flags that were set are merged
	// over the loaded configuration.
	flagCfg = config.Default()
	// cfg is the effective configuration once the command starts.
	cfg config.Config
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringSliceVar(&envFiles, "env-file", nil, "env files to load, defaults to ./.env when present")
	pf.StringVarP(&flagCfg.StatsBackend, "backend", "b", flagCfg.StatsBackend, "stats backend, as one of: [inmem, file, redis, sql]")
	pf.StringVarP(&flagCfg.StatsBackendArgs, "backend-args", "a", flagCfg.StatsBackendArgs, "options to pass to the stats backend")
	pf.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "log level, as one of: [debug, info, warn, error]")
	pf.StringVar(&flagCfg.LogFile, "log-file", flagCfg.LogFile, "file to write logs to, empty for stderr")
	pf.StringVar(&flagCfg.PrometheusListen, "prometheus-listen", flagCfg.PrometheusListen, "prometheus http endpoint, empty to disable")

	rootCmd.Flags().AddFlagSet(playCmd.Flags())
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
}

// flagSetters copy a set flag from flagCfg into the loaded configuration.
var flagSetters = map[string]func(dst *config.Config){
	"backend":           func(dst *config.Config) { dst.StatsBackend = flagCfg.StatsBackend },
	"backend-args":      func(dst *config.Config) { dst.StatsBackendArgs = flagCfg.StatsBackendArgs },
	"log-level":         func(dst *config.Config) { dst.LogLevel = flagCfg.LogLevel },
	"log-file":          func(dst *config.Config) { dst.LogFile = flagCfg.LogFile },
	"prometheus-listen": func(dst *config.Config) { dst.PrometheusListen = flagCfg.PrometheusListen },
	"width":             func(dst *config.Config) { dst.Width = flagCfg.Width },
	"height":            func(dst *config.Config) { dst.Height = flagCfg.Height },
	"block-size":        func(dst *config.Config) { dst.BlockSize = flagCfg.BlockSize },
	"fruit":             func(dst *config.Config) { dst.FruitCount = flagCfg.FruitCount },
	"tick-rate":         func(dst *config.Config) { dst.TickRate = flagCfg.TickRate },
	"display":           func(dst *config.Config) { dst.Display = flagCfg.Display },
	"spectate-listen":   func(dst *config.Config) { dst.SpectateListen = flagCfg.SpectateListen },
}

func mergeFlags(fs *pflag.FlagSet, dst *config.Config) {
	fs.Visit(func(f *pflag.Flag) {
		if set, ok := flagSetters[f.Name]; ok {
			set(dst)
		}
	})
}

func loadConfig(fs *pflag.FlagSet) error {
	loaded, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	mergeFlags(fs, &loaded)
	if err := loaded.Validate(); err != nil {
		return errors.Wrap(err, "invalid settings")
	}
	cfg = loaded
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
