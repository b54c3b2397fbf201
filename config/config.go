// Package config loads the duel settings. Defaults are overridden by
// environment variables, which may come from a .env file.
package config

import (
	"os"
	"strconv"

	"github.com/battlesnakeio/duel/rules"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Stats backends.
const (
	BackendInMem = "inmem"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendSQL   = "sql"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MaxTickRate bounds the tick rate in ticks per second.
const MaxTickRate = 1000

// Config holds every setting of a duel.
type Config struct {
	Width      int
	Height     int
	BlockSize  int
	FruitCount int
	TickRate   int

	Display string

	StatsBackend     string
	StatsBackendArgs string

	PrometheusListen string
	SpectateListen   string

	LogLevel string
	LogFile  string
}

// Default returns the built in settings.
func Default() Config {
	return Config{
		Width:        760,
		Height:       400,
		BlockSize:    20,
		FruitCount:   rules.DefaultFruitCount,
		TickRate:     20,
		Display:      "termbox",
		StatsBackend: BackendFile,
		LogLevel:     "info",
		LogFile:      "duel.log",
	}
}

// Load reads the given env files, or ./.env when it exists and no files are
// given, and then applies the environment over the defaults. Variables
// already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, errors.Wrap(err, "unable to load env file")
		}
		log.WithField("files", files).Debug("loaded env files")
	}
	return FromEnv(), nil
}

// FromEnv applies the DUEL_* environment variables over the defaults.
func FromEnv() Config {
	c := Default()
	c.Width = getEnvInt("DUEL_WIDTH", c.Width)
	c.Height = getEnvInt("DUEL_HEIGHT", c.Height)
	c.BlockSize = getEnvInt("DUEL_BLOCK_SIZE", c.BlockSize)
	c.FruitCount = getEnvInt("DUEL_FRUIT_COUNT", c.FruitCount)
	c.TickRate = getEnvInt("DUEL_TICK_RATE", c.TickRate)
	c.Display = getEnvString("DUEL_DISPLAY", c.Display)
	c.StatsBackend = getEnvString("DUEL_STATS_BACKEND", c.StatsBackend)
	c.StatsBackendArgs = getEnvString("DUEL_STATS_BACKEND_ARGS", c.StatsBackendArgs)
	c.PrometheusListen = getEnvString("DUEL_PROMETHEUS_LISTEN", c.PrometheusListen)
	c.SpectateListen = getEnvString("DUEL_SPECTATE_LISTEN", c.SpectateListen)
	c.LogLevel = getEnvString("DUEL_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnvString("DUEL_LOG_FILE", c.LogFile)
	return c
}

// Validate checks that the settings describe a playable match.
func (c Config) Validate() error {
	grid, err := rules.NewGrid(c.Width, c.Height, c.BlockSize)
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := rules.CheckStartPositions(grid); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if c.FruitCount <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "fruit count %d must be positive", c.FruitCount)
	}
	if c.TickRate <= 0 || c.TickRate > MaxTickRate {
		return errors.Wrapf(ErrInvalidConfig, "tick rate %d must be in 1..%d", c.TickRate, MaxTickRate)
	}
	switch c.Display {
	case "termbox", "tcell":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown display %q", c.Display)
	}
	switch c.StatsBackend {
	case BackendInMem, BackendFile, BackendRedis, BackendSQL:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown stats backend %q", c.StatsBackend)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level: %v", err)
	}
	return nil
}

// MatchConfig returns the match setup described by c.
func (c Config) MatchConfig() rules.MatchConfig {
	return rules.MatchConfig{
		Grid:       rules.Grid{Width: c.Width, Height: c.Height, BlockSize: c.BlockSize},
		FruitCount: c.FruitCount,
	}
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		log.WithField("var", varName).WithError(err).Warn("ignoring invalid integer")
		return defaults
	}
	return int(intVal)
}

func getEnvString(varName string, defaults string) string {
	if val, ok := os.LookupEnv(varName); ok {
		return val
	}
	return defaults
}
