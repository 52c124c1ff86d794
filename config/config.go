// Package config loads game settings from YAML and command-line flags.
package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"chesscoach/bots"
	"chesscoach/rules"
)

type Config struct {
	Policy    string `yaml:"policy"`
	Depth     int    `yaml:"depth"`
	Seed      uint64 `yaml:"seed"`
	Rules     string `yaml:"rules"`
	Human     string `yaml:"human"`
	FEN       string `yaml:"fen"`
	LogLevel  string `yaml:"log_level"`
	PrettyLog bool   `yaml:"pretty_log"`
}

func Default() Config {
	return Config{
		Policy:    bots.PolicySearch,
		Depth:     bots.DefaultDepth,
		Seed:      uint64(time.Now().UnixNano()),
		Rules:     rules.BackendNotnil,
		Human:     "white",
		FEN:       rules.StartFEN,
		LogLevel:  "info",
		PrettyLog: true,
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values.
func LoadFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Parse builds the configuration from defaults, an optional -config file and
// the remaining flags, in that order of precedence.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	path := fs.String("config", "", "path to a YAML config file")
	policy := fs.String("policy", cfg.Policy, "opponent policy: search, random or newborn")
	depth := fs.Int("depth", cfg.Depth, "search depth in plies")
	seed := fs.Uint64("seed", cfg.Seed, "seed for the random policy")
	backend := fs.String("rules", cfg.Rules, "rules backend: notnil or dragontooth")
	human := fs.String("human", cfg.Human, "color played by the human: white or black")
	fen := fs.String("fen", cfg.FEN, "starting position")
	level := fs.String("log-level", cfg.LogLevel, "log level")
	pretty := fs.Bool("pretty-log", cfg.PrettyLog, "human readable log output")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *path != "" {
		var err error
		if cfg, err = LoadFile(cfg, *path); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "policy":
			cfg.Policy = *policy
		case "depth":
			cfg.Depth = *depth
		case "seed":
			cfg.Seed = *seed
		case "rules":
			cfg.Rules = *backend
		case "human":
			cfg.Human = *human
		case "fen":
			cfg.FEN = *fen
		case "log-level":
			cfg.LogLevel = *level
		case "pretty-log":
			cfg.PrettyLog = *pretty
		}
	})
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Policy {
	case bots.PolicySearch, bots.PolicyRandom, bots.PolicyNewborn:
	default:
		return errors.Errorf("unknown policy %q", c.Policy)
	}
	if c.Policy == bots.PolicySearch && c.Depth < 1 {
		return errors.Errorf("search depth must be at least 1, got %d", c.Depth)
	}
	switch c.Rules {
	case rules.BackendNotnil, rules.BackendDragontooth:
	default:
		return errors.Errorf("unknown rules backend %q", c.Rules)
	}
	if _, err := c.HumanColor(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return nil
}

func (c Config) HumanColor() (rules.Color, error) {
	switch c.Human {
	case "white", "w":
		return rules.White, nil
	case "black", "b":
		return rules.Black, nil
	}
	return rules.NoColor, errors.Errorf("unknown human color %q", c.Human)
}

// Bot builds the configured opponent policy.
func (c Config) Bot() (bots.ChessBot, error) {
	return bots.New(c.Policy, bots.WithDepth(c.Depth), bots.WithSeed(c.Seed))
}

// NewPosition loads the configured start position into the configured
// rules backend.
func (c Config) NewPosition() (rules.Position, error) {
	return rules.New(c.Rules, c.FEN)
}

// SetupLogger points the global zerolog logger at w.
func SetupLogger(w io.Writer, level string, pretty bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
