package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/settling/internal/board"
	"github.com/mitchelldurbincs/settling/internal/config"
	"github.com/mitchelldurbincs/settling/internal/events"
	"github.com/mitchelldurbincs/settling/internal/events/subscribers"
	"github.com/mitchelldurbincs/settling/internal/geometry"
	"github.com/mitchelldurbincs/settling/internal/hex"
	"github.com/mitchelldurbincs/settling/internal/mapgen"
)

// locationList collects repeated "(x, y, z):i" flags
type locationList []geometry.Address

func (l *locationList) String() string {
	parts := make([]string, len(*l))
	for i, a := range *l {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

func (l *locationList) Type() string { return "location" }

func (l *locationList) Set(s string) error {
	h, i, err := hex.ParseLocation(s)
	if err != nil {
		return err
	}
	*l = append(*l, geometry.Address{Hex: h, Index: i})
	return nil
}

type options struct {
	configPath string
	seed       int64
	random     bool
	layoutFile string
	player     string
	towns      locationList
	roads      locationList
	roll       int
	logLevel   string
	watch      bool
}

func main() {
	rootCmd := newRootCmd(&options{})
	rootCmd.AddCommand(validateLayoutCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "settling",
		Short:        "Build a hex settlement board and apply initial placements",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(*opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config file")
	flags.Int64Var(&opts.seed, "seed", 0, "Seed for random layouts (0 to use config, then the clock)")
	flags.BoolVar(&opts.random, "random", false, "Shuffle the standard layout")
	flags.StringVar(&opts.layoutFile, "layout", "", "YAML layout file")
	flags.StringVar(&opts.player, "player", "red", "Player placing the initial towns and roads")
	flags.Var(&opts.towns, "town", "Initial town as \"(x, y, z):vertex\" (repeatable, paired with --road)")
	flags.Var(&opts.roads, "road", "Initial road as \"(x, y, z):edge\" (repeatable, paired with --town)")
	flags.IntVar(&opts.roll, "roll", 0, "Log what every building collects on this dice roll")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flags.BoolVar(&opts.watch, "watch", false, "Keep running and reload log settings when the config file changes")
	return cmd
}

func validateLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "validate-layout [layout-file]",
		Short:        "Check that a YAML layout file builds a board",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidateLayout(args[0])
		},
	}
}

func run(opts options) error {
	if err := loadConfig(opts); err != nil {
		return err
	}
	cfg := config.Get()
	setupLogging(cfg.Log.Level, cfg.Log.Format)

	b, err := buildBoard(cfg, opts)
	if err != nil {
		return fmt.Errorf("building board: %w", err)
	}

	if err := placeInitial(b, opts); err != nil {
		return fmt.Errorf("initial placement: %w", err)
	}

	logBoard(b)
	if opts.roll != 0 {
		logYields(b, opts.roll)
	}

	if opts.watch {
		watch()
	}
	return nil
}

// loadConfig layers the config file, the APP_ENV overlay and flag overrides
func loadConfig(opts options) error {
	if err := config.Init(opts.configPath); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		return err
	}
	if opts.logLevel != "" {
		if err := config.Set("log.level", opts.logLevel); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	return nil
}

func runValidateLayout(path string) error {
	layout, err := mapgen.LoadLayout(path)
	if err != nil {
		return err
	}
	geom, err := geometry.NewStandard(ringsFor(len(layout.Tiles), geometry.StandardRings))
	if err != nil {
		return err
	}
	b, err := board.New(layout, geom, board.WithLogger(log.Logger))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Info().
		Str("file", path).
		Int("tiles", len(b.Tiles())).
		Int("ports", len(layout.Ports)).
		Stringer("robber", b.RobberHex()).
		Msg("Layout is valid")
	return nil
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" || format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}

// chooseLayout resolves the layout source: flags win over config
func chooseLayout(cfg *config.Config, opts options) (board.Layout, error) {
	source := cfg.Board.Layout
	path := cfg.Board.LayoutFile
	switch {
	case opts.layoutFile != "":
		source, path = config.LayoutFile, opts.layoutFile
	case opts.random:
		source = config.LayoutRandom
	}

	switch source {
	case config.LayoutFile:
		return mapgen.LoadLayout(path)
	case config.LayoutRandom:
		seed := opts.seed
		if seed == 0 {
			seed = cfg.Board.Seed
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		log.Info().Int64("seed", seed).Msg("Generating random layout")
		return mapgen.NewGenerator(rand.New(rand.NewSource(seed))).GenerateLayout(), nil
	}
	return board.StandardLayout(), nil
}

func buildBoard(cfg *config.Config, opts options) (*board.Board, error) {
	layout, err := chooseLayout(cfg, opts)
	if err != nil {
		return nil, err
	}

	rings := cfg.Board.Rings
	if opts.layoutFile != "" || opts.random {
		rings = ringsFor(len(layout.Tiles), rings)
	}
	geom, err := geometry.NewStandard(rings)
	if err != nil {
		return nil, err
	}

	var boardOpts []board.Option
	if cfg.Events.Enabled {
		level, err := zerolog.ParseLevel(cfg.Events.LogLevel)
		if err != nil {
			level = zerolog.DebugLevel
		}
		bus := events.NewEventBus()
		bus.Subscribe(subscribers.NewLoggerSubscriber("cli", log.Logger, level))
		boardOpts = append(boardOpts, board.WithPublisher(bus))
	}
	return board.New(layout, geom, boardOpts...)
}

// ringsFor finds the ring count that holds exactly tiles hexagons, falling
// back to the configured count so board.New reports the mismatch.
func ringsFor(tiles, fallback int) int {
	for r := 0; hex.TilesWithinRing(r) <= hex.MaxSearch; r++ {
		if hex.TilesWithinRing(r) == tiles {
			return r
		}
	}
	return fallback
}

func placeInitial(b *board.Board, opts options) error {
	if len(opts.towns) != len(opts.roads) {
		return fmt.Errorf("got %d towns and %d roads; every initial town needs a road", len(opts.towns), len(opts.roads))
	}
	for i, town := range opts.towns {
		road := opts.roads[i]
		action := &board.BuildInitialTownAction{
			Player:   opts.player,
			TownHex:  town.Hex,
			Vertex:   town.Index,
			RoadHex:  road.Hex,
			RoadEdge: road.Index,
		}
		if err := board.Validate(b, action); err != nil {
			return err
		}
		if err := action.Apply(b); err != nil {
			return err
		}
	}
	return nil
}

func logBoard(b *board.Board) {
	g := b.Geometry()
	for ordinal, tile := range b.Tiles() {
		h, _ := g.HexagonFromOrdinal(ordinal)
		event := log.Debug().
			Int("ordinal", ordinal).
			Stringer("hex", h).
			Str("type", string(tile.Type))
		if tile.Number != board.NoNumber {
			event.Int("number", tile.Number)
		}
		if tile.HasRobber {
			event.Bool("robber", true)
		}
		event.Msg("Tile")
	}
	log.Info().
		Str("board_id", b.ID()).
		Int("tiles", len(b.Tiles())).
		Int("roads", len(b.Roads())).
		Int("buildings", len(b.Buildings())).
		Stringer("robber", b.RobberHex()).
		Msg("Board ready")
}

func logYields(b *board.Board, roll int) {
	yields := b.Yields(roll)
	for _, y := range yields {
		log.Info().
			Int("roll", roll).
			Str("player", y.Player).
			Str("resource", string(y.Resource)).
			Int("amount", y.Amount).
			Stringer("tile", y.Tile).
			Msg("Yield")
	}
	if len(yields) == 0 {
		log.Info().Int("roll", roll).Msg("Nothing produced")
	}
}

func watch() {
	config.WatchConfig(func(c *config.Config) {
		setupLogging(c.Log.Level, c.Log.Format)
		log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
}
