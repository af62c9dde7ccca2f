package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/innovation-engine/innovation-go/internal/config"
	"github.com/innovation-engine/innovation-go/internal/game"
	"github.com/innovation-engine/innovation-go/internal/game/ai"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/dogmas"
	"github.com/innovation-engine/innovation-go/internal/repository"
	"github.com/innovation-engine/innovation-go/internal/tournament"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	seed       = flag.Int64("seed", 0, "override game.seed when non-zero")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting innovation simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.Int64("seed", cfg.Game.Seed),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	catalog, specials, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}

	registry := dogmas.NewRegistry()
	if cfg.Series.Games > 0 {
		return runSeries(ctx, cfg, catalog, specials, registry, logger)
	}

	strategy, err := ai.ParseStrategy(cfg.Game.Strategy)
	if err != nil {
		return err
	}

	players := make(map[string]*ai.Player, cfg.Game.Players)
	gameCfg := game.Config{
		Catalog:           catalog,
		Specials:          specials,
		Registry:          registry,
		Seed:              cfg.Game.Seed,
		AchievementsToWin: cfg.Game.AchievementsToWin,
	}
	for i := 1; i <= cfg.Game.Players; i++ {
		id := fmt.Sprintf("ai-%d", i)
		players[id] = ai.NewPlayer(id, strategy, cfg.Game.Seed+int64(i), logger)
		gameCfg.Players = append(gameCfg.Players, game.PlayerConfig{
			ID:       id,
			Name:     fmt.Sprintf("Computer %d", i),
			IsAI:     true,
			Provider: players[id],
		})
	}

	g, err := game.New(gameCfg, logger)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	if err := g.Setup(); err != nil {
		return fmt.Errorf("set up game: %w", err)
	}

	res, err := ai.Run(ctx, g, players, cfg.Game.MaxTurns)
	if err != nil {
		return err
	}

	if cfg.Game.ReplayDir != "" {
		if err := g.Replay().SaveToFile(cfg.Game.ReplayDir); err != nil {
			return fmt.Errorf("save replay: %w", err)
		}
		logger.Info("replay saved",
			zap.String("directory", cfg.Game.ReplayDir),
			zap.Int("entries", g.Replay().Size()),
		)
	}

	summary := g.AnalyticsSummary()
	fields := make([]zap.Field, 0, len(summary)+3)
	fields = append(fields,
		zap.String("game_id", res.GameID),
		zap.String("winner", res.Winner),
		zap.String("reason", res.Reason),
	)
	for k, v := range summary {
		fields = append(fields, zap.Any(k, v))
	}
	logger.Info("game summary", fields...)

	fmt.Printf("Winner: %s (%s) after %d turns\n", res.Winner, res.Reason, res.Turns)
	for _, p := range g.Players() {
		fmt.Printf("  %-12s score %3d  achievements %d\n", p.Name, g.ScoreTotal(p), p.Achievements.Len())
	}
	return nil
}

func runSeries(ctx context.Context, cfg *config.Config, catalog, specials []*cards.Card, registry *game.Registry, logger *zap.Logger) error {
	m := tournament.NewManager(logger)
	s := m.CreateSeries()
	for i, name := range cfg.Series.Strategies {
		strategy, err := ai.ParseStrategy(name)
		if err != nil {
			return err
		}
		if err := s.AddEntrant(fmt.Sprintf("%s-%d", name, i+1), strategy); err != nil {
			return err
		}
	}

	err := m.Run(ctx, s, tournament.Options{
		Games:             cfg.Series.Games,
		Workers:           cfg.Series.Workers,
		MaxTurns:          cfg.Game.MaxTurns,
		Seed:              cfg.Game.Seed,
		AchievementsToWin: cfg.Game.AchievementsToWin,
		Catalog:           catalog,
		Specials:          specials,
		Registry:          registry,
		ReplayDir:         cfg.Game.ReplayDir,
	})
	if err != nil {
		return err
	}

	snap := s.Snapshot()
	fmt.Printf("Series %s: %d games\n", snap.ID, len(snap.Games))
	for _, e := range snap.Standings {
		fmt.Printf("  %-12s %-7s points %3d  wins %3d  losses %3d  draws %3d\n",
			e.Name, e.Strategy, e.Points, e.Wins, e.Losses, e.Draws)
	}
	return nil
}

func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]*cards.Card, []*cards.Card, error) {
	if cfg.Game.CatalogSource == config.SourcePostgres {
		db, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect catalog database: %w", err)
		}
		defer db.Close()

		repo := repository.NewCardRepository(db)
		catalog, err := repo.LoadCards(ctx)
		if err != nil {
			return nil, nil, err
		}
		specials, err := repo.LoadAchievements(ctx)
		if err != nil {
			return nil, nil, err
		}
		return catalog, specials, nil
	}

	catalog, err := readFile(cfg.Game.CatalogPath, cards.ParseCatalog)
	if err != nil {
		return nil, nil, err
	}
	var specials []*cards.Card
	if cfg.Game.AchievementsPath != "" {
		if specials, err = readFile(cfg.Game.AchievementsPath, cards.ParseAchievements); err != nil {
			return nil, nil, err
		}
	}
	logger.Info("catalog loaded",
		zap.String("path", cfg.Game.CatalogPath),
		zap.Int("cards", len(catalog)),
		zap.Int("special_achievements", len(specials)),
	)
	return catalog, specials, nil
}

func readFile(path string, parse func(io.Reader) ([]*cards.Card, error)) ([]*cards.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	out, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
