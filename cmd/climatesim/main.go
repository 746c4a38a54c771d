package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	_ "modernc.org/sqlite"

	"github.com/harsahib2907/climate-policy-simulator/internal/api"
	"github.com/harsahib2907/climate-policy-simulator/internal/baseline"
	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
	"github.com/harsahib2907/climate-policy-simulator/internal/store"
)

var cli struct {
	DB   string `help:"Path to SQLite database." default:"data/climatesim.db" env:"CLIMATESIM_DB"`
	Port string `help:"HTTP server port." default:"8080" env:"PORT"`

	Tuning   string `help:"Path to engine tuning YAML (defaults apply when omitted)." env:"CLIMATESIM_TUNING"`
	Baseline string `help:"Path to a baseline YAML file. Overrides the FTP inventory feed." env:"CLIMATESIM_BASELINE"`

	FTPHost string `help:"National inventory FTP host." default:"ftp.environment.gov.example:21" env:"CLIMATESIM_FTP_HOST"`
	FTPPath string `help:"Inventory file path on the FTP host." default:"/pub/inventory/national_baseline.xml" env:"CLIMATESIM_FTP_PATH"`

	NoRefresh   bool `help:"Disable the background baseline refresher (server only, for local dev)."`
	RefreshOnce bool `help:"Refresh the baseline once and exit (for testing)."`

	Debug bool `help:"Enable debug logging." env:"CLIMATESIM_DEBUG"`
}

// historicalSeries is the recorded national emissions series shown next
// to projections. Values are in tons, on the same scale as the baseline.
var historicalSeries = []store.HistoricalEmission{
	{Year: 2000, CO2EmissionsTons: 601_000},
	{Year: 2002, CO2EmissionsTons: 625_000},
	{Year: 2004, CO2EmissionsTons: 658_000},
	{Year: 2006, CO2EmissionsTons: 694_000},
	{Year: 2008, CO2EmissionsTons: 722_000},
	{Year: 2010, CO2EmissionsTons: 764_000},
	{Year: 2012, CO2EmissionsTons: 801_000},
	{Year: 2014, CO2EmissionsTons: 836_000},
	{Year: 2016, CO2EmissionsTons: 862_000},
	{Year: 2018, CO2EmissionsTons: 899_000},
	{Year: 2020, CO2EmissionsTons: 871_000}, // pandemic dip
	{Year: 2022, CO2EmissionsTons: 931_000},
	{Year: 2024, CO2EmissionsTons: 968_000},
	{Year: 2025, CO2EmissionsTons: 984_000},
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("climatesim"),
		kong.Description("Climate policy simulation service."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cli.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := sim.DefaultConfig()
	if cli.Tuning != "" {
		var err error
		cfg, err = sim.LoadConfig(cli.Tuning)
		if err != nil {
			log.Fatal().Err(err).Str("path", cli.Tuning).Msg("load tuning")
		}
		log.Info().Str("path", cli.Tuning).Msg("engine tuning loaded")
	}
	engine := sim.NewEngine(cfg)

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("database migrated")

	for _, h := range historicalSeries {
		if err := st.UpsertHistoricalEmission(h); err != nil {
			log.Fatal().Err(err).Int("year", h.Year).Msg("seed historical emissions")
		}
	}

	provider, source := chooseProvider()
	refresher := baseline.NewRefresher(provider, st, source)

	if cli.RefreshOnce {
		if err := refresher.RefreshOnce(); err != nil {
			log.Fatal().Err(err).Msg("baseline refresh")
		}
		log.Info().Msg("baseline refreshed")
		kctx.Exit(0)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !cli.NoRefresh {
		go refresher.Run(ctx)
	} else {
		log.Info().Msg("baseline refresher disabled (--no-refresh)")
	}

	go pruneCacheLoop(ctx, st)

	server := api.NewServer(st, engine, baseline.Default(), source, cli.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}

// chooseProvider prefers an explicit baseline file over the FTP feed.
func chooseProvider() (baseline.Provider, string) {
	if cli.Baseline != "" {
		log.Info().Str("path", cli.Baseline).Msg("using baseline file")
		return baseline.NewFileProvider(cli.Baseline), "file"
	}
	return baseline.NewFTPProvider(cli.FTPHost, cli.FTPPath), "ftp"
}

// pruneCacheLoop sweeps stale projection cache rows daily. Projections
// are cheap to recompute, the cache only has to stay small.
func pruneCacheLoop(ctx context.Context, st *store.Store) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := st.PruneProjectionCache(7 * 24 * time.Hour)
			if err != nil {
				log.Warn().Err(err).Msg("prune projection cache")
				continue
			}
			if n > 0 {
				log.Info().Int64("rows", n).Msg("pruned projection cache")
			}
		}
	}
}
