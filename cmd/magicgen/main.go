// Command magicgen searches magic numbers for the rook and bishop attack
// tables, verifies them exhaustively and prints them as a report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/pml76/Kangaroo/internal/board"
	"github.com/pml76/Kangaroo/internal/magic"
	"github.com/pml76/Kangaroo/internal/render"
	"github.com/pml76/Kangaroo/internal/storage"
)

var (
	seedFlag      = flag.String("seed", "", "random seed, decimal or 0x hex (default $KANGAROO_SEED or 5489)")
	workers       = flag.Int("workers", runtime.GOMAXPROCS(0), "squares searched in parallel")
	maxCandidates = flag.Uint64("max-candidates", 0, "give up on a square after this many candidates (0 = never)")
	timeout       = flag.Duration("timeout", 0, "abort the whole search after this long (0 = never)")
	draws         = flag.Int("draws", magic.DefaultHeuristic().Draws, "random words ANDed into each candidate")
	minHighBits   = flag.Int("min-high-bits", magic.DefaultHeuristic().MinHighBits, "minimum top-byte popcount of mask*candidate")
	formatFlag    = flag.String("format", string(magic.FormatText), "report format: text or go")
	outPath       = flag.String("out", "", "write the report to this file instead of stdout")
	useCache      = flag.Bool("cache", false, "reuse and save magic numbers in the local magic store")
	dbDir         = flag.String("db", "", "magic store directory (implies -cache)")
	verifyPath    = flag.String("verify", "", "verify the magic numbers in a text report instead of searching")
	diagram       = flag.String("diagram", "", "render the attack set for SQUARE:SLIDER, e.g. d4:rook")
	occupancyFlag = flag.String("occupancy", "0", "occupancy bitboard used with -diagram")
	pngPath       = flag.String("png", "diagram.png", "output file for -diagram")
	cpuprofile    = flag.String("cpuprofile", "", "write cpu profile to file")
	verbose       = flag.Bool("v", false, "log every accepted magic number")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		pprof.StopCPUProfile()
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	if *verifyPath != "" {
		return verifyReport(*verifyPath)
	}

	cfg, err := configFromFlags()
	if err != nil {
		return err
	}
	format, err := magic.ParseFormat(*formatFlag)
	if err != nil {
		return err
	}

	tables, err := loadOrBuild(ctx, cfg)
	if err != nil {
		return err
	}
	if err := tables.Verify(); err != nil {
		return fmt.Errorf("generated tables failed verification: %w", err)
	}

	if *diagram != "" {
		if err := renderDiagram(tables, *diagram, *occupancyFlag, *pngPath); err != nil {
			return err
		}
	}

	return writeReport(tables.Magics(), format, *outPath)
}

// configFromFlags builds the search config, falling back to KANGAROO_SEED
// when -seed is not given.
func configFromFlags() (magic.Config, error) {
	cfg := magic.DefaultConfig()
	cfg.Workers = *workers
	cfg.MaxCandidates = *maxCandidates
	cfg.Timeout = *timeout
	cfg.Heuristic = magic.Heuristic{Draws: *draws, MinHighBits: *minHighBits}
	cfg.Logger = slog.Default()

	seed := *seedFlag
	if seed == "" {
		seed = os.Getenv("KANGAROO_SEED")
	}
	if seed != "" {
		v, err := strconv.ParseUint(seed, 0, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid seed %q: %w", seed, err)
		}
		cfg.Seed = v
	}

	return cfg, cfg.Validate()
}

// loadOrBuild reuses stored magics for the same seed and heuristic when the
// store is enabled. Stored sets are re-validated; a rejected set is searched
// again and overwritten.
func loadOrBuild(ctx context.Context, cfg magic.Config) (*magic.Tables, error) {
	if !*useCache && *dbDir == "" {
		return magic.Build(ctx, cfg)
	}

	store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rec, found, err := store.LoadMagics(cfg.Seed, cfg.Heuristic)
	if err != nil {
		return nil, err
	}
	if found {
		tables, err := magic.FromMagics(rec.Magics)
		if err == nil {
			slog.Info("loaded magics from store", "seed", cfg.Seed, "created_at", rec.CreatedAt)
			return tables, nil
		}
		slog.Warn("stored magics rejected, searching again", "seed", cfg.Seed, "error", err)
	}

	start := time.Now()
	tables, err := magic.Build(ctx, cfg)
	if err != nil {
		return nil, err
	}

	err = store.SaveMagics(&storage.MagicRecord{
		Magics:    tables.Magics(),
		Heuristic: cfg.Heuristic,
		Duration:  time.Since(start),
	})
	if err != nil {
		return nil, fmt.Errorf("save magics: %w", err)
	}
	return tables, nil
}

func openStore() (*storage.Storage, error) {
	if *dbDir != "" {
		return storage.Open(*dbDir)
	}
	return storage.NewStorage()
}

// verifyReport loads a text report and checks every magic exhaustively.
func verifyReport(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	set, err := magic.ParseReport(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	tables, err := magic.FromMagics(set)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := tables.Verify(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("report verified", "path", path, "rook_entries", tables.Len(magic.Rook), "bishop_entries", tables.Len(magic.Bishop))
	return nil
}

// renderDiagram draws the looked-up attack set for a SQUARE:SLIDER argument such as "d4:rook".
func renderDiagram(tables *magic.Tables, arg, occupancy, path string) error {
	sqText, kindText, ok := strings.Cut(arg, ":")
	if !ok {
		return fmt.Errorf("invalid -diagram %q, want SQUARE:SLIDER", arg)
	}
	sq, err := board.ParseSquare(sqText)
	if err != nil {
		return err
	}
	kind, err := magic.ParseSlider(kindText)
	if err != nil {
		return err
	}
	occ, err := strconv.ParseUint(occupancy, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid -occupancy %q: %w", occupancy, err)
	}

	d := render.Diagram{
		Origin:   sq,
		Occupied: board.Bitboard(occ),
		Attacks:  tables.Attacks(kind, sq, board.Bitboard(occ)),
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, d, render.DefaultOptions()); err != nil {
		f.Close()
		return err
	}
	slog.Info("diagram written", "path", path, "square", sq.String(), "kind", kind.String(), "attacks", d.Attacks.Hex(), "targets", d.Attacks.Squares())
	return f.Close()
}

func writeReport(set magic.MagicSet, format magic.Format, path string) error {
	if path == "" {
		return magic.WriteReport(os.Stdout, set, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := magic.WriteReport(f, set, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
