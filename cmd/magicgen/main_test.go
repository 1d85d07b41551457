package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pml76/Kangaroo/internal/magic"
	"github.com/pml76/Kangaroo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnvSeed(t *testing.T) {
	t.Setenv("KANGAROO_SEED", "0x2a")
	cfg, err := configFromFlags()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Seed)

	t.Setenv("KANGAROO_SEED", "nope")
	_, err = configFromFlags()
	assert.Error(t, err)
}

func TestVerifyAndDiagram(t *testing.T) {
	cfg := magic.DefaultConfig()
	tables, err := magic.Build(context.Background(), cfg)
	require.NoError(t, err)

	dir := t.TempDir()
	report := filepath.Join(dir, "magics.txt")
	require.NoError(t, writeReport(tables.Magics(), magic.FormatText, report))
	require.NoError(t, verifyReport(report))

	png := filepath.Join(dir, "d4.png")
	require.NoError(t, renderDiagram(tables, "d4:bishop", "0x0000000000200000", png))
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, renderDiagram(tables, "d4", "0", png))
	assert.Error(t, renderDiagram(tables, "d4:queen", "0", png))
	assert.Error(t, renderDiagram(tables, "d4:rook", "zz", png))
}

func TestVerifyRejectsCorruptReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("// rooks:\n/* magic number found for a1: */ 0x0,\n"), 0o644))
	assert.Error(t, verifyReport(path))
}

func TestLoadOrBuildReplacesRejectedRecord(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	old := *dbDir
	*dbDir = dir
	t.Cleanup(func() { *dbDir = old })

	cfg := magic.DefaultConfig()
	cfg.Seed = 99

	// Zero magics send every occupancy to one slot.
	bad := &storage.MagicRecord{Heuristic: cfg.Heuristic}
	bad.Magics.Seed = cfg.Seed
	store, err := storage.Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveMagics(bad))
	require.NoError(t, store.Close())

	tables, err := loadOrBuild(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, tables.Verify())

	store, err = storage.Open(dir)
	require.NoError(t, err)
	rec, found, err := store.LoadMagics(cfg.Seed, cfg.Heuristic)
	require.NoError(t, store.Close())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, tables.Magics(), rec.Magics)

	// A stored hit needs no search, so a cancelled context does not matter.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cached, err := loadOrBuild(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, tables.Magics(), cached.Magics())
}

func TestWriteReportFailures(t *testing.T) {
	var set magic.MagicSet
	assert.Error(t, writeReport(set, magic.FormatText, filepath.Join(t.TempDir(), "missing", "out.txt")))

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	assert.Error(t, writeReport(set, magic.FormatText, "/dev/full"))
}
