package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	p := Static(Defaults())
	assert.Equal(t, 8, p.TabStop())
	assert.Equal(t, 8, p.ShiftWidth())
	assert.True(t, p.WrapScan())
	assert.False(t, p.IgnoreCase())
	assert.Equal(t, "", p.VirtualEdit())
}

func TestShiftWidthZeroUsesTabstop(t *testing.T) {
	o := Defaults()
	o.Tabstop = 4
	o.Shiftwidth = 0
	assert.Equal(t, 4, Static(o).ShiftWidth())
}

func TestLoadReader(t *testing.T) {
	o, err := LoadReader(strings.NewReader("tabstop = 4\nexpandtab = true\nvirtualedit = \"all\"\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, o.Tabstop)
	assert.True(t, o.Expandtab)
	assert.Equal(t, "all", o.Virtualedit)
	assert.True(t, o.Wrapscan, "keys missing from the file keep defaults")
}

func TestLoadReaderErrors(t *testing.T) {
	_, err := LoadReader(strings.NewReader("tabstop = = 4"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "<reader>", pe.Path)

	_, err = LoadReader(strings.NewReader("nosuchoption = 1"))
	require.ErrorAs(t, err, &pe)

	_, err = LoadReader(strings.NewReader("tabstop = 0"))
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = LoadReader(strings.NewReader(`virtualedit = "sometimes"`))
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestLoadMissingFile(t *testing.T) {
	o, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults().Tabstop, o.Tabstop)
}

func TestApplyEnv(t *testing.T) {
	o, err := ApplyEnv(Defaults(), []string{
		"HOME=/root",
		"VICORE_TABSTOP=2",
		"VICORE_IC=yes",
		"VICORE_WRAPSCAN=off",
		"VICORE_LOG_LEVEL=debug",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, o.Tabstop)
	assert.True(t, o.Ignorecase)
	assert.False(t, o.Wrapscan)

	_, err = ApplyEnv(Defaults(), []string{"VICORE_TABSTOP=wide"})
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestStoreSetNotifies(t *testing.T) {
	s := NewStore(Defaults())
	var got []int
	unsub := s.Subscribe(func(old, new Options) {
		got = append(got, new.Tabstop)
	})

	o := Defaults()
	o.Tabstop = 3
	require.NoError(t, s.Set(o))
	require.NoError(t, s.Set(o))
	assert.Equal(t, []int{3}, got, "unchanged options do not notify")
	assert.Equal(t, 3, s.TabStop())

	o.Tabstop = 0
	assert.ErrorIs(t, s.Set(o), ErrInvalidOption)
	assert.Equal(t, 3, s.TabStop())

	unsub()
	o.Tabstop = 5
	require.NoError(t, s.Set(o))
	assert.Equal(t, []int{3}, got)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vicore.toml")
	require.NoError(t, os.WriteFile(path, []byte("tabstop = 4\n"), 0o644))

	s := NewStore(Defaults())
	changed := make(chan int, 4)
	s.Subscribe(func(_, new Options) { changed <- new.Tabstop })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := Watch(ctx, path, s, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("tabstop = 6\n"), 0o644))

	select {
	case ts := <-changed:
		assert.Equal(t, 6, ts)
	case <-time.After(5 * time.Second):
		t.Fatal("options were not reloaded")
	}
}

func TestWatcherReportsBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vicore.toml")
	require.NoError(t, os.WriteFile(path, []byte("tabstop = 4\n"), 0o644))

	s := NewStore(Defaults())
	errs := make(chan error, 4)
	w, err := Watch(context.Background(), path, s,
		WithDebounce(10*time.Millisecond),
		WithErrorHandler(func(err error) { errs <- err }))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("tabstop = \n"), 0o644))

	select {
	case err := <-errs:
		var pe *ParseError
		assert.True(t, errors.As(err, &pe))
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported")
	}
	assert.Equal(t, 8, s.TabStop())
}
