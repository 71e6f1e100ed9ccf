package app

import (
	"errors"
	"io/fs"
	"testing"
)

func TestInitError(t *testing.T) {
	inner := errors.New("boom")
	err := &InitError{Component: "config", Err: inner}

	if got, want := err.Error(), "initializing config: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to reach the wrapped error")
	}
}

func TestFileError(t *testing.T) {
	err := &FileError{Op: "write", Path: "/tmp/x", Err: fs.ErrPermission}

	if got, want := err.Error(), "write /tmp/x: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected errors.Is to reach fs.ErrPermission")
	}
}
