package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRun_InvalidConfig(t *testing.T) {
	if err := run([]string{"-store", "mongo"}); err == nil {
		t.Error("run() with an unknown store should fail")
	}
}

func TestRun_StartFailureReturnsError(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "forecasts.db")

	err := run([]string{"-store", "sqlite", "-dsn", dsn, "-p", "-1"})
	if err == nil {
		t.Fatal("run() on an invalid port should fail")
	}

	if _, err := os.Stat(dsn); err != nil {
		t.Errorf("sqlite store was not opened before the server started: %v", err)
	}
}
