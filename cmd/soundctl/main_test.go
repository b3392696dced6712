package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "migrate", "--data-dir", dir)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out, "Schema is at version") {
		t.Errorf("Expected schema version in output, got %q", out)
	}

	out, err = execute(t, "migrate", "status", "--data-dir", dir)
	if err != nil {
		t.Fatalf("migrate status failed: %v", err)
	}
	if strings.Contains(out, "pending") {
		t.Errorf("Expected no pending migrations, got %q", out)
	}
	if !strings.Contains(out, "Integrity check: ok") {
		t.Errorf("Expected integrity check in output, got %q", out)
	}
}

func TestChartsEmpty(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "charts", "--data-dir", dir, "--window", "all")
	if err != nil {
		t.Fatalf("charts failed: %v", err)
	}
	if !strings.Contains(out, "Nothing shared yet.") {
		t.Errorf("Expected empty chart message, got %q", out)
	}

	if _, err := execute(t, "charts", "--data-dir", dir, "--window", "1990"); err == nil {
		t.Error("Expected error for year before the statistics epoch")
	}
}

func TestSyncLogsEmpty(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "sync", "logs", "--data-dir", dir)
	if err != nil {
		t.Fatalf("sync logs failed: %v", err)
	}
	if !strings.Contains(out, "No sync activity yet.") {
		t.Errorf("Expected no activity message, got %q", out)
	}
}
