package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/sdep/pkg/config"
)

func TestNewDiagnoseCommand(t *testing.T) {
	cmd := NewDiagnoseCommand()

	if cmd.Name() != "diagnose" {
		t.Errorf("Unexpected name: %s", cmd.Name())
	}

	for _, flag := range []string{"config", "verbose"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestCheckConfig_NotFound(t *testing.T) {
	_, result := checkConfig(context.Background(), "/nonexistent/config.yaml")

	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
	if !strings.Contains(result.Message, "not found") {
		t.Errorf("Expected 'not found' in message, got: %s", result.Message)
	}
}

func TestCheckConfig_Directory(t *testing.T) {
	_, result := checkConfig(context.Background(), t.TempDir())

	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
	if !strings.Contains(result.Message, "directory") {
		t.Errorf("Expected 'directory' in message, got: %s", result.Message)
	}
}

func TestCheckConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "invalid: yaml: content")

	cfg, result := checkConfig(context.Background(), path)
	if cfg != nil {
		t.Error("Expected nil config")
	}
	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
}

func TestCheckConfig_Defaults(t *testing.T) {
	cfg, result := checkConfig(context.Background(), "")
	if result.Status != "ok" {
		t.Fatalf("Expected ok status, got %s: %s", result.Status, result.Message)
	}
	if cfg.InputLayout() == nil {
		t.Error("Expected compiled input layout")
	}
}

func TestCheckWindow(t *testing.T) {
	empty := ""
	from := "2024-02-01 00:00"
	to := "2024-01-01 00:00"

	tests := []struct {
		name       string
		from, to   *string
		wantStatus string
	}{
		{"unset is current minute", nil, nil, "warning"},
		{"open window", &empty, &empty, "ok"},
		{"inverted window", &from, &to, "error"},
		{"closed window", &to, &from, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.From = tt.from
			cfg.To = tt.to
			if err := config.Validate(cfg); err != nil {
				t.Fatalf("Validate failed: %v", err)
			}

			if got := checkWindow(cfg); got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s (%s)", got.Status, tt.wantStatus, got.Message)
			}
		})
	}
}

func TestCheckInputFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.log", scenarioInput)
	empty := writeFile(t, dir, "empty.log", "")

	files, results := checkInputFiles([]string{
		good, empty, filepath.Join(dir, "missing.log"), dir, "-",
	})

	if len(files) != 1 || files[0] != good {
		t.Errorf("Expected only %s to be usable, got %v", good, files)
	}

	want := []string{"ok", "warning", "error", "error", "warning"}
	if len(results) != len(want) {
		t.Fatalf("Expected %d results, got %d", len(want), len(results))
	}
	for i, r := range results {
		if r.Status != want[i] {
			t.Errorf("Result %d (%s): status %s, want %s", i, r.Check, r.Status, want[i])
		}
	}
}

func TestCheckInputFormat(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		content    string
		wantStatus string
		wantHint   string
	}{
		{"matching", scenarioInput, "ok", ""},
		{"mostly noise", "2024-01-01 09:00 a\nx\ny\nz\n", "warning", ""},
		{"wrong format", "Jun 14 15:16:01 combo sshd\nJun 14 15:16:02 combo sshd\n", "error", "%b %e %H:%M:%S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".log", tt.content)

			cfg := config.DefaultConfig()
			if err := config.Validate(cfg); err != nil {
				t.Fatalf("Validate failed: %v", err)
			}

			result := checkInputFormat(context.Background(), cfg, file, &DiagnoseOptions{})
			if result.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s (%s)", result.Status, tt.wantStatus, result.Message)
			}
			if tt.wantHint != "" && !strings.Contains(strings.Join(result.Suggests, "\n"), tt.wantHint) {
				t.Errorf("Expected hint %q, got %v", tt.wantHint, result.Suggests)
			}
		})
	}
}

func TestRunDiagnose(t *testing.T) {
	dir := t.TempDir()
	logFile := writeFile(t, dir, "app.log", scenarioInput)
	cfgPath := writeFile(t, dir, "sdep.yaml", "from: \"\"\nto: \"\"\n")

	cmd := NewDiagnoseCommand()
	cmd.SetArgs([]string{"-c", cfgPath, logFile})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"=== sdep Diagnostics ===",
		"[PASS] Configuration",
		"[PASS] Time Window",
		"[PASS] Input File: " + logFile,
		"Input format matches 3/4 sample lines",
		"Summary: 4 passed, 0 warnings, 0 errors",
		"Everything looks good!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDiagnose_MissingConfig(t *testing.T) {
	cmd := NewDiagnoseCommand()
	cmd.SetArgs([]string{"-c", "/nonexistent/sdep.yaml", "app.log"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}
	if !strings.Contains(buf.String(), "[FAIL] Configuration") {
		t.Errorf("Expected config failure:\n%s", buf.String())
	}
}
