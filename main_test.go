package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coyove/exticons/icon"
	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	code = execute(context.Background(), args, out, errOut)
	return code, out.String(), errOut.String()
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")
	for i := 0; i < 2; i++ {
		code, stdout, stderr := run(t, "--out", dir)
		if code != 0 {
			t.Fatalf("run %d: exit %d, stderr: %s", i, code, stderr)
		}
		for _, s := range icon.Specs(dir) {
			if !strings.Contains(stdout, "Created: "+s.Path+"\n") {
				t.Errorf("run %d: missing confirmation for %s in:\n%s", i, s.Path, stdout)
			}
			if _, err := os.Stat(s.Path); err != nil {
				t.Errorf("run %d: %v", i, err)
			}
		}
		if !strings.Contains(stdout, "All icons created successfully!") {
			t.Errorf("run %d: missing summary in:\n%s", i, stdout)
		}
	}
}

func TestMissingCapability(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "icons")
	junk := filepath.Join(tmp, "junk.ttf")
	if err := os.WriteFile(junk, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "missing font file",
			args: []string{"--out", dir, "--font", filepath.Join(tmp, "missing.ttf")},
			want: []string{
				`Error: font "` + filepath.Join(tmp, "missing.ttf") + `" is not available.`,
				"Please install it with: point --font at a readable .ttf, .otf or .ttc file",
			},
		},
		{
			name: "unparsable font file",
			args: []string{"--out", dir, "--font", junk},
			want: []string{
				`Error: font "` + junk + `" is not available.`,
				"Please install it with: point --font at a readable .ttf, .otf or .ttc file",
			},
		},
		{
			name: "missing glyph image",
			args: []string{"--out", dir, "--glyph-image", filepath.Join(tmp, "emoji.png")},
			want: []string{
				`Error: glyph image "` + filepath.Join(tmp, "emoji.png") + `" is not available.`,
				"Please install it with: go run ./cmd/emoji -d <emoji pack zip> -o " + filepath.Join(tmp, "emoji.png"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(t, tt.args...)
			if code == 0 {
				t.Fatal("exit status 0, want non-zero")
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want nothing", stdout)
			}
			got := strings.Split(strings.TrimSuffix(stderr, "\n"), "\n")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("stderr mismatch (-want +got):\n%s", diff)
			}
			if _, err := os.Stat(dir); !os.IsNotExist(err) {
				t.Errorf("output directory was touched: %v", err)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	tmp := t.TempDir()
	fromConfig := filepath.Join(tmp, "from-config")
	fromFlag := filepath.Join(tmp, "from-flag")
	cfgPath := filepath.Join(tmp, "exticons.yml")
	if err := os.WriteFile(cfgPath, []byte("out: "+fromConfig+"\nantialias: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if code, _, stderr := run(t, "--config", cfgPath); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(fromConfig, "icon128.png")); err != nil {
		t.Error(err)
	}

	if code, _, stderr := run(t, "--config", cfgPath, "--out", fromFlag); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(fromFlag, "icon128.png")); err != nil {
		t.Error(err)
	}

	if code, _, _ := run(t, "--config", filepath.Join(tmp, "missing.yml")); code == 0 {
		t.Error("explicit missing config must fail")
	}
}

func TestHistory(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "icons")
	db := filepath.Join(tmp, "manifest.db")

	if code, _, stderr := run(t, "--out", dir, "--manifest", db); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	code, stdout, stderr := run(t, "history", "--manifest", db)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 1+len(icon.Sizes) {
		t.Fatalf("got %d lines, want header and %d records:\n%s", len(lines), len(icon.Sizes), stdout)
	}
	for i, s := range icon.Specs(dir) {
		if !strings.HasPrefix(lines[i+1], s.Path) {
			t.Errorf("line %d = %q, want record of %s", i+1, lines[i+1], s.Path)
		}
	}

	code, stdout, _ = run(t, "history", "--manifest", db, "--path", filepath.Join(dir, "icon16.png"))
	if code != 0 || strings.Count(stdout, "icon16.png") != 1 {
		t.Errorf("history --path: exit %d, output:\n%s", code, stdout)
	}

	if code, _, _ := run(t, "history"); code == 0 {
		t.Error("history without a manifest must fail")
	}
}

func TestDoctor(t *testing.T) {
	code, stdout, stderr := run(t, "doctor")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "✓ OK") || !strings.Contains(stdout, "All checks passed!") {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	code, stdout, _ = run(t, "doctor", "--font", filepath.Join(t.TempDir(), "missing.ttf"))
	if code != 0 {
		t.Fatalf("doctor reports problems instead of failing, got exit %d", code)
	}
	if !strings.Contains(stdout, "✗ NOT AVAILABLE") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}
