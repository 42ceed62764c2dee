package main

import (
	"archive/zip"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestCandidates(t *testing.T) {
	got := candidates("❤️")
	for _, want := range []string{"❤️.png", "2764.png", "emoji_u2764.png"} {
		if !got[want] {
			t.Errorf("missing %s in %v", want, got)
		}
	}
	got = candidates("👍🏽")
	for _, want := range []string{"1f44d_1f3fd.png", "emoji_u1f44d-1f3fd.png"} {
		if !got[want] {
			t.Errorf("missing %s in %v", want, got)
		}
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	zf := filepath.Join(dir, "pack.zip")
	f, err := os.Create(zf)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("noto-emoji/png/128/emoji_u1f4ac.png")
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	src.Set(0, 0, color.Transparent)
	if err := png.Encode(w, src); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := filepath.Join(dir, "emoji.png")
	if err := extract(zf, "💬", out, 64); err != nil {
		t.Fatal(err)
	}
	r, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	cfg, err := png.DecodeConfig(r)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 64 || cfg.Height != 64 {
		t.Errorf("got %dx%d, want 64x64", cfg.Width, cfg.Height)
	}

	if err := extract(zf, "🎉", out, 64); err == nil {
		t.Error("extracting a missing emoji must fail")
	}
}
