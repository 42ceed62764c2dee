package main

import (
	"archive/zip"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path"
	"strings"

	"github.com/coyove/exticons/icon"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
)

func main() {
	var zf, emoji, out string
	var dim uint
	flag.StringVar(&zf, "d", "", "emoji pack zip")
	flag.StringVar(&emoji, "e", icon.Glyph, "emoji to extract")
	flag.StringVar(&out, "o", "emoji.png", "output PNG")
	flag.UintVar(&dim, "dim", 128, "output width and height")
	flag.Parse()

	if zf == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := extract(zf, emoji, out, dim); err != nil {
		logrus.Fatal(err)
	}
	fmt.Println("Created:", out)
}

func extract(zf, emoji, out string, dim uint) error {
	rd, err := zip.OpenReader(zf)
	if err != nil {
		return err
	}
	defer rd.Close()

	names := candidates(emoji)
	for _, file := range rd.File {
		if file.FileInfo().IsDir() || !names[strings.ToLower(path.Base(file.Name))] {
			continue
		}
		f, err := file.Open()
		if err != nil {
			return err
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}

		w, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := png.Encode(w, resize.Resize(dim, dim, img, resize.Bicubic)); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}
	return fmt.Errorf("%s: no image for %q", zf, emoji)
}

// candidates lists the file names packs use for emoji: the emoji itself, or
// its code points joined by "_" or "-", with or without the "emoji_u" prefix.
// Variation selectors are dropped.
func candidates(emoji string) map[string]bool {
	var cps []string
	for _, r := range emoji {
		if 0xFE00 <= r && r <= 0xFE0F {
			continue
		}
		cps = append(cps, fmt.Sprintf("%x", r))
	}
	names := map[string]bool{emoji + ".png": true}
	for _, sep := range []string{"_", "-"} {
		j := strings.Join(cps, sep)
		names[j+".png"] = true
		names["emoji_u"+j+".png"] = true
	}
	return names
}
