package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/corona10/goimagehash"
	"github.com/coyove/exticons/icon"
	"github.com/sirupsen/logrus"
)

var rounds, workers int
var antialias bool

type sample struct {
	checksum uint32
	phash    uint64
}

func main() {
	flag.IntVar(&rounds, "n", 10, "rounds")
	flag.IntVar(&workers, "c", 10, "concurrent generations per round")
	flag.BoolVar(&antialias, "antialias", false, "")
	flag.Parse()
	logrus.SetLevel(logrus.WarnLevel)

	ref := map[int]sample{}
	var mu sync.Mutex
	mismatch := 0

	start := time.Now()
	for r := 0; r < rounds; r++ {
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results, err := generate()
				if err != nil {
					logrus.Errorf("generate: %v", err)
					return
				}
				mu.Lock()
				defer mu.Unlock()
				for _, res := range results {
					s := sample{res.Checksum, res.PHash}
					old, ok := ref[res.Spec.Size]
					if !ok {
						ref[res.Spec.Size] = s
						continue
					}
					if old.checksum != s.checksum {
						mismatch++
						d, _ := goimagehash.NewImageHash(old.phash, goimagehash.PHash).
							Distance(goimagehash.NewImageHash(s.phash, goimagehash.PHash))
						fmt.Printf("icon%d: crc %08x != %08x, phash distance %d\n", res.Spec.Size, old.checksum, s.checksum, d)
					}
				}
			}()
		}
		wg.Wait()
		fmt.Println("round", r)
	}

	n := rounds * workers
	fmt.Printf("%d generations in %v (%v each), %d mismatches\n", n, time.Since(start), time.Since(start)/time.Duration(n), mismatch)
	if mismatch > 0 {
		os.Exit(1)
	}
}

func generate() ([]icon.Result, error) {
	dir, err := os.MkdirTemp("", "exticons-bench")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	g := &icon.Generator{Antialias: antialias, Out: io.Discard}
	return g.Run(dir)
}
