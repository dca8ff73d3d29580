package main

import (
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"

	"github.com/nier-tools/mot_browser/pack/mot"
	"github.com/nier-tools/mot_browser/status"
)

// parseCheck decodes and samples every motion file under dir, logging
// any that fail. Useful when checking the decoder against a full game
// dump.
func parseCheck(dir string) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		log.Fatal(err)
	}

	checked, failed := 0, 0
	for i, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".mot") {
			continue
		}
		checked++
		status.Progress(float32(i)/float32(len(entries)), "Checking %q", e.Name())

		data, err := ioutil.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Printf("[parsecheck] %q: %v", e.Name(), err)
			failed++
			continue
		}

		f, err := mot.NewFromData(data)
		if err != nil {
			log.Printf("[parsecheck] %q: %v", e.Name(), err)
			failed++
			continue
		}

		for ri, rec := range f.Records {
			if rec.Kind == mot.KindTerminator {
				continue
			}
			if _, err := rec.Sample(int(f.FrameCount)); err != nil {
				log.Printf("[parsecheck] %q record %v: %v", e.Name(), ri, err)
				failed++
			}
		}
	}

	log.Printf("[parsecheck] %v files checked, %v failures", checked, failed)
}
