//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs are never walked when counting source lines.
var skipDirs = map[string]bool{
	".git":      true,
	"_examples": true,
	"magefiles": true,
	"vendor":    true,
	binaryDir:   true,
}

// sourceStats accumulates line counts per top-level source tree.
type sourceStats struct {
	Prod  map[string]int `json:"go_loc_prod"`
	Test  map[string]int `json:"go_loc_test"`
	Total int            `json:"go_loc"`

	TemplateWords  int `json:"template_wc"`
	FixtureRecords int `json:"fixture_records"`
}

func (s *sourceStats) addGoFile(path string) error {
	n, err := countLines(path)
	if err != nil {
		return fmt.Errorf("count %s: %w", path, err)
	}
	tree, _, _ := strings.Cut(filepath.ToSlash(path), "/")
	if strings.HasSuffix(path, "_test.go") {
		s.Test[tree] += n
	} else {
		s.Prod[tree] += n
	}
	s.Total += n
	return nil
}

// Stats prints Go lines per source tree, template word counts and the
// number of fixture records as one JSON object.
func Stats() error {
	stats := sourceStats{Prod: map[string]int{}, Test: map[string]int{}}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[path] {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		return stats.addGoFile(path)
	})
	if err != nil {
		return err
	}

	if stats.TemplateWords, err = sumGlob("internal/site/templates/*/*.html", countWords); err != nil {
		return err
	}
	if stats.FixtureRecords, err = sumGlob(fixturesDir+"/*.jsonl", countLines); err != nil {
		return err
	}

	out, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// sumGlob applies count to every file matching pattern and adds the results.
func sumGlob(pattern string, count func(string) (int, error)) (int, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("glob %s: %w", pattern, err)
	}
	total := 0
	for _, path := range matches {
		n, err := count(path)
		if err != nil {
			return 0, fmt.Errorf("count %s: %w", path, err)
		}
		total += n
	}
	return total, nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n, sc.Err()
}

func countWords(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return len(bytes.Fields(data)), nil
}
