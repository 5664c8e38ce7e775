// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the embedded locale files against the source tree. It
// reports keys used in code but missing from a locale, keys no code uses,
// and translations whose fmt verbs differ from the English original.
//
// Run it from the repository root:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "active.en.yaml"
)

var (
	// i18n.T("key") calls and bare "group.key" literals (menu tables).
	keyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"|"([a-z]+\.[a-z_]+)"`)
	// fmt verbs with optional flags, width and precision.
	verbRe = regexp.MustCompile(`%[-+# 0]*\d*(?:\.\d+)?[a-zA-Z%]`)
)

// report collects every finding of one run.
type report struct {
	Missing  map[string][]string // locale file -> keys
	Orphaned []string
	Verbs    map[string][]string // locale file -> keys with mismatched verbs
}

func (r report) failed() bool {
	return len(r.Missing) > 0 || len(r.Verbs) > 0
}

func main() {
	r, err := lint(".", localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(1)
	}
	printReport(r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (report, error) {
	r := report{Missing: map[string][]string{}, Verbs: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("scan sources: %w", err)
	}
	primary, err := loadLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("load %s: %w", primaryLocale, err)
	}

	for key := range used {
		if _, ok := primary[key]; !ok && looksLikeMessage(key, primary) {
			r.Missing[primaryLocale] = append(r.Missing[primaryLocale], key)
		}
	}
	for key := range primary {
		if _, ok := used[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	slices.Sort(r.Orphaned)
	slices.Sort(r.Missing[primaryLocale])

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == primaryLocale {
			continue
		}
		other, err := loadLocale(file)
		if err != nil {
			return r, fmt.Errorf("load %s: %w", name, err)
		}
		for key, msg := range primary {
			tr, ok := other[key]
			if !ok {
				r.Missing[name] = append(r.Missing[name], key)
				continue
			}
			if !slices.Equal(verbs(msg), verbs(tr)) {
				r.Verbs[name] = append(r.Verbs[name], key)
			}
		}
		slices.Sort(r.Missing[name])
		slices.Sort(r.Verbs[name])
	}
	for name, keys := range r.Missing {
		if len(keys) == 0 {
			delete(r.Missing, name)
		}
	}
	for name, keys := range r.Verbs {
		if len(keys) == 0 {
			delete(r.Verbs, name)
		}
	}
	return r, nil
}

// looksLikeMessage filters literals such as "data.dir" that share the key
// shape but belong to config. Only keys whose group exists in the locale count.
func looksLikeMessage(key string, primary map[string]string) bool {
	group, _, _ := strings.Cut(key, ".")
	for k := range primary {
		if strings.HasPrefix(k, group+".") {
			return true
		}
	}
	return false
}

// findUsedKeys scans non-test .go files below root. Directories starting
// with "_" or "." and the tools directory are skipped.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyRe.FindAllStringSubmatch(string(content), -1) {
			if m[1] != "" {
				keys[m[1]] = struct{}{}
			} else if m[2] != "" {
				keys[m[2]] = struct{}{}
			}
		}
		return nil
	})
	return keys, err
}

// loadLocale reads a nested YAML locale into a flat key -> message map.
func loadLocale(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	flatten("", data, out)
	return out, nil
}

func flatten(prefix string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, val, out)
		}
	default:
		if prefix != "" {
			out[prefix] = fmt.Sprint(v)
		}
	}
}

// verbs lists the fmt verbs of msg in order, ignoring literal %%.
func verbs(msg string) []string {
	var out []string
	for _, v := range verbRe.FindAllString(msg, -1) {
		if v != "%%" {
			out = append(out, v)
		}
	}
	return out
}

func printReport(r report) {
	for _, name := range sortedKeys(r.Missing) {
		for _, key := range r.Missing[name] {
			fmt.Printf("missing  %s: %s\n", name, key)
		}
	}
	for _, name := range sortedKeys(r.Verbs) {
		for _, key := range r.Verbs[name] {
			fmt.Printf("verbs    %s: %s\n", name, key)
		}
	}
	for _, key := range r.Orphaned {
		fmt.Printf("orphaned %s: %s\n", primaryLocale, key)
	}
	if !r.failed() && len(r.Orphaned) == 0 {
		fmt.Println("locales are consistent")
	}
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
