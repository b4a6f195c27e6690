package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TemplateExt is the file extension recognized during discovery.
const TemplateExt = ".edge"

// ListTemplates returns every template under root, sorted for deterministic
// processing order. A root that is itself a file is returned as-is, ignoring
// patterns. Ignore patterns match slash-separated paths relative to root; a
// trailing "/**" makes a pattern cover a whole subtree.
func ListTemplates(root string, ignore []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if ignored(rel, ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, TemplateExt) {
			return nil
		}
		if ignored(rel, ignore) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func ignored(rel string, patterns []string) bool {
	if rel == "." {
		return false
	}
	for _, pat := range patterns {
		pat = filepath.ToSlash(pat)
		if prefix, ok := strings.CutSuffix(pat, "/**"); ok {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			continue
		}
		if match, _ := filepath.Match(pat, rel); match {
			return true
		}
		if match, _ := filepath.Match(pat, filepath.Base(rel)); match {
			return true
		}
	}
	return false
}
