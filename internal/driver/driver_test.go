package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"edgelint/internal/linter"
	"edgelint/internal/rules"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestListTemplates(t *testing.T) {
	root := writeTree(t, map[string]string{
		"home.edge":             "hello",
		"partials/nav.edge":     "nav",
		"vendor/pkg/skip.edge":  "skip",
		"partials/readme.txt":   "not a template",
		"node_modules/x/y.edge": "skip",
	})

	files, err := ListTemplates(root, []string{"vendor/**", "node_modules/**"})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v", files)
	}
	if filepath.Base(files[0]) != "home.edge" || filepath.Base(files[1]) != "nav.edge" {
		t.Fatalf("files = %v", files)
	}
}

func TestListTemplatesFileRoot(t *testing.T) {
	root := writeTree(t, map[string]string{"only.edge": "x"})
	path := filepath.Join(root, "only.edge")

	files, err := ListTemplates(path, []string{"*.edge"})
	if err != nil {
		t.Fatal(err)
	}
	// an explicit file argument is never filtered
	if len(files) != 1 || files[0] != path {
		t.Fatalf("files = %v", files)
	}
}

func TestIgnored(t *testing.T) {
	cases := []struct {
		rel  string
		pats []string
		want bool
	}{
		{"vendor/a.edge", []string{"vendor/**"}, true},
		{"vendor", []string{"vendor/**"}, true},
		{"vendored/a.edge", []string{"vendor/**"}, false},
		{"a/draft.edge", []string{"draft.edge"}, true},
		{"home.edge", []string{"*.txt"}, false},
		{"deep/nested/home.edge", []string{"deep/*/home.edge"}, true},
	}
	for _, c := range cases {
		if got := ignored(c.rel, c.pats); got != c.want {
			t.Errorf("ignored(%q, %v) = %v, want %v", c.rel, c.pats, got, c.want)
		}
	}
}

func testCache(t *testing.T) *DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("edgelint-test")
	if err != nil {
		t.Fatal(err)
	}
	return cache
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := testCache(t)
	key := cacheKey(HashContent([]byte("{{ x }}")), HashConfig(linter.Config{}))

	var miss DiskPayload
	if hit, err := cache.Get(key, &miss); err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}

	payload := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		ErrorCount: 1,
		Diagnostics: []CachedDiagnostic{
			{RuleID: "no-empty-expression", Severity: uint8(linter.Error), Message: "unexpected empty expression", Line: 3, Column: 2},
		},
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatal(err)
	}

	var got DiskPayload
	hit, err := cache.Get(key, &got)
	if err != nil || !hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if got.ErrorCount != 1 || len(got.Diagnostics) != 1 || got.Diagnostics[0].Line != 3 {
		t.Fatalf("payload = %+v", got)
	}
}

func TestDiskCacheStaleSchemaIsMiss(t *testing.T) {
	cache := testCache(t)
	key := cacheKey(HashContent([]byte("x")), HashConfig(linter.Config{}))

	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}); err != nil {
		t.Fatal(err)
	}
	var got DiskPayload
	if hit, err := cache.Get(key, &got); err != nil || hit {
		t.Fatalf("stale schema: hit=%v err=%v", hit, err)
	}
}

func TestHashConfigDistinguishesConfigs(t *testing.T) {
	a := HashConfig(linter.Config{Rules: map[string]linter.RuleConfig{"x": {Severity: linter.Warn}}})
	b := HashConfig(linter.Config{Rules: map[string]linter.RuleConfig{"x": {Severity: linter.Error}}})
	if a == b {
		t.Fatal("different configs hashed equal")
	}
	if a != HashConfig(linter.Config{Rules: map[string]linter.RuleConfig{"x": {Severity: linter.Warn}}}) {
		t.Fatal("hash is not deterministic")
	}
}

func testLinter() *linter.Linter {
	cfg := linter.Config{Rules: map[string]linter.RuleConfig{
		"no-empty-expression": {Severity: linter.Error},
		"mustache-spacing":    {Severity: linter.Error},
	}}
	return linter.New(rules.Builtin(), cfg)
}

func TestRunVerify(t *testing.T) {
	root := writeTree(t, map[string]string{
		"clean.edge": "{{ user.name }}",
		"dirty.edge": "{{ }}",
	})
	files, err := ListTemplates(root, nil)
	if err != nil {
		t.Fatal(err)
	}

	results, err := Run(context.Background(), testLinter(), files, Options{Cache: testCache(t)})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	clean, dirty := results[0], results[1]
	if clean.Result.ErrorCount != 0 || dirty.Result.ErrorCount != 1 {
		t.Fatalf("counts: clean=%d dirty=%d", clean.Result.ErrorCount, dirty.Result.ErrorCount)
	}
	if clean.FromCache || dirty.FromCache {
		t.Fatal("first run must not hit the cache")
	}
}

func TestRunUsesCacheOnSecondPass(t *testing.T) {
	root := writeTree(t, map[string]string{"a.edge": "{{ }}"})
	files, _ := ListTemplates(root, nil)
	l := testLinter()
	cache := testCache(t)

	if _, err := Run(context.Background(), l, files, Options{Cache: cache}); err != nil {
		t.Fatal(err)
	}
	results, err := Run(context.Background(), l, files, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].FromCache {
		t.Fatal("second run missed the cache")
	}
	if results[0].Result.ErrorCount != 1 {
		t.Fatalf("cached result = %+v", results[0].Result)
	}
}

func TestRunFixRewritesFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"a.edge": "{{name}}"})
	path := filepath.Join(root, "a.edge")

	results, err := Run(context.Background(), testLinter(), []string{path}, Options{Fix: true})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Result.Fixed {
		t.Fatalf("result = %+v", results[0])
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{{ name }}" {
		t.Fatalf("file content = %q", data)
	}
}

func TestRunFixDryRunLeavesFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"a.edge": "{{name}}"})
	path := filepath.Join(root, "a.edge")

	results, err := Run(context.Background(), testLinter(), []string{path}, Options{Fix: true, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Result.Output != "{{ name }}" {
		t.Fatalf("result = %+v", results[0].Result)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{{name}}" {
		t.Fatalf("dry run modified the file: %q", data)
	}
}

func TestRunReportsUnreadableFile(t *testing.T) {
	results, err := Run(context.Background(), testLinter(), []string{filepath.Join(t.TempDir(), "missing.edge")}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err == nil {
		t.Fatal("expected an I/O error result")
	}
}

func TestRunEmitsEvents(t *testing.T) {
	root := writeTree(t, map[string]string{"a.edge": "{{ ok }}"})
	files, _ := ListTemplates(root, nil)

	events := make(chan Event, 16)
	if _, err := Run(context.Background(), testLinter(), files, Options{Events: events}); err != nil {
		t.Fatal(err)
	}
	close(events)

	var statuses []Status
	for ev := range events {
		statuses = append(statuses, ev.Status)
	}
	if len(statuses) != 3 || statuses[0] != StatusQueued || statuses[2] != StatusDone {
		t.Fatalf("statuses = %v", statuses)
	}
}
