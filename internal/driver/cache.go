package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"edgelint/internal/linter"
)

// Increment when DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// Digest identifies one (content, config) combination.
type Digest [sha256.Size]byte

// DiskCache stores verify results on disk, keyed by content and config
// digests. Runs that rewrite files bypass it. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is a diagnostic stripped to what survives a round trip:
// fixes are closures over one snapshot and are never cached.
type CachedDiagnostic struct {
	RuleID    string
	Severity  uint8
	Message   string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// DiskPayload is one cached verify result.
type DiskPayload struct {
	Schema       uint16
	Diagnostics  []CachedDiagnostic
	ErrorCount   int
	WarningCount int
}

// OpenDiskCache initializes a disk cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// "results" subdirectory keeps the cache root cleanable by hand
	return filepath.Join(c.dir, "results", hexKey+".mp")
}

// Put serializes and writes a payload. The write is atomic: encode into a
// temp file, then rename over the final path.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. The boolean reports a usable hit; a payload with a
// stale schema is a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// HashContent digests one file's content.
func HashContent(src []byte) Digest {
	return sha256.Sum256(src)
}

// HashConfig digests a merged configuration. json.Marshal sorts map keys,
// which makes the serialization canonical enough for cache keying.
func HashConfig(cfg linter.Config) Digest {
	raw, err := json.Marshal(cfg)
	if err != nil {
		raw = nil
	}
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	h.Write(schema[:])
	h.Write(raw)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// cacheKey combines the two digests into one key.
func cacheKey(content, config Digest) Digest {
	h := sha256.New()
	h.Write(content[:])
	h.Write(config[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func payloadFromResult(res *linter.Result) *DiskPayload {
	payload := &DiskPayload{
		Schema:       diskCacheSchemaVersion,
		ErrorCount:   res.ErrorCount,
		WarningCount: res.WarningCount,
	}
	payload.Diagnostics = make([]CachedDiagnostic, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		payload.Diagnostics[i] = CachedDiagnostic{
			RuleID:    d.RuleID,
			Severity:  uint8(d.Severity),
			Message:   d.Message,
			Line:      d.Line,
			Column:    d.Column,
			EndLine:   d.EndLine,
			EndColumn: d.EndColumn,
		}
	}
	return payload
}

func resultFromPayload(filename, src string, payload *DiskPayload) linter.Result {
	res := linter.Result{
		Filename:     filename,
		Source:       src,
		ErrorCount:   payload.ErrorCount,
		WarningCount: payload.WarningCount,
	}
	if len(payload.Diagnostics) > 0 {
		res.Diagnostics = make([]linter.Diagnostic, len(payload.Diagnostics))
		for i, d := range payload.Diagnostics {
			res.Diagnostics[i] = linter.Diagnostic{
				RuleID:    d.RuleID,
				Severity:  linter.Severity(d.Severity),
				Message:   d.Message,
				Line:      d.Line,
				Column:    d.Column,
				EndLine:   d.EndLine,
				EndColumn: d.EndColumn,
			}
		}
	}
	return res
}
