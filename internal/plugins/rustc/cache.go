package rustc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/alnah/go-md2slides/internal/bundle"
)

// Cache layout under the plugin's cache directory.
const (
	CacheFile = "cache.json"
	LogsDir   = "logs"
)

// resultCache maps source hashes to rendered outputs. The index file maps
// each hash to its log file name; the logs hold the outputs.
type resultCache struct {
	dir    bundle.Dir
	logs   bundle.Dir
	logger *slog.Logger

	mu      sync.Mutex
	files   map[string]string
	results map[string]string
}

// openCache loads the index in dir. An unreadable index or a missing log
// drops the affected entries; they are recomputed on demand.
func openCache(dir bundle.Dir, logger *slog.Logger) (*resultCache, error) {
	logs, err := dir.Cache(LogsDir)
	if err != nil {
		return nil, err
	}
	c := &resultCache{
		dir:     dir,
		logs:    logs,
		logger:  logger,
		files:   make(map[string]string),
		results: make(map[string]string),
	}

	data, err := dir.ReadFile(CacheFile)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", CacheFile, err)
	}

	var index map[string]string
	if err := json.Unmarshal(data, &index); err != nil {
		logger.Warn("ignoring unreadable cache index", "file", dir.Join(CacheFile), "error", err)
		return c, nil
	}
	for hash, file := range index {
		if !isHash(hash) || file != logName(hash) {
			logger.Debug("dropping cache entry", "hash", hash, "file", file)
			continue
		}
		result, err := logs.ReadFile(file)
		if err != nil {
			logger.Debug("dropping cache entry", "hash", hash, "error", err)
			continue
		}
		c.files[hash] = file
		c.results[hash] = string(result)
	}
	logger.Debug("loaded cache", "entries", len(c.results))
	return c, nil
}

func (c *resultCache) get(hash string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[hash]
	return r, ok
}

// remember keeps result for this build only; nothing is written.
func (c *resultCache) remember(hash, result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[hash] = result
}

// put stores result and rewrites the index.
func (c *resultCache) put(hash, result string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	file := logName(hash)
	if _, err := c.logs.WriteFile(file, []byte(result)); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	c.files[hash] = file
	c.results[hash] = result

	data, err := json.MarshalIndent(c.files, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", CacheFile, err)
	}
	if _, err := c.dir.WriteFile(CacheFile, data); err != nil {
		return fmt.Errorf("writing %s: %w", CacheFile, err)
	}
	return nil
}

func logName(hash string) string {
	return "result_" + hash + ".log"
}
