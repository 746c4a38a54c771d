package imagegen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache provides file-based caching for generated urban impact images.
// Scenarios in the same band share a cached pair, which keeps API spend
// bounded no matter how many policies users try.
type Cache struct {
	dir    string
	maxAge time.Duration
}

// NewCache creates a new image cache in the specified directory.
// Images are refreshed after maxAge to provide variety.
func NewCache(dir string) *Cache {
	if err := os.MkdirAll(dir, 0755); err != nil {
		// Cache is optional, keep going without it.
		log.Warn().Err(err).Str("dir", dir).Msg("could not create image cache directory")
	}
	return &Cache{
		dir:    dir,
		maxAge: 30 * 24 * time.Hour,
	}
}

// path returns the cache file path for a variant and band.
func (c *Cache) path(variant Variant, band ImpactBand) string {
	return filepath.Join(c.dir, fmt.Sprintf("urban_%s_%s.png", variant, band))
}

// Get retrieves a cached image if it exists and is not stale.
// Returns the image bytes and true if found, or nil and false if not cached or stale.
func (c *Cache) Get(variant Variant, band ImpactBand) ([]byte, bool) {
	path := c.path(variant, band)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	if time.Since(info.ModTime()) > c.maxAge {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	return data, true
}

// Set stores an image in the cache.
func (c *Cache) Set(variant Variant, band ImpactBand, data []byte) error {
	return os.WriteFile(c.path(variant, band), data, 0644)
}

// List returns the variant/band keys currently cached.
func (c *Cache) List() []string {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil
	}

	var keys []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".png" {
			// urban_<variant>_<band>.png
			name := entry.Name()
			if len(name) > 10 {
				keys = append(keys, name[6:len(name)-4])
			}
		}
	}

	return keys
}
