// jdvpdf - convert jdv page descriptions into PDF files
// Copyright (C) 2021  David Fang
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
package sfntcff

import (
	"cmp"
	"errors"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

type cacheKey struct {
	path    string
	subFont int
}

func (k cacheKey) compare(other cacheKey) int {
	return cmp.Or(strings.Compare(k.path, other.path), cmp.Compare(k.subFont, other.subFont))
}

type cacheEntry struct {
	font *Font
	err  error
}

// Cache keeps the fonts opened during one conversion.  Every font file
// (and every font inside a TrueType collection) is opened only once.
// Failed opens are remembered as well, so that a broken font file is
// reported once and does not affect the other fonts.
//
// A Cache must not be used concurrently.
type Cache struct {
	entries map[cacheKey]*cacheEntry
	open    func(path string, subFont int) (*Font, error)
}

// NewCache allocates a new, empty Cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey]*cacheEntry),
		open:    Open,
	}
}

// Get returns the font for the given file and collection index, opening
// the file on first use.
func (c *Cache) Get(path string, subFont int) (*Font, error) {
	key := cacheKey{path: filepath.Clean(path), subFont: subFont}
	if ent, ok := c.entries[key]; ok {
		return ent.font, ent.err
	}

	f, err := c.open(key.path, subFont)
	if err != nil {
		tracer().Infof("cannot open font %q (%d): %v", key.path, subFont, err)
	}
	c.entries[key] = &cacheEntry{font: f, err: err}
	return f, err
}

// Len returns the number of cached fonts, including failed ones.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Close closes all fonts in the cache and empties the cache.
func (c *Cache) Close() error {
	keys := slices.SortedFunc(maps.Keys(c.entries), cacheKey.compare)
	var errs []error
	for _, key := range keys {
		ent := c.entries[key]
		if ent.font == nil {
			continue
		}
		if err := ent.font.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	clear(c.entries)
	return errors.Join(errs...)
}
