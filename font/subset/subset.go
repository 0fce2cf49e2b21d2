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
// Package subset handles the glyph lists which describe font subsets
// and computes the tags of subsetted font names.
package subset

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt/glyph"

	"github.com/DavidFangWJ/jdvpdf/font"
)

// Normalize returns a sorted copy of gg without duplicates.  The
// result always starts with glyph 0 (.notdef).
func Normalize(gg []glyph.ID) []glyph.ID {
	res := make([]glyph.ID, 0, len(gg)+1)
	res = append(res, 0)
	res = append(res, gg...)
	slices.Sort(res)
	return slices.Compact(res)
}

// Check verifies that keep is strictly ascending and that all glyphs
// are below numGlyphs.
func Check(keep []glyph.ID, numGlyphs int) error {
	for i, gid := range keep {
		if int(gid) >= numGlyphs {
			return &font.RangeError{
				SubSystem: "subset",
				What:      "glyph",
				Index:     int(gid),
				Limit:     numGlyphs,
			}
		}
		if i > 0 && gid <= keep[i-1] {
			return font.ErrUnsorted
		}
	}
	return nil
}

const tagModulus = 26 * 26 * 26 * 26 * 26 * 26

// Tag constructs a 6-letter tag (range AAAAAA to ZZZZZZ) to describe
// a subset of glyphs of a font.  The tag only depends on the glyph list
// and the number of glyphs in the font.
func Tag(keep []glyph.ID, numGlyphs int) string {
	// mix all the information into a single uint32
	X := uint32(numGlyphs) % tagModulus
	for _, g := range keep {
		// 11 is the largest integer smaller than 1<<32 / tagModulus which
		// is relatively prime to 26.
		X = (X*11 + uint32(g)) % tagModulus
	}

	var buf [6]byte
	for i := range buf {
		buf[i] = 'A' + byte(X%26)
		X /= 26
	}
	return string(buf[:])
}

// IsTag reports whether s is a valid subset tag.
func IsTag(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, c := range []byte(s) {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// FontName returns the name of a subsetted font.
func FontName(tag, name string) string {
	return tag + "+" + name
}

// ParseList parses a list of glyph IDs like "0,3,5-9".  The result is
// normalized.
func ParseList(s string) ([]glyph.ID, error) {
	var res []glyph.ID
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		from, to, isRange := strings.Cut(field, "-")
		first, err := parseGID(from)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			last, err = parseGID(to)
			if err != nil {
				return nil, err
			}
			if last < first {
				return nil, fmt.Errorf("subset: invalid range %q", field)
			}
		}
		for gid := int(first); gid <= int(last); gid++ {
			res = append(res, glyph.ID(gid))
		}
	}
	return Normalize(res), nil
}

func parseGID(s string) (glyph.ID, error) {
	x, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("subset: invalid glyph ID %q: %w", s, err)
	}
	return glyph.ID(x), nil
}
