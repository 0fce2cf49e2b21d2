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

// Package makefont creates fonts for use in unit tests.
package makefont

import (
	"encoding/binary"

	"golang.org/x/image/font/gofont/goregular"
)

// TrueType returns a font with glyf outlines.
func TrueType() []byte {
	return goregular.TTF
}

// OpenType returns an sfnt font wrapping the given CFF font.
// If m is nil, DefaultMetrics is used.
func OpenType(c *CFF, m *Metrics) []byte {
	if m == nil {
		m = DefaultMetrics()
	}
	numGlyphs := max(c.NumGlyphs, 1)
	tables := map[string][]byte{
		"CFF ": c.Build(),
		"cmap": Cmap(),
		"head": Head(m, 1000, false),
		"hhea": Hhea(m, 1),
		"hmtx": Hmtx(numGlyphs),
		"maxp": Maxp(numGlyphs, false),
		"name": Name(m),
		"post": Post(),
	}
	if m.OS2Version >= 0 {
		tables["OS/2"] = OS2(m)
	}
	return SFNT(0x4F54544F, tables)
}

// ToyTrueType returns a TrueType font whose glyphs have the given data.
// The font has an "OS/2" table and a "GDEF" table in addition to the
// tables needed for embedding.
func ToyTrueType(glyphs [][]byte, longLoca bool, m *Metrics) []byte {
	if m == nil {
		m = DefaultMetrics()
	}
	var glyf []byte
	offs := []uint32{0}
	for _, g := range glyphs {
		glyf = append(glyf, g...)
		if !longLoca && len(glyf)%2 != 0 {
			glyf = append(glyf, 0)
		}
		offs = append(offs, uint32(len(glyf)))
	}
	var loca []byte
	for _, off := range offs {
		if longLoca {
			loca = binary.BigEndian.AppendUint32(loca, off)
		} else {
			loca = binary.BigEndian.AppendUint16(loca, uint16(off/2))
		}
	}

	tables := map[string][]byte{
		"GDEF": {0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		"cmap": Cmap(),
		"glyf": glyf,
		"head": Head(m, 2048, longLoca),
		"hhea": Hhea(m, 1),
		"hmtx": Hmtx(len(glyphs)),
		"loca": loca,
		"maxp": Maxp(len(glyphs), true),
		"name": Name(m),
		"post": Post(),
	}
	if m.OS2Version >= 0 {
		tables["OS/2"] = OS2(m)
	}
	return SFNT(0x00010000, tables)
}
