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

// Package glyf reads and writes the "loca" table and assembles the glyph
// data of subsetted "glyf" tables.
package glyf

import (
	"fmt"

	"github.com/DavidFangWJ/jdvpdf/font"
)

// MaxShortLength is the largest glyf table length which can be addressed
// by the short loca format.
const MaxShortLength = 2 * 0xFFFF

// DecodeLoca decodes a "loca" table.  The result has numGlyphs+1 entries,
// glyph i occupies the bytes offs[i] to offs[i+1] of the glyf table.
// glyfLength is used to check the offsets.
func DecodeLoca(data []byte, numGlyphs int, long bool, glyfLength uint32) ([]uint32, error) {
	width := 2
	if long {
		width = 4
	}
	if len(data) < width*(numGlyphs+1) {
		return nil, &font.InvalidFontError{
			SubSystem: "sfnt/loca",
			Reason:    "invalid table length",
		}
	}

	offs := make([]uint32, numGlyphs+1)
	var prev uint32
	for i := range offs {
		var pos uint32
		if long {
			pos = uint32(data[4*i])<<24 + uint32(data[4*i+1])<<16 +
				uint32(data[4*i+2])<<8 + uint32(data[4*i+3])
		} else {
			pos = 2 * (uint32(data[2*i])<<8 + uint32(data[2*i+1]))
		}
		if pos < prev || pos > glyfLength {
			return nil, &font.InvalidFontError{
				SubSystem: "sfnt/loca",
				Reason:    fmt.Sprintf("invalid offset %d", pos),
			}
		}
		offs[i] = pos
		prev = pos
	}
	return offs, nil
}

// EncodeLoca encodes a "loca" table.  In the short format, all
// offsets must be even and at most MaxShortLength.
func EncodeLoca(offs []uint32, long bool) []byte {
	var locaData []byte
	if !long {
		locaData = make([]byte, 2*len(offs))
		for i, off := range offs {
			x := off / 2
			locaData[2*i] = byte(x >> 8)
			locaData[2*i+1] = byte(x)
		}
	} else {
		locaData = make([]byte, 4*len(offs))
		for i, off := range offs {
			locaData[4*i] = byte(off >> 24)
			locaData[4*i+1] = byte(off >> 16)
			locaData[4*i+2] = byte(off >> 8)
			locaData[4*i+3] = byte(off)
		}
	}
	return locaData
}

// NeedsLongLoca decides the loca format for a glyf table made of glyphs
// with the given lengths.  Each glyph is padded to even length for the
// short format.
func NeedsLongLoca(lengths []uint32) bool {
	var total uint64
	for _, l := range lengths {
		total += uint64(l + l%2)
	}
	return total > MaxShortLength
}

// Builder assembles a new glyf table glyph by glyph.
type Builder struct {
	Data    []byte
	Offsets []uint32

	long bool
}

// NewBuilder allocates a Builder.  If long is false, glyphs are padded
// to even length.
func NewBuilder(numGlyphs int, long bool) *Builder {
	offs := make([]uint32, 1, numGlyphs+1)
	return &Builder{
		Offsets: offs,
		long:    long,
	}
}

// Add appends the data of the next glyph.
func (b *Builder) Add(glyph []byte) {
	b.Data = append(b.Data, glyph...)
	if !b.long && len(glyph)%2 != 0 {
		b.Data = append(b.Data, 0)
	}
	b.Offsets = append(b.Offsets, uint32(len(b.Data)))
}

// Skip appends an empty glyph.
func (b *Builder) Skip() {
	b.Offsets = append(b.Offsets, uint32(len(b.Data)))
}

// Loca returns the encoded "loca" table for the glyphs added so far.
func (b *Builder) Loca() []byte {
	return EncodeLoca(b.Offsets, b.long)
}
