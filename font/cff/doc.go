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

// Package cff implements support for reading and subsetting CFF fonts.
//
// CFF fonts are typically found embedded in OpenType font files.
// They are not usually used as stand-alone font files.
//
// Subsetting keeps the glyph numbering of the original font: glyphs which
// are not needed are replaced by empty charstrings, so that glyph IDs can
// be used directly as character codes with the Identity-H CMap.
package cff

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'jdvpdf.fonts'
func tracer() tracing.Trace {
	return tracing.Select("jdvpdf.fonts")
}
