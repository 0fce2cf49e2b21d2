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

// Package sfnt reads the table directory of TrueType and OpenType fonts
// and writes subsetted TrueType fonts.
//
// TrueType collections can be read; one font of the collection is
// selected by its index.
package sfnt

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'jdvpdf.fonts'
func tracer() tracing.Trace {
	return tracing.Select("jdvpdf.fonts")
}
