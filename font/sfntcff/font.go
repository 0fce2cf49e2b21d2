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
// Package sfntcff opens TrueType and OpenType fonts, extracts the
// information needed for PDF font dictionaries, and writes subsetted
// versions of the fonts for embedding.
package sfntcff

import (
	"io"

	"github.com/npillmayer/schuko/tracing"
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/postscript/funit"

	"github.com/DavidFangWJ/jdvpdf/font/sfnt"
)

// tracer writes to trace with key 'jdvpdf.fonts'
func tracer() tracing.Trace {
	return tracing.Select("jdvpdf.fonts")
}

// Font is an open font file, together with the information needed for
// the PDF font dictionaries.
type Font struct {
	// Path is the file name, or empty if the font was not read from a file.
	Path string

	// SubFont is the index of the font inside a TrueType collection.
	SubFont int

	Header *sfnt.Header

	PostScriptName string
	NumGlyphs      int
	UnitsPerEm     uint16

	// IsCID is set for CID-keyed CFF fonts.
	IsCID bool

	// ROS is the character collection of the font.  Fonts which are not
	// CID-keyed use Adobe-Identity-0.
	ROS     *cid.SystemInfo
	ROSCode int

	FontBBox  funit.Rect16
	Ascent    funit.Int16
	Descent   funit.Int16 // negative
	CapHeight funit.Int16

	r      io.ReadSeeker
	closer io.Closer
}

// IsOpenType returns true if the font has CFF outlines.
func (f *Font) IsOpenType() bool {
	return f.Header.IsOpenType()
}

// T0Name returns the name of the Type 0 font which uses the font
// with the Identity-H encoding.
func (f *Font) T0Name() string {
	return T0Name(f.PostScriptName)
}

// T0Name returns the name of a Type 0 font for the given font name.
func T0Name(fontName string) string {
	return fontName + "-Identity-H"
}

// CIDFontSubtype returns the value of the /Subtype entry of the CIDFont
// dictionary.
func (f *Font) CIDFontSubtype() string {
	if f.IsOpenType() {
		return "CIDFontType0"
	}
	return "CIDFontType2"
}

// FontFileKey returns the FontDescriptor key for the embedded font data,
// and the /Subtype of the font stream.  The subtype is empty for
// FontFile2 streams.
func (f *Font) FontFileKey() (key, subtype string) {
	if f.IsOpenType() {
		return "FontFile3", "CIDFontType0C"
	}
	return "FontFile2", ""
}

// Close releases the font file.  Fonts created by Read do not own
// their stream and Close does nothing for them.
func (f *Font) Close() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}
