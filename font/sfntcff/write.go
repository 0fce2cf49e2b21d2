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
	"fmt"
	"io"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"github.com/DavidFangWJ/jdvpdf/font/cff"
	"github.com/DavidFangWJ/jdvpdf/font/sfnt"
	"github.com/DavidFangWJ/jdvpdf/font/subset"
)

// Options control how a font is embedded.  A nil *Options is
// equivalent to the zero value.
type Options struct {
	// SubsetTag, if set, is used instead of the tag computed from the
	// glyph list.  It must consist of six capital letters.
	SubsetTag string

	// KeepName embeds the font under its original name, without a
	// subset tag.
	KeepName bool
}

// EmbedInfo describes an embedded font subset.  The fields are used for
// the FontDescriptor, CIDFont and Type 0 font dictionaries.
type EmbedInfo struct {
	FontName string // PostScript name of the subset, including the tag
	T0Name   string
	Tag      string

	CIDFontSubtype  string
	FontFileKey     string
	FontFileSubtype string
	Length          int64 // bytes written

	// Glyphs is the normalized list of glyphs in the subset.
	Glyphs []glyph.ID

	ROS     *cid.SystemInfo
	ROSCode int

	FontBBox  funit.Rect16
	Ascent    funit.Int16
	Descent   funit.Int16
	CapHeight funit.Int16
}

// Embed writes a subset of the font to w, which contains the glyphs in
// keep.  Glyph 0 is always included; keep may be unsorted and contain
// duplicates.  All glyphs keep their glyph IDs, so that the glyph IDs
// can be used as character codes with the Identity-H encoding.
//
// For OpenType fonts the output is the bare CFF data, for TrueType fonts
// it is an sfnt file.
func (f *Font) Embed(w io.Writer, keep []glyph.ID, opt *Options) (*EmbedInfo, error) {
	if opt == nil {
		opt = &Options{}
	}

	keep = subset.Normalize(keep)
	err := subset.Check(keep, f.NumGlyphs)
	if err != nil {
		return nil, err
	}

	tag := opt.SubsetTag
	if tag == "" {
		tag = subset.Tag(keep, f.NumGlyphs)
	} else if !subset.IsTag(tag) {
		return nil, fmt.Errorf("sfntcff: invalid subset tag %q", tag)
	}
	fontName := f.PostScriptName
	if !opt.KeepName {
		fontName = subset.FontName(tag, fontName)
	}

	var n int64
	if f.IsOpenType() {
		var rec sfnt.TableRecord
		rec, err = f.Header.Find("CFF ")
		if err != nil {
			return nil, err
		}
		n, err = cff.WriteSubset(w, f.r, int64(rec.Offset), int64(rec.Length), keep, fontName)
	} else {
		n, err = sfnt.WriteSubset(w, f.r, f.Header, keep)
	}
	if err != nil {
		return nil, err
	}

	key, subtype := f.FontFileKey()
	info := &EmbedInfo{
		FontName:        fontName,
		T0Name:          T0Name(fontName),
		Tag:             tag,
		CIDFontSubtype:  f.CIDFontSubtype(),
		FontFileKey:     key,
		FontFileSubtype: subtype,
		Length:          n,
		Glyphs:          keep,
		ROS:             f.ROS,
		ROSCode:         f.ROSCode,
		FontBBox:        f.FontBBox,
		Ascent:          f.Ascent,
		Descent:         f.Descent,
		CapHeight:       f.CapHeight,
	}
	tracer().Debugf("embedded %q: %d glyphs, %d bytes", fontName, len(keep), n)
	return info, nil
}
