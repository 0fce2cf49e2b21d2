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
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/postscript/cid"

	"github.com/DavidFangWJ/jdvpdf/font"
	"github.com/DavidFangWJ/jdvpdf/font/cff"
	"github.com/DavidFangWJ/jdvpdf/font/parser"
	"github.com/DavidFangWJ/jdvpdf/font/sfnt"
	"github.com/DavidFangWJ/jdvpdf/font/sfnt/head"
	"github.com/DavidFangWJ/jdvpdf/font/sfnt/name"
	"github.com/DavidFangWJ/jdvpdf/font/sfnt/os2"
)

// Open opens a font file.  For TrueType collections, subFont selects
// the font inside the collection; otherwise it must be 0.
// The font must be closed after use.
func Open(path string, subFont int) (*Font, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, &font.IOError{Op: "open", Err: err}
	}
	f, err := Read(fd, subFont)
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	f.closer = fd
	return f, nil
}

// Read reads the font information from r.  The font keeps using r
// for embedding.
func Read(r io.ReadSeeker, subFont int) (*Font, error) {
	p := parser.New("sfnt", r)
	h, err := sfnt.ReadHeader(p, subFont)
	if err != nil {
		return nil, err
	}

	f := &Font{
		SubFont: subFont,
		Header:  h,
		r:       r,
	}

	headData, err := h.ReadTableBytes(p, "head")
	if err != nil {
		return nil, err
	}
	headInfo, err := head.Decode(headData)
	if err != nil {
		return nil, err
	}
	f.FontBBox = headInfo.FontBBox
	f.UnitsPerEm = headInfo.UnitsPerEm

	maxp, err := h.ReadTableBytes(p, "maxp")
	if err != nil {
		return nil, err
	}
	if len(maxp) < 6 {
		p.SetName("maxp")
		return nil, p.Error("table too short")
	}
	f.NumGlyphs = int(binary.BigEndian.Uint16(maxp[4:]))

	if h.IsOpenType() {
		rec, err := h.Find("CFF ")
		if err != nil {
			return nil, err
		}
		info, err := cff.ReadInfo(r, int64(rec.Offset), int64(rec.Length))
		if err != nil {
			return nil, err
		}
		f.PostScriptName = info.FontName
		f.IsCID = info.IsCID
		f.ROS = info.ROS
		f.ROSCode = info.ROSCode
	} else {
		if _, err := h.Find("glyf"); err != nil {
			return nil, err
		}
		nameData, err := h.ReadTableBytes(p, "name")
		if err != nil {
			return nil, err
		}
		f.PostScriptName, err = name.PostScriptName(nameData)
		if err != nil {
			return nil, err
		}
		f.ROS = &cid.SystemInfo{Registry: "Adobe", Ordering: "Identity"}
		f.ROSCode = cff.IdentityROS
	}

	var metrics *os2.Info
	os2Data, err := h.ReadTableBytes(p, "OS/2")
	if sfnt.IsMissing(err) {
		tracer().Infof("font %q has no OS/2 table, using hhea metrics", f.PostScriptName)
		hheaData, err := h.ReadTableBytes(p, "hhea")
		if err != nil {
			return nil, err
		}
		metrics, err = os2.DecodeHhea(hheaData)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else {
		metrics, err = os2.Decode(os2Data)
		if err != nil {
			return nil, err
		}
	}
	f.Ascent = metrics.Ascent
	f.Descent = metrics.Descent
	f.CapHeight = metrics.CapHeight

	tracer().Debugf("font %q: %d glyphs, OpenType %t, CID %t, ROS 0x%04x",
		f.PostScriptName, f.NumGlyphs, f.IsOpenType(), f.IsCID, f.ROSCode)
	return f, nil
}
