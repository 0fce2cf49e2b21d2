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

package sfnt

import (
	"encoding/binary"
	"io"
	"math/bits"

	"seehuhn.de/go/sfnt/glyph"

	"github.com/DavidFangWJ/jdvpdf/font"
	"github.com/DavidFangWJ/jdvpdf/font/parser"
	"github.com/DavidFangWJ/jdvpdf/font/sfnt/glyf"
	"github.com/DavidFangWJ/jdvpdf/font/sfnt/head"
)

// SubsetTables lists the tables of a subsetted TrueType font, sorted by tag.
var SubsetTables = []string{
	"cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name", "post",
}

// outTable is one table of the output.  If data is nil, the table is
// copied from the input.
type outTable struct {
	rec  TableRecord
	data []byte
	src  parser.Region
}

// WriteSubset writes a TrueType font which contains only the glyphs
// listed in keep to w.  The list must be strictly ascending.  Glyphs not
// in the list keep their glyph ID but have no outline.
//
// The output consists of the tables in SubsetTables.  The tables glyf,
// loca and head are rewritten, all others are copied verbatim.
func WriteSubset(w io.Writer, r io.ReadSeeker, h *Header, keep []glyph.ID) (int64, error) {
	p := parser.New("sfnt", r)

	recs := make(map[string]TableRecord, len(SubsetTables))
	for _, tag := range SubsetTables {
		rec, err := h.Find(tag)
		if err != nil {
			return 0, err
		}
		recs[tag] = rec
	}

	p.SetName("head")
	headData, err := h.ReadTableBytes(p, "head")
	if err != nil {
		return 0, err
	}
	headInfo, err := head.Decode(headData)
	if err != nil {
		return 0, err
	}

	p.SetName("maxp")
	maxp, err := h.ReadTableBytes(p, "maxp")
	if err != nil {
		return 0, err
	}
	if len(maxp) < 6 {
		return 0, p.Error("maxp table too short")
	}
	numGlyphs := int(binary.BigEndian.Uint16(maxp[4:]))

	for i, gid := range keep {
		if int(gid) >= numGlyphs {
			return 0, &font.RangeError{
				SubSystem: "sfnt",
				What:      "glyph",
				Index:     int(gid),
				Limit:     numGlyphs,
			}
		}
		if i > 0 && gid <= keep[i-1] {
			return 0, font.ErrUnsorted
		}
	}

	p.SetName("loca")
	locaData, err := h.ReadTableBytes(p, "loca")
	if err != nil {
		return 0, err
	}
	glyfRec := recs["glyf"]
	offs, err := glyf.DecodeLoca(locaData, numGlyphs, headInfo.HasLongOffsets, glyfRec.Length)
	if err != nil {
		return 0, err
	}

	lengths := make([]uint32, len(keep))
	for i, gid := range keep {
		lengths[i] = offs[gid+1] - offs[gid]
	}
	long := glyf.NeedsLongLoca(lengths)

	p.SetName("glyf")
	b := glyf.NewBuilder(numGlyphs, long)
	pos := 0
	for gid := 0; gid < numGlyphs; gid++ {
		if pos < len(keep) && int(keep[pos]) == gid {
			err = p.SeekPos(int64(glyfRec.Offset) + int64(offs[gid]))
			if err != nil {
				return 0, err
			}
			data, err := p.ReadBlob(int(offs[gid+1] - offs[gid]))
			if err != nil {
				return 0, err
			}
			b.Add(data)
			pos++
		} else {
			b.Skip()
		}
	}
	newLoca := b.Loca()

	newHead := append([]byte{}, headData...)
	head.SetLocaFormat(newHead, long)
	head.ClearChecksum(newHead)

	tables := make([]*outTable, len(SubsetTables))
	for i, tag := range SubsetTables {
		t := &outTable{rec: recs[tag]}
		switch tag {
		case "glyf":
			t.data = b.Data
		case "loca":
			t.data = newLoca
		case "head":
			t.data = newHead
		default:
			t.src = recs[tag].Region()
		}
		if t.data != nil {
			t.rec.Checksum = Checksum(t.data)
			t.rec.Length = uint32(len(t.data))
		}
		tables[i] = t
	}

	dir := makeDirectory(ScalerTypeTrueType, tables)
	total := Checksum(dir)
	for _, t := range tables {
		total += t.rec.Checksum
	}
	head.PatchChecksum(newHead, total)

	tracer().Debugf("sfnt subset: %d of %d glyphs, glyf %d -> %d bytes, long loca %t",
		len(keep), numGlyphs, glyfRec.Length, len(b.Data), long)

	return writeTables(w, p, dir, tables)
}

// makeDirectory assigns offsets to the tables, in the given order, and
// returns the encoded file header and table directory.
func makeDirectory(scalerType uint32, tables []*outTable) []byte {
	numTables := len(tables)
	entrySelector := bits.Len(uint(numTables)) - 1
	searchRange := 1 << (entrySelector + 4)

	buf := make([]byte, 12+16*numTables)
	binary.BigEndian.PutUint32(buf, scalerType)
	binary.BigEndian.PutUint16(buf[4:], uint16(numTables))
	binary.BigEndian.PutUint16(buf[6:], uint16(searchRange))
	binary.BigEndian.PutUint16(buf[8:], uint16(entrySelector))
	binary.BigEndian.PutUint16(buf[10:], uint16(16*numTables-searchRange))

	offset := uint32(len(buf))
	for i, t := range tables {
		t.rec.Offset = offset
		rec := buf[12+16*i:]
		copy(rec, t.rec.Tag[:])
		binary.BigEndian.PutUint32(rec[4:], t.rec.Checksum)
		binary.BigEndian.PutUint32(rec[8:], t.rec.Offset)
		binary.BigEndian.PutUint32(rec[12:], t.rec.Length)
		offset += 4 * ((t.rec.Length + 3) / 4)
	}
	return buf
}

func writeTables(w io.Writer, p *parser.Parser, dir []byte, tables []*outTable) (int64, error) {
	sum := &check{}
	out := &countingWriter{w: io.MultiWriter(w, sum)}

	_, err := out.Write(dir)
	if err != nil {
		return out.n, err
	}
	var pad [3]byte
	for _, t := range tables {
		if t.data != nil {
			_, err = out.Write(t.data)
		} else {
			p.SetName(t.rec.Tag.String())
			err = p.CopyRegion(out, t.src)
		}
		if err != nil {
			return out.n, err
		}
		if k := t.rec.Length % 4; k != 0 {
			_, err = out.Write(pad[:4-k])
			if err != nil {
				return out.n, err
			}
		}
	}
	tracer().Debugf("sfnt: wrote %d bytes, file checksum 0x%08x", out.n, sum.Sum())
	return out.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(buf []byte) (int, error) {
	n, err := cw.w.Write(buf)
	cw.n += int64(n)
	if err != nil {
		return n, &font.IOError{Op: "write sfnt", Err: err}
	}
	return n, nil
}
