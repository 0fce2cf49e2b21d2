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

package cff

import (
	"github.com/DavidFangWJ/jdvpdf/font"
	"github.com/DavidFangWJ/jdvpdf/font/parser"
)

// Index describes the layout of a CFF INDEX in the input.
// Only the header is read; objects are located on demand.
type Index struct {
	Count   uint16
	OffSize uint8

	start     int64
	offsetPos int64
	dataPos   int64
}

// ReadIndexHeader reads the header of the INDEX starting at pos.
// An empty INDEX has OffSize 0 and occupies exactly two bytes.
func ReadIndexHeader(p *parser.Parser, pos int64) (*Index, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}
	count, err := p.ReadUInt16()
	if err != nil {
		return nil, err
	}
	idx := &Index{
		Count: count,
		start: pos,
	}
	if count == 0 {
		idx.offsetPos = pos + 2
		idx.dataPos = pos + 2
		return idx, nil
	}

	offSize, err := p.ReadUInt8()
	if err != nil {
		return nil, err
	}
	if offSize < 1 || offSize > 4 {
		return nil, p.Error("invalid INDEX offSize %d", offSize)
	}
	idx.OffSize = offSize
	idx.offsetPos = p.Pos()
	// offsets are 1-based
	idx.dataPos = idx.offsetPos + (int64(count)+1)*int64(offSize) - 1
	return idx, nil
}

func (idx *Index) offset(p *parser.Parser, i int) (int64, error) {
	err := p.SeekPos(idx.offsetPos + int64(i)*int64(idx.OffSize))
	if err != nil {
		return 0, err
	}
	val, err := p.ReadUInt(int(idx.OffSize))
	if err != nil {
		return 0, err
	}
	if val < 1 {
		return 0, p.Error("invalid INDEX offset %d", val)
	}
	return int64(val), nil
}

// Object returns the byte range of object i.
func (idx *Index) Object(p *parser.Parser, i int) (parser.Region, error) {
	if i < 0 || i >= int(idx.Count) {
		return parser.Region{}, &font.RangeError{
			SubSystem: "cff",
			What:      "INDEX object",
			Index:     i,
			Limit:     int(idx.Count),
		}
	}
	from, err := idx.offset(p, i)
	if err != nil {
		return parser.Region{}, err
	}
	to, err := idx.offset(p, i+1)
	if err != nil {
		return parser.Region{}, err
	}
	if to < from {
		return parser.Region{}, p.Error("decreasing INDEX offsets")
	}
	return parser.Region{
		Start:  idx.dataPos + from,
		Length: to - from,
	}, nil
}

// ReadObject reads the contents of object i into a new slice.
func (idx *Index) ReadObject(p *parser.Parser, i int) ([]byte, error) {
	reg, err := idx.Object(p, i)
	if err != nil {
		return nil, err
	}
	err = p.SeekPos(reg.Start)
	if err != nil {
		return nil, err
	}
	return p.ReadBlob(int(reg.Length))
}

// End returns the position one past the last byte of the INDEX.
func (idx *Index) End(p *parser.Parser) (int64, error) {
	if idx.Count == 0 {
		return idx.start + 2, nil
	}
	last, err := idx.offset(p, int(idx.Count))
	if err != nil {
		return 0, err
	}
	return idx.dataPos + last, nil
}

// Size returns the total encoded length of the INDEX, including
// the header and the offset array.
func (idx *Index) Size(p *parser.Parser) (int64, error) {
	end, err := idx.End(p)
	if err != nil {
		return 0, err
	}
	return end - idx.start, nil
}

// Start returns the position of the first byte of the INDEX.
func (idx *Index) Start() int64 {
	return idx.start
}
