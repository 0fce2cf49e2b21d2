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

package makefont

import (
	"bytes"

	"github.com/DavidFangWJ/jdvpdf/font/cff"
)

// DICT operators used by the synthetic fonts.
const (
	opFontBBox    cff.Operator = 0x0005
	opCharset     cff.Operator = 0x000F
	opCharStrings cff.Operator = 0x0011
	opPrivate     cff.Operator = 0x0012
	opSubrs       cff.Operator = 0x0013
	opDefaultW    cff.Operator = 0x0014
	opItalicAngle cff.Operator = 0x0C02
	opROS         cff.Operator = 0x0C1E
	opCIDCount    cff.Operator = 0x0C22
	opFDArray     cff.Operator = 0x0C24
	opFDSelect    cff.Operator = 0x0C25
)

// CFF describes a synthetic CFF font.
type CFF struct {
	FontName  string
	NumGlyphs int

	// HeaderSize is the hdrSize field of the CFF header.  Values larger
	// than 4 insert unused bytes after the header.
	HeaderSize int

	// Padding is the length of an extra string in the String INDEX.  It can
	// be used to move the CharStrings INDEX to a given offset.
	Padding int

	// CID fonts have a ROS operator, an FDArray and an FDSelect table.
	CID        bool
	Registry   string
	Ordering   string
	Supplement int
	NumFD      int
}

// CharString returns the outline program used for glyph gid.
// Different glyphs get programs of different lengths.
func CharString(gid int) []byte {
	if gid == 0 {
		return []byte{14} // endchar
	}
	var res []byte
	for i := 0; i <= gid%3; i++ {
		res = append(res, byte(139+gid%100), byte(139+i), 21) // dx dy rmoveto
	}
	return append(res, 14)
}

// Build returns the binary CFF data.
func (c *CFF) Build() []byte {
	numGlyphs := max(c.NumGlyphs, 1)
	hdrSize := max(c.HeaderSize, 4)
	fontName := c.FontName
	if fontName == "" {
		fontName = "Synthetic-Regular"
	}
	numFD := 0
	if c.CID {
		numFD = max(c.NumFD, 1)
	}

	header := make([]byte, hdrSize)
	header[0] = 1
	header[2] = byte(hdrSize)
	header[3] = 4

	names := &cff.IndexModel{}
	names.Append(cff.Data(fontName))

	strs := &cff.IndexModel{}
	if c.CID {
		strs.Append(cff.Data(c.Registry))
		strs.Append(cff.Data(c.Ordering))
	}
	if c.Padding > 0 {
		strs.Append(cff.Data(bytes.Repeat([]byte{'x'}, c.Padding)))
	}

	gsubrs := &cff.IndexModel{}

	// charset format 2 with one range covering all glyphs but .notdef
	var charset []byte
	if numGlyphs > 1 {
		nLeft := numGlyphs - 2
		charset = []byte{2, 0, 1, byte(nLeft >> 8), byte(nLeft)}
	} else {
		charset = []byte{0}
	}

	// FDSelect format 3
	var fdSelect []byte
	if c.CID {
		fdSelect = []byte{3, 0, byte(numFD)}
		for i := 0; i < numFD; i++ {
			first := i * numGlyphs / numFD
			fdSelect = append(fdSelect, byte(first>>8), byte(first), byte(i))
		}
		fdSelect[1] = byte(numFD >> 8)
		fdSelect = append(fdSelect, byte(numGlyphs>>8), byte(numGlyphs))
	}

	charStrings := &cff.IndexModel{}
	for gid := 0; gid < numGlyphs; gid++ {
		charStrings.Append(cff.Data(CharString(gid)))
	}

	// one Private DICT per font DICT, each followed by its local subrs
	var privates [][]byte
	for i := 0; i < max(numFD, 1); i++ {
		subrs := &cff.IndexModel{}
		subrs.Append(cff.Data{11}) // return
		var private []byte
		for size := 0; ; {
			d := cff.Dict{cff.Integer(500 + 10*i), opDefaultW, cff.Integer(size), opSubrs}
			private = d.Encode()
			if len(private) == size {
				break
			}
			size = len(private)
		}
		privates = append(privates, append(private, encodeIndex(subrs)...))
	}

	fixed := [][]byte{header, encodeIndex(names)}
	topSize, fdSize := 0, 0
	var topData, fdData []byte
	for {
		pos := len(header) + len(fixed[1]) + topSize
		pos += len(encodeIndex(strs)) + len(encodeIndex(gsubrs))
		charsetPos := pos
		pos += len(charset)
		fdSelectPos := pos
		pos += len(fdSelect)
		charStringsPos := pos
		pos += charStrings.EncodedSize()
		fdArrayPos := pos
		pos += fdSize
		var privatePos []int
		for _, priv := range privates {
			privatePos = append(privatePos, pos)
			pos += len(priv)
		}

		var top cff.Dict
		if c.CID {
			top = append(top,
				cff.Integer(391), cff.Integer(392), cff.Integer(c.Supplement), opROS)
		}
		top = append(top,
			cff.Real{0xe1, 0x2a, 0x5f}, opItalicAngle, // -12.5
			cff.Integer(-50), cff.Integer(-220), cff.Integer(1020), cff.Integer(910), opFontBBox,
			cff.Integer(charsetPos), opCharset,
			cff.Integer(charStringsPos), opCharStrings)
		fdArray := &cff.IndexModel{}
		if c.CID {
			top = append(top,
				cff.Integer(numGlyphs), opCIDCount,
				cff.Integer(fdArrayPos), opFDArray,
				cff.Integer(fdSelectPos), opFDSelect)
			for i, priv := range privates {
				fd := cff.Dict{
					cff.Integer(privateDictLength(priv)), cff.Integer(privatePos[i]), opPrivate,
				}
				fdArray.Append(cff.Data(fd.Encode()))
			}
		} else {
			top = append(top,
				cff.Integer(privateDictLength(privates[0])), cff.Integer(privatePos[0]), opPrivate)
		}

		topIndex := &cff.IndexModel{}
		topIndex.Append(cff.Data(top.Encode()))
		topData = encodeIndex(topIndex)
		if c.CID {
			fdData = encodeIndex(fdArray)
		}
		if len(topData) == topSize && len(fdData) == fdSize {
			break
		}
		topSize, fdSize = len(topData), len(fdData)
	}

	var out []byte
	out = append(out, fixed[0]...)
	out = append(out, fixed[1]...)
	out = append(out, topData...)
	out = append(out, encodeIndex(strs)...)
	out = append(out, encodeIndex(gsubrs)...)
	out = append(out, charset...)
	out = append(out, fdSelect...)
	out = append(out, encodeIndex(charStrings)...)
	out = append(out, fdData...)
	for _, priv := range privates {
		out = append(out, priv...)
	}
	return out
}

// privateDictLength returns the length of the Private DICT at the start
// of priv, which is followed by a one-element subrs INDEX.
func privateDictLength(priv []byte) int {
	return len(priv) - 6 // count(2) offSize(1) offsets(2) data(1)
}

func encodeIndex(m *cff.IndexModel) []byte {
	buf := &bytes.Buffer{}
	_, err := m.WriteTo(buf)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}
