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
	"encoding/binary"
	"maps"
	"math/bits"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Metrics describes the font-wide values stored in the sfnt tables
// of a synthetic font.
type Metrics struct {
	PostScriptName string
	BBox           [4]int16
	Ascent         int16
	Descent        int16
	CapHeight      int16

	// OS2Version is the version of the "OS/2" table.  If negative,
	// the table is omitted.
	OS2Version int

	// MacName stores the PostScript name only as a Macintosh record.
	MacName bool
}

// DefaultMetrics returns the metrics used when nil is passed.
func DefaultMetrics() *Metrics {
	return &Metrics{
		PostScriptName: "Synthetic-Regular",
		BBox:           [4]int16{-50, -220, 1020, 910},
		Ascent:         800,
		Descent:        -200,
		CapHeight:      700,
		OS2Version:     4,
	}
}

// Head returns a "head" table.
func Head(m *Metrics, unitsPerEm uint16, longLoca bool) []byte {
	buf := make([]byte, 54)
	binary.BigEndian.PutUint32(buf[0:], 0x00010000)
	binary.BigEndian.PutUint32(buf[4:], 0x00010000)
	binary.BigEndian.PutUint32(buf[12:], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(buf[16:], 0x000B)
	binary.BigEndian.PutUint16(buf[18:], unitsPerEm)
	for i, x := range m.BBox {
		binary.BigEndian.PutUint16(buf[36+2*i:], uint16(x))
	}
	binary.BigEndian.PutUint16(buf[46:], 8)
	binary.BigEndian.PutUint16(buf[48:], 2)
	if longLoca {
		binary.BigEndian.PutUint16(buf[50:], 1)
	}
	return buf
}

// Hhea returns a "hhea" table.
func Hhea(m *Metrics, numHMetrics int) []byte {
	buf := make([]byte, 36)
	binary.BigEndian.PutUint32(buf[0:], 0x00010000)
	binary.BigEndian.PutUint16(buf[4:], uint16(m.Ascent))
	binary.BigEndian.PutUint16(buf[6:], uint16(m.Descent))
	binary.BigEndian.PutUint16(buf[10:], 1000)
	binary.BigEndian.PutUint16(buf[34:], uint16(numHMetrics))
	return buf
}

// Hmtx returns a "hmtx" table where all glyphs have the same width.
func Hmtx(numGlyphs int) []byte {
	buf := make([]byte, 4+2*(numGlyphs-1))
	binary.BigEndian.PutUint16(buf, 500)
	return buf
}

// Maxp returns a "maxp" table.  TrueType fonts get the version 1.0 table,
// CFF-based fonts the version 0.5 table.
func Maxp(numGlyphs int, trueType bool) []byte {
	if !trueType {
		buf := make([]byte, 6)
		binary.BigEndian.PutUint32(buf, 0x00005000)
		binary.BigEndian.PutUint16(buf[4:], uint16(numGlyphs))
		return buf
	}
	buf := make([]byte, 32)
	binary.BigEndian.PutUint32(buf, 0x00010000)
	binary.BigEndian.PutUint16(buf[4:], uint16(numGlyphs))
	return buf
}

// OS2 returns an "OS/2" table of version m.OS2Version.
func OS2(m *Metrics) []byte {
	var length int
	switch {
	case m.OS2Version == 0:
		length = 78
	case m.OS2Version == 1:
		length = 86
	case m.OS2Version <= 4:
		length = 96
	default:
		length = 100
	}
	buf := make([]byte, length)
	binary.BigEndian.PutUint16(buf[0:], uint16(m.OS2Version))
	binary.BigEndian.PutUint16(buf[2:], 500)
	binary.BigEndian.PutUint16(buf[4:], 400)
	binary.BigEndian.PutUint16(buf[6:], 5)
	binary.BigEndian.PutUint16(buf[68:], uint16(m.Ascent))
	binary.BigEndian.PutUint16(buf[70:], uint16(m.Descent))
	if m.OS2Version >= 2 {
		binary.BigEndian.PutUint16(buf[86:], uint16(m.CapHeight/2))
		binary.BigEndian.PutUint16(buf[88:], uint16(m.CapHeight))
	}
	return buf
}

// Name returns a "name" table which holds the PostScript name.
func Name(m *Metrics) []byte {
	type rec struct {
		platform, encoding, language uint16
		value                        []byte
	}
	var recs []rec
	mac, err := charmap.Macintosh.NewEncoder().Bytes([]byte(m.PostScriptName))
	if err != nil {
		panic(err)
	}
	recs = append(recs, rec{1, 0, 0, mac})
	if !m.MacName {
		var win []byte
		for _, c := range utf16.Encode([]rune(m.PostScriptName)) {
			win = append(win, byte(c>>8), byte(c))
		}
		recs = append(recs, rec{3, 1, 0x0409, win})
	}

	storage := 6 + 12*len(recs)
	buf := make([]byte, storage)
	binary.BigEndian.PutUint16(buf[2:], uint16(len(recs)))
	binary.BigEndian.PutUint16(buf[4:], uint16(storage))
	offset := 0
	for i, r := range recs {
		b := buf[6+12*i:]
		binary.BigEndian.PutUint16(b[0:], r.platform)
		binary.BigEndian.PutUint16(b[2:], r.encoding)
		binary.BigEndian.PutUint16(b[4:], r.language)
		binary.BigEndian.PutUint16(b[6:], 6)
		binary.BigEndian.PutUint16(b[8:], uint16(len(r.value)))
		binary.BigEndian.PutUint16(b[10:], uint16(offset))
		offset += len(r.value)
	}
	for _, r := range recs {
		buf = append(buf, r.value...)
	}
	return buf
}

// Post returns a version 3.0 "post" table.
func Post() []byte {
	buf := make([]byte, 32)
	binary.BigEndian.PutUint32(buf, 0x00030000)
	return buf
}

// Cmap returns a "cmap" table without subtables.
func Cmap() []byte {
	return make([]byte, 4)
}

// SFNT assembles a font file from the given tables.  The table checksums
// and the checksumAdjustment field in "head" are filled in.
func SFNT(scalerType uint32, tables map[string][]byte) []byte {
	tags := slices.Sorted(maps.Keys(tables))
	numTables := len(tags)

	entrySelector := bits.Len(uint(numTables)) - 1
	searchRange := 1 << (entrySelector + 4)
	buf := make([]byte, 12+16*numTables)
	binary.BigEndian.PutUint32(buf, scalerType)
	binary.BigEndian.PutUint16(buf[4:], uint16(numTables))
	binary.BigEndian.PutUint16(buf[6:], uint16(searchRange))
	binary.BigEndian.PutUint16(buf[8:], uint16(entrySelector))
	binary.BigEndian.PutUint16(buf[10:], uint16(16*numTables-searchRange))

	headPos := -1
	for i, tag := range tags {
		data := tables[tag]
		if tag == "head" {
			headPos = len(buf)
			binary.BigEndian.PutUint32(data[8:], 0)
		}
		rec := buf[12+16*i:]
		copy(rec, tag)
		binary.BigEndian.PutUint32(rec[4:], checksum(data))
		binary.BigEndian.PutUint32(rec[8:], uint32(len(buf)))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(data)))
		buf = append(buf, data...)
		for len(buf)%4 != 0 {
			buf = append(buf, 0)
		}
	}
	if headPos >= 0 {
		binary.BigEndian.PutUint32(buf[headPos+8:], 0xB1B0AFBA-checksum(buf))
	}
	return buf
}

// Collection combines sfnt files into a TrueType collection.
func Collection(fonts ...[]byte) []byte {
	buf := make([]byte, 12+4*len(fonts))
	copy(buf, "ttcf")
	binary.BigEndian.PutUint32(buf[4:], 0x00010000)
	binary.BigEndian.PutUint32(buf[8:], uint32(len(fonts)))
	for i, data := range fonts {
		base := uint32(len(buf))
		binary.BigEndian.PutUint32(buf[12+4*i:], base)

		data = append([]byte{}, data...)
		numTables := int(binary.BigEndian.Uint16(data[4:]))
		for j := 0; j < numTables; j++ {
			rec := data[12+16*j:]
			offset := binary.BigEndian.Uint32(rec[8:])
			binary.BigEndian.PutUint32(rec[8:], offset+base)
		}
		buf = append(buf, data...)
		for len(buf)%4 != 0 {
			buf = append(buf, 0)
		}
	}
	return buf
}

func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}
