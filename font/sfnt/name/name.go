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

// Package name reads the PostScript name from the "name" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"encoding/binary"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/DavidFangWJ/jdvpdf/font"
)

// IDPostScript is the name ID of the PostScript name.
const IDPostScript = 6

// Record is one entry of the naming table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      []byte // raw bytes, in the platform encoding
}

// Decode reads all records of a "name" table.
func Decode(data []byte) ([]Record, error) {
	if len(data) < 6 {
		return nil, errMalformed
	}
	format := binary.BigEndian.Uint16(data)
	if format > 1 {
		return nil, &font.NotSupportedError{
			SubSystem: "sfnt/name",
			Feature:   "name table format > 1",
		}
	}
	count := int(binary.BigEndian.Uint16(data[2:]))
	storage := int(binary.BigEndian.Uint16(data[4:]))
	if 6+12*count > len(data) || storage > len(data) {
		return nil, errMalformed
	}

	res := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		rec := data[6+12*i : 18+12*i]
		length := int(binary.BigEndian.Uint16(rec[8:]))
		start := storage + int(binary.BigEndian.Uint16(rec[10:]))
		if start+length > len(data) {
			return nil, errMalformed
		}
		res = append(res, Record{
			PlatformID: binary.BigEndian.Uint16(rec),
			EncodingID: binary.BigEndian.Uint16(rec[2:]),
			LanguageID: binary.BigEndian.Uint16(rec[4:]),
			NameID:     binary.BigEndian.Uint16(rec[6:]),
			Value:      data[start : start+length],
		})
	}
	return res, nil
}

// PostScriptName returns the PostScript name of the font.
// Windows records are preferred, Unicode ones before Symbol ones,
// followed by the Macintosh Roman record.
func PostScriptName(data []byte) (string, error) {
	records, err := Decode(data)
	if err != nil {
		return "", err
	}

	var best *Record
	bestScore := 0
	for i := range records {
		rec := &records[i]
		if rec.NameID != IDPostScript {
			continue
		}
		score := 0
		switch {
		case rec.PlatformID == 3 && rec.EncodingID == 1 && rec.LanguageID == 0x0409:
			score = 5
		case rec.PlatformID == 3 && rec.EncodingID == 1:
			score = 4
		case rec.PlatformID == 3:
			score = 3
		case rec.PlatformID == 1 && rec.EncodingID == 0:
			score = 2
		case rec.PlatformID == 0:
			score = 1
		}
		if score > bestScore {
			best = rec
			bestScore = score
		}
	}
	if best == nil {
		return "", &font.InvalidFontError{
			SubSystem: "sfnt/name",
			Reason:    "no PostScript name",
		}
	}

	var val []byte
	if best.PlatformID == 1 {
		val, err = charmap.Macintosh.NewDecoder().Bytes(best.Value)
	} else {
		val, err = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(best.Value)
	}
	if err != nil {
		return "", &font.InvalidFontError{
			SubSystem: "sfnt/name",
			Reason:    "cannot decode PostScript name: " + err.Error(),
		}
	}
	return string(val), nil
}

var errMalformed = &font.InvalidFontError{
	SubSystem: "sfnt/name",
	Reason:    "malformed name table",
}
