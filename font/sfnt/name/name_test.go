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
package name

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/DavidFangWJ/jdvpdf/font"
	"github.com/DavidFangWJ/jdvpdf/internal/makefont"
)

type testRecord struct {
	platform, encoding, language, nameID uint16
	value                                []byte
}

func utf16BE(s string) []byte {
	var res []byte
	for _, c := range utf16.Encode([]rune(s)) {
		res = binary.BigEndian.AppendUint16(res, c)
	}
	return res
}

func makeTable(recs []testRecord) []byte {
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
		binary.BigEndian.PutUint16(b[6:], r.nameID)
		binary.BigEndian.PutUint16(b[8:], uint16(len(r.value)))
		binary.BigEndian.PutUint16(b[10:], uint16(offset))
		offset += len(r.value)
	}
	for _, r := range recs {
		buf = append(buf, r.value...)
	}
	return buf
}

func TestPostScriptName(t *testing.T) {
	cases := []struct {
		recs []testRecord
		want string
	}{
		{
			recs: []testRecord{
				{1, 0, 0, 6, []byte("Mac-Name")},
				{3, 1, 0x0411, 6, utf16BE("Japanese-Name")},
				{3, 1, 0x0409, 6, utf16BE("English-Name")},
				{3, 1, 0x0409, 4, utf16BE("Full Name")},
			},
			want: "English-Name",
		},
		{
			recs: []testRecord{
				{1, 0, 0, 6, []byte("Mac-Name")},
				{3, 1, 0x0411, 6, utf16BE("Japanese-Name")},
			},
			want: "Japanese-Name",
		},
		{
			recs: []testRecord{
				{0, 3, 0, 6, utf16BE("Unicode-Name")},
				{1, 0, 0, 6, []byte("Caf\x8e")},
			},
			want: "Café",
		},
		{
			recs: []testRecord{
				{0, 3, 0, 6, utf16BE("Unicode-Name")},
				{3, 1, 0x0409, 1, utf16BE("Family")},
			},
			want: "Unicode-Name",
		},
		{
			recs: []testRecord{
				{3, 0, 0x0409, 6, utf16BE("Symbol")},
			},
			want: "Symbol",
		},
		{
			recs: []testRecord{
				{1, 0, 0, 6, []byte("Mac-Symbol")},
				{3, 0, 0x0409, 6, utf16BE("Win-Symbol")},
			},
			want: "Win-Symbol",
		},
		{
			recs: []testRecord{
				{3, 0, 0x0409, 6, utf16BE("Win-Symbol")},
				{3, 1, 0x0411, 6, utf16BE("Win-Unicode")},
			},
			want: "Win-Unicode",
		},
	}
	for i, test := range cases {
		got, err := PostScriptName(makeTable(test.recs))
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if got != test.want {
			t.Errorf("%d: expected %q, got %q", i, test.want, got)
		}
	}
}

func TestMakefontName(t *testing.T) {
	for _, mac := range []bool{false, true} {
		m := makefont.DefaultMetrics()
		m.PostScriptName = "Test-Regular"
		m.MacName = mac
		got, err := PostScriptName(makefont.Name(m))
		if err != nil {
			t.Fatal(err)
		}
		if got != "Test-Regular" {
			t.Errorf("mac=%t: wrong name %q", mac, got)
		}
	}
}

func TestMalformed(t *testing.T) {
	good := makeTable([]testRecord{{3, 1, 0x0409, 6, utf16BE("Name")}})

	_, err := PostScriptName(good[:len(good)-2])
	if !font.IsInvalid(err) {
		t.Errorf("truncated string: expected an invalid font error, got %v", err)
	}

	_, err = PostScriptName(makeTable([]testRecord{{3, 1, 0x0409, 1, utf16BE("Name")}}))
	if !font.IsInvalid(err) {
		t.Errorf("no PostScript name: expected an invalid font error, got %v", err)
	}

	bad := append([]byte{}, good...)
	bad[1] = 2
	_, err = PostScriptName(bad)
	if !font.IsUnsupported(err) {
		t.Errorf("format 2: expected an unsupported error, got %v", err)
	}
}
