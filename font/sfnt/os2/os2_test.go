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
package os2

import (
	"testing"

	"seehuhn.de/go/postscript/funit"

	"github.com/DavidFangWJ/jdvpdf/font"
	"github.com/DavidFangWJ/jdvpdf/internal/makefont"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		version   int
		capHeight funit.Int16
	}{
		{0, 750},
		{1, 750},
		{2, 680},
		{5, 680},
	}
	for _, test := range cases {
		m := makefont.DefaultMetrics()
		m.Ascent = 750
		m.Descent = -250
		m.CapHeight = 680
		m.OS2Version = test.version

		info, err := Decode(makefont.OS2(m))
		if err != nil {
			t.Errorf("version %d: %v", test.version, err)
			continue
		}
		want := Info{Ascent: 750, Descent: -250, CapHeight: test.capHeight}
		if *info != want {
			t.Errorf("version %d: expected %v, got %v", test.version, want, *info)
		}
	}
}

func TestDecodeHhea(t *testing.T) {
	m := makefont.DefaultMetrics()
	m.Ascent = 900
	m.Descent = -300
	info, err := DecodeHhea(makefont.Hhea(m, 1))
	if err != nil {
		t.Fatal(err)
	}
	want := Info{Ascent: 900, Descent: -300, CapHeight: 900}
	if *info != want {
		t.Errorf("expected %v, got %v", want, *info)
	}
}

func TestShort(t *testing.T) {
	if _, err := Decode(make([]byte, 70)); !font.IsInvalid(err) {
		t.Errorf("expected an invalid font error, got %v", err)
	}
	if _, err := DecodeHhea(make([]byte, 6)); !font.IsInvalid(err) {
		t.Errorf("expected an invalid font error, got %v", err)
	}
}
