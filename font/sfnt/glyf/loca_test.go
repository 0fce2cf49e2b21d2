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

package glyf

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/DavidFangWJ/jdvpdf/font"
)

func TestLocaRoundTrip(t *testing.T) {
	offs := []uint32{0, 4, 4, 10, 12, 1000, 2*0xFFFF - 2}
	for _, long := range []bool{false, true} {
		data := EncodeLoca(offs, long)
		out, err := DecodeLoca(data, len(offs)-1, long, offs[len(offs)-1])
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(offs, out); d != "" {
			t.Errorf("long=%t: (-want +got):\n%s", long, d)
		}
	}
}

func TestLocaErrors(t *testing.T) {
	// decreasing offsets
	data := EncodeLoca([]uint32{0, 8, 4}, false)
	_, err := DecodeLoca(data, 2, false, 100)
	if !font.IsInvalid(err) {
		t.Errorf("expected InvalidFontError, got %v", err)
	}

	// offset beyond the end of glyf
	data = EncodeLoca([]uint32{0, 8, 12}, true)
	_, err = DecodeLoca(data, 2, true, 10)
	if !font.IsInvalid(err) {
		t.Errorf("expected InvalidFontError, got %v", err)
	}

	// table too short
	_, err = DecodeLoca(data, 5, true, 100)
	if !font.IsInvalid(err) {
		t.Errorf("expected InvalidFontError, got %v", err)
	}
}

// TestSubsetToy checks the glyf and loca data for a four glyph font
// with glyph lengths 4, 0, 6 and 2 where glyphs 0 and 2 are kept.
func TestSubsetToy(t *testing.T) {
	glyphs := [][]byte{
		{1, 2, 3, 4},
		{},
		{5, 6, 7, 8, 9, 10},
		{11, 12},
	}
	keep := map[int]bool{0: true, 2: true}

	var lengths []uint32
	for i, g := range glyphs {
		if keep[i] {
			lengths = append(lengths, uint32(len(g)))
		}
	}
	long := NeedsLongLoca(lengths)
	if long {
		t.Fatal("toy font needs long loca")
	}

	b := NewBuilder(len(glyphs), long)
	for i, g := range glyphs {
		if keep[i] {
			b.Add(g)
		} else {
			b.Skip()
		}
	}

	if d := cmp.Diff([]uint32{0, 4, 4, 10, 10}, b.Offsets); d != "" {
		t.Errorf("wrong loca (-want +got):\n%s", d)
	}
	expected := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if !bytes.Equal(b.Data, expected) {
		t.Errorf("wrong glyf data % x", b.Data)
	}
	if d := cmp.Diff([]byte{0, 0, 0, 2, 0, 2, 0, 5, 0, 5}, b.Loca()); d != "" {
		t.Errorf("wrong loca encoding (-want +got):\n%s", d)
	}
}

func TestOddPadding(t *testing.T) {
	b := NewBuilder(3, false)
	b.Add([]byte{1, 2, 3})
	b.Skip()
	b.Add([]byte{4})
	if d := cmp.Diff([]uint32{0, 4, 4, 6}, b.Offsets); d != "" {
		t.Errorf("wrong short offsets (-want +got):\n%s", d)
	}

	b = NewBuilder(3, true)
	b.Add([]byte{1, 2, 3})
	b.Skip()
	b.Add([]byte{4})
	if d := cmp.Diff([]uint32{0, 3, 3, 4}, b.Offsets); d != "" {
		t.Errorf("wrong long offsets (-want +got):\n%s", d)
	}
}

func TestNeedsLongLoca(t *testing.T) {
	cases := []struct {
		lengths []uint32
		long    bool
	}{
		{nil, false},
		{[]uint32{MaxShortLength}, false},
		{[]uint32{MaxShortLength - 1}, false},
		{[]uint32{MaxShortLength + 1}, true},
		{[]uint32{0xFFFF, 0xFFFF}, true}, // odd lengths are padded
		{[]uint32{0xFFFE, 0xFFFF}, false},
	}
	for _, test := range cases {
		if got := NeedsLongLoca(test.lengths); got != test.long {
			t.Errorf("%v: got %t, expected %t", test.lengths, got, test.long)
		}
	}
}
