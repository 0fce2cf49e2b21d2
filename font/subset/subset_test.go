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
package subset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt/glyph"

	"github.com/DavidFangWJ/jdvpdf/font"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, out []glyph.ID
	}{
		{nil, []glyph.ID{0}},
		{[]glyph.ID{0}, []glyph.ID{0}},
		{[]glyph.ID{5, 3, 5, 1}, []glyph.ID{0, 1, 3, 5}},
		{[]glyph.ID{7, 0, 7, 0}, []glyph.ID{0, 7}},
	}
	for i, test := range cases {
		in := slices.Clone(test.in)
		got := Normalize(test.in)
		if d := cmp.Diff(test.out, got); d != "" {
			t.Errorf("%d: (-want +got):\n%s", i, d)
		}
		if d := cmp.Diff(in, test.in); d != "" {
			t.Errorf("%d: input modified", i)
		}
	}
}

func TestCheck(t *testing.T) {
	if err := Check([]glyph.ID{0, 2, 9}, 10); err != nil {
		t.Error(err)
	}
	if err := Check(nil, 0); err != nil {
		t.Error(err)
	}

	err := Check([]glyph.ID{0, 10}, 10)
	var rangeErr *font.RangeError
	if !errors.As(err, &rangeErr) || rangeErr.Index != 10 {
		t.Errorf("expected a RangeError, got %v", err)
	}

	for _, keep := range [][]glyph.ID{{0, 3, 3}, {4, 2}} {
		if err := Check(keep, 10); err != font.ErrUnsorted {
			t.Errorf("%v: expected ErrUnsorted, got %v", keep, err)
		}
	}
}

func TestTag(t *testing.T) {
	if tag := Tag(nil, 0); tag != "AAAAAA" {
		t.Errorf("wrong tag %q", tag)
	}
	if tag := Tag([]glyph.ID{0}, 1); tag != "LAAAAA" {
		t.Errorf("wrong tag %q", tag)
	}

	keep := []glyph.ID{0, 3, 17, 400}
	tag := Tag(keep, 500)
	if !IsTag(tag) {
		t.Errorf("invalid tag %q", tag)
	}
	if Tag(keep, 500) != tag {
		t.Error("tag is not deterministic")
	}
	if Tag(keep, 501) == tag || Tag(keep[:3], 500) == tag {
		t.Error("different subsets get the same tag")
	}
	if name := FontName(tag, "Foo-Bold"); name != tag+"+Foo-Bold" {
		t.Errorf("wrong font name %q", name)
	}
}

func TestIsTag(t *testing.T) {
	for _, s := range []string{"", "ABCDE", "ABCDEFG", "ABCdEF", "ABC+EF"} {
		if IsTag(s) {
			t.Errorf("%q accepted", s)
		}
	}
	if !IsTag("ZZZZZZ") {
		t.Error("ZZZZZZ rejected")
	}
}

func TestParseList(t *testing.T) {
	cases := []struct {
		in  string
		out []glyph.ID
	}{
		{"", []glyph.ID{0}},
		{"0,3,5-9", []glyph.ID{0, 3, 5, 6, 7, 8, 9}},
		{" 12 , 4-4, 3 ", []glyph.ID{0, 3, 4, 12}},
		{"65535", []glyph.ID{0, 65535}},
	}
	for i, test := range cases {
		got, err := ParseList(test.in)
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if d := cmp.Diff(test.out, got); d != "" {
			t.Errorf("%d: (-want +got):\n%s", i, d)
		}
	}

	for _, in := range []string{"x", "3-", "9-5", "65536", "-1"} {
		if _, err := ParseList(in); err == nil {
			t.Errorf("%q accepted", in)
		}
	}
}
