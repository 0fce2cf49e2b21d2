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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/DavidFangWJ/jdvpdf/font"
)

func TestDecodeFloat(t *testing.T) {
	cases := []struct {
		in  []byte
		out float64
	}{
		{[]byte{0xe2, 0xa2, 0x5f}, -2.25},
		{[]byte{0x0a, 0x14, 0x05, 0x41, 0xc3, 0xff}, 0.140541e-3},
		{[]byte{0x1f}, 1},
	}
	for _, test := range cases {
		buf, x, err := decodeFloat(test.in)
		if err != nil {
			t.Error(err)
			continue
		}
		if len(buf) != 0 {
			t.Error("not all input used")
		}
		if math.Abs(x-test.out) > 1e-6 {
			t.Errorf("wrong result: %g - %g = %g", x, test.out, x-test.out)
		}
	}
}

func TestIntegerWidth(t *testing.T) {
	cases := []struct {
		val   int32
		width int
	}{
		{0, 1},
		{-107, 1},
		{107, 1},
		{108, 2},
		{1131, 2},
		{-1131, 2},
		{-108, 2},
		{1132, 3},
		{-1132, 3},
		{32767, 3},
		{-32768, 3},
		{32768, 5},
		{-32769, 5},
		{math.MaxInt32, 5},
		{math.MinInt32, 5},
	}
	for _, test := range cases {
		d := Dict{Integer(test.val)}
		buf := d.Encode()
		if len(buf) != test.width || d.CalcSize() != test.width {
			t.Errorf("%d: width %d/%d, expected %d",
				test.val, len(buf), d.CalcSize(), test.width)
		}
		out, err := DecodeDict(buf)
		if err != nil {
			t.Errorf("%d: %v", test.val, err)
			continue
		}
		if d := cmp.Diff(Dict{Integer(test.val)}, out); d != "" {
			t.Errorf("%d: round trip failed (-want +got):\n%s", test.val, d)
		}
	}
}

func TestDictRoundTrip(t *testing.T) {
	cases := []Dict{
		{},
		{Integer(391), Integer(392), Integer(0), opROS, Integer(1000), opCharStrings},
		{Real{0xe2, 0xa2, 0x5f}, Integer(-1), Real{0x1f}, Integer(5), opFontBBox},
		{Integer(20), Integer(123456), opPrivate, Operator(0x0C07), Operator(21)},
		{Real{0x0a, 0x14, 0x05, 0x41, 0xc3, 0xff}, Operator(0x0CFF)},
	}
	for i, d := range cases {
		buf := d.Encode()
		if len(buf) != d.CalcSize() {
			t.Errorf("%d: CalcSize %d, encoded %d bytes", i, d.CalcSize(), len(buf))
		}
		out, err := DecodeDict(buf)
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if len(d) == 0 && len(out) == 0 {
			continue
		}
		if diff := cmp.Diff(d, out); diff != "" {
			t.Errorf("%d: round trip failed (-want +got):\n%s", i, diff)
		}
	}
}

func TestRealVerbatim(t *testing.T) {
	// "1.0" has a shorter encoding "1", but the bytes must survive unchanged
	in := []byte{30, 0x1a, 0x0f, 5}
	d, err := DecodeDict(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(d) != 2 {
		t.Fatalf("wrong number of items: %d", len(d))
	}
	r, ok := d[0].(Real)
	if !ok {
		t.Fatalf("expected Real, got %T", d[0])
	}
	x, err := r.Value()
	if err != nil {
		t.Fatal(err)
	}
	if x != 1 {
		t.Errorf("wrong value %g", x)
	}
	if diff := cmp.Diff(in, d.Encode()); diff != "" {
		t.Errorf("real not preserved (-want +got):\n%s", diff)
	}
}

func TestCorruptDict(t *testing.T) {
	cases := [][]byte{
		{22},
		{27},
		{31},
		{255},
		{28, 1},
		{29, 1, 2, 3},
		{30, 0x12, 0x34},
		{12},
		{247},
	}
	for _, in := range cases {
		_, err := DecodeDict(in)
		if !font.IsInvalid(err) {
			t.Errorf("% x: expected InvalidFontError, got %v", in, err)
		}
	}
}

func TestOperands(t *testing.T) {
	d := Dict{
		Integer(1), Integer(2), Integer(3), Integer(4), opFontBBox,
		Integer(45), Integer(1200), opPrivate,
		Integer(800), opCharStrings,
	}
	if k := d.OperandIndex(opPrivate); k != 6 {
		t.Errorf("Private offset at %d, expected 6", k)
	}
	if k := d.OperandIndex(opCharStrings); k != 8 {
		t.Errorf("CharStrings offset at %d, expected 8", k)
	}
	if k := d.OperandIndex(opEncoding); k != -1 {
		t.Errorf("missing operator found at %d", k)
	}
	if diff := cmp.Diff([]DictItem{Integer(45), Integer(1200)}, d.Operands(opPrivate)); diff != "" {
		t.Errorf("wrong Private operands (-want +got):\n%s", diff)
	}
	if len(d.Operands(opFontBBox)) != 4 {
		t.Error("wrong FontBBox operands")
	}
}
