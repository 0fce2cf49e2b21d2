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

package parser

import (
	"bytes"
	"testing"

	"github.com/DavidFangWJ/jdvpdf/font"
)

func TestPos(t *testing.T) {
	buf := bytes.NewReader([]byte{'0', '1', '2', '3', '4', '5', '6', '7'})
	p := New("test", buf)

	pos := p.Pos()
	if pos != 0 {
		t.Errorf("wrong position, expected 0 but got %d", pos)
	}

	_, err := p.ReadUInt16()
	if err != nil {
		t.Fatal(err)
	}

	pos = p.Pos()
	if pos != 2 {
		t.Errorf("wrong position, expected 2 but got %d", pos)
	}

	err = p.SeekPos(5)
	if err != nil {
		t.Fatal(err)
	}
	if p.Pos() != 5 {
		t.Errorf("wrong position, expected 5 but got %d", p.Pos())
	}
}

func TestReadUInt(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a}
	p := New("test", bytes.NewReader(data))

	for size := 1; size <= 4; size++ {
		err := p.SeekPos(0)
		if err != nil {
			t.Fatal(err)
		}
		val, err := p.ReadUInt(size)
		if err != nil {
			t.Fatal(err)
		}
		var expected uint32
		for i := 0; i < size; i++ {
			expected = expected<<8 | uint32(data[i])
		}
		if val != expected {
			t.Errorf("size %d: expected 0x%x, got 0x%x", size, expected, val)
		}
	}

	err := p.SeekPos(3)
	if err != nil {
		t.Fatal(err)
	}
	val, err := p.ReadUInt24()
	if err != nil {
		t.Fatal(err)
	}
	if val != 0x040506 {
		t.Errorf("wrong 24 bit value 0x%x", val)
	}

	_, err = p.ReadUInt(5)
	if err == nil {
		t.Error("invalid size not detected")
	}
}

func TestShortRead(t *testing.T) {
	p := New("short", bytes.NewReader([]byte{1, 2, 3}))
	err := p.SeekPos(2)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.ReadUInt16()
	if !font.IsInvalid(err) {
		t.Errorf("expected InvalidFontError, got %v", err)
	}
}

func TestBlobAndCopy(t *testing.T) {
	data := make([]byte, 3000)
	for i := range data {
		data[i] = byte(i * 7)
	}
	p := New("blob", bytes.NewReader(data))

	err := p.SeekPos(10)
	if err != nil {
		t.Fatal(err)
	}
	blob, err := p.ReadBlob(2500)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(blob, data[10:2510]) {
		t.Error("ReadBlob returned wrong data")
	}

	out := &bytes.Buffer{}
	reg := Region{Start: 100, Length: 2900}
	err = p.CopyRegion(out, reg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), data[reg.Start:reg.End()]) {
		t.Error("CopyRegion returned wrong data")
	}
}

func TestPutUInt(t *testing.T) {
	var out []byte
	for size := 1; size <= 4; size++ {
		buf := make([]byte, size)
		PutUInt(buf, 0x01020304, size)
		out = append(out, buf...)
	}
	expected := []byte{4, 3, 4, 2, 3, 4, 1, 2, 3, 4}
	if !bytes.Equal(out, expected) {
		t.Errorf("wrong output % x", out)
	}
}
