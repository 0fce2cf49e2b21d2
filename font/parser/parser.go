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

// Package parser implements buffered reading of big-endian binary data,
// together with the matching write helpers.
package parser

import (
	"fmt"
	"io"

	"github.com/DavidFangWJ/jdvpdf/font"
)

const bufferSize = 1024

// Parser allows to read data from a font file.
type Parser struct {
	r    io.ReadSeeker
	name string

	buf       []byte
	from      int64
	pos, used int
	lastRead  int64
}

// Region is a contiguous byte range of the input.
type Region struct {
	Start  int64
	Length int64
}

// End returns the position one past the last byte of the region.
func (r Region) End() int64 {
	return r.Start + r.Length
}

// New allocates a new Parser.  The name is used in error messages.
func New(name string, r io.ReadSeeker) *Parser {
	return &Parser{
		r:    r,
		name: name,
		from: -1,
	}
}

// SetName changes the name used in error messages.
func (p *Parser) SetName(name string) {
	p.name = name
}

// Pos returns the current reading position.
func (p *Parser) Pos() int64 {
	if p.from < 0 {
		return 0
	}
	return p.from + int64(p.pos)
}

// SeekPos changes the reading position.
func (p *Parser) SeekPos(filePos int64) error {
	if filePos < 0 {
		return p.Error("invalid seek position %d", filePos)
	}
	if p.from >= 0 && filePos >= p.from && filePos <= p.from+int64(p.used) {
		p.pos = int(filePos - p.from)
		return nil
	}
	_, err := p.r.Seek(filePos, io.SeekStart)
	if err != nil {
		return &font.IOError{Op: "seek", Err: err}
	}
	p.from = filePos
	p.pos = 0
	p.used = 0
	return nil
}

// ReadBytes reads n bytes from the file, starting at the current position.
// The returned slice points into the internal buffer, slice contents must
// not be modified by the caller and are only valid until the next call to
// one of the parser methods.
//
// The read size n must be <= 1024.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	if p.from < 0 {
		err := p.SeekPos(0)
		if err != nil {
			return nil, err
		}
	}
	p.lastRead = p.from + int64(p.pos)
	if n < 0 {
		n = 0
	} else if n > bufferSize {
		panic("buffer size exceeded")
	}

	for p.pos+n > p.used {
		if len(p.buf) == 0 {
			p.buf = make([]byte, bufferSize)
		}
		k := copy(p.buf, p.buf[p.pos:p.used])
		p.from += int64(p.pos)
		p.pos = 0
		p.used = k

		l, err := p.r.Read(p.buf[p.used:])
		p.used += l
		if err == io.EOF {
			if l > 0 {
				err = nil
			} else {
				return nil, p.Error("unexpected end of data")
			}
		}
		if err != nil {
			return nil, &font.IOError{Op: "read " + p.name, Err: err}
		}
	}

	res := p.buf[p.pos : p.pos+n]
	p.pos += n
	return res, nil
}

// ReadBlob reads n bytes into a newly allocated slice.  Unlike ReadBytes,
// there is no limit on n.
func (p *Parser) ReadBlob(n int) ([]byte, error) {
	if n < 0 {
		return nil, p.Error("negative length %d", n)
	}
	res := make([]byte, n)
	done := 0
	for done < n {
		k := min(n-done, bufferSize)
		chunk, err := p.ReadBytes(k)
		if err != nil {
			return nil, err
		}
		copy(res[done:], chunk)
		done += k
	}
	return res, nil
}

// ReadUInt8 reads a single uint8 value from the current position.
func (p *Parser) ReadUInt8() (uint8, error) {
	buf, err := p.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUInt16 reads a single uint16 value from the current position.
func (p *Parser) ReadUInt16() (uint16, error) {
	buf, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadUInt24 reads a three-byte unsigned value from the current position.
func (p *Parser) ReadUInt24() (uint32, error) {
	buf, err := p.ReadBytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2]), nil
}

// ReadUInt32 reads a single uint32 value from the current position.
func (p *Parser) ReadUInt32() (uint32, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadUInt reads an unsigned big-endian value of the given size in bytes.
// Valid sizes are 1 to 4.
func (p *Parser) ReadUInt(size int) (uint32, error) {
	if size < 1 || size > 4 {
		return 0, p.Error("invalid integer size %d", size)
	}
	buf, err := p.ReadBytes(size)
	if err != nil {
		return 0, err
	}
	var res uint32
	for _, b := range buf {
		res = res<<8 | uint32(b)
	}
	return res, nil
}

// CopyRegion copies the bytes of the given region to w.
func (p *Parser) CopyRegion(w io.Writer, r Region) error {
	err := p.SeekPos(r.Start)
	if err != nil {
		return err
	}
	remaining := r.Length
	for remaining > 0 {
		k := int(min(remaining, bufferSize))
		buf, err := p.ReadBytes(k)
		if err != nil {
			return err
		}
		_, err = w.Write(buf)
		if err != nil {
			return &font.IOError{Op: "write", Err: err}
		}
		remaining -= int64(k)
	}
	return nil
}

// Error returns an InvalidFontError which records the parser name and
// the position of the last read.
func (p *Parser) Error(format string, a ...interface{}) error {
	name := p.name
	if name == "" {
		name = "header"
	}
	return &font.InvalidFontError{
		SubSystem: fmt.Sprintf("%s%+d", name, p.lastRead),
		Reason:    fmt.Sprintf(format, a...),
	}
}

// PutUInt stores val as a big-endian unsigned integer of the given size
// in buf.  The slice must have length at least size.
func PutUInt(buf []byte, val uint32, size int) {
	for i := size - 1; i >= 0; i-- {
		buf[i] = byte(val)
		val >>= 8
	}
}
