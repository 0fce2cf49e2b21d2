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
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/DavidFangWJ/jdvpdf/font"
)

// DictItem is one entry of a DICT.  The concrete types are Integer,
// Real and Operator.
type DictItem interface {
	encodedSize() int
	appendTo(buf []byte) []byte
}

// Integer is an integer DICT operand.
type Integer int32

// Real is a real-number DICT operand, stored as the nibble bytes
// following the 0x1e prefix, up to and including the byte which
// holds the 0xf terminator.
type Real []byte

// Operator is a DICT operator.  Two-byte operators are stored as
// 0x0C00 plus the second byte.
type Operator uint16

// Dict is a decoded DICT.  Operands precede the operator they belong to.
type Dict []DictItem

func (x Integer) encodedSize() int {
	switch {
	case x >= -107 && x <= 107:
		return 1
	case x >= 108 && x <= 1131, x >= -1131 && x <= -108:
		return 2
	case x >= math.MinInt16 && x <= math.MaxInt16:
		return 3
	default:
		return 5
	}
}

func (x Integer) appendTo(buf []byte) []byte {
	switch {
	case x >= -107 && x <= 107:
		return append(buf, byte(x+139))
	case x >= 108 && x <= 1131:
		x -= 108
		return append(buf, byte(x>>8)+247, byte(x))
	case x >= -1131 && x <= -108:
		x = -x - 108
		return append(buf, byte(x>>8)+251, byte(x))
	case x >= math.MinInt16 && x <= math.MaxInt16:
		return append(buf, 28, byte(x>>8), byte(x))
	default:
		return append(buf, 29, byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
	}
}

func (x Real) encodedSize() int {
	return 1 + len(x)
}

func (x Real) appendTo(buf []byte) []byte {
	buf = append(buf, 30)
	return append(buf, x...)
}

// Value returns the numeric value of the real number.
func (x Real) Value() (float64, error) {
	_, val, err := decodeFloat(x)
	return val, err
}

func (op Operator) encodedSize() int {
	if op >= 0x100 {
		return 2
	}
	return 1
}

func (op Operator) appendTo(buf []byte) []byte {
	if op >= 0x100 {
		return append(buf, 12, byte(op))
	}
	return append(buf, byte(op))
}

func (op Operator) String() string {
	if op >= 0x100 {
		return fmt.Sprintf("12 %d", op&0xFF)
	}
	return strconv.Itoa(int(op))
}

var errCorruptDict = &font.InvalidFontError{
	SubSystem: "cff",
	Reason:    "corrupt DICT",
}

// DecodeDict decodes the DICT stored in buf.
func DecodeDict(buf []byte) (Dict, error) {
	var res Dict
	for len(buf) > 0 {
		b0 := buf[0]
		switch {
		case b0 == 12:
			if len(buf) < 2 {
				return nil, errCorruptDict
			}
			res = append(res, Operator(0x0C00|uint16(buf[1])))
			buf = buf[2:]
		case b0 <= 21:
			res = append(res, Operator(b0))
			buf = buf[1:]
		case b0 <= 27: // values 22–27, 31, and 255 are reserved
			return nil, errCorruptDict
		case b0 == 28:
			if len(buf) < 3 {
				return nil, errCorruptDict
			}
			res = append(res, Integer(int16(uint16(buf[1])<<8+uint16(buf[2]))))
			buf = buf[3:]
		case b0 == 29:
			if len(buf) < 5 {
				return nil, errCorruptDict
			}
			res = append(res,
				Integer(int32(uint32(buf[1])<<24+uint32(buf[2])<<16+uint32(buf[3])<<8+uint32(buf[4]))))
			buf = buf[5:]
		case b0 == 30:
			n := realLength(buf[1:])
			if n < 0 {
				return nil, errCorruptDict
			}
			res = append(res, Real(append([]byte{}, buf[1:1+n]...)))
			buf = buf[1+n:]
		case b0 == 31:
			return nil, errCorruptDict
		case b0 <= 246:
			res = append(res, Integer(int32(b0)-139))
			buf = buf[1:]
		case b0 <= 250:
			if len(buf) < 2 {
				return nil, errCorruptDict
			}
			res = append(res, Integer(int32(b0)*256+int32(buf[1])+(108-247*256)))
			buf = buf[2:]
		case b0 <= 254:
			if len(buf) < 2 {
				return nil, errCorruptDict
			}
			res = append(res, Integer(-int32(b0)*256-int32(buf[1])-(108-251*256)))
			buf = buf[2:]
		default:
			return nil, errCorruptDict
		}
	}
	return res, nil
}

// realLength returns the number of nibble bytes of the real number at
// the start of buf, or -1 if there is no terminator.
func realLength(buf []byte) int {
	for i, b := range buf {
		if b>>4 == 0xf || b&0xf == 0xf {
			return i + 1
		}
	}
	return -1
}

// decodes a float (without the leading 0x1e)
func decodeFloat(buf []byte) ([]byte, float64, error) {
	var s []byte

	first := true
	var next byte
	for {
		var nibble byte
		if first {
			if len(buf) == 0 {
				return nil, 0, errors.New("incomplete float")
			}
			next, buf = buf[0], buf[1:]
			nibble = next >> 4
			next = next & 15
			first = false
		} else {
			nibble = next
			first = true
		}

		switch nibble {
		case 0x0a:
			s = append(s, '.')
		case 0xb:
			s = append(s, 'e')
		case 0xc:
			s = append(s, 'e', '-')
		case 0xd: // reserved
			return nil, 0, errors.New("unsupported float format")
		case 0xe:
			s = append(s, '-')
		case 0xf:
			x, err := strconv.ParseFloat(string(s), 64)
			return buf, x, err
		default:
			s = append(s, '0'+nibble)
		}
	}
}

// CalcSize returns the number of bytes needed to encode the DICT.
func (d Dict) CalcSize() int {
	total := 0
	for _, item := range d {
		total += item.encodedSize()
	}
	return total
}

// Encode returns the binary representation of the DICT.
func (d Dict) Encode() []byte {
	buf := make([]byte, 0, d.CalcSize())
	for _, item := range d {
		buf = item.appendTo(buf)
	}
	return buf
}

// Find returns the position of op in d, or -1 if the operator is
// not present.
func (d Dict) Find(op Operator) int {
	for i, item := range d {
		if x, ok := item.(Operator); ok && x == op {
			return i
		}
	}
	return -1
}

// Operands returns the operands of op, or nil if op is not present.
func (d Dict) Operands(op Operator) []DictItem {
	k := d.Find(op)
	if k < 0 {
		return nil
	}
	start := k
	for start > 0 {
		if _, isOp := d[start-1].(Operator); isOp {
			break
		}
		start--
	}
	return d[start:k]
}

// OperandIndex returns the position of the last operand before op,
// or -1 if op is not present or has no integer operand there.
// For the Private operator this is the offset, not the size.
func (d Dict) OperandIndex(op Operator) int {
	k := d.Find(op)
	if k < 1 {
		return -1
	}
	if _, ok := d[k-1].(Integer); !ok {
		return -1
	}
	return k - 1
}

// Copy returns an independent copy of d.
func (d Dict) Copy() Dict {
	return append(Dict{}, d...)
}

const (
	opFontBBox    Operator = 0x0005
	opCharset     Operator = 0x000F
	opEncoding    Operator = 0x0010
	opCharStrings Operator = 0x0011
	opPrivate     Operator = 0x0012
	opROS         Operator = 0x0C1E
	opFDArray     Operator = 0x0C24
	opFDSelect    Operator = 0x0C25
)
