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

package sfnt

import "encoding/binary"

// ChecksumMagic is the value the checksum of a complete font file must have.
const ChecksumMagic = 0xB1B0AFBA

// check is an io.Writer which computes an sfnt checksum of the data
// written to it.
type check struct {
	sum  uint32
	buf  [4]byte
	used int
}

func (s *check) Write(p []byte) (int, error) {
	n := 0
	for len(p) > 0 {
		k := copy(s.buf[s.used:], p)
		p = p[k:]
		n += k
		s.used += k

		if s.used == 4 {
			s.sum += binary.BigEndian.Uint32(s.buf[:])
			s.used = 0
		}
	}
	return n, nil
}

// Sum returns the checksum, padding the data with zeros to a multiple
// of four bytes.
func (s *check) Sum() uint32 {
	if s.used != 0 {
		s.Write([]byte{0, 0, 0}[:4-s.used])
	}
	return s.sum
}

// Checksum computes the sfnt checksum of data: the sum of all big-endian
// 32 bit words, modulo 2^32.  The data is padded with zeros to a
// multiple of four bytes.
func Checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var last [4]byte
		copy(last[:], data)
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}
