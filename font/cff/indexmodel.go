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
	"bufio"
	"errors"
	"io"

	"github.com/DavidFangWJ/jdvpdf/font/parser"
)

// ObjectNode is one entry of an IndexModel.
// It is either Data or EmptyRun.
type ObjectNode interface {
	count() int
	size() int
}

// Data is a single INDEX object.
type Data []byte

func (Data) count() int  { return 1 }
func (d Data) size() int { return len(d) }

// EmptyRun is a run of zero-length objects.
type EmptyRun int

func (e EmptyRun) count() int { return int(e) }
func (EmptyRun) size() int    { return 0 }

// IndexModel collects the objects of an INDEX before it is written.
type IndexModel struct {
	Nodes []ObjectNode

	n     int
	total int
}

var (
	errIndexCount = errors.New("cff: too many items for INDEX")
	errIndexSize  = errors.New("cff: too much data for INDEX")
)

// Append adds one object to the INDEX.
func (m *IndexModel) Append(d Data) {
	m.Nodes = append(m.Nodes, d)
	m.n++
	m.total += len(d)
}

// AppendEmpty adds one zero-length object to the INDEX.
// Consecutive empty objects share a single EmptyRun node.
func (m *IndexModel) AppendEmpty() {
	m.n++
	if k := len(m.Nodes); k > 0 {
		if run, ok := m.Nodes[k-1].(EmptyRun); ok {
			m.Nodes[k-1] = run + 1
			return
		}
	}
	m.Nodes = append(m.Nodes, EmptyRun(1))
}

// Count returns the number of objects in the INDEX.
func (m *IndexModel) Count() int {
	return m.n
}

// OffSize returns the minimal number of bytes needed to store
// the INDEX offset maxOffset.
func OffSize(maxOffset uint32) int {
	offSize := 1
	for offSize < 4 && uint64(maxOffset) >= 1<<(8*offSize) {
		offSize++
	}
	return offSize
}

// EncodedSize returns the number of bytes WriteTo will write.
func (m *IndexModel) EncodedSize() int {
	if m.n == 0 {
		return 2
	}
	offSize := OffSize(uint32(m.total + 1))
	return 3 + (m.n+1)*offSize + m.total
}

// WriteTo writes the INDEX to w.
func (m *IndexModel) WriteTo(w io.Writer) (int64, error) {
	if m.n > 0xFFFF {
		return 0, errIndexCount
	}
	if uint64(m.total)+1 > 0xFFFFFFFF {
		return 0, errIndexSize
	}
	cw := &countingWriter{w: w}
	if m.n == 0 {
		_, err := cw.Write([]byte{0, 0})
		return cw.n, err
	}
	offSize := OffSize(uint32(m.total + 1))

	out := bufio.NewWriter(cw)
	_, err := out.Write([]byte{byte(m.n >> 8), byte(m.n), byte(offSize)})
	if err != nil {
		return cw.n, err
	}

	var buf [4]byte
	putOffset := func(pos uint32) error {
		parser.PutUInt(buf[:offSize], pos, offSize)
		_, err := out.Write(buf[:offSize])
		return err
	}

	pos := uint32(1)
	if err := putOffset(pos); err != nil {
		return cw.n, err
	}
	for _, node := range m.Nodes {
		switch node := node.(type) {
		case Data:
			pos += uint32(len(node))
			if err := putOffset(pos); err != nil {
				return cw.n, err
			}
		case EmptyRun:
			for i := 0; i < int(node); i++ {
				if err := putOffset(pos); err != nil {
					return cw.n, err
				}
			}
		}
	}

	for _, node := range m.Nodes {
		if d, ok := node.(Data); ok {
			if _, err := out.Write(d); err != nil {
				return cw.n, err
			}
		}
	}

	err = out.Flush()
	return cw.n, err
}
