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
	"cmp"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt/glyph"

	"github.com/DavidFangWJ/jdvpdf/font"
	"github.com/DavidFangWJ/jdvpdf/font/parser"
)

// MaxPatchIterations bounds the number of times the Top DICT is re-encoded
// while the offsets it contains settle.
const MaxPatchIterations = 4

// segment is a part of the CFF data which is replaced in the output.
// Positions are relative to the start of the CFF data.
type segment struct {
	start, end int64
	newSize    int64
	body       io.WriterTo
}

func (s *segment) delta() int64 {
	return s.newSize - (s.end - s.start)
}

// relocation maps positions in the input to positions in the output.
type relocation []*segment

func (r relocation) newPos(old int64) int64 {
	res := old
	for _, s := range r {
		if s.start < old {
			res += s.delta()
		}
	}
	return res
}

// offsetRef records a DICT operand which holds an offset.
type offsetRef struct {
	item int
	orig int64
}

// WriteSubset writes a subset of the CFF font found at start..start+length
// in r to w.  The glyphs listed in keep, which must be strictly ascending,
// are copied; all other glyphs are replaced by empty charstrings.
// If fontName is non-empty, it replaces the font name.
//
// Everything except the header, the Name INDEX, the Top DICT INDEX,
// the CharStrings INDEX and, for CID-keyed fonts, the FDArray INDEX is
// copied verbatim.  Offsets pointing into the copied data are patched.
//
// The function returns the number of bytes written.
func WriteSubset(w io.Writer, r io.ReadSeeker, start, length int64, keep []glyph.ID, fontName string) (int64, error) {
	p := parser.New("CFF", r)
	err := p.SeekPos(start)
	if err != nil {
		return 0, err
	}
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	header := []byte{buf[0], buf[1], 4, buf[3]}
	hdrSize := int64(buf[2])
	if header[0] != 1 {
		return 0, &font.NotSupportedError{
			SubSystem: "cff",
			Feature:   fmt.Sprintf("CFF version %d.%d", header[0], header[1]),
		}
	}
	if hdrSize < 4 {
		return 0, p.Error("invalid CFF header size %d", hdrSize)
	}

	// Name INDEX
	nameIdx, err := ReadIndexHeader(p, start+hdrSize)
	if err != nil {
		return 0, err
	}
	if nameIdx.Count == 0 {
		return 0, p.Error("empty Name INDEX")
	}
	nameEnd, err := nameIdx.End(p)
	if err != nil {
		return 0, err
	}
	if fontName == "" {
		name, err := nameIdx.ReadObject(p, 0)
		if err != nil {
			return 0, err
		}
		fontName = string(name)
	}
	names := &IndexModel{}
	names.Append(Data(fontName))

	// Top DICT INDEX
	topIdx, err := ReadIndexHeader(p, nameEnd)
	if err != nil {
		return 0, err
	}
	if topIdx.Count != 1 {
		return 0, &font.NotSupportedError{
			SubSystem: "cff",
			Feature:   "CFF font sets",
		}
	}
	topEnd, err := topIdx.End(p)
	if err != nil {
		return 0, err
	}
	topData, err := topIdx.ReadObject(p, 0)
	if err != nil {
		return 0, err
	}
	topDict, err := DecodeDict(topData)
	if err != nil {
		return 0, err
	}

	// CharStrings INDEX
	k := topDict.OperandIndex(opCharStrings)
	if k < 0 {
		return 0, &font.InvalidFontError{
			SubSystem: "cff",
			Reason:    "missing CharStrings",
		}
	}
	csOffset := int64(topDict[k].(Integer))
	if csOffset < topEnd-start || csOffset >= length {
		return 0, p.Error("invalid CharStrings offset %d", csOffset)
	}
	csIdx, err := ReadIndexHeader(p, start+csOffset)
	if err != nil {
		return 0, err
	}
	csEnd, err := csIdx.End(p)
	if err != nil {
		return 0, err
	}
	charStrings, err := subsetCharStrings(p, csIdx, keep)
	if err != nil {
		return 0, err
	}

	headSeg := &segment{start: 0, end: hdrSize, newSize: 4}
	nameSeg := &segment{
		start:   hdrSize,
		end:     nameEnd - start,
		newSize: int64(names.EncodedSize()),
		body:    names,
	}
	topSeg := &segment{
		start:   nameEnd - start,
		end:     topEnd - start,
		newSize: topEnd - nameEnd,
	}
	csSeg := &segment{
		start:   csOffset,
		end:     csEnd - start,
		newSize: int64(charStrings.EncodedSize()),
		body:    charStrings,
	}
	reloc := relocation{headSeg, nameSeg, topSeg, csSeg}

	var fd *fdArray
	var fdSeg *segment
	if k := topDict.OperandIndex(opFDArray); k >= 0 {
		fd, err = readFDArray(p, start, int64(topDict[k].(Integer)))
		if err != nil {
			return 0, err
		}
		fdSeg = &segment{
			start:   fd.start - start,
			end:     fd.end - start,
			newSize: fd.end - fd.start,
		}
		reloc = append(reloc, fdSeg)
	}

	slices.SortFunc(reloc, func(a, b *segment) int {
		return cmp.Compare(a.start, b.start)
	})
	for i := 1; i < len(reloc); i++ {
		if reloc[i].start < reloc[i-1].end {
			return 0, p.Error("overlapping CFF structures")
		}
	}
	if reloc[len(reloc)-1].end > length {
		return 0, p.Error("CFF structures exceed table length")
	}

	refs := topDictRefs(topDict)
	converged := false
	iterations := 0
	for iterations < MaxPatchIterations {
		iterations++
		changed := false

		topIndex := &IndexModel{}
		topIndex.Append(Data(patchDict(topDict, refs, reloc).Encode()))
		if size := int64(topIndex.EncodedSize()); size != topSeg.newSize {
			topSeg.newSize = size
			changed = true
		}
		topSeg.body = topIndex

		if fd != nil {
			fdIndex := fd.patch(reloc)
			if size := int64(fdIndex.EncodedSize()); size != fdSeg.newSize {
				fdSeg.newSize = size
				changed = true
			}
			fdSeg.body = fdIndex
		}

		if !changed {
			converged = true
			break
		}
	}
	if !converged {
		return 0, &font.ConvergenceError{Iterations: iterations}
	}
	tracer().Debugf("cff subset %q: %d of %d glyphs, %d iteration(s)",
		fontName, len(keep), csIdx.Count, iterations)

	// emit everything in input order
	cw := &countingWriter{w: w}
	_, err = cw.Write(header)
	if err != nil {
		return cw.n, err
	}
	pos := hdrSize
	for _, s := range reloc {
		if s == headSeg {
			continue
		}
		if s.start > pos {
			err = p.CopyRegion(cw, parser.Region{Start: start + pos, Length: s.start - pos})
			if err != nil {
				return cw.n, err
			}
		}
		_, err = s.body.WriteTo(cw)
		if err != nil {
			return cw.n, err
		}
		pos = s.end
	}
	if pos < length {
		err = p.CopyRegion(cw, parser.Region{Start: start + pos, Length: length - pos})
		if err != nil {
			return cw.n, err
		}
	}

	return cw.n, nil
}

func subsetCharStrings(p *parser.Parser, csIdx *Index, keep []glyph.ID) (*IndexModel, error) {
	numGlyphs := int(csIdx.Count)
	for i, gid := range keep {
		if int(gid) >= numGlyphs {
			return nil, &font.RangeError{
				SubSystem: "cff",
				What:      "glyph",
				Index:     int(gid),
				Limit:     numGlyphs,
			}
		}
		if i > 0 && gid <= keep[i-1] {
			return nil, font.ErrUnsorted
		}
	}

	model := &IndexModel{}
	pos := 0
	for gid := 0; gid < numGlyphs; gid++ {
		if pos < len(keep) && int(keep[pos]) == gid {
			data, err := csIdx.ReadObject(p, gid)
			if err != nil {
				return nil, err
			}
			model.Append(Data(data))
			pos++
		} else {
			model.AppendEmpty()
		}
	}
	return model, nil
}

// topDictRefs lists the Top DICT operands which hold offsets.
// Predefined charsets and encodings are identified by small
// numbers instead of offsets and are left alone.
func topDictRefs(d Dict) []offsetRef {
	var refs []offsetRef
	for _, op := range []Operator{opCharset, opEncoding, opCharStrings, opPrivate, opFDArray, opFDSelect} {
		k := d.OperandIndex(op)
		if k < 0 {
			continue
		}
		val := int64(d[k].(Integer))
		if op == opCharset && val <= 2 || op == opEncoding && val <= 1 {
			continue
		}
		refs = append(refs, offsetRef{item: k, orig: val})
	}
	return refs
}

func patchDict(d Dict, refs []offsetRef, reloc relocation) Dict {
	res := d.Copy()
	for _, ref := range refs {
		res[ref.item] = Integer(reloc.newPos(ref.orig))
	}
	return res
}

// fdArray holds the Font DICTs of a CID-keyed font.
type fdArray struct {
	start, end int64
	dicts      []Dict
	refs       [][]offsetRef
}

func readFDArray(p *parser.Parser, start, offset int64) (*fdArray, error) {
	idx, err := ReadIndexHeader(p, start+offset)
	if err != nil {
		return nil, err
	}
	end, err := idx.End(p)
	if err != nil {
		return nil, err
	}
	fd := &fdArray{start: start + offset, end: end}
	for i := 0; i < int(idx.Count); i++ {
		data, err := idx.ReadObject(p, i)
		if err != nil {
			return nil, err
		}
		d, err := DecodeDict(data)
		if err != nil {
			return nil, err
		}
		var refs []offsetRef
		if k := d.OperandIndex(opPrivate); k >= 0 {
			refs = append(refs, offsetRef{item: k, orig: int64(d[k].(Integer))})
		}
		fd.dicts = append(fd.dicts, d)
		fd.refs = append(fd.refs, refs)
	}
	return fd, nil
}

func (fd *fdArray) patch(reloc relocation) *IndexModel {
	model := &IndexModel{}
	for i, d := range fd.dicts {
		model.Append(Data(patchDict(d, fd.refs[i], reloc).Encode()))
	}
	return model
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(buf []byte) (int, error) {
	n, err := cw.w.Write(buf)
	cw.n += int64(n)
	if err != nil {
		var ioErr *font.IOError
		if !errors.As(err, &ioErr) {
			err = &font.IOError{Op: "write CFF", Err: err}
		}
		return n, err
	}
	return n, nil
}
