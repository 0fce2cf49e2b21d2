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
	"io"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/postscript/cid"

	"github.com/DavidFangWJ/jdvpdf/font/parser"
)

// Orderings lists the character collections known to the ROS code.
// The position in the list is the high byte of the code.
var Orderings = []string{"CNS1", "GB1", "Identity", "Japan1", "Korea1"}

// IdentityROS is the ROS code of Adobe-Identity-0.  It is used for
// all fonts which are not CID-keyed.
const IdentityROS = 2 << 8

// Info contains the information about a CFF font needed to embed it.
type Info struct {
	FontName string
	IsCID    bool

	// ROS is the character collection of a CID-keyed font, and
	// Adobe-Identity-0 otherwise.
	ROS *cid.SystemInfo

	// ROSCode is the ordering index times 256 plus the supplement.
	// Supplements outside 0..255 are rejected by ReadInfo.
	ROSCode int
}

// number of predefined strings, see section 10 of the CFF spec
const nStdString = 391

// ReadInfo reads the font name and the character collection from the
// CFF font at start..start+length in r.
func ReadInfo(r io.ReadSeeker, start, length int64) (*Info, error) {
	p := parser.New("CFF", r)
	err := p.SeekPos(start + 2)
	if err != nil {
		return nil, err
	}
	hdrSize, err := p.ReadUInt8()
	if err != nil {
		return nil, err
	}

	nameIdx, err := ReadIndexHeader(p, start+int64(hdrSize))
	if err != nil {
		return nil, err
	}
	if nameIdx.Count == 0 {
		return nil, p.Error("empty Name INDEX")
	}
	name, err := nameIdx.ReadObject(p, 0)
	if err != nil {
		return nil, err
	}
	nameEnd, err := nameIdx.End(p)
	if err != nil {
		return nil, err
	}

	topIdx, err := ReadIndexHeader(p, nameEnd)
	if err != nil {
		return nil, err
	}
	if topIdx.Count == 0 {
		return nil, p.Error("empty Top DICT INDEX")
	}
	topData, err := topIdx.ReadObject(p, 0)
	if err != nil {
		return nil, err
	}
	topDict, err := DecodeDict(topData)
	if err != nil {
		return nil, err
	}

	info := &Info{
		FontName: string(name),
		ROS: &cid.SystemInfo{
			Registry: "Adobe",
			Ordering: "Identity",
		},
		ROSCode: IdentityROS,
	}

	ros := topDict.Operands(opROS)
	if ros == nil {
		return info, nil
	}
	info.IsCID = true
	if len(ros) != 3 {
		return nil, p.Error("malformed ROS operator")
	}
	registrySID, ok1 := ros[0].(Integer)
	orderingSID, ok2 := ros[1].(Integer)
	supplement, ok3 := ros[2].(Integer)
	if !(ok1 && ok2 && ok3) {
		return nil, p.Error("malformed ROS operator")
	}
	if supplement < 0 || supplement > 255 {
		return nil, p.Error("invalid CID supplement %d", supplement)
	}

	topEnd, err := topIdx.End(p)
	if err != nil {
		return nil, err
	}
	if topEnd-start > length {
		return nil, p.Error("Top DICT INDEX exceeds table length")
	}
	strings, err := ReadIndexHeader(p, topEnd)
	if err != nil {
		return nil, err
	}
	registry, err := lookupString(p, strings, int(registrySID))
	if err != nil {
		return nil, err
	}
	ordering, err := lookupString(p, strings, int(orderingSID))
	if err != nil {
		return nil, err
	}

	idx := slices.Index(Orderings, ordering)
	if idx < 0 {
		tracer().Infof("font %q: unknown CID ordering %q, using Identity",
			info.FontName, ordering)
		return info, nil
	}
	info.ROS = &cid.SystemInfo{
		Registry:   registry,
		Ordering:   ordering,
		Supplement: int32(supplement),
	}
	info.ROSCode = idx<<8 + int(supplement)
	return info, nil
}

// lookupString returns the string with the given SID.  None of the
// predefined strings is a registry or ordering name, so these are
// returned as the empty string.
func lookupString(p *parser.Parser, strings *Index, sid int) (string, error) {
	if sid < nStdString {
		return "", nil
	}
	data, err := strings.ReadObject(p, sid-nStdString)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
