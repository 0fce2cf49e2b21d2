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

package font

import (
	"errors"
	"fmt"
)

// ErrUnsorted is returned by the subsetting functions if the list of
// glyphs to keep is not strictly ascending.
var ErrUnsorted = errors.New("glyph list must be strictly ascending")

// InvalidFontError indicates a problem with font data: a malformed INDEX,
// DICT or table directory, or a missing required table.
type InvalidFontError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidFontError) Error() string {
	return err.SubSystem + ": " + err.Reason
}

// NotSupportedError indicates that a font file seems valid but uses a
// feature which is not supported by this library.
type NotSupportedError struct {
	SubSystem string
	Feature   string
}

func (err *NotSupportedError) Error() string {
	return err.SubSystem + ": " + err.Feature + " not supported"
}

// RangeError indicates that a glyph index, object index or sub-font index
// is out of bounds.
type RangeError struct {
	SubSystem string
	What      string
	Index     int
	Limit     int
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("%s: %s %d out of range [0, %d)",
		err.SubSystem, err.What, err.Index, err.Limit)
}

// ConvergenceError indicates that the offset back-patching of a CFF Top DICT
// did not reach a fixed point.  This is an internal fault, not a problem
// with the input font.
type ConvergenceError struct {
	Iterations int
}

func (err *ConvergenceError) Error() string {
	return fmt.Sprintf("cff: Top DICT offsets did not converge after %d iterations",
		err.Iterations)
}

// IOError wraps a failure of the underlying font or output stream.
type IOError struct {
	Op  string
	Err error
}

func (err *IOError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err *IOError) Unwrap() error {
	return err.Err
}

// IsUnsupported returns true if the error is a NotSupportedError.
func IsUnsupported(err error) bool {
	var e *NotSupportedError
	return errors.As(err, &e)
}

// IsInvalid returns true if err is, or wraps, an InvalidFontError.
func IsInvalid(err error) bool {
	var e *InvalidFontError
	return errors.As(err, &e)
}
