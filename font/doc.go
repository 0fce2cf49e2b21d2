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

// Package font contains the error types shared by the font codecs.
//
// The subpackages implement the binary font formats needed to embed
// subsetted TrueType and OpenType/CFF fonts into PDF files:
//
//   - [github.com/DavidFangWJ/jdvpdf/font/parser] reads big-endian binary data,
//   - [github.com/DavidFangWJ/jdvpdf/font/cff] decodes and subsets CFF data,
//   - [github.com/DavidFangWJ/jdvpdf/font/sfnt] handles the sfnt container,
//   - [github.com/DavidFangWJ/jdvpdf/font/sfntcff] ties everything together.
//
// Errors from the codecs never are recovered locally.  A malformed font
// aborts the processing of this one font only.
package font
