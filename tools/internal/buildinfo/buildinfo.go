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
// Package buildinfo describes the version of the command line tools.
package buildinfo

import (
	"runtime/debug"
)

// Version returns a version string for a command line tool, for example
// "font-subset (github.com/DavidFangWJ/jdvpdf v0.2.0)".  For development
// builds the VCS revision is shown instead of the module version.
func Version(tool string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return tool
	}
	version := info.Main.Version
	if version == "" || version == "(devel)" {
		version = revision(info)
	}
	if version == "" {
		return tool
	}
	return tool + " (" + info.Main.Path + " " + version + ")"
}

func revision(info *debug.BuildInfo) string {
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if dirty && rev != "" {
		rev += "+dirty"
	}
	return rev
}
