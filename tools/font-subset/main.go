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
// Font-subset prints the PDF font information for a TrueType or OpenType
// font and optionally writes a subset of the font, as it would be
// embedded into a PDF file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/DavidFangWJ/jdvpdf/font/sfntcff"
	"github.com/DavidFangWJ/jdvpdf/font/subset"
	"github.com/DavidFangWJ/jdvpdf/tools/internal/buildinfo"
	"github.com/DavidFangWJ/jdvpdf/tools/internal/profile"
)

// tracer traces with key 'jdvpdf.fonts'
func tracer() tracing.Trace {
	return tracing.Select("jdvpdf.fonts")
}

var cli struct {
	Font    string `arg:"" type:"existingfile" help:"TrueType or OpenType font file"`
	SubFont int    `short:"i" default:"0" help:"Index of the font inside a TrueType collection"`

	Glyphs   string `short:"g" default:"0" help:"Glyphs to keep, for example 0,3,5-9"`
	Output   string `short:"o" help:"Write the subset to this file, '-' for standard output"`
	Tag      string `help:"Subset tag to use instead of the computed one"`
	KeepName bool   `help:"Do not prefix the font name with a subset tag"`

	Trace      string `default:"Error" enum:"Debug,Info,Error" help:"Trace level (Debug, Info, Error)"`
	CPUProfile string `name:"cpuprofile" type:"path" help:"Write a CPU profile to this file"`
	MemProfile string `name:"memprofile" type:"path" help:"Write a memory profile to this file"`

	Version kong.VersionFlag `help:"Show the version and exit"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Description("Show PDF font information and write font subsets."),
		kong.Vars{"version": buildinfo.Version("font-subset")})
	initDisplay()

	err := setupTracing(cli.Trace)
	ctx.FatalIfErrorf(err)

	err = run()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run() (err error) {
	prof, err := profile.Start(cli.CPUProfile, cli.MemProfile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, prof.Stop())
	}()

	cache := sfntcff.NewCache()
	defer func() {
		err = errors.Join(err, cache.Close())
	}()

	f, err := cache.Get(cli.Font, cli.SubFont)
	if err != nil {
		return err
	}
	showFont(f)

	if cli.Output == "" {
		return nil
	}
	keep, err := subset.ParseList(cli.Glyphs)
	if err != nil {
		return err
	}
	opt := &sfntcff.Options{
		SubsetTag: cli.Tag,
		KeepName:  cli.KeepName,
	}

	var w io.Writer
	if cli.Output == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write binary font data to a terminal")
		}
		w = os.Stdout
	} else {
		out, createErr := os.Create(cli.Output)
		if createErr != nil {
			return createErr
		}
		defer func() {
			err = errors.Join(err, out.Close())
		}()
		w = out
	}

	info, err := f.Embed(w, keep, opt)
	if err != nil {
		return err
	}
	showEmbedInfo(info)
	return nil
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.jdvpdf.fonts": level,
	}
	err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true))
	if err != nil {
		return fmt.Errorf("cannot configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	switch level {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	default:
		tracer().SetTraceLevel(tracing.LevelError)
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " i  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Output goes to stderr when the font data is written to stdout.
func report() io.Writer {
	if cli.Output == "-" {
		return os.Stderr
	}
	return os.Stdout
}

func showFont(f *sfntcff.Font) {
	kind := "TrueType"
	if f.IsOpenType() {
		kind = "OpenType/CFF"
	}
	key, subtype := f.FontFileKey()
	data := [][]string{
		{"Field", "Value"},
		{"PostScript name", f.PostScriptName},
		{"Type 0 name", f.T0Name()},
		{"Outlines", kind},
		{"Glyphs", strconv.Itoa(f.NumGlyphs)},
		{"CID-keyed", strconv.FormatBool(f.IsCID)},
		{"ROS", fmt.Sprintf("%s-%s-%d (0x%04x)",
			f.ROS.Registry, f.ROS.Ordering, f.ROS.Supplement, f.ROSCode)},
		{"CIDFont subtype", f.CIDFontSubtype()},
		{"Font file", key + " " + subtype},
		{"FontBBox", fmt.Sprintf("[%d %d %d %d]",
			f.FontBBox.LLx, f.FontBBox.LLy, f.FontBBox.URx, f.FontBBox.URy)},
		{"Ascent", strconv.Itoa(int(f.Ascent))},
		{"Descent", strconv.Itoa(int(f.Descent))},
		{"CapHeight", strconv.Itoa(int(f.CapHeight))},
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		tracer().Errorf("cannot render table: %v", err)
		return
	}
	fmt.Fprintln(report(), s)
}

func showEmbedInfo(info *sfntcff.EmbedInfo) {
	fmt.Fprintln(report(), pterm.Info.Sprintf("wrote %d bytes for %q (%d glyphs)",
		info.Length, info.FontName, len(info.Glyphs)))
}
