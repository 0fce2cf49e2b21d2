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
// Package profile writes CPU and memory profiles for the command line tools.
package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler collects the profiles requested on the command line.
type Profiler struct {
	cpu     *os.File
	memPath string
}

// Start begins CPU profiling if cpuPath is non-empty.  If memPath is
// non-empty, Stop writes an allocation profile there.
func Start(cpuPath, memPath string) (*Profiler, error) {
	p := &Profiler{memPath: memPath}
	if cpuPath == "" {
		return p, nil
	}
	fd, err := os.Create(cpuPath)
	if err != nil {
		return nil, fmt.Errorf("CPU profile: %w", err)
	}
	err = pprof.StartCPUProfile(fd)
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("CPU profile: %w", err)
	}
	p.cpu = fd
	return p, nil
}

// Stop ends CPU profiling and writes the memory profile.
func (p *Profiler) Stop() error {
	var errs []error
	if p.cpu != nil {
		pprof.StopCPUProfile()
		errs = append(errs, p.cpu.Close())
		p.cpu = nil
	}
	if p.memPath != "" {
		errs = append(errs, writeAllocs(p.memPath))
		p.memPath = ""
	}
	return errors.Join(errs...)
}

func writeAllocs(path string) error {
	allocs := pprof.Lookup("allocs")
	if allocs == nil {
		return errors.New("memory profile: not available")
	}
	fd, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("memory profile: %w", err)
	}
	runtime.GC()
	err = allocs.WriteTo(fd, 0)
	return errors.Join(err, fd.Close())
}
