// This file is part of GopherGE.
//
// GopherGE is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherGE is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherGE.  If not, see <https://www.gnu.org/licenses/>.

// Package performance wraps the runtime profiler so a replay can be
// measured without restructuring the caller. The profile files are written
// to the current directory and can be inspected with pprof.
package performance

import (
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/hakea/gopherge/curated"
)

// sentinel errors returned by the performance package.
const (
	ProfilingError = "profiling: %v"
)

// Profile selects which profiles RunProfiler gathers.
type Profile int

// List of valid Profile values.
const (
	ProfileNone Profile = 0x00
	ProfileCPU  Profile = 0x01
	ProfileMem  Profile = 0x02
	ProfileAll  Profile = ProfileCPU | ProfileMem
)

// ParseProfileString maps a command line argument to a Profile value.
func ParseProfileString(s string) (Profile, error) {
	switch strings.ToUpper(s) {
	case "NONE":
		return ProfileNone, nil
	case "CPU":
		return ProfileCPU, nil
	case "MEM":
		return ProfileMem, nil
	case "ALL":
		return ProfileAll, nil
	}
	return ProfileNone, curated.Errorf(ProfilingError, "unrecognised profile type")
}

// RunProfiler launches the run function with the requested profiles
// gathered around it. The tag names the output files, tag_cpu.profile and
// tag_mem.profile.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(tag + "_cpu.profile")
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer f.Close()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer pprof.StopCPUProfile()
	}

	err := run()
	if err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(tag + "_mem.profile")
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer f.Close()

		// the heap profile should reflect live objects only
		runtime.GC()

		err = pprof.WriteHeapProfile(f)
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
	}

	return nil
}
