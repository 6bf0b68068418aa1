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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes and
// allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as
// the only argument, with modalflag you first call NewArgs() with the array
// of arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() functions. For example, handling
// exactly one argument:
//
//	switch len(md.RemainingArgs()) {
//	case 0:
//		return fmt.Errorf("recording file required")
//	case 1:
//		replay(md.GetArg(0))
//	default:
//		return fmt.Errorf("too many arguments")
//	}
//
// Adding flags is similar to the flag package. The flag functions return a
// pointer to a variable of the specified type, which Parse() fills in:
//
//	headless := md.AddBool("headless", false, "run without a window")
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, in the manner of the go command (build, doc,
// test, etc). Each mode can have its own set of flags and expected
// arguments. Modes are registered with the AddSubModes() function and the
// first mode in the list is the default. All mode comparisons are case
// insensitive.
//
//	md.AddSubModes("RUN", "VERSION")
//	_, _ = md.Parse()
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		headless := md.AddBool("headless", false, "run without a window")
//		p, err := md.Parse()
//		switch p {
//		case ParseError:
//			fmt.Println(err)
//			return
//		case ParseHelp:
//			return
//		}
//		replay(md.GetArg(0), *headless)
//	case "VERSION":
//		fmt.Println(version.Version())
//	}
//
// The call to NewMode() discards the previous mode's flags. Modes can be
// chained as deep as required, with each call to Parse() checking for any
// further flags and sub-modes.
package modalflag
