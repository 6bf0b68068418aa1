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

// Package statsview provides a local HTTP server offering runtime
// statistics. The underlying functionality is provided by the
// "github.com/go-echarts/statsview" module.
//
// The server is only compiled in when the statsview build constraint is
// present. Without the constraint, Available() returns false and Launch()
// only writes a notice that the server is not available, meaning callers
// never need to guard with a build tag of their own.
//
// After launch, graphical statistics are viewable at:
//
//	localhost:12800/debug/statsview
//
// And standard Go pprof endpoints at:
//
//	localhost:12800/debug/pprof/
package statsview
