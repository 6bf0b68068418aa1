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

package headless

// Call is a single recorded subsystem invocation.
type Call struct {
	Name string
	Args []interface{}
}

// Trace is the ordered record of every call made into the headless
// subsystems. All four doubles append to the same trace so the interleaving
// of flushes, draws and state changes is visible.
type Trace struct {
	Calls []Call
}

func (tr *Trace) record(name string, args ...interface{}) {
	tr.Calls = append(tr.Calls, Call{Name: name, Args: args})
}

// Count returns the number of recorded calls with the name.
func (tr *Trace) Count(name string) int {
	n := 0
	for _, c := range tr.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent call with the name, or nil.
func (tr *Trace) Last(name string) *Call {
	for i := len(tr.Calls) - 1; i >= 0; i-- {
		if tr.Calls[i].Name == name {
			return &tr.Calls[i]
		}
	}
	return nil
}

// Names returns the call names in the order they were recorded.
func (tr *Trace) Names() []string {
	names := make([]string, len(tr.Calls))
	for i, c := range tr.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset discards the recorded calls.
func (tr *Trace) Reset() {
	tr.Calls = tr.Calls[:0]
}
