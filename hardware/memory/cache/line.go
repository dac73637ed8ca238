// This file is part of EMulatR.
//
// EMulatR is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// EMulatR is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with EMulatR.  If not, see <https://www.gnu.org/licenses/>.

package cache

import "fmt"

// State is the coherency state of a cache line.
type State int

func (s State) String() string {
	switch s {
	case Invalid:
		return "invalid"
	case Shared:
		return "shared"
	case Exclusive:
		return "exclusive"
	case Modified:
		return "modified"
	}
	return "undefined"
}

// The coherency states. Modified is the unique-dirty-owner state: at most
// one CPU in the machine may hold a line Modified and no other CPU may then
// hold it in any other non-Invalid state. Exclusive is a clean copy known
// to be the only copy in the machine; a write to an Exclusive line upgrades
// to Modified without a coherency broadcast.
const (
	Invalid State = iota
	Shared
	Exclusive
	Modified
)

// line is a single cache line. tag is the line-aligned physical address.
type line struct {
	tag   uint64
	state State
	data  []byte
}

func (l *line) String() string {
	return fmt.Sprintf("%#016x [%s]", l.tag, l.state)
}

// LineInfo is a debugging snapshot of a single line. Used by the monitor
// and by tests asserting the coherency invariant.
type LineInfo struct {
	Addr  uint64
	State State
}
