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

import "github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"

// SnoopKind distinguishes the two coherency messages a cache can receive
// from the rest of the machine.
type SnoopKind int

func (k SnoopKind) String() string {
	switch k {
	case SnoopRead:
		return "read"
	case SnoopWrite:
		return "write"
	}
	return "undefined"
}

// A SnoopRead announces that another CPU is about to read the line: a
// Modified copy is written back and downgraded to Shared; an Exclusive copy
// is downgraded to Shared. A SnoopWrite announces that another CPU is about
// to write the line: any copy is invalidated, with a Modified copy written
// back first so the writer's fill sees the freshest data.
const (
	SnoopRead SnoopKind = iota
	SnoopWrite
)

// Snoop applies a coherency message to the cache and to the levels above
// it, top first. Called on the lowest level of a CPU's hierarchy it
// services the CPU's whole coherency domain. The return value reports
// whether any level held a copy of the line.
func (c *Cache) Snoop(pa uint64, kind SnoopKind) bool {
	c.crit.Lock()
	defer c.crit.Unlock()

	return c.snoop(memorymap.LineBase(pa), kind)
}

func (c *Cache) snoop(lineAddr uint64, kind SnoopKind) bool {
	c.stats.Snoops++

	// levels above first: their writebacks drain through this level before
	// this level itself drains downward
	held := false
	for _, p := range c.prev {
		held = p.snoop(lineAddr, kind) || held
	}

	l := c.lookup(lineAddr)
	if l == nil {
		return held
	}

	switch kind {
	case SnoopRead:
		if l.state == Modified {
			c.writeback(l)
		}
		l.state = Shared
	case SnoopWrite:
		if l.state == Modified {
			c.writeback(l)
		}
		l.state = Invalid
	}

	return true
}

// Lines returns a snapshot of the valid lines in this cache level. A
// debugging function, also used by tests asserting the coherency
// invariant.
func (c *Cache) Lines() []LineInfo {
	c.crit.Lock()
	defer c.crit.Unlock()

	inf := make([]LineInfo, 0, len(c.lines))
	for i := range c.lines {
		if c.lines[i].state != Invalid {
			inf = append(inf, LineInfo{Addr: c.lines[i].tag, State: c.lines[i].state})
		}
	}
	return inf
}

// Statistics returns a copy of the cache's event counters.
func (c *Cache) Statistics() Stats {
	c.crit.Lock()
	defer c.crit.Unlock()

	return c.stats
}
