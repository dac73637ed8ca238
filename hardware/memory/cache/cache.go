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

import (
	"fmt"
	"sync"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/bus"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"
)

// Stats counts cache events. Retrieved with Statistics().
type Stats struct {
	Hits       uint64
	Misses     uint64
	Writebacks uint64
	Snoops     uint64
}

// Cache is one level of a CPU's cache hierarchy. Levels are chained with
// SetNextLevel(); the lowest level drains to and fills from a
// bus.CacheFiller (physical RAM in practice).
//
// Every level of one CPU's hierarchy shares a single mutex: the chain is
// one coherency domain and both local access and incoming snoops take the
// domain lock. This is what makes a remote invalidation fully applied, and
// visible to the local CPU, before the write that triggered it completes.
type Cache struct {
	crit *sync.Mutex

	label string
	sets  int
	ways  int

	lines  []line
	victim []int

	next   *Cache
	prev   []*Cache
	filler bus.CacheFiller

	stats Stats
}

// NewCache is the preferred method of initialisation for the Cache type.
// The number of sets must be a power of two. The supplied mutex guards the
// CPU's entire cache hierarchy; every level of one chain must be created
// with the same mutex.
func NewCache(label string, sets int, ways int, crit *sync.Mutex) *Cache {
	if sets <= 0 || sets&(sets-1) != 0 {
		panic(fmt.Sprintf("cache: %s: number of sets must be a power of two (%d)", label, sets))
	}
	if ways <= 0 {
		panic(fmt.Sprintf("cache: %s: invalid number of ways (%d)", label, ways))
	}
	if crit == nil {
		crit = &sync.Mutex{}
	}

	c := &Cache{
		crit:   crit,
		label:  label,
		sets:   sets,
		ways:   ways,
		lines:  make([]line, sets*ways),
		victim: make([]int, sets),
	}
	for i := range c.lines {
		c.lines[i].data = make([]byte, memorymap.LineSize)
	}

	return c
}

// Label returns the label assigned to the cache.
func (c *Cache) Label() string {
	return c.label
}

// SetNextLevel chains the cache to the level below it. Fills are satisfied
// from the next level and writebacks drain into it. The next level records
// the caller as a previous level so that snoops reaching it propagate
// upward.
func (c *Cache) SetNextLevel(next *Cache) {
	c.next = next
	next.prev = append(next.prev, c)
}

// SetFiller sets the fill/writeback target used when there is no next
// level.
func (c *Cache) SetFiller(filler bus.CacheFiller) {
	c.filler = filler
}

// set returns the ways of the set the address maps to.
func (c *Cache) set(lineAddr uint64) (int, []line) {
	s := int(lineAddr/memorymap.LineSize) & (c.sets - 1)
	return s, c.lines[s*c.ways : (s+1)*c.ways]
}

// lookup returns the line holding the address, or nil.
func (c *Cache) lookup(lineAddr uint64) *line {
	_, ways := c.set(lineAddr)
	for i := range ways {
		if ways[i].state != Invalid && ways[i].tag == lineAddr {
			return &ways[i]
		}
	}
	return nil
}

// Read returns the value at the address if the cache holds it. The boolean
// indicates a hit. On a miss the caller fills the line with Fill() and
// retries.
func (c *Cache) Read(pa uint64, width int) (uint64, bool) {
	c.crit.Lock()
	defer c.crit.Unlock()

	l := c.lookup(memorymap.LineBase(pa))
	if l == nil {
		c.stats.Misses++
		return 0, false
	}

	c.stats.Hits++
	return memorymap.ReadValue(l.data[pa-l.tag:], width), true
}

// Write stores the value at the address if the cache holds the line,
// marking it Modified. The boolean indicates a hit; on a miss the caller
// fills the line (write-allocate) and retries.
//
// The caller must have broadcast the write to the rest of the machine
// before calling. A Shared line is upgraded to Modified here on the
// strength of that broadcast having already invalidated every remote copy.
func (c *Cache) Write(pa uint64, value uint64, width int) bool {
	c.crit.Lock()
	defer c.crit.Unlock()

	l := c.lookup(memorymap.LineBase(pa))
	if l == nil {
		c.stats.Misses++
		return false
	}

	memorymap.WriteValue(l.data[pa-l.tag:], value, width)
	l.state = Modified
	c.stats.Hits++
	return true
}

// Fill brings the line containing the address into the cache, taking it
// from the next level down, or from the filler at the bottom of the chain.
// The fill propagates upward: every level the line passes through retains a
// copy.
//
// The exclusive flag indicates that no other CPU holds the line; the line
// is installed Exclusive rather than Shared and a later write to it will
// not need a coherency broadcast.
func (c *Cache) Fill(pa uint64, exclusive bool) error {
	c.crit.Lock()
	defer c.crit.Unlock()

	lineAddr := memorymap.LineBase(pa)
	if c.lookup(lineAddr) != nil {
		return nil
	}

	// fetch installs the line at this level (Shared). installing again here
	// would plant a duplicate copy of the tag in another way of the set
	if _, err := c.fetch(lineAddr); err != nil {
		return err
	}

	if exclusive {
		c.lookup(lineAddr).state = Exclusive
	}
	return nil
}

// fetch returns the content of the line, from this level if present, from
// below otherwise. A miss at this level installs the line here (Shared)
// before returning, so that a fill at the top of the chain populates every
// level it passes through.
func (c *Cache) fetch(lineAddr uint64) ([]byte, error) {
	if l := c.lookup(lineAddr); l != nil {
		c.stats.Hits++
		return l.data, nil
	}
	c.stats.Misses++

	var data []byte
	var err error

	if c.next != nil {
		data, err = c.next.fetch(lineAddr)
	} else if c.filler != nil {
		data = make([]byte, memorymap.LineSize)
		err = c.filler.FillLine(lineAddr, data)
	} else {
		panic(fmt.Sprintf("cache: %s: fill of %#016x with no next level and no filler", c.label, lineAddr))
	}
	if err != nil {
		return nil, err
	}

	c.install(lineAddr, data, Shared)
	return c.lookup(lineAddr).data, nil
}

// install places the line in its set, evicting a victim if the set is
// full. The data slice is copied.
func (c *Cache) install(lineAddr uint64, data []byte, st State) {
	s, ways := c.set(lineAddr)

	way := -1
	for i := range ways {
		if ways[i].state == Invalid {
			way = i
			break
		}
	}

	// no invalid way. evict the round-robin victim
	if way == -1 {
		way = c.victim[s]
		c.victim[s] = (c.victim[s] + 1) % c.ways
		if ways[way].state == Modified {
			c.writeback(&ways[way])
		}
	}

	ways[way].tag = lineAddr
	ways[way].state = st
	copy(ways[way].data, data)
}

// writeback drains a Modified line to the next level, or to the filler at
// the bottom of the chain. A Modified line with nowhere to drain to means
// the hierarchy has been miswired; silently dropping the data would
// corrupt the emulated machine, so this is fatal.
func (c *Cache) writeback(l *line) {
	c.stats.Writebacks++

	if c.next != nil {
		c.next.writeLine(l.tag, l.data)
		return
	}
	if c.filler != nil {
		if err := c.filler.DrainLine(l.tag, l.data); err != nil {
			panic(fmt.Sprintf("cache: %s: writeback of %s failed: %v", c.label, l, err))
		}
		return
	}

	panic(fmt.Sprintf("cache: %s: modified line %s has no writeback target", c.label, l))
}

// writeLine accepts a whole line written back from the level above,
// allocating it here if necessary.
func (c *Cache) writeLine(lineAddr uint64, data []byte) {
	if l := c.lookup(lineAddr); l != nil {
		copy(l.data, data)
		l.state = Modified
		return
	}
	c.install(lineAddr, data, Modified)
}

// InvalidateLine drops the line without writing it back. For use when the
// copy below this cache is already authoritative; after DMA into RAM, for
// example. Propagates to the levels above.
func (c *Cache) InvalidateLine(pa uint64) {
	c.crit.Lock()
	defer c.crit.Unlock()

	c.invalidateLine(memorymap.LineBase(pa))
}

func (c *Cache) invalidateLine(lineAddr uint64) {
	for _, p := range c.prev {
		p.invalidateLine(lineAddr)
	}
	if l := c.lookup(lineAddr); l != nil {
		l.state = Invalid
	}
}

// FlushLine writes the line back if it is Modified and then invalidates
// it. Propagates to the levels above, top first, so that the freshest copy
// is the one that drains to the bottom.
func (c *Cache) FlushLine(pa uint64) {
	c.crit.Lock()
	defer c.crit.Unlock()

	c.flushLine(memorymap.LineBase(pa))
}

func (c *Cache) flushLine(lineAddr uint64) {
	for _, p := range c.prev {
		p.flushLine(lineAddr)
	}
	if l := c.lookup(lineAddr); l != nil {
		if l.state == Modified {
			c.writeback(l)
		}
		l.state = Invalid
	}
}
