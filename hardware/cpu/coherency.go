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

package cpu

import (
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/cache"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
)

// The functions in this file are the CPU's coherency surface: they are
// called by the SMP coordinator on behalf of other CPUs and devices, from
// goroutines other than this CPU's executor. Cache snoops enter the
// hierarchy at L2 and propagate upward under the chain's domain lock.
// Translation buffer invalidations are queued and applied from the owner's
// side at the next access or interrupt check.

// SnoopWrite announces a remote write to the range. Every level holding an
// affected line invalidates its copy, writing Modified data back first.
// The return value reports whether any copy was held.
func (c *CPU) SnoopWrite(pa uint64, size uint64) bool {
	held := false
	forEachLine(pa, size, func(lineAddr uint64) {
		held = c.L2.Snoop(lineAddr, cache.SnoopWrite) || held
	})
	return held
}

// SnoopRead announces a remote read of the range. Modified copies are
// written back and every copy downgrades to Shared. The return value
// reports whether any copy was held.
func (c *CPU) SnoopRead(pa uint64, size uint64) bool {
	held := false
	forEachLine(pa, size, func(lineAddr uint64) {
		held = c.L2.Snoop(lineAddr, cache.SnoopRead) || held
	})
	return held
}

// InvalidateCache drops every cached copy of the range without writeback.
// Used after a device has written the authoritative data directly to RAM.
func (c *CPU) InvalidateCache(pa uint64, size uint64) {
	forEachLine(pa, size, func(lineAddr uint64) {
		c.L2.InvalidateLine(lineAddr)
	})
}

// PostTLBInvalidate queues a translation buffer invalidation for the CPU.
// The queue is drained from the owner's goroutine before its next
// translation, preserving single-goroutine ownership of the translation
// unit.
func (c *CPU) PostTLBInvalidate(scope mmu.Scope) {
	c.tlbCrit.Lock()
	defer c.tlbCrit.Unlock()

	c.pendingTLB = append(c.pendingTLB, scope)
}

// DrainTLBInvalidates applies queued translation buffer invalidations.
// Must only be called from the CPU's executor goroutine. The memory system
// calls it before every translation.
func (c *CPU) DrainTLBInvalidates() {
	c.tlbCrit.Lock()
	pending := c.pendingTLB
	c.pendingTLB = nil
	c.tlbCrit.Unlock()

	for _, scope := range pending {
		c.MMU.Invalidate(scope)
	}
}
