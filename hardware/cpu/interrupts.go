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

import "math/bits"

// NumInterruptVectors is the number of distinct interrupt vectors a CPU
// can hold pending. Vectors are numbered 0 to NumInterruptVectors-1, with
// higher numbers taking priority.
const NumInterruptVectors = 64

// RaiseInterrupt adds a vector to the CPU's pending interrupt set. Safe to
// call from any goroutine: the vector is visible to the CPU before the
// call returns. Delivery happens at the executor's next interrupt check.
// Raising a vector that is already pending is a no-op; pending interrupts
// do not queue.
func (c *CPU) RaiseInterrupt(vector int) {
	if vector < 0 || vector >= NumInterruptVectors {
		return
	}

	for {
		old := c.interrupts.Load()
		if c.interrupts.CompareAndSwap(old, old|uint64(1)<<vector) {
			return
		}
	}
}

// PendingInterrupt removes and returns the highest priority pending
// vector. The boolean reports whether any vector was pending. Must only be
// called from the CPU's executor, at an instruction or basic-block
// boundary of its choosing.
func (c *CPU) PendingInterrupt() (int, bool) {
	for {
		old := c.interrupts.Load()
		if old == 0 {
			return 0, false
		}

		vector := 63 - bits.LeadingZeros64(old)
		if c.interrupts.CompareAndSwap(old, old&^(uint64(1)<<vector)) {
			return vector, true
		}
	}
}

// InterruptsPending reports whether any vector is pending, without
// consuming it.
func (c *CPU) InterruptsPending() bool {
	return c.interrupts.Load() != 0
}
