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

package reservation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"
)

// Reservation records one CPU's intent to atomically update a memory
// block. Valid from the load-locked that creates it until any write to the
// block, from any CPU, invalidates it.
type Reservation struct {
	CPU   int
	Block uint64
	Valid bool
}

func (r Reservation) String() string {
	if !r.Valid {
		return fmt.Sprintf("cpu %d: no reservation", r.CPU)
	}
	return fmt.Sprintf("cpu %d: block %#016x", r.CPU, r.Block)
}

// Tracker is the machine-wide table of load-locked reservations: one slot
// per CPU, at most one live reservation per slot. It is shared by every
// CPU and is safe for concurrent use.
//
// The tracker is constructed by the top-level machine and passed by
// reference to the components that need it; its lifetime is the lifetime
// of the emulated machine.
type Tracker struct {
	crit sync.Mutex
	res  []Reservation
}

// NewTracker is the preferred method of initialisation for the Tracker
// type. numCPUs fixes the number of reservation slots.
func NewTracker(numCPUs int) *Tracker {
	t := &Tracker{
		res: make([]Reservation, numCPUs),
	}
	for i := range t.res {
		t.res[i].CPU = i
	}
	return t
}

// Set records a reservation on the block containing the address,
// discarding any previous reservation held by the CPU. Called on
// load-locked.
func (t *Tracker) Set(cpu int, addr uint64) {
	t.crit.Lock()
	defer t.crit.Unlock()

	t.res[cpu].Block = memorymap.BlockBase(addr)
	t.res[cpu].Valid = true
}

// CheckAndClear reports whether the CPU still holds a valid reservation on
// the block containing the address, and unconditionally clears the slot.
// Reservations are single-use: a failing store-conditional drops the
// reservation just as a succeeding one does.
func (t *Tracker) CheckAndClear(cpu int, addr uint64) bool {
	t.crit.Lock()
	defer t.crit.Unlock()

	ok := t.res[cpu].Valid && t.res[cpu].Block == memorymap.BlockBase(addr)
	t.res[cpu].Valid = false
	return ok
}

// InvalidateBlock clears every reservation on the block containing the
// address. Called for every successful write in the machine, whichever CPU
// or device performs it. Comparison is by aligned block, not exact
// address: a store-conditional only commits if the intervening writes
// missed the whole block.
func (t *Tracker) InvalidateBlock(addr uint64) {
	t.crit.Lock()
	defer t.crit.Unlock()

	block := memorymap.BlockBase(addr)
	for i := range t.res {
		if t.res[i].Valid && t.res[i].Block == block {
			t.res[i].Valid = false
		}
	}
}

// InvalidateRange clears every reservation on any block touched by the
// range. Used for DMA and other multi-byte writes.
func (t *Tracker) InvalidateRange(addr uint64, size uint64) {
	if size == 0 {
		return
	}

	t.crit.Lock()
	defer t.crit.Unlock()

	first := memorymap.BlockBase(addr)
	last := memorymap.BlockBase(addr + size - 1)
	for i := range t.res {
		if t.res[i].Valid && t.res[i].Block >= first && t.res[i].Block <= last {
			t.res[i].Valid = false
		}
	}
}

// Clear drops the CPU's reservation, if any. Called on context switch,
// exception entry and CPU deregistration.
func (t *Tracker) Clear(cpu int) {
	t.crit.Lock()
	defer t.crit.Unlock()

	t.res[cpu].Valid = false
}

// Reservations returns a snapshot of the table. A debugging function.
func (t *Tracker) Reservations() []Reservation {
	t.crit.Lock()
	defer t.crit.Unlock()

	res := make([]Reservation, len(t.res))
	copy(res, t.res)
	return res
}

func (t *Tracker) String() string {
	s := strings.Builder{}
	for _, r := range t.Reservations() {
		s.WriteString(r.String())
		s.WriteString("\n")
	}
	return s.String()
}
