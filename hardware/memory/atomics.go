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

package memory

import (
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/bus"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
)

// LoadLocked reads a value and records a reservation on the 16 byte block
// containing it. The read and the reservation are one bus transaction: a
// write from another CPU cannot slip between them.
//
// A load-locked from an MMIO window performs the device read but records
// no reservation; a store-conditional to the window can then never
// succeed, which is the architecturally safe outcome. Any reservation the
// CPU held beforehand is discarded: a new load-locked always replaces the
// old reservation, whatever it addresses.
func (m *Memory) LoadLocked(cpuID int, va uint64, width int) (uint64, error) {
	c, err := m.processor(cpuID)
	if err != nil {
		return 0, err
	}

	pa, err := m.translate(c, va, width, false, false)
	if err != nil {
		return 0, err
	}

	area, idx := m.summary.MapAddress(pa)
	switch area {
	case memorymap.MMIO:
		m.res.Clear(cpuID)
		return m.device(idx).DeviceRead(pa, width)
	case memorymap.Unmapped:
		return 0, curated.Errorf(faults.BusError, pa)
	}

	m.busCrit.Lock()
	defer m.busCrit.Unlock()

	v, ok := c.L1D.Read(pa, width)
	if !ok {
		held := m.coord.SnoopReadFill(memorymap.LineBase(pa), memorymap.LineSize, c.ID)
		if err := c.L1D.Fill(pa, held == 0); err != nil {
			panic(err)
		}
		v, ok = c.L1D.Read(pa, width)
		if !ok {
			panic("memory: cache read missed immediately after fill")
		}
	}

	m.res.Set(cpuID, pa)
	return v, nil
}

// StoreConditional commits a write only if the CPU's reservation on the
// block containing the address is still intact. The reservation is
// consumed either way: a failed store-conditional drops it just as a
// successful one does. The returned boolean reports whether the write
// committed.
func (m *Memory) StoreConditional(cpuID int, va uint64, value uint64, width int) (bool, error) {
	c, err := m.processor(cpuID)
	if err != nil {
		return false, err
	}

	pa, err := m.translate(c, va, width, true, false)
	if err != nil {
		return false, err
	}

	area, _ := m.summary.MapAddress(pa)
	switch area {
	case memorymap.MMIO:
		// no reservation can exist on a device window. consume nothing,
		// commit nothing
		return false, nil
	case memorymap.Unmapped:
		return false, curated.Errorf(faults.BusError, pa)
	}

	m.busCrit.Lock()
	defer m.busCrit.Unlock()

	if !m.res.CheckAndClear(cpuID, pa) {
		return false, nil
	}

	m.writeBroadcast(c, pa, value, width)
	return true, nil
}

// ClearReservation drops the CPU's outstanding reservation, if any.
// Called on context switch and exception entry.
func (m *Memory) ClearReservation(cpuID int) {
	m.res.Clear(cpuID)
}

// ExecuteMemoryBarrier performs a memory barrier on behalf of a CPU. The
// load and store barriers order the issuing CPU's own accesses; the
// coherency protocol applies remote invalidations synchronously, so their
// ordering obligation is already met by the time any access completes and
// no further work is needed here. The full barrier additionally waits
// until every coherency broadcast in flight anywhere in the machine has
// been applied. It blocks the issuing CPU and no other.
func (m *Memory) ExecuteMemoryBarrier(cpuID int, kind bus.BarrierKind) error {
	if _, err := m.processor(cpuID); err != nil {
		return err
	}

	if kind == bus.FullBarrier {
		m.coord.DrainBroadcasts()
	}
	return nil
}

// InvalidateTLB invalidates translations on the issuing CPU and
// broadcasts the invalidation to every other CPU. The local invalidation
// is synchronous with the privileged instruction; remote CPUs apply it at
// their next translation.
func (m *Memory) InvalidateTLB(cpuID int, scope mmu.Scope) error {
	c, err := m.processor(cpuID)
	if err != nil {
		return err
	}

	c.DrainTLBInvalidates()
	c.MMU.Invalidate(scope)
	m.coord.BroadcastTLBInvalidate(scope, cpuID)
	return nil
}

// InvalidateCacheLines drops cached copies of a physical range on every
// CPU. For use by devices and PALcode after the range has been rewritten
// behind the caches' backs.
func (m *Memory) InvalidateCacheLines(pa uint64, size uint64, sourceCPU int) {
	m.coord.BroadcastCacheInvalidate(pa, size, sourceCPU)
}
