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
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/cpu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/cache"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"
)

// TranslateAddress maps a virtual address through the CPU's translation
// unit without performing an access. The ASN and processor mode are taken
// from the CPU's current state.
func (m *Memory) TranslateAddress(cpuID int, va uint64, write bool, instruction bool) (uint64, error) {
	c, err := m.processor(cpuID)
	if err != nil {
		return 0, err
	}

	c.DrainTLBInvalidates()
	return c.MMU.Translate(va, c.ASN(), c.Mode(), write, instruction)
}

// translate is the common head of every virtual access: alignment check
// then translation.
func (m *Memory) translate(c *cpu.CPU, va uint64, width int, write bool, instruction bool) (uint64, error) {
	if !memorymap.Aligned(va, width) {
		return 0, curated.Errorf(faults.AlignmentFault, va, width)
	}

	c.DrainTLBInvalidates()
	return c.MMU.Translate(va, c.ASN(), c.Mode(), write, instruction)
}

// cachedRead services a read from the cache, filling on a miss. The fill
// is a coherency transaction: it happens under bus arbitration, with
// remote Modified copies written back before the line is taken.
func (m *Memory) cachedRead(c *cpu.CPU, cch *cache.Cache, pa uint64, width int) uint64 {
	if v, ok := cch.Read(pa, width); ok {
		return v
	}

	m.busCrit.Lock()
	defer m.busCrit.Unlock()

	held := m.coord.SnoopReadFill(memorymap.LineBase(pa), memorymap.LineSize, c.ID)
	if err := cch.Fill(pa, held == 0); err != nil {
		// area was checked before the cache was consulted. a fill cannot
		// fail here unless the hierarchy is miswired
		panic(err)
	}

	v, ok := cch.Read(pa, width)
	if !ok {
		panic("memory: cache read missed immediately after fill")
	}
	return v
}

// cachedWrite commits a write through the cache, broadcasting it to the
// rest of the machine first. One bus transaction: arbitration, broadcast,
// reservation invalidation, then the local cache update.
func (m *Memory) cachedWrite(c *cpu.CPU, pa uint64, value uint64, width int) {
	m.busCrit.Lock()
	defer m.busCrit.Unlock()

	m.writeBroadcast(c, pa, value, width)
}

// writeBroadcast is the body of cachedWrite. The caller must hold
// busCrit.
func (m *Memory) writeBroadcast(c *cpu.CPU, pa uint64, value uint64, width int) {
	// every remote copy of the line is invalidated (Modified copies
	// writing back first) and every conflicting reservation cleared,
	// the writer's own included, before the local cache accepts the
	// write. reservation invalidation is the coordinator's: the tracker
	// it clears is the same one this Memory holds
	m.coord.BroadcastWriteInvalidate(pa, uint64(width), c.ID)

	if c.L1D.Write(pa, value, width) {
		return
	}

	// write-allocate. the broadcast has already removed every remote copy
	// so the line is taken Exclusive
	if err := c.L1D.Fill(pa, true); err != nil {
		panic(err)
	}
	if !c.L1D.Write(pa, value, width) {
		panic("memory: cache write missed immediately after fill")
	}
}

// ReadVirtual reads a value of the given width from a virtual address on
// behalf of a CPU. MMIO windows are read through the device, uncached.
func (m *Memory) ReadVirtual(cpuID int, va uint64, width int) (uint64, error) {
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
		return m.device(idx).DeviceRead(pa, width)
	case memorymap.Unmapped:
		return 0, curated.Errorf(faults.BusError, pa)
	}

	return m.cachedRead(c, c.L1D, pa, width), nil
}

// FetchInstruction reads an instruction word through the CPU's
// instruction cache. Instruction fetch from an MMIO window is refused.
func (m *Memory) FetchInstruction(cpuID int, va uint64, width int) (uint64, error) {
	c, err := m.processor(cpuID)
	if err != nil {
		return 0, err
	}

	pa, err := m.translate(c, va, width, false, true)
	if err != nil {
		return 0, err
	}

	area, _ := m.summary.MapAddress(pa)
	switch area {
	case memorymap.MMIO:
		return 0, curated.Errorf(faults.AccessViolation, va, "instruction fetch from device window")
	case memorymap.Unmapped:
		return 0, curated.Errorf(faults.BusError, pa)
	}

	return m.cachedRead(c, c.L1I, pa, width), nil
}

// WriteVirtual writes a value of the given width to a virtual address on
// behalf of a CPU. The write is not complete until every other CPU's
// stale copies are invalid; see the cache and smp packages.
func (m *Memory) WriteVirtual(cpuID int, va uint64, value uint64, width int) error {
	c, err := m.processor(cpuID)
	if err != nil {
		return err
	}

	pa, err := m.translate(c, va, width, true, false)
	if err != nil {
		return err
	}

	area, idx := m.summary.MapAddress(pa)
	switch area {
	case memorymap.MMIO:
		return m.device(idx).DeviceWrite(pa, value, width)
	case memorymap.Unmapped:
		return curated.Errorf(faults.BusError, pa)
	}

	m.cachedWrite(c, pa, value, width)
	return nil
}
