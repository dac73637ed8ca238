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
	"sync"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/cpu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/bus"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/reservation"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/smp"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/logger"
)

// Memory is the memory system of the emulated machine. It owns physical
// RAM and the device window table, and it is the single point through
// which every CPU performs virtual reads and writes. Per-CPU structures
// (translation units, caches) are owned by the CPUs themselves; Memory
// reaches them only through the CPU attached for the duration.
type Memory struct {
	// busCrit serialises coherency transactions: line fills, write
	// broadcasts and LL/SC sequences. Cache hits do not take it. Without
	// this arbitration two CPUs writing the same line concurrently could
	// both install a Modified copy, which is exactly the state the
	// coherency invariant forbids
	busCrit sync.Mutex

	// ramCrit guards the RAM byte slice itself. line fills and drains from
	// different CPUs may otherwise race on overlapping lines
	ramCrit sync.Mutex
	ram     []byte

	summary memorymap.Summary
	devices map[uint64]bus.DeviceBus

	res   *reservation.Tracker
	coord *smp.Coordinator

	cpuCrit sync.Mutex
	cpus    map[int]*cpu.CPU
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The RAM size is rounded up to a whole number of cache lines.
func NewMemory(ramSize uint64, res *reservation.Tracker, coord *smp.Coordinator) *Memory {
	ramSize = (ramSize + memorymap.LineSize - 1) & memorymap.LineMask

	m := &Memory{
		ram:     make([]byte, ramSize),
		devices: make(map[uint64]bus.DeviceBus),
		res:     res,
		coord:   coord,
		cpus:    make(map[int]*cpu.CPU),
	}
	m.summary.RAMTop = ramSize

	return m
}

// Summary returns a copy of the physical address space description.
func (m *Memory) Summary() memorymap.Summary {
	sm := m.summary
	sm.Windows = append([]memorymap.Window(nil), m.summary.Windows...)
	return sm
}

// AttachCPU connects a CPU to the memory system: the bottom of the CPU's
// cache hierarchy is wired to RAM and the CPU becomes addressable on the
// CPU bus.
func (m *Memory) AttachCPU(c *cpu.CPU) {
	m.cpuCrit.Lock()
	defer m.cpuCrit.Unlock()

	c.AttachMemory(m)
	m.cpus[c.ID] = c
}

// DetachCPU removes a CPU from the CPU bus. The CPU's caches are flushed
// of dirty data first so nothing is lost with it.
func (m *Memory) DetachCPU(id int) error {
	m.cpuCrit.Lock()
	c, ok := m.cpus[id]
	m.cpuCrit.Unlock()

	if !ok {
		return curated.Errorf(faults.UnknownCPU, id)
	}

	// drain the departing CPU's dirty lines back to RAM
	for _, l := range c.L2.Lines() {
		c.L2.FlushLine(l.Addr)
	}
	for _, l := range c.L1D.Lines() {
		c.L1D.FlushLine(l.Addr)
	}

	m.cpuCrit.Lock()
	delete(m.cpus, id)
	m.cpuCrit.Unlock()

	return nil
}

// processor returns the attached CPU with the id.
func (m *Memory) processor(id int) (*cpu.CPU, error) {
	m.cpuCrit.Lock()
	defer m.cpuCrit.Unlock()

	c, ok := m.cpus[id]
	if !ok {
		return nil, curated.Errorf(faults.UnknownCPU, id)
	}
	return c, nil
}

// RegisterDevice adds a device window to the physical address space.
// Accesses falling inside the window are routed to the device and are
// never cached.
func (m *Memory) RegisterDevice(base uint64, size uint64, dev bus.DeviceBus) error {
	w := memorymap.Window{Base: base, Size: size, Label: dev.Label()}
	if err := m.summary.AddWindow(w); err != nil {
		return curated.Errorf("memory: %v", err)
	}
	m.devices[base] = dev

	logger.Logf(logger.Allow, "memory", "device window: %s", w)
	return nil
}

// device returns the device registered for the window index.
func (m *Memory) device(windowIdx int) bus.DeviceBus {
	return m.devices[m.summary.Windows[windowIdx].Base]
}

// FillLine implements bus.CacheFiller: a cache at the bottom of a chain
// reads a whole line from RAM.
//
// An MMIO address arriving here means a cache tried to fill from a device
// window. Device registers must never be cached so this is a fatal wiring
// bug, not an emulation error.
func (m *Memory) FillLine(pa uint64, data []byte) error {
	area, _ := m.summary.MapAddress(pa)
	switch area {
	case memorymap.MMIO:
		panic("memory: cache line fill from MMIO window")
	case memorymap.Unmapped:
		return curated.Errorf(faults.BusError, pa)
	}

	m.ramCrit.Lock()
	defer m.ramCrit.Unlock()

	copy(data, m.ram[pa:pa+memorymap.LineSize])
	return nil
}

// DrainLine implements bus.CacheFiller: a cache at the bottom of a chain
// writes a whole line back to RAM.
func (m *Memory) DrainLine(pa uint64, data []byte) error {
	area, _ := m.summary.MapAddress(pa)
	switch area {
	case memorymap.MMIO:
		panic("memory: cache line writeback to MMIO window")
	case memorymap.Unmapped:
		return curated.Errorf(faults.BusError, pa)
	}

	m.ramCrit.Lock()
	defer m.ramCrit.Unlock()

	copy(m.ram[pa:pa+memorymap.LineSize], data)
	return nil
}

// readRAM and writeRAM access RAM directly, bypassing the cache
// hierarchy. Used for MMIO-free physical access: DMA and the debugging
// bus.
func (m *Memory) readRAM(pa uint64, width int) uint64 {
	m.ramCrit.Lock()
	defer m.ramCrit.Unlock()

	return memorymap.ReadValue(m.ram[pa:], width)
}

func (m *Memory) writeRAM(pa uint64, value uint64, width int) {
	m.ramCrit.Lock()
	defer m.ramCrit.Unlock()

	memorymap.WriteValue(m.ram[pa:], value, width)
}

// WritePhysical performs an uncached physical write on behalf of a device
// (DMA, for example). Cached copies of the affected lines are dropped on
// every CPU and conflicting reservations cleared.
func (m *Memory) WritePhysical(pa uint64, value uint64, width int) error {
	area, idx := m.summary.MapAddress(pa)
	switch area {
	case memorymap.MMIO:
		return m.device(idx).DeviceWrite(pa, value, width)
	case memorymap.Unmapped:
		return curated.Errorf(faults.BusError, pa)
	}

	if pa+uint64(width) > m.summary.RAMTop {
		return curated.Errorf(faults.BusError, pa)
	}

	m.writeRAM(pa, value, width)
	m.coord.BroadcastCacheInvalidate(pa, uint64(width), -1)
	return nil
}

// ReadPhysical performs an uncached physical read on behalf of a device.
// Dirty cached copies are written back first so the device sees the
// freshest data.
func (m *Memory) ReadPhysical(pa uint64, width int) (uint64, error) {
	area, idx := m.summary.MapAddress(pa)
	switch area {
	case memorymap.MMIO:
		return m.device(idx).DeviceRead(pa, width)
	case memorymap.Unmapped:
		return 0, curated.Errorf(faults.BusError, pa)
	}

	if pa+uint64(width) > m.summary.RAMTop {
		return 0, curated.Errorf(faults.BusError, pa)
	}

	m.coord.SnoopReadFill(pa, uint64(width), -1)
	return m.readRAM(pa, width), nil
}

// Peek implements bus.DebugBus. It reads eight bytes of physical RAM,
// retrieving the freshest copy if a cache somewhere holds the line dirty.
// Outside the normal operation of the machine.
func (m *Memory) Peek(pa uint64) (uint64, error) {
	area, _ := m.summary.MapAddress(pa)
	if area != memorymap.RAM || pa+8 > m.summary.RAMTop {
		return 0, curated.Errorf(faults.BusError, pa)
	}

	m.coord.SnoopReadFill(pa, 8, -1)
	return m.readRAM(pa, 8), nil
}

// Poke implements bus.DebugBus. It writes eight bytes of physical RAM,
// dropping any cached copies. Outside the normal operation of the
// machine.
func (m *Memory) Poke(pa uint64, value uint64) error {
	area, _ := m.summary.MapAddress(pa)
	if area != memorymap.RAM || pa+8 > m.summary.RAMTop {
		return curated.Errorf(faults.BusError, pa)
	}

	m.writeRAM(pa, value, 8)
	m.coord.BroadcastCacheInvalidate(pa, 8, -1)
	return nil
}
