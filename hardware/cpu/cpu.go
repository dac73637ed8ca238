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
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/bus"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/cache"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
)

// Geometry describes the private memory structures built for a CPU.
type Geometry struct {
	TLBEntries int
	L1Sets     int
	L1Ways     int
	L2Sets     int
	L2Ways     int
}

// CPU is the privileged state of one emulated processor, as far as the
// memory subsystem is concerned: the translation unit, the private cache
// hierarchy, the current ASN and processor mode, and the pending interrupt
// set. Instruction decoding and the register file live elsewhere and drive
// this state through the memory system.
type CPU struct {
	ID    int
	label string

	MMU *mmu.TranslationUnit
	L1D *cache.Cache
	L1I *cache.Cache
	L2  *cache.Cache

	// asn and mode are owned by the CPU's executor goroutine
	asn  uint8
	mode bus.Mode

	// interrupt vectors 0 to 63 as a bitmask. written from any goroutine,
	// consumed at the executor's interrupt check points
	interrupts atomic.Uint64

	halted atomic.Bool

	// translation buffer invalidations broadcast by other CPUs are queued
	// here and applied from the owner's goroutine. the translation unit
	// itself is never touched from outside the owner
	tlbCrit    sync.Mutex
	pendingTLB []mmu.Scope
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// cache hierarchy is created and chained here; the bottom of the chain is
// connected to physical memory with AttachMemory().
func NewCPU(id int, geo Geometry) *CPU {
	c := &CPU{
		ID:    id,
		label: fmt.Sprintf("cpu%d", id),
	}

	c.MMU = mmu.NewTranslationUnit(fmt.Sprintf("%s tb", c.label), geo.TLBEntries)

	// one mutex for the whole chain. the chain is a single coherency domain
	crit := &sync.Mutex{}
	c.L2 = cache.NewCache(fmt.Sprintf("%s L2", c.label), geo.L2Sets, geo.L2Ways, crit)
	c.L1D = cache.NewCache(fmt.Sprintf("%s L1D", c.label), geo.L1Sets, geo.L1Ways, crit)
	c.L1I = cache.NewCache(fmt.Sprintf("%s L1I", c.label), geo.L1Sets, geo.L1Ways, crit)
	c.L1D.SetNextLevel(c.L2)
	c.L1I.SetNextLevel(c.L2)

	return c
}

// Label returns the label assigned to the CPU.
func (c *CPU) Label() string {
	return c.label
}

// AttachMemory connects the bottom of the cache hierarchy to physical
// memory.
func (c *CPU) AttachMemory(filler bus.CacheFiller) {
	c.L2.SetFiller(filler)
}

// SetASN installs a new address space number. Called on context switch,
// from the CPU's own executor only.
func (c *CPU) SetASN(asn uint8) {
	c.asn = asn
}

// ASN returns the current address space number.
func (c *CPU) ASN() uint8 {
	return c.asn
}

// SetMode changes the processor mode. From the CPU's own executor only.
func (c *CPU) SetMode(mode bus.Mode) {
	c.mode = mode
}

// Mode returns the current processor mode.
func (c *CPU) Mode() bus.Mode {
	return c.mode
}

// Halt marks the CPU as halted. A halted CPU no longer participates in
// barrier synchronisation.
func (c *CPU) Halt() {
	c.halted.Store(true)
}

// Halted returns whether the CPU has halted.
func (c *CPU) Halted() bool {
	return c.halted.Load()
}

// forEachLine visits every cache-line-aligned address touched by the
// range.
func forEachLine(pa uint64, size uint64, f func(lineAddr uint64)) {
	if size == 0 {
		return
	}
	for a := memorymap.LineBase(pa); a <= memorymap.LineBase(pa + size - 1); a += memorymap.LineSize {
		f(a)
	}
}
