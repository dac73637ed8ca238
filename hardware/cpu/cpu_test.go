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

package cpu_test

import (
	"testing"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/cpu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/bus"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

var testGeometry = cpu.Geometry{TLBEntries: 16, L1Sets: 4, L1Ways: 2, L2Sets: 16, L2Ways: 2}

// flatRAM implements bus.CacheFiller over a byte slice.
type flatRAM struct {
	data []byte
}

func (f *flatRAM) FillLine(pa uint64, data []byte) error {
	copy(data, f.data[pa:pa+memorymap.LineSize])
	return nil
}

func (f *flatRAM) DrainLine(pa uint64, data []byte) error {
	copy(f.data[pa:pa+memorymap.LineSize], data)
	return nil
}

func TestInterrupts(t *testing.T) {
	c := cpu.NewCPU(0, testGeometry)

	test.Equate(t, c.InterruptsPending(), false)
	_, ok := c.PendingInterrupt()
	test.ExpectedFailure(t, ok)

	c.RaiseInterrupt(3)
	c.RaiseInterrupt(40)
	c.RaiseInterrupt(7)
	test.Equate(t, c.InterruptsPending(), true)

	// delivery is by priority, highest vector first
	v, ok := c.PendingInterrupt()
	test.DemandSuccess(t, ok)
	test.Equate(t, v, 40)

	v, ok = c.PendingInterrupt()
	test.DemandSuccess(t, ok)
	test.Equate(t, v, 7)

	v, ok = c.PendingInterrupt()
	test.DemandSuccess(t, ok)
	test.Equate(t, v, 3)

	_, ok = c.PendingInterrupt()
	test.ExpectedFailure(t, ok)
}

func TestInterruptsDoNotQueue(t *testing.T) {
	c := cpu.NewCPU(0, testGeometry)

	// raising a pending vector again is a no-op
	c.RaiseInterrupt(5)
	c.RaiseInterrupt(5)

	_, ok := c.PendingInterrupt()
	test.DemandSuccess(t, ok)
	_, ok = c.PendingInterrupt()
	test.ExpectedFailure(t, ok)
}

func TestInterruptVectorRange(t *testing.T) {
	c := cpu.NewCPU(0, testGeometry)

	// out of range vectors are discarded
	c.RaiseInterrupt(-1)
	c.RaiseInterrupt(cpu.NumInterruptVectors)
	test.Equate(t, c.InterruptsPending(), false)
}

func TestTLBInvalidationQueue(t *testing.T) {
	c := cpu.NewCPU(0, testGeometry)

	c.MMU.InstallEntry(mmu.Entry{
		VirtualPage:  0x2000,
		PhysicalPage: 0x2000,
		Flags:        mmu.KRE,
		Global:       true,
	})

	// a posted invalidation is queued, not applied
	c.PostTLBInvalidate(mmu.ScopeAll())
	_, err := c.MMU.Translate(0x2000, 0, bus.Kernel, false, false)
	test.ExpectedSuccess(t, err)

	// draining applies it
	c.DrainTLBInvalidates()
	_, err = c.MMU.Translate(0x2000, 0, bus.Kernel, false, false)
	test.ExpectedFailure(t, err)
}

func TestSnoopSurface(t *testing.T) {
	ram := &flatRAM{data: make([]byte, 0x4000)}
	c := cpu.NewCPU(0, testGeometry)
	c.AttachMemory(ram)

	test.DemandSuccess(t, c.L1D.Fill(0x100, true))
	test.ExpectedSuccess(t, c.L1D.Write(0x100, 42, 8))

	// a remote write snoop drains the dirty line to RAM and invalidates
	// every level. entry is at the bottom of the hierarchy
	test.ExpectedSuccess(t, c.SnoopWrite(0x100, 8))
	test.Equate(t, memorymap.ReadValue(ram.data[0x100:], 8), 42)
	test.Equate(t, len(c.L1D.Lines()), 0)
	test.Equate(t, len(c.L2.Lines()), 0)

	// a snoop for an unheld range reports not held
	test.ExpectedFailure(t, c.SnoopRead(0x2000, 8))
}

func TestSnoopRangeSpansLines(t *testing.T) {
	ram := &flatRAM{data: make([]byte, 0x4000)}
	c := cpu.NewCPU(0, testGeometry)
	c.AttachMemory(ram)

	test.DemandSuccess(t, c.L1D.Fill(0x100, false))
	test.DemandSuccess(t, c.L1D.Fill(0x140, false))

	// a range crossing a line boundary touches both lines
	c.InvalidateCache(0x130, 0x20)
	test.Equate(t, len(c.L1D.Lines()), 0)
}

func TestHaltIsSticky(t *testing.T) {
	c := cpu.NewCPU(0, testGeometry)

	test.Equate(t, c.Halted(), false)
	c.Halt()
	test.Equate(t, c.Halted(), true)
}

func TestModeAndASN(t *testing.T) {
	c := cpu.NewCPU(0, testGeometry)

	test.Equate(t, c.Mode(), bus.Kernel)
	test.Equate(t, c.ASN(), 0)

	c.SetMode(bus.User)
	c.SetASN(9)
	test.Equate(t, c.Mode(), bus.User)
	test.Equate(t, c.ASN(), 9)
}
