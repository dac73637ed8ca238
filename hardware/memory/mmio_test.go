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

package memory_test

import (
	"testing"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

// mockDevice is a one-register device model. every address in its window
// reads and writes the same register.
type mockDevice struct {
	register uint64
	reads    int
	writes   int
}

func (d *mockDevice) Label() string { return "mockdev" }

func (d *mockDevice) DeviceRead(pa uint64, width int) (uint64, error) {
	d.reads++
	return d.register, nil
}

func (d *mockDevice) DeviceWrite(pa uint64, value uint64, width int) error {
	d.writes++
	d.register = value
	return nil
}

const devBase = ramSize

// devRig is a rig with a device window immediately above RAM, mapped into
// every CPU's address space.
func devRig(t *testing.T, numCPUs int) (*rig, *mockDevice) {
	t.Helper()

	r := newRig(t, numCPUs)
	dev := &mockDevice{}
	test.DemandSuccess(t, r.mem.RegisterDevice(devBase, 0x2000, dev))

	for _, c := range r.cpus {
		c.MMU.InstallEntry(mmu.Entry{
			VirtualPage:  devBase,
			PhysicalPage: devBase,
			Flags:        mmu.KRE | mmu.KWE,
			Global:       true,
		})
	}
	return r, dev
}

func TestDeviceWindow(t *testing.T) {
	r, dev := devRig(t, 1)

	test.ExpectedSuccess(t, r.mem.WriteVirtual(0, devBase+0x10, 0xaa, 8))
	test.Equate(t, dev.writes, 1)
	test.Equate(t, dev.register, 0xaa)

	v, err := r.mem.ReadVirtual(0, devBase+0x10, 8)
	test.DemandSuccess(t, err)
	test.Equate(t, v, 0xaa)
	test.Equate(t, dev.reads, 1)

	// device accesses are never cached: a second read reaches the device
	// again
	_, err = r.mem.ReadVirtual(0, devBase+0x10, 8)
	test.DemandSuccess(t, err)
	test.Equate(t, dev.reads, 2)
}

func TestDeviceWindowUncachedByCPU(t *testing.T) {
	r, _ := devRig(t, 1)

	_, err := r.mem.ReadVirtual(0, devBase, 8)
	test.DemandSuccess(t, err)

	// nothing from the window landed in any cache level
	for _, l := range r.cpus[0].L1D.Lines() {
		if l.Addr >= devBase {
			t.Errorf("device line %#016x cached in L1D", l.Addr)
		}
	}
	for _, l := range r.cpus[0].L2.Lines() {
		if l.Addr >= devBase {
			t.Errorf("device line %#016x cached in L2", l.Addr)
		}
	}
}

func TestInstructionFetchFromDevice(t *testing.T) {
	r, _ := devRig(t, 1)

	_, err := r.mem.FetchInstruction(0, devBase, 4)
	test.Equate(t, curated.Is(err, faults.AccessViolation), true)
}

func TestInstructionFetchFromRAM(t *testing.T) {
	r := newRig(t, 1)
	r.identityMap(0x0000)

	test.ExpectedSuccess(t, r.mem.Poke(0x200, 0x47ff041f))

	v, err := r.mem.FetchInstruction(0, 0x200, 4)
	test.DemandSuccess(t, err)
	test.Equate(t, v, 0x47ff041f)

	// the fetch went through the instruction cache
	held := false
	for _, l := range r.cpus[0].L1I.Lines() {
		if l.Addr == 0x200 {
			held = true
		}
	}
	test.Equate(t, held, true)
}

func TestLoadLockedFromDevice(t *testing.T) {
	r, dev := devRig(t, 1)
	dev.register = 7

	// the device read succeeds but records no reservation
	v, err := r.mem.LoadLocked(0, devBase, 8)
	test.DemandSuccess(t, err)
	test.Equate(t, v, 7)

	// so a store-conditional to the window can never commit
	ok, err := r.mem.StoreConditional(0, devBase, 8, 8)
	test.DemandSuccess(t, err)
	test.ExpectedFailure(t, ok)
	test.Equate(t, dev.register, 7)
}

func TestLoadLockedFromDeviceDropsReservation(t *testing.T) {
	r, _ := devRig(t, 1)
	r.identityMap(0x0000)

	_, err := r.mem.LoadLocked(0, 0x1000, 8)
	test.DemandSuccess(t, err)

	// a later load-locked replaces the reservation even when it addresses
	// a device window that cannot hold one
	_, err = r.mem.LoadLocked(0, devBase, 8)
	test.DemandSuccess(t, err)

	ok, err := r.mem.StoreConditional(0, 0x1000, 1, 8)
	test.DemandSuccess(t, err)
	test.ExpectedFailure(t, ok)
}

func TestWindowValidation(t *testing.T) {
	r := newRig(t, 1)
	dev := &mockDevice{}

	// a window may not cover RAM
	test.ExpectedFailure(t, r.mem.RegisterDevice(0x1000, 0x100, dev))

	test.DemandSuccess(t, r.mem.RegisterDevice(devBase, 0x1000, dev))

	// windows may not overlap
	test.ExpectedFailure(t, r.mem.RegisterDevice(devBase+0x800, 0x1000, dev))
}
