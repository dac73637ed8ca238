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

package hardware

import (
	"fmt"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/cpu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/reservation"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/preferences"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/smp"
)

// Machine is the main container for the emulated components of the
// system. It is the sole owner of every component: CPUs, the memory
// system, the SMP coordinator and the reservation tracker. Components
// refer to one another by CPU id, resolved through the machine or the
// coordinator at call time; nothing in the tree holds a cycle of
// pointers.
type Machine struct {
	Prefs *preferences.Preferences

	Res   *reservation.Tracker
	Coord *smp.Coordinator
	Mem   *memory.Memory
	CPUs  []*cpu.CPU
}

// NewMachine creates a new machine and everything associated with the
// hardware.
func NewMachine(prefs *preferences.Preferences) (*Machine, error) {
	if prefs == nil {
		prefs = preferences.NewPreferences()
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	mc := &Machine{Prefs: prefs}

	mc.Res = reservation.NewTracker(prefs.NumCPUs)
	mc.Coord = smp.NewCoordinator(mc.Res)
	mc.Mem = memory.NewMemory(prefs.RAMSize, mc.Res, mc.Coord)

	geo := cpu.Geometry{
		TLBEntries: prefs.TLBEntries,
		L1Sets:     prefs.L1Sets,
		L1Ways:     prefs.L1Ways,
		L2Sets:     prefs.L2Sets,
		L2Ways:     prefs.L2Ways,
	}

	for i := 0; i < prefs.NumCPUs; i++ {
		c := cpu.NewCPU(i, geo)
		mc.CPUs = append(mc.CPUs, c)
		mc.Mem.AttachCPU(c)
		if err := mc.Coord.Register(i, c); err != nil {
			return nil, err
		}
	}

	return mc, nil
}

// CPU returns the CPU with the id.
func (mc *Machine) CPU(id int) (*cpu.CPU, error) {
	if id < 0 || id >= len(mc.CPUs) {
		return nil, curated.Errorf(faults.UnknownCPU, id)
	}
	return mc.CPUs[id], nil
}

// RegisterCPU returns a previously deregistered CPU to service: it
// rejoins every broadcast fan-out list and barrier population and
// reconnects to the memory system.
func (mc *Machine) RegisterCPU(id int) error {
	c, err := mc.CPU(id)
	if err != nil {
		return err
	}

	mc.Mem.AttachCPU(c)
	return mc.Coord.Register(id, c)
}

// DeregisterCPU takes a CPU out of service: dirty cache lines drain back
// to RAM, its reservation is dropped, and it leaves every broadcast
// fan-out list and barrier population. Any barrier left waiting only on
// this CPU is released.
func (mc *Machine) DeregisterCPU(id int) error {
	c, err := mc.CPU(id)
	if err != nil {
		return err
	}

	c.Halt()
	if err := mc.Coord.Deregister(id); err != nil {
		return err
	}
	return mc.Mem.DetachCPU(id)
}

// Topology is the read-only description of one CPU's place in the
// machine.
type Topology struct {
	ID      int
	Label   string
	NumCPUs int
	Online  bool
}

func (tp Topology) String() string {
	online := "online"
	if !tp.Online {
		online = "offline"
	}
	return fmt.Sprintf("%s: %s (%d of %d cpus)", tp.Label, online, tp.ID+1, tp.NumCPUs)
}

// GetCPUTopology returns the descriptive topology data for a CPU.
func (mc *Machine) GetCPUTopology(id int) (Topology, error) {
	c, err := mc.CPU(id)
	if err != nil {
		return Topology{}, err
	}

	online := false
	for _, r := range mc.Coord.Registered() {
		if r == id {
			online = true
			break
		}
	}

	return Topology{
		ID:      id,
		Label:   c.Label(),
		NumCPUs: len(mc.CPUs),
		Online:  online,
	}, nil
}

// Reset returns the machine to its power-on state: translation buffers
// and caches empty, reservations cleared. RAM contents are preserved, as
// they would be on a real warm reset.
func (mc *Machine) Reset() error {
	for _, c := range mc.CPUs {
		c.DrainTLBInvalidates()
		c.MMU.Invalidate(mmu.ScopeAll())
		c.InvalidateCache(0, mc.Prefs.RAMSize)
		mc.Res.Clear(c.ID)
	}
	return nil
}
