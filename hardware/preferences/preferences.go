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

// Package preferences defines the construction-time geometry of the
// emulated machine. Values not set explicitly take the defaults, which
// describe a small but realistic SMP machine.
package preferences

import (
	"time"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
)

// Preferences is the machine geometry: how many CPUs, how much RAM, the
// shape of the caches and translation buffers, and how long a CPU may
// wait at a barrier before concluding that a peer has died.
type Preferences struct {
	NumCPUs int
	RAMSize uint64

	TLBEntries int

	L1Sets int
	L1Ways int
	L2Sets int
	L2Ways int

	BarrierTimeout time.Duration
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. All fields are set to their defaults.
func NewPreferences() *Preferences {
	return &Preferences{
		NumCPUs:        2,
		RAMSize:        8 * 1024 * 1024,
		TLBEntries:     48,
		L1Sets:         64,
		L1Ways:         2,
		L2Sets:         256,
		L2Ways:         4,
		BarrierTimeout: 5 * time.Second,
	}
}

// Validate checks the preferences describe a machine that can be built.
func (p *Preferences) Validate() error {
	if p.NumCPUs < 1 {
		return curated.Errorf("preferences: at least one cpu required (%d)", p.NumCPUs)
	}
	if p.RAMSize == 0 {
		return curated.Errorf("preferences: no RAM")
	}
	if p.TLBEntries < 1 {
		return curated.Errorf("preferences: invalid TLB size (%d)", p.TLBEntries)
	}
	for _, s := range []int{p.L1Sets, p.L2Sets} {
		if s <= 0 || s&(s-1) != 0 {
			return curated.Errorf("preferences: cache sets must be a power of two (%d)", s)
		}
	}
	if p.L1Ways < 1 || p.L2Ways < 1 {
		return curated.Errorf("preferences: caches need at least one way")
	}
	if p.BarrierTimeout <= 0 {
		return curated.Errorf("preferences: barrier timeout must be positive")
	}
	return nil
}
