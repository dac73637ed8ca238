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

package memorymap

import (
	"fmt"
	"sort"
	"strings"
)

// Window describes a device window in the physical address space. MMIO
// windows are never cached. A physical access that falls inside a window is
// routed to the registered device and bypasses the cache hierarchy
// completely.
type Window struct {
	Base  uint64
	Size  uint64
	Label string
}

// Contains tests whether the address falls inside the window.
func (w Window) Contains(addr uint64) bool {
	return addr >= w.Base && addr < w.Base+w.Size
}

// Overlaps tests whether the two windows share any addresses.
func (w Window) Overlaps(v Window) bool {
	return w.Base < v.Base+v.Size && v.Base < w.Base+w.Size
}

func (w Window) String() string {
	return fmt.Sprintf("%s: %#016x to %#016x", w.Label, w.Base, w.Base+w.Size-1)
}

// Summary is the map of the physical address space: the extent of installed
// RAM and the table of device windows. The zero value is a map with no RAM
// and no windows.
type Summary struct {
	RAMTop  uint64
	Windows []Window
}

// MapAddress returns the area of the physical address space the address
// falls in and, for MMIO, the index of the matching window.
func (sm *Summary) MapAddress(addr uint64) (Area, int) {
	for i := range sm.Windows {
		if sm.Windows[i].Contains(addr) {
			return MMIO, i
		}
	}
	if addr < sm.RAMTop {
		return RAM, -1
	}
	return Unmapped, -1
}

// AddWindow adds a device window to the summary. Windows may not overlap
// one another and may not cover RAM.
func (sm *Summary) AddWindow(w Window) error {
	if w.Size == 0 {
		return fmt.Errorf("memorymap: zero sized window (%s)", w.Label)
	}
	if w.Base < sm.RAMTop {
		return fmt.Errorf("memorymap: window overlaps RAM (%s)", w.Label)
	}
	for i := range sm.Windows {
		if sm.Windows[i].Overlaps(w) {
			return fmt.Errorf("memorymap: window overlaps %s (%s)", sm.Windows[i].Label, w.Label)
		}
	}

	sm.Windows = append(sm.Windows, w)
	sort.Slice(sm.Windows, func(i, j int) bool {
		return sm.Windows[i].Base < sm.Windows[j].Base
	})

	return nil
}

func (sm *Summary) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("RAM: %#016x to %#016x\n", 0, sm.RAMTop-1))
	for i := range sm.Windows {
		s.WriteString(sm.Windows[i].String())
		s.WriteString("\n")
	}
	return s.String()
}
