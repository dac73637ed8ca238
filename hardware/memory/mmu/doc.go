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

// Package mmu implements the per-CPU translation unit: an ASN tagged
// translation buffer mapping virtual pages to physical pages.
//
// The unit is a cache of page table walk results, not a page table walker.
// The walk itself belongs to PALcode, outside the memory subsystem; its
// result is injected with InstallEntry(). A lookup that finds no entry
// returns a translation miss fault and a lookup that fails the protection
// check returns an access violation. The two are distinct because trap
// dispatch reports different exception codes for them.
//
// A TranslationUnit has no locking. Each instance belongs to exactly one
// CPU and is only ever touched from that CPU's executor goroutine.
// Invalidation requests from other CPUs are delivered through the SMP
// coordinator.
package mmu
