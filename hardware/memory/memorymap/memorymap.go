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

// Area represents the different areas of the physical address space.
type Area int

func (a Area) String() string {
	switch a {
	case RAM:
		return "RAM"
	case MMIO:
		return "MMIO"
	case Unmapped:
		return "Unmapped"
	}

	return "undefined"
}

// The different areas of the physical address space. An address maps to MMIO
// if it falls inside a registered device window, to RAM if it is below the
// top of installed memory, and to Unmapped otherwise.
const (
	Undefined Area = iota
	RAM
	MMIO
	Unmapped
)

// Fixed geometry of the memory subsystem.
//
// PageSize is the 8KB page of the emulated architecture. LineSize is the
// cache line size used by every cache level. ReservationSize is the
// granularity of the load-locked reservation: a store-conditional succeeds
// only if it falls in the same ReservationSize-aligned block as the
// originating load-locked.
const (
	PageSize        = uint64(0x2000)
	PageMask        = ^uint64(PageSize - 1)
	LineSize        = uint64(64)
	LineMask        = ^uint64(LineSize - 1)
	ReservationSize = uint64(16)
	ReservationMask = ^uint64(ReservationSize - 1)
)

// PageBase returns the base address of the page containing the address.
func PageBase(addr uint64) uint64 {
	return addr & PageMask
}

// PageOffset returns the offset of the address into its page.
func PageOffset(addr uint64) uint64 {
	return addr & (PageSize - 1)
}

// LineBase returns the base address of the cache line containing the address.
func LineBase(addr uint64) uint64 {
	return addr & LineMask
}

// BlockBase returns the base address of the reservation block containing the
// address.
func BlockBase(addr uint64) uint64 {
	return addr & ReservationMask
}

// Aligned tests whether the address is naturally aligned for an access of
// the given width. The architecture requires natural alignment for all
// widths (1, 2, 4 and 8 bytes).
func Aligned(addr uint64, width int) bool {
	return addr&uint64(width-1) == 0
}
