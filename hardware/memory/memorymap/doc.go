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

// Package memorymap holds the geometry of the emulated physical address
// space: page, cache line and reservation block sizes, alignment helpers,
// and the Summary type describing installed RAM and device windows.
//
// All other packages in the memory subsystem take their geometry from here
// so that there is exactly one definition of, for example, the reservation
// block granularity.
package memorymap
