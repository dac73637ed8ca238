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

// Package cpu models the per-processor state owned by the memory
// subsystem: the translation unit, the private cache hierarchy, the ASN
// and processor mode, and the pending interrupt set.
//
// A CPU's translation unit and caches belong to that CPU alone. The only
// cross-goroutine traffic is the coherency surface in coherency.go and the
// interrupt set in interrupts.go, both of which are driven by the SMP
// coordinator.
package cpu
