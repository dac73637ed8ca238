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

// Package cache implements the coherent cache hierarchy of a single CPU:
// split L1 data and instruction caches above a unified L2, all with
// settable associativity and 64 byte lines.
//
// Coherency follows a MESI-style protocol. State transitions are driven
// only by local reads and writes and by snoop messages arriving from the
// SMP coordinator on behalf of other CPUs:
//
//	Invalid   --LocalRead-->  Shared (Exclusive if no other CPU holds it)
//	Invalid   --LocalWrite--> Modified (write-allocate)
//	Exclusive --LocalWrite--> Modified (no broadcast needed)
//	Shared    --LocalWrite--> Modified (after the write broadcast)
//	Modified  --SnoopRead-->  Shared  (writeback first)
//	any       --SnoopWrite--> Invalid (writeback first if Modified)
//	Modified  --Evict-->      Invalid (writeback first)
//
// A Modified line is never dropped: eviction and snooping write it back
// through the chain, and a Modified line with no reachable writeback
// target is a fatal invariant violation, not an error to be returned.
//
// MMIO windows are never cached. The memory system routes device accesses
// around the hierarchy entirely; the cache never sees those addresses.
package cache
