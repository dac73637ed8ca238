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

// Package memory is the memory system of the emulated machine.
//
//	    CPU executors ---- cpu bus ---- MEMORY ---- device bus ---- DEVICES
//	                                       |
//	     (translation,                     |
//	      caches, LL/SC)              debugger bus
//	                                       |
//	                                       |
//	                                    MONITOR
//
// Every CPU's virtual read or write enters through this package: the
// address is translated by the CPU's own translation unit, then serviced
// from the CPU's cache hierarchy, filling from RAM on a miss. Addresses
// that resolve into a registered device window bypass the caches entirely
// and are routed over the device bus.
//
// Writes are coherency transactions. Before a write is considered
// complete, every other CPU's copy of the affected line is invalid and
// every conflicting load-locked reservation is cleared; the smp package
// does the fan-out. Transactions are serialised by a bus arbitration
// lock, which is what makes the protocol linearizable; cache hits bypass
// arbitration.
package memory
