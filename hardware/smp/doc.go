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

// Package smp implements the coordinator that ties the emulated CPUs into
// one machine: cache and translation buffer invalidation broadcast,
// inter-processor interrupts and barrier synchronisation.
//
// The coordinator addresses CPUs by small integer id through the Processor
// interface. It never owns CPU state and holds no references into the
// memory system other than the shared reservation tracker, which keeps the
// component graph acyclic: the machine owns everything, the coordinator
// dispatches.
//
// Coherency broadcasts complete synchronously with respect to the caller.
// There is no cancellation of an in-flight broadcast. Interrupt delivery
// is the one asynchronous operation: PostInterrupt() guarantees only that
// the vector is visible to the target before returning; dispatch happens
// at the target's own next interrupt check.
package smp
