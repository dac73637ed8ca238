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

// Package faults defines the error patterns raised by the memory subsystem.
// The patterns are used with the curated error package. Callers that need to
// raise different processor exceptions for different failures (the trap
// dispatcher in particular) test for them with curated.Is() or curated.Has().
//
// A translation miss is recoverable: the caller walks the page table,
// installs the resulting entry with InstallEntry() on the relevant
// translation unit and retries. An access violation or alignment fault is
// always surfaced to the emulated program as a trap. A barrier timeout
// indicates that a CPU failed to arrive at a synchronisation barrier, most
// likely because it has halted.
package faults

// Error patterns for the memory subsystem. To be used in conjunction with
// curated.Errorf() and curated.Is().
const (
	TranslationMiss = "translation miss: va %#016x (asn %d)"
	AccessViolation = "access violation: va %#016x (%s)"
	AlignmentFault  = "alignment fault: va %#016x (width %d)"
	BarrierTimeout  = "barrier timeout: barrier %d (cpu %d)"
	UnknownCPU      = "unknown cpu: %d"
	BusError        = "bus error: pa %#016x"
)
