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

package bus

// Mode is the processor mode an access is made in. Translation protection
// checks differ between kernel and user mode.
type Mode int

func (m Mode) String() string {
	switch m {
	case Kernel:
		return "kernel"
	case User:
		return "user"
	}
	return "undefined"
}

// The processor modes recognised by the translation unit.
const (
	Kernel Mode = iota
	User
)

// BarrierKind is the strength of a memory barrier instruction.
type BarrierKind int

func (k BarrierKind) String() string {
	switch k {
	case LoadBarrier:
		return "load"
	case StoreBarrier:
		return "store"
	case FullBarrier:
		return "full"
	}
	return "undefined"
}

// The memory barrier kinds. A load or store barrier orders the issuing
// CPU's own accesses. The full barrier additionally waits until every
// coherency broadcast in flight anywhere in the machine has been applied.
const (
	LoadBarrier BarrierKind = iota
	StoreBarrier
	FullBarrier
)

// CPUBus defines the operations of the memory subsystem as seen from
// instruction execution and trap dispatch. All addresses are virtual and
// are translated through the named CPU's translation unit.
type CPUBus interface {
	TranslateAddress(cpu int, va uint64, write bool, instruction bool) (uint64, error)
	ReadVirtual(cpu int, va uint64, width int) (uint64, error)
	WriteVirtual(cpu int, va uint64, value uint64, width int) error
	LoadLocked(cpu int, va uint64, width int) (uint64, error)
	StoreConditional(cpu int, va uint64, value uint64, width int) (bool, error)
	ExecuteMemoryBarrier(cpu int, kind BarrierKind) error
}

// DeviceBus is implemented by device models that register an MMIO window
// with the memory system. Accesses that resolve inside the window are
// routed here and are never cached.
type DeviceBus interface {
	Label() string
	DeviceRead(pa uint64, width int) (uint64, error)
	DeviceWrite(pa uint64, value uint64, width int) error
}

// CacheFiller is the fill/writeback target below the lowest cache level.
// The memory system implements it with physical RAM. Both functions operate
// on whole cache lines: data is always exactly one line long and pa is
// always line aligned.
type CacheFiller interface {
	FillLine(pa uint64, data []byte) error
	DrainLine(pa uint64, data []byte) error
}

// DebugBus defines the "meta" operations used by the monitor. Peek and Poke
// are outside the normal operation of the machine: they access physical
// memory directly, although Peek will retrieve the freshest copy of a line
// if a cache somewhere holds it dirty.
type DebugBus interface {
	Peek(pa uint64) (uint64, error)
	Poke(pa uint64, value uint64) error
}
