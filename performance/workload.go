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

package performance

import (
	"sync/atomic"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
)

// the shared region lives in the first page; every CPU hammers it. the
// private regions follow, one page per CPU
const sharedBase = uint64(0x0000)

// Workload is a synthetic memory workload implementing the Executor
// interface. Each step is one memory operation: a write and read back of a
// CPU-private location, a read of the shared region, or a load-locked /
// store-conditional increment of a shared counter. The mix keeps the cache
// coherency and reservation machinery under contention, which is the
// behaviour worth measuring and profiling.
//
// The workload doubles as the machine's operating system: a translation
// miss faults back to the accessor, which installs the missing entry and
// retries. The footprint is two pages per CPU so misses are rare with
// realistic translation buffer sizes, but any size down to a single entry
// still makes progress.
type Workload struct {
	mc *hardware.Machine

	steps []int64
	stop  atomic.Bool
}

// NewWorkload is the preferred method of initialisation for the Workload
// type. Identity translations for each CPU's working set are installed
// up front.
func NewWorkload(mc *hardware.Machine) *Workload {
	w := &Workload{
		mc:    mc,
		steps: make([]int64, len(mc.CPUs)),
	}

	for _, c := range mc.CPUs {
		w.install(c.ID, sharedBase)
		w.install(c.ID, privatePage(c.ID))
	}

	return w
}

func privatePage(cpuID int) uint64 {
	return memorymap.PageSize * uint64(cpuID+1)
}

// install maps the page containing va with a kernel read/write identity
// translation. Called from the owning CPU's goroutine, or before Run()
// starts.
func (w *Workload) install(cpuID int, va uint64) {
	w.mc.CPUs[cpuID].MMU.InstallEntry(mmu.Entry{
		VirtualPage:  memorymap.PageBase(va),
		PhysicalPage: memorymap.PageBase(va),
		Flags:        mmu.KRE | mmu.KWE,
		Global:       true,
	})
}

// the accessors below stand in for an operating system's translation
// fault handler: on a miss the entry is reinstalled and the access retried
// once. any other error is the caller's problem.

func (w *Workload) read(cpuID int, va uint64) (uint64, error) {
	v, err := w.mc.Mem.ReadVirtual(cpuID, va, 8)
	if err != nil && curated.Is(err, faults.TranslationMiss) {
		w.install(cpuID, va)
		return w.mc.Mem.ReadVirtual(cpuID, va, 8)
	}
	return v, err
}

func (w *Workload) write(cpuID int, va uint64, value uint64) error {
	err := w.mc.Mem.WriteVirtual(cpuID, va, value, 8)
	if err != nil && curated.Is(err, faults.TranslationMiss) {
		w.install(cpuID, va)
		return w.mc.Mem.WriteVirtual(cpuID, va, value, 8)
	}
	return err
}

func (w *Workload) loadLocked(cpuID int, va uint64) (uint64, error) {
	v, err := w.mc.Mem.LoadLocked(cpuID, va, 8)
	if err != nil && curated.Is(err, faults.TranslationMiss) {
		w.install(cpuID, va)
		return w.mc.Mem.LoadLocked(cpuID, va, 8)
	}
	return v, err
}

func (w *Workload) storeConditional(cpuID int, va uint64, value uint64) (bool, error) {
	ok, err := w.mc.Mem.StoreConditional(cpuID, va, value, 8)
	if err != nil && curated.Is(err, faults.TranslationMiss) {
		w.install(cpuID, va)
		return w.mc.Mem.StoreConditional(cpuID, va, value, 8)
	}
	return ok, err
}

// Stop ends the workload: every CPU powers off at its next step.
func (w *Workload) Stop() {
	w.stop.Store(true)
}

// Steps returns the total number of steps taken by every CPU.
func (w *Workload) Steps() int64 {
	var n int64
	for i := range w.steps {
		n += atomic.LoadInt64(&w.steps[i])
	}
	return n
}

// Step implements the hardware.Executor interface.
func (w *Workload) Step(cpuID int) error {
	if w.stop.Load() {
		return curated.Errorf(hardware.PowerOff)
	}

	n := atomic.AddInt64(&w.steps[cpuID], 1)
	private := privatePage(cpuID)

	switch n % 4 {
	case 0:
		// private write, read back
		va := private + uint64(n%32)*8
		if err := w.write(cpuID, va, uint64(n)); err != nil {
			return err
		}
		v, err := w.read(cpuID, va)
		if err != nil {
			return err
		}
		if v != uint64(n) {
			return curated.Errorf("workload: cpu %d read %d, wrote %d", cpuID, v, n)
		}

	case 1, 2:
		// contended read of the shared region
		if _, err := w.read(cpuID, sharedBase+uint64(n%8)*8); err != nil {
			return err
		}

	case 3:
		// atomic increment of the shared counter. contention means the
		// store-conditional is allowed to fail; the increment is simply
		// retried on a later step
		v, err := w.loadLocked(cpuID, sharedBase)
		if err != nil {
			return err
		}
		if _, err := w.storeConditional(cpuID, sharedBase, v+1); err != nil {
			return err
		}
	}

	return nil
}

// Interrupt implements the hardware.Executor interface. The workload has no
// interrupt handlers; vectors are consumed and discarded.
func (w *Workload) Interrupt(cpuID int, vector int) error {
	return nil
}
