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

package smp

import (
	"sort"
	"sync"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/reservation"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/logger"
)

// Processor is the coordinator's view of a registered CPU: the coherency
// surface it fans broadcasts out to. Implemented by the cpu package.
type Processor interface {
	Label() string
	SnoopWrite(pa uint64, size uint64) bool
	SnoopRead(pa uint64, size uint64) bool
	InvalidateCache(pa uint64, size uint64)
	PostTLBInvalidate(scope mmu.Scope)
	RaiseInterrupt(vector int)
}

// Coordinator fans cache and translation buffer invalidation,
// inter-processor interrupts and barrier synchronisation out across every
// registered CPU. It is the only component in the machine that may address
// "all CPUs".
//
// The coordinator holds no CPU state of its own: it maps CPU ids to the
// Processor surface and nothing more. Broadcasts are synchronous with
// respect to the caller: when a broadcast function returns, the message
// has been applied to every target.
type Coordinator struct {
	crit sync.Mutex

	procs map[int]Processor
	res   *reservation.Tracker

	// count of broadcasts currently in flight, and the signal for it
	// reaching zero. drained by the full memory barrier
	inflight     int
	inflightDone *sync.Cond

	barriers map[int]*barrier
}

// NewCoordinator is the preferred method of initialisation for the
// Coordinator type. The reservation tracker is shared with the memory
// system: remote writes invalidate conflicting reservations as part of the
// write broadcast.
func NewCoordinator(res *reservation.Tracker) *Coordinator {
	co := &Coordinator{
		procs:    make(map[int]Processor),
		res:      res,
		barriers: make(map[int]*barrier),
	}
	co.inflightDone = sync.NewCond(&co.crit)
	return co
}

// Register adds a CPU to every broadcast fan-out list.
func (co *Coordinator) Register(id int, proc Processor) error {
	co.crit.Lock()
	defer co.crit.Unlock()

	if _, ok := co.procs[id]; ok {
		return curated.Errorf("smp: cpu %d already registered", id)
	}
	co.procs[id] = proc

	logger.Logf(logger.Allow, "smp", "%s registered", proc.Label())
	return nil
}

// Deregister removes a CPU from every broadcast fan-out list, drops its
// reservation and releases its barrier slots. Any barrier now waiting only
// on departed CPUs is released.
func (co *Coordinator) Deregister(id int) error {
	co.crit.Lock()
	defer co.crit.Unlock()

	proc, ok := co.procs[id]
	if !ok {
		return curated.Errorf(faults.UnknownCPU, id)
	}
	delete(co.procs, id)
	co.res.Clear(id)

	// a departed CPU can no longer arrive at a barrier. barriers whose
	// remaining expectation is already met are released now
	for bid, b := range co.barriers {
		if b.arrived >= len(co.procs) {
			delete(co.barriers, bid)
			close(b.release)
		}
	}

	logger.Logf(logger.Allow, "smp", "%s deregistered", proc.Label())
	return nil
}

// Registered returns the ids of the registered CPUs, sorted.
func (co *Coordinator) Registered() []int {
	co.crit.Lock()
	defer co.crit.Unlock()

	ids := make([]int, 0, len(co.procs))
	for id := range co.procs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// targets snapshots the fan-out list, excluding the source CPU, and opens
// a broadcast transaction on the in-flight ledger.
func (co *Coordinator) targets(source int) []Processor {
	co.crit.Lock()
	defer co.crit.Unlock()

	t := make([]Processor, 0, len(co.procs))
	for id, p := range co.procs {
		if id != source {
			t = append(t, p)
		}
	}
	co.inflight++
	return t
}

// done closes a broadcast transaction.
func (co *Coordinator) done() {
	co.crit.Lock()
	defer co.crit.Unlock()

	co.inflight--
	if co.inflight == 0 {
		co.inflightDone.Broadcast()
	}
}

// BroadcastWriteInvalidate announces a write by the source CPU. Every
// other CPU's caches invalidate their copies of the affected lines
// (writing Modified data back first) and every conflicting reservation is
// cleared. Fully applied before the function returns: the write that
// triggered the broadcast must not be considered complete until then.
func (co *Coordinator) BroadcastWriteInvalidate(pa uint64, size uint64, source int) {
	defer co.done()
	for _, p := range co.targets(source) {
		p.SnoopWrite(pa, size)
	}
	co.res.InvalidateRange(pa, size)
}

// SnoopReadFill announces a read by the source CPU that is about to fill a
// line. Remote Modified copies write back and every remote copy downgrades
// to Shared. The return value is the number of CPUs that held a copy: zero
// means the source may install the line Exclusive.
func (co *Coordinator) SnoopReadFill(pa uint64, size uint64, source int) int {
	defer co.done()
	held := 0
	for _, p := range co.targets(source) {
		if p.SnoopRead(pa, size) {
			held++
		}
	}
	return held
}

// BroadcastCacheInvalidate drops cached copies of the range on every CPU
// without writeback, the source included if it is a registered CPU. Used
// by devices after DMA into RAM; pass a source of -1 for a pure device
// transfer.
func (co *Coordinator) BroadcastCacheInvalidate(pa uint64, size uint64, source int) {
	defer co.done()
	for _, p := range co.targets(-1) {
		p.InvalidateCache(pa, size)
	}
	co.res.InvalidateRange(pa, size)
	logger.Logf(logger.Allow, "smp", "cache invalidate: pa %#016x size %d (source %d)", pa, size, source)
}

// BroadcastTLBInvalidate posts a translation buffer invalidation to every
// CPU except the source. The source CPU is expected to have applied the
// invalidation to its own translation unit already, synchronously with the
// privileged instruction that requested it.
func (co *Coordinator) BroadcastTLBInvalidate(scope mmu.Scope, source int) {
	defer co.done()
	for _, p := range co.targets(source) {
		p.PostTLBInvalidate(scope)
	}
}

// DrainBroadcasts blocks until every broadcast in flight anywhere in the
// machine has completed. The blocking half of the full memory barrier.
// Only ever blocks the calling CPU.
func (co *Coordinator) DrainBroadcasts() {
	co.crit.Lock()
	defer co.crit.Unlock()

	for co.inflight > 0 {
		co.inflightDone.Wait()
	}
}

// PostInterrupt delivers an interrupt vector to one CPU. The vector is
// visible to the target before the function returns; the target CPU
// dispatches it at its own next interrupt check point.
func (co *Coordinator) PostInterrupt(source int, target int, vector int) error {
	co.crit.Lock()
	p, ok := co.procs[target]
	co.crit.Unlock()

	if !ok {
		return curated.Errorf(faults.UnknownCPU, target)
	}

	p.RaiseInterrupt(vector)
	logger.Logf(logger.Allow, "smp", "ipi: cpu %d -> cpu %d (vector %d)", source, target, vector)
	return nil
}

// BroadcastInterrupt delivers an interrupt vector to every CPU except the
// source. Used for machine-wide coordination: reboot requests and memory
// barrier acknowledgement among them.
func (co *Coordinator) BroadcastInterrupt(source int, vector int) {
	defer co.done()
	for _, p := range co.targets(source) {
		p.RaiseInterrupt(vector)
	}
	logger.Logf(logger.Allow, "smp", "ipi: cpu %d -> all (vector %d)", source, vector)
}
