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

package smp_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/reservation"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/smp"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

// mockProc counts the coherency messages it receives. it satisfies the
// Processor interface without dragging real caches into the tests.
type mockProc struct {
	crit  sync.Mutex
	label string
	held  bool

	snoopWrites int
	snoopReads  int
	cacheInvals int
	tlbScopes   []mmu.Scope
	interrupts  []int
}

func newMockProc(id int) *mockProc {
	return &mockProc{label: fmt.Sprintf("cpu%d", id)}
}

func (p *mockProc) Label() string { return p.label }

func (p *mockProc) SnoopWrite(pa uint64, size uint64) bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.snoopWrites++
	return p.held
}

func (p *mockProc) SnoopRead(pa uint64, size uint64) bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.snoopReads++
	return p.held
}

func (p *mockProc) InvalidateCache(pa uint64, size uint64) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.cacheInvals++
}

func (p *mockProc) PostTLBInvalidate(scope mmu.Scope) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.tlbScopes = append(p.tlbScopes, scope)
}

func (p *mockProc) RaiseInterrupt(vector int) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.interrupts = append(p.interrupts, vector)
}

func (p *mockProc) counts() (int, int, int) {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.snoopWrites, p.snoopReads, p.cacheInvals
}

// testCoordinator builds a coordinator with n registered mock CPUs.
func testCoordinator(t *testing.T, n int) (*smp.Coordinator, *reservation.Tracker, []*mockProc) {
	t.Helper()

	res := reservation.NewTracker(n)
	co := smp.NewCoordinator(res)

	procs := make([]*mockProc, n)
	for i := range procs {
		procs[i] = newMockProc(i)
		test.DemandSuccess(t, co.Register(i, procs[i]))
	}
	return co, res, procs
}

func TestRegistration(t *testing.T) {
	co, _, procs := testCoordinator(t, 2)

	test.Equate(t, len(co.Registered()), 2)

	// double registration is refused
	test.ExpectedFailure(t, co.Register(0, procs[0]))

	test.ExpectedSuccess(t, co.Deregister(0))
	test.Equate(t, len(co.Registered()), 1)

	// deregistering an unknown CPU is an error
	err := co.Deregister(5)
	test.Equate(t, curated.Is(err, faults.UnknownCPU), true)
}

func TestWriteInvalidateExcludesSource(t *testing.T) {
	co, _, procs := testCoordinator(t, 3)

	co.BroadcastWriteInvalidate(0x1000, 8, 0)

	for i, p := range procs {
		w, _, _ := p.counts()
		if i == 0 {
			test.Equate(t, w, 0)
		} else {
			test.Equate(t, w, 1)
		}
	}
}

func TestWriteInvalidateClearsReservations(t *testing.T) {
	co, res, _ := testCoordinator(t, 2)

	res.Set(1, 0x1000)
	co.BroadcastWriteInvalidate(0x1008, 8, 0)

	// cpu 1's reservation was on the written block
	test.ExpectedFailure(t, res.CheckAndClear(1, 0x1000))
}

func TestSnoopReadFillCountsHolders(t *testing.T) {
	co, _, procs := testCoordinator(t, 3)

	test.Equate(t, co.SnoopReadFill(0x1000, 64, 0), 0)

	procs[1].held = true
	procs[2].held = true
	test.Equate(t, co.SnoopReadFill(0x1000, 64, 0), 2)

	// the source is never counted as a holder
	procs[0].held = true
	test.Equate(t, co.SnoopReadFill(0x1000, 64, 0), 2)
}

func TestCacheInvalidateIncludesSource(t *testing.T) {
	co, _, procs := testCoordinator(t, 2)

	// DMA invalidation reaches every CPU, the source included
	co.BroadcastCacheInvalidate(0x1000, 64, 0)

	for _, p := range procs {
		_, _, inv := p.counts()
		test.Equate(t, inv, 1)
	}
}

func TestTLBInvalidateExcludesSource(t *testing.T) {
	co, _, procs := testCoordinator(t, 2)

	co.BroadcastTLBInvalidate(mmu.ScopeASN(3), 0)

	procs[0].crit.Lock()
	test.Equate(t, len(procs[0].tlbScopes), 0)
	procs[0].crit.Unlock()

	procs[1].crit.Lock()
	test.Equate(t, len(procs[1].tlbScopes), 1)
	procs[1].crit.Unlock()
}

func TestPostInterrupt(t *testing.T) {
	co, _, procs := testCoordinator(t, 2)

	test.ExpectedSuccess(t, co.PostInterrupt(0, 1, 5))

	procs[1].crit.Lock()
	test.DemandEquality(t, len(procs[1].interrupts), 1)
	test.Equate(t, procs[1].interrupts[0], 5)
	procs[1].crit.Unlock()

	// an unknown target is an error, not a dropped interrupt
	err := co.PostInterrupt(0, 9, 5)
	test.Equate(t, curated.Is(err, faults.UnknownCPU), true)
}

func TestBroadcastInterrupt(t *testing.T) {
	co, _, procs := testCoordinator(t, 3)

	co.BroadcastInterrupt(0, 7)

	procs[0].crit.Lock()
	test.Equate(t, len(procs[0].interrupts), 0)
	procs[0].crit.Unlock()

	for _, p := range procs[1:] {
		p.crit.Lock()
		test.Equate(t, len(p.interrupts), 1)
		p.crit.Unlock()
	}
}

func TestBarrierRelease(t *testing.T) {
	co, _, _ := testCoordinator(t, 3)

	var wg sync.WaitGroup
	errs := make([]error, 3)

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(cpu int) {
			defer wg.Done()
			errs[cpu] = co.SynchronizeAtBarrier(1, cpu, 5*time.Second)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		test.ExpectedSuccess(t, err)
	}
}

func TestBarrierTimeout(t *testing.T) {
	co, _, _ := testCoordinator(t, 2)

	// cpu 1 never arrives
	err := co.SynchronizeAtBarrier(1, 0, 10*time.Millisecond)
	test.Equate(t, curated.Is(err, faults.BarrierTimeout), true)

	// the timed-out arrival was withdrawn: a fresh attempt by both CPUs
	// releases cleanly
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(cpu int) {
			defer wg.Done()
			errs[cpu] = co.SynchronizeAtBarrier(1, cpu, 5*time.Second)
		}(i)
	}
	wg.Wait()

	test.ExpectedSuccess(t, errs[0])
	test.ExpectedSuccess(t, errs[1])
}

func TestBarrierUnknownCPU(t *testing.T) {
	co, _, _ := testCoordinator(t, 2)

	err := co.SynchronizeAtBarrier(1, 7, time.Second)
	test.Equate(t, curated.Is(err, faults.UnknownCPU), true)
}

func TestDeregisterReleasesBarrier(t *testing.T) {
	co, _, _ := testCoordinator(t, 2)

	done := make(chan error)
	go func() {
		done <- co.SynchronizeAtBarrier(1, 0, 5*time.Second)
	}()

	// wait until cpu 0 is parked at the barrier
	time.Sleep(50 * time.Millisecond)

	// cpu 1 leaves the machine. the barrier is now waiting only on departed
	// CPUs and must release
	test.ExpectedSuccess(t, co.Deregister(1))

	select {
	case err := <-done:
		test.ExpectedSuccess(t, err)
	case <-time.After(time.Second):
		t.Fatalf("barrier not released by deregistration")
	}
}

func TestDrainBroadcasts(t *testing.T) {
	co, _, _ := testCoordinator(t, 2)

	// nothing in flight: returns immediately
	done := make(chan struct{})
	go func() {
		co.DrainBroadcasts()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("drain blocked with no broadcasts in flight")
	}
}
