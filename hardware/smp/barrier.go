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
	"time"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
)

// barrier is a counting barrier. arrivals accumulate until every
// registered CPU has arrived, at which point the release channel closes
// and every waiter proceeds. there is no partial release: the channel
// either is closed for everyone or is closed for no one.
type barrier struct {
	arrived int
	release chan struct{}
}

// SynchronizeAtBarrier blocks until every registered CPU has called it
// with the same barrier id. All participants are released atomically by
// the last arrival.
//
// A CPU that halts before arriving would otherwise leave the remaining
// participants waiting forever, so the wait is bounded by the timeout. On
// timeout the caller's arrival is withdrawn and an error matching
// faults.BarrierTimeout is returned; the orchestration layer decides
// whether to treat the missing CPU as halted and deregister it, which
// releases the barrier for the CPUs still waiting.
func (co *Coordinator) SynchronizeAtBarrier(id int, cpu int, timeout time.Duration) error {
	co.crit.Lock()

	if _, ok := co.procs[cpu]; !ok {
		co.crit.Unlock()
		return curated.Errorf(faults.UnknownCPU, cpu)
	}

	b, ok := co.barriers[id]
	if !ok {
		b = &barrier{release: make(chan struct{})}
		co.barriers[id] = b
	}

	b.arrived++
	if b.arrived >= len(co.procs) {
		delete(co.barriers, id)
		close(b.release)
		co.crit.Unlock()
		return nil
	}

	release := b.release
	co.crit.Unlock()

	select {
	case <-release:
		return nil

	case <-time.After(timeout):
		co.crit.Lock()
		defer co.crit.Unlock()

		// the barrier may have released between the timeout firing and the
		// lock being acquired
		select {
		case <-release:
			return nil
		default:
		}

		// withdraw the arrival so a retry counts afresh
		if cur, ok := co.barriers[id]; ok && cur == b {
			b.arrived--
		}
		return curated.Errorf(faults.BarrierTimeout, id, cpu)
	}
}
