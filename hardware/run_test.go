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

package hardware_test

import (
	"sync"
	"testing"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

// countingExecutor powers each CPU off after a fixed number of steps.
type countingExecutor struct {
	crit       sync.Mutex
	limit      int
	steps      map[int]int
	interrupts map[int][]int
	stepErr    error
}

func newCountingExecutor(limit int) *countingExecutor {
	return &countingExecutor{
		limit:      limit,
		steps:      make(map[int]int),
		interrupts: make(map[int][]int),
	}
}

func (ex *countingExecutor) Step(cpuID int) error {
	ex.crit.Lock()
	defer ex.crit.Unlock()

	if ex.stepErr != nil && cpuID == 0 {
		return ex.stepErr
	}

	ex.steps[cpuID]++
	if ex.steps[cpuID] >= ex.limit {
		return curated.Errorf(hardware.PowerOff)
	}
	return nil
}

func (ex *countingExecutor) Interrupt(cpuID int, vector int) error {
	ex.crit.Lock()
	defer ex.crit.Unlock()

	ex.interrupts[cpuID] = append(ex.interrupts[cpuID], vector)
	return nil
}

func TestRunUntilPowerOff(t *testing.T) {
	mc := testMachine(t)
	ex := newCountingExecutor(10)

	test.ExpectedSuccess(t, mc.Run(ex))

	// every CPU stepped to the limit and halted
	ex.crit.Lock()
	defer ex.crit.Unlock()
	for _, c := range mc.CPUs {
		test.Equate(t, ex.steps[c.ID], 10)
		test.Equate(t, c.Halted(), true)
	}
}

func TestRunDeliversInterrupts(t *testing.T) {
	mc := testMachine(t)
	ex := newCountingExecutor(2)

	// posted before the run so the first check point sees it
	test.DemandSuccess(t, mc.Coord.PostInterrupt(1, 0, 5))

	test.ExpectedSuccess(t, mc.Run(ex))

	ex.crit.Lock()
	defer ex.crit.Unlock()
	test.DemandEquality(t, len(ex.interrupts[0]), 1)
	test.Equate(t, ex.interrupts[0][0], 5)
	test.Equate(t, len(ex.interrupts[1]), 0)
}

func TestRunFailureHaltsEveryCPU(t *testing.T) {
	mc := testMachine(t)
	ex := newCountingExecutor(1000000)
	ex.stepErr = curated.Errorf("executor: decode failed")

	err := mc.Run(ex)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, "executor: decode failed"), true)

	for _, c := range mc.CPUs {
		test.Equate(t, c.Halted(), true)
	}
}

func TestRunOnHaltedMachine(t *testing.T) {
	mc := testMachine(t)
	for _, c := range mc.CPUs {
		c.Halt()
	}

	// a machine with every CPU halted runs to completion immediately
	ex := newCountingExecutor(10)
	test.ExpectedSuccess(t, mc.Run(ex))

	ex.crit.Lock()
	defer ex.crit.Unlock()
	test.Equate(t, len(ex.steps), 0)
}
