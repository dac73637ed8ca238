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

package hardware

import (
	"sync"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/cpu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/logger"
)

// PowerOff is the sentinel error pattern an Executor returns from Step()
// to end its CPU's run loop without reporting a failure.
const PowerOff = "cpu has been powered off"

// Executor drives instruction execution for the CPUs of the machine. The
// machine does not know how to decode or execute instructions; it only
// knows how to run an Executor on every CPU concurrently, checking for
// pending interrupts at every step boundary.
type Executor interface {
	// Step executes one unit of work, an instruction or a basic block,
	// on the CPU. Returning an error matching PowerOff stops the CPU
	// without failing the run.
	Step(cpuID int) error

	// Interrupt dispatches a pending interrupt vector on the CPU. Called
	// at a step boundary, before the next Step().
	Interrupt(cpuID int, vector int) error
}

// Run executes the machine: one goroutine per CPU, each driving the
// Executor until it reports power-off or fails. There is no global
// instruction execution lock; CPUs coordinate only through the memory
// system and the SMP coordinator.
//
// The first failure halts every CPU and is returned once all goroutines
// have wound down.
func (mc *Machine) Run(exec Executor) error {
	var wg sync.WaitGroup

	var failOnce sync.Once
	var failure error

	fail := func(err error) {
		failOnce.Do(func() {
			failure = err
			for _, c := range mc.CPUs {
				c.Halt()
			}
		})
	}

	for _, c := range mc.CPUs {
		wg.Add(1)
		go func(c *cpu.CPU) {
			defer wg.Done()

			for {
				if c.Halted() {
					return
				}

				// interrupt check at every step boundary
				if vector, ok := c.PendingInterrupt(); ok {
					if err := exec.Interrupt(c.ID, vector); err != nil {
						if curated.Has(err, PowerOff) {
							c.Halt()
							return
						}
						fail(err)
						return
					}
				}

				if err := exec.Step(c.ID); err != nil {
					if curated.Has(err, PowerOff) {
						c.Halt()
						return
					}
					fail(err)
					return
				}
			}
		}(c)
	}

	wg.Wait()

	if failure != nil {
		logger.Logf(logger.Allow, "machine", "run ended: %v", failure)
	}
	return failure
}
