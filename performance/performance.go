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
	"fmt"
	"io"
	"time"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/preferences"
)

// Check the performance of the emulated memory system.
//
// A machine is built from the preferences and run against the synthetic
// workload for the specified duration. A cpu profile, a memory profile, or
// both are gathered as requested by the profile argument.
func Check(output io.Writer, profile Profile, prefs *preferences.Preferences, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	mc, err := hardware.NewMachine(prefs)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	wl := NewWorkload(mc)

	timer := time.AfterFunc(dur, wl.Stop)
	defer timer.Stop()

	start := time.Now()
	err = RunProfiler(profile, "performance", func() error {
		return mc.Run(wl)
	})
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	elapsed := time.Since(start).Seconds()

	steps := wl.Steps()
	output.Write([]byte(fmt.Sprintf("%.2f mops (%d memory operations in %.2f seconds, %d cpus)\n",
		float64(steps)/elapsed/1e6, steps, elapsed, len(mc.CPUs))))

	return nil
}
