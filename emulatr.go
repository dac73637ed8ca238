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

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/preferences"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/logger"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/modalflag"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal/colorterm"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal/plainterm"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/performance"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/statsview"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PERFORMANCE", "MONITOR", "VERSION")

	log := md.AddBool("log", false, "echo log entries to stderr")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %s\n", err)
		os.Exit(10)
	}

	if *log {
		logger.SetEcho(os.Stderr, true)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "PERFORMANCE":
		err = perform(md)
	case "MONITOR":
		err = monit(md)
	case "VERSION":
		vrs, rev, _ := version.Version()
		fmt.Printf("%s (%s)\n", vrs, rev)
	}

	if err != nil {
		fmt.Printf("* %s\n", err)
		os.Exit(20)
	}
}

// machineFlags adds the flags common to every mode that builds a machine.
func machineFlags(md *modalflag.Modes) func() (*preferences.Preferences, error) {
	cpus := md.AddInt("cpus", 0, "number of CPUs in the machine")
	ram := md.AddUint64("ram", 0, "bytes of physical memory")

	return func() (*preferences.Preferences, error) {
		prefs := preferences.NewPreferences()
		if *cpus > 0 {
			prefs.NumCPUs = *cpus
		}
		if *ram > 0 {
			prefs.RAMSize = *ram
		}
		return prefs, prefs.Validate()
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	prefsFromFlags := machineFlags(md)
	duration := md.AddDuration("duration", 10*time.Second, "length of time to run the workload")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run the stats server [%s]", statsview.Address))

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	prefs, err := prefsFromFlags()
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return curated.Errorf("emulatr: statsview is not available in this build")
		}
		statsview.Launch(os.Stdout)
	}

	return performance.Check(os.Stdout, performance.ProfileNone, prefs, duration.String())
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	prefsFromFlags := machineFlags(md)
	duration := md.AddDuration("duration", 10*time.Second, "length of time to run the workload")
	profile := md.AddString("profile", "none", "run the profiler [none|cpu|mem|all]")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	prefs, err := prefsFromFlags()
	if err != nil {
		return err
	}

	prf, err := parseProfile(*profile)
	if err != nil {
		return err
	}

	return performance.Check(os.Stdout, prf, prefs, duration.String())
}

func monit(md *modalflag.Modes) error {
	md.NewMode()

	prefsFromFlags := machineFlags(md)
	plain := md.AddBool("plain", false, "use an uncoloured, line oriented terminal")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	prefs, err := prefsFromFlags()
	if err != nil {
		return err
	}

	mc, err := hardware.NewMachine(prefs)
	if err != nil {
		return err
	}

	var term terminal.Terminal
	if *plain {
		term = &plainterm.PlainTerminal{}
	} else {
		term = &colorterm.ColorTerminal{}
	}

	mon, err := monitor.NewMonitor(mc, term)
	if err != nil {
		return err
	}
	return mon.Run()
}

func parseProfile(s string) (performance.Profile, error) {
	switch s {
	case "none":
		return performance.ProfileNone, nil
	case "cpu":
		return performance.ProfileCPU, nil
	case "mem":
		return performance.ProfileMem, nil
	case "all":
		return performance.ProfileAll, nil
	}
	return performance.ProfileNone, curated.Errorf("emulatr: unknown profile type: %s", s)
}
