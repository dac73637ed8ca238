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

package monitor_test

import (
	"io"
	"strings"
	"testing"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/preferences"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

// scriptTerm implements the terminal.Terminal interface, feeding the monitor
// a prepared list of input lines and capturing everything it prints.
type scriptTerm struct {
	script []string
	idx    int

	normal   []string
	errors   []string
	feedback []string
}

func (tm *scriptTerm) Initialise() error {
	return nil
}

func (tm *scriptTerm) CleanUp() {
}

func (tm *scriptTerm) TermRead(prompt string) (string, error) {
	if tm.idx >= len(tm.script) {
		return "", io.EOF
	}
	s := tm.script[tm.idx]
	tm.idx++
	return s, nil
}

func (tm *scriptTerm) TermPrintLine(style terminal.Style, s string) {
	switch style {
	case terminal.StyleError:
		tm.errors = append(tm.errors, s)
	case terminal.StyleFeedback:
		tm.feedback = append(tm.feedback, s)
	default:
		tm.normal = append(tm.normal, s)
	}
}

func runScript(t *testing.T, script ...string) *scriptTerm {
	t.Helper()

	prefs := preferences.NewPreferences()
	prefs.RAMSize = 0x10000
	mc, err := hardware.NewMachine(prefs)
	test.DemandSuccess(t, err)

	tm := &scriptTerm{script: script}
	mon, err := monitor.NewMonitor(mc, tm)
	test.DemandSuccess(t, err)

	test.ExpectedSuccess(t, mon.Run())
	return tm
}

func TestPeekPokeCommands(t *testing.T) {
	tm := runScript(t, "POKE 0x1000 42", "PEEK 0x1000", "QUIT")

	test.ExpectedSuccess(t, len(tm.errors) == 0)
	test.DemandEquality(t, len(tm.normal), 1)
	test.ExpectedSuccess(t, strings.HasSuffix(tm.normal[0], "2a"))
}

func TestUnrecognisedCommand(t *testing.T) {
	tm := runScript(t, "BOGUS", "QUIT")

	test.DemandEquality(t, len(tm.errors), 1)
	test.ExpectedSuccess(t, strings.Contains(tm.errors[0], "unrecognised"))
}

func TestTopologyCommand(t *testing.T) {
	tm := runScript(t, "TOPOLOGY", "QUIT")

	test.ExpectedSuccess(t, len(tm.errors) == 0)
	test.DemandEquality(t, len(tm.normal), 2)
}

func TestInputExhaustion(t *testing.T) {
	// no QUIT in the script. the monitor should end cleanly on EOF
	tm := runScript(t, "RES")
	test.ExpectedSuccess(t, len(tm.errors) == 0)
}

func TestBadArguments(t *testing.T) {
	tm := runScript(t,
		"PEEK",
		"PEEK zz",
		"READ 9 0x1000",
		"WRITE 0 0x1000 1 3",
		"QUIT")

	test.DemandEquality(t, len(tm.errors), 4)
}
