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

package monitor

import (
	"io"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal"
)

const prompt = "(monitor) "

// Monitor is the interactive inspection surface of the machine: translation
// buffers, cache lines, reservations and physical memory can all be examined
// and, carefully, altered. The monitor operates outside the machine; apart
// from PEEK and POKE it never disturbs the state it reports.
type Monitor struct {
	mc   *hardware.Machine
	term terminal.Terminal
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(mc *hardware.Machine, term terminal.Terminal) (*Monitor, error) {
	mon := &Monitor{
		mc:   mc,
		term: term,
	}
	if err := term.Initialise(); err != nil {
		return nil, curated.Errorf("monitor: %v", err)
	}
	return mon, nil
}

// Run the monitor input loop until the user quits or input is exhausted.
func (mon *Monitor) Run() error {
	defer mon.term.CleanUp()

	for {
		input, err := mon.term.TermRead(prompt)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			if curated.Is(err, terminal.UserInterrupt) {
				mon.term.TermPrintLine(terminal.StyleFeedback, "use QUIT to leave the monitor")
				continue // for loop
			}
			return err
		}

		quit, err := mon.dispatch(input)
		if err != nil {
			mon.term.TermPrintLine(terminal.StyleError, err.Error())
		}
		if quit {
			return nil
		}
	}
}
