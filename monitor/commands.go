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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/cache"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/logger"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal"
)

const helpText = `  TLB [cpu]              list translation buffer entries
  CACHE [cpu]            list cache lines and statistics
  RES                    list load-locked reservations
  TOPOLOGY               list the CPUs of the machine
  PEEK addr              read eight bytes of physical memory
  POKE addr value        write eight bytes of physical memory
  READ cpu va [width]    read through a CPU's virtual address space
  WRITE cpu va value [width]
  IPI source target vector
  LOG                    show recent log entries
  GRAPH [file]           write a memory graph of the machine (dot format)
  RESET                  reset the machine
  QUIT`

// dispatch runs a single monitor command. The returned boolean indicates
// that the user has asked to leave the monitor.
func (mon *Monitor) dispatch(input string) (bool, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false, nil
	}

	args := fields[1:]

	switch strings.ToUpper(fields[0]) {
	case "HELP":
		mon.term.TermPrintLine(terminal.StyleHelp, helpText)

	case "QUIT", "Q":
		return true, nil

	case "TLB":
		return false, mon.cmdTLB(args)

	case "CACHE":
		return false, mon.cmdCache(args)

	case "RES":
		for _, r := range mon.mc.Res.Reservations() {
			mon.term.TermPrintLine(terminal.StyleNormal, r.String())
		}

	case "TOPOLOGY":
		for _, c := range mon.mc.CPUs {
			tp, err := mon.mc.GetCPUTopology(c.ID)
			if err != nil {
				return false, err
			}
			mon.term.TermPrintLine(terminal.StyleNormal, tp.String())
		}

	case "PEEK":
		return false, mon.cmdPeek(args)

	case "POKE":
		return false, mon.cmdPoke(args)

	case "READ":
		return false, mon.cmdRead(args)

	case "WRITE":
		return false, mon.cmdWrite(args)

	case "IPI":
		return false, mon.cmdIPI(args)

	case "LOG":
		logger.Tail(logWriter{mon.term}, 20)

	case "GRAPH":
		return false, mon.cmdGraph(args)

	case "RESET":
		if err := mon.mc.Reset(); err != nil {
			return false, err
		}
		mon.term.TermPrintLine(terminal.StyleFeedback, "machine reset")

	default:
		return false, curated.Errorf("monitor: unrecognised command: %s", fields[0])
	}

	return false, nil
}

// logWriter adapts terminal output to the io.Writer required by the logger.
type logWriter struct {
	term terminal.Terminal
}

func (lw logWriter) Write(p []byte) (int, error) {
	lw.term.TermPrintLine(terminal.StyleFeedback, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func (mon *Monitor) cmdTLB(args []string) error {
	ids, err := mon.cpuList(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		c := mon.mc.CPUs[id]
		mon.term.TermPrintLine(terminal.StyleNormal, fmt.Sprintf("%s:", c.MMU.Label()))
		for _, e := range c.MMU.Entries() {
			mon.term.TermPrintLine(terminal.StyleNormal, fmt.Sprintf("  %s", e))
		}
	}
	return nil
}

func (mon *Monitor) cmdCache(args []string) error {
	ids, err := mon.cpuList(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		c := mon.mc.CPUs[id]
		for _, cch := range []*cache.Cache{c.L1D, c.L1I, c.L2} {
			st := cch.Statistics()
			mon.term.TermPrintLine(terminal.StyleNormal,
				fmt.Sprintf("%s: %d hits, %d misses, %d writebacks, %d snoops",
					cch.Label(), st.Hits, st.Misses, st.Writebacks, st.Snoops))
			for _, l := range cch.Lines() {
				mon.term.TermPrintLine(terminal.StyleNormal, fmt.Sprintf("  %#016x [%s]", l.Addr, l.State))
			}
		}
	}
	return nil
}

func (mon *Monitor) cmdPeek(args []string) error {
	if len(args) != 1 {
		return curated.Errorf("monitor: PEEK requires an address")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	v, err := mon.mc.Mem.Peek(addr)
	if err != nil {
		return err
	}
	mon.term.TermPrintLine(terminal.StyleNormal, fmt.Sprintf("%#016x = %#016x", addr, v))
	return nil
}

func (mon *Monitor) cmdPoke(args []string) error {
	if len(args) != 2 {
		return curated.Errorf("monitor: POKE requires an address and a value")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	value, err := parseAddress(args[1])
	if err != nil {
		return err
	}

	return mon.mc.Mem.Poke(addr, value)
}

func (mon *Monitor) cmdRead(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return curated.Errorf("monitor: READ requires a cpu and a virtual address")
	}
	id, err := mon.cpuID(args[0])
	if err != nil {
		return err
	}
	va, err := parseAddress(args[1])
	if err != nil {
		return err
	}
	width, err := parseWidth(args, 2)
	if err != nil {
		return err
	}

	v, err := mon.mc.Mem.ReadVirtual(id, va, width)
	if err != nil {
		return err
	}
	mon.term.TermPrintLine(terminal.StyleNormal, fmt.Sprintf("cpu%d: %#016x = %#x", id, va, v))
	return nil
}

func (mon *Monitor) cmdWrite(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return curated.Errorf("monitor: WRITE requires a cpu, a virtual address and a value")
	}
	id, err := mon.cpuID(args[0])
	if err != nil {
		return err
	}
	va, err := parseAddress(args[1])
	if err != nil {
		return err
	}
	value, err := parseAddress(args[2])
	if err != nil {
		return err
	}
	width, err := parseWidth(args, 3)
	if err != nil {
		return err
	}

	return mon.mc.Mem.WriteVirtual(id, va, value, width)
}

func (mon *Monitor) cmdIPI(args []string) error {
	if len(args) != 3 {
		return curated.Errorf("monitor: IPI requires a source, a target and a vector")
	}
	source, err := mon.cpuID(args[0])
	if err != nil {
		return err
	}
	target, err := mon.cpuID(args[1])
	if err != nil {
		return err
	}
	vector, err := strconv.Atoi(args[2])
	if err != nil {
		return curated.Errorf("monitor: bad vector: %s", args[2])
	}

	return mon.mc.Coord.PostInterrupt(source, target, vector)
}

func (mon *Monitor) cmdGraph(args []string) error {
	filename := "machine.dot"
	if len(args) > 0 {
		filename = args[0]
	}

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("monitor: %v", err)
	}
	defer f.Close()

	memviz.Map(f, mon.mc)
	mon.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("memory graph written to %s", filename))
	return nil
}

// cpuList resolves an optional cpu argument: no argument means every CPU.
func (mon *Monitor) cpuList(args []string) ([]int, error) {
	if len(args) == 0 {
		ids := make([]int, len(mon.mc.CPUs))
		for i := range ids {
			ids[i] = i
		}
		return ids, nil
	}

	id, err := mon.cpuID(args[0])
	if err != nil {
		return nil, err
	}
	return []int{id}, nil
}

func (mon *Monitor) cpuID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 || id >= len(mon.mc.CPUs) {
		return 0, curated.Errorf("monitor: bad cpu: %s", s)
	}
	return id, nil
}

func parseAddress(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, curated.Errorf("monitor: bad address or value: %s", s)
	}
	return v, nil
}

func parseWidth(args []string, idx int) (int, error) {
	if len(args) <= idx {
		return 8, nil
	}

	w, err := strconv.Atoi(args[idx])
	if err != nil {
		return 0, curated.Errorf("monitor: bad width: %s", args[idx])
	}
	switch w {
	case 1, 2, 4, 8:
		return w, nil
	}
	return 0, curated.Errorf("monitor: bad width: %d", w)
}
