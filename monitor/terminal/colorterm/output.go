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

package colorterm

import (
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal/colorterm/easyterm/ansi"
)

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	switch style {
	case terminal.StyleError:
		ct.Print("%s* %s%s\n", ansi.PenRed, s, ansi.NormalRet)
	case terminal.StyleFeedback:
		ct.Print("%s%s%s\n", ansi.DimPen, s, ansi.NormalRet)
	case terminal.StyleHelp:
		ct.Print("%s%s%s\n", ansi.PenGreen, s, ansi.NormalRet)
	default:
		ct.Print("%s\n", s)
	}
}
