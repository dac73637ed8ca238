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

// Package ansi defines the ANSI escape sequences used by the colorterm
// package.
package ansi

// The escape sequences used by colorterm.
const (
	NormalRet = "\033[0m"
	Bold      = "\033[1m"
	DimPen    = "\033[2m"
	PenRed    = "\033[31m"
	PenGreen  = "\033[32m"
	PenYellow = "\033[33m"
	ClearLine = "\033[2K\r"
)
