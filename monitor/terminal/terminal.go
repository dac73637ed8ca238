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

// Package terminal defines the operations required by the monitor's command
// line interface. Implementations live in the plainterm and colorterm
// sub-packages.
package terminal

// Style is used to hint at how output should be presented. Implementations
// may ignore it.
type Style int

// The available output styles.
const (
	StyleNormal Style = iota
	StyleFeedback
	StyleHelp
	StyleError
)

// UserInterrupt is the sentinel error pattern returned by TermRead() when
// the user has interrupted input (ctrl-c typically).
const UserInterrupt = "user interrupt"

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead returns one line of input, without the line terminator. An
	// error matching UserInterrupt means the user wants the monitor's
	// attention, not a line of text; io.EOF means input is exhausted.
	TermRead(prompt string) (string, error)
}

// Output defines the operations required by an interface that allows output.
type Output interface {
	TermPrintLine(style Style, s string)
}

// Terminal defines the operations required by the monitor.
type Terminal interface {
	Input
	Output

	// Initialise the terminal. not all implementations need to do anything
	Initialise() error

	// Restore the terminal to its original state, if possible
	CleanUp()
}
