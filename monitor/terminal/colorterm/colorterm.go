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

// Package colorterm implements the Terminal interface for the monitor. It
// reads input in cbreak mode, allowing in-line editing, and colourises
// output by style.
package colorterm

import (
	"io"
	"os"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/monitor/terminal/colorterm/easyterm"
)

// input bytes with special meaning to the line editor.
const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	backspace = 0x08
	tab       = 0x09
	newline   = 0x0a
	carriage  = 0x0d
	del       = 0x7f
)

// ColorTerminal implements the Terminal interface for posix terminals that
// understand ANSI escape sequences.
type ColorTerminal struct {
	easyterm.Terminal
}

// Initialise implements the terminal.Terminal interface.
func (ct *ColorTerminal) Initialise() error {
	return ct.Terminal.Initialise(os.Stdin, os.Stdout)
}

// CleanUp implements the terminal.Terminal interface.
func (ct *ColorTerminal) CleanUp() {
	ct.Print("\r")
	ct.CanonicalMode()
}

// TermRead implements the terminal.Input interface. The line editor
// understands backspace and ctrl-c; everything else is taken literally.
func (ct *ColorTerminal) TermRead(prompt string) (string, error) {
	ct.CBreakMode()
	defer ct.CanonicalMode()

	ct.Print("%s", prompt)

	line := make([]byte, 0, 256)
	for {
		b, err := ct.ReadByte()
		if err != nil {
			if err == io.EOF {
				ct.Print("\n")
			}
			return "", err
		}

		switch b {
		case ctrlC:
			ct.Print("\n")
			return "", curated.Errorf(terminal.UserInterrupt)

		case ctrlD:
			ct.Print("\n")
			return "", io.EOF

		case newline, carriage:
			ct.Print("\n")
			return string(line), nil

		case backspace, del:
			if len(line) > 0 {
				line = line[:len(line)-1]
				ct.Print("\b \b")
			}

		case tab:
			// no tab completion

		default:
			if b >= 0x20 && b < 0x7f {
				line = append(line, b)
				ct.Print("%c", b)
			}
		}
	}
}
