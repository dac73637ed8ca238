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

package mmu

import "fmt"

type scopeKind int

const (
	scopeAddress scopeKind = iota
	scopeASN
	scopeAll
)

// Scope describes the extent of a translation buffer invalidation. It is a
// transient value: created by the privileged invalidate instructions (or by
// the SMP coordinator on their behalf) and consumed by Invalidate().
type Scope struct {
	kind scopeKind
	va   uint64
	asn  uint8
}

// ScopeAddress invalidates the translation of a single virtual address.
func ScopeAddress(va uint64) Scope {
	return Scope{kind: scopeAddress, va: va}
}

// ScopeASN invalidates every non-global translation belonging to an ASN.
func ScopeASN(asn uint8) Scope {
	return Scope{kind: scopeASN, asn: asn}
}

// ScopeAll invalidates the entire translation buffer.
func ScopeAll() Scope {
	return Scope{kind: scopeAll}
}

func (s Scope) String() string {
	switch s.kind {
	case scopeAddress:
		return fmt.Sprintf("va %#016x", s.va)
	case scopeASN:
		return fmt.Sprintf("asn %d", s.asn)
	case scopeAll:
		return "all"
	}
	return "undefined"
}
