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

import (
	"fmt"
	"strings"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/bus"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/memorymap"
)

// Flags is the protection field of a translation entry.
type Flags uint8

// Protection flags. The read/write enables are checked against the
// processor mode of the access. FOE causes instruction fetches through the
// entry to fault.
const (
	KRE Flags = 1 << iota // kernel read enable
	KWE                   // kernel write enable
	URE                   // user read enable
	UWE                   // user write enable
	FOE                   // fault on execute
)

func (f Flags) String() string {
	s := strings.Builder{}
	for _, n := range []struct {
		flag  Flags
		label string
	}{
		{KRE, "kre"}, {KWE, "kwe"}, {URE, "ure"}, {UWE, "uwe"}, {FOE, "foe"},
	} {
		if f&n.flag == n.flag {
			if s.Len() > 0 {
				s.WriteString(",")
			}
			s.WriteString(n.label)
		}
	}
	return s.String()
}

// Entry is a single cached translation. Entries are created by the page
// table walker (which is external to the memory subsystem) and injected
// with InstallEntry(). They are never mutated in place: installing an entry
// for a (page, ASN) pair that is already present replaces the old entry.
type Entry struct {
	VirtualPage  uint64
	PhysicalPage uint64
	ASN          uint8
	Flags        Flags

	// a global entry matches any ASN and survives by-ASN invalidation. used
	// for translations shared by every process context (the OS itself,
	// typically)
	Global bool

	valid bool
}

func (e Entry) String() string {
	asn := fmt.Sprintf("asn %d", e.ASN)
	if e.Global {
		asn = "global"
	}
	return fmt.Sprintf("%#016x -> %#016x [%s] (%s)", e.VirtualPage, e.PhysicalPage, e.Flags, asn)
}

// match tests whether the entry translates the page for the ASN.
func (e Entry) match(vpage uint64, asn uint8) bool {
	return e.valid && e.VirtualPage == vpage && (e.Global || e.ASN == asn)
}

// TranslationUnit is the ASN tagged translation buffer of a single CPU. It
// is owned by exactly one CPU and must only be used from that CPU's
// executor. Cross-CPU invalidation arrives through the SMP coordinator,
// which routes it through the owning CPU (see the smp package).
//
// The unit holds a fixed number of entries. When the table is full a victim
// is selected round-robin, in the manner of a real translation buffer.
type TranslationUnit struct {
	label   string
	entries []Entry
	victim  int
}

// NewTranslationUnit is the preferred method of initialisation for the
// TranslationUnit type. The capacity is the number of entries the unit can
// hold before it begins evicting.
func NewTranslationUnit(label string, capacity int) *TranslationUnit {
	if capacity <= 0 {
		capacity = 48
	}
	return &TranslationUnit{
		label:   label,
		entries: make([]Entry, capacity),
	}
}

// Label returns the label assigned to the translation unit.
func (tu *TranslationUnit) Label() string {
	return tu.label
}

// Translate maps a virtual address to a physical address.
//
// A missing translation returns an error matching faults.TranslationMiss.
// The caller is expected to walk the page table, install the result with
// InstallEntry() and retry. A protection failure returns an error matching
// faults.AccessViolation and is never retried.
func (tu *TranslationUnit) Translate(va uint64, asn uint8, mode bus.Mode, write bool, instruction bool) (uint64, error) {
	vpage := memorymap.PageBase(va)

	for i := range tu.entries {
		e := &tu.entries[i]
		if !e.match(vpage, asn) {
			continue
		}

		if instruction && e.Flags&FOE == FOE {
			return 0, curated.Errorf(faults.AccessViolation, va, "fault on execute")
		}

		var allowed bool
		switch mode {
		case bus.Kernel:
			if write {
				allowed = e.Flags&KWE == KWE
			} else {
				allowed = e.Flags&KRE == KRE
			}
		case bus.User:
			if write {
				allowed = e.Flags&UWE == UWE
			} else {
				allowed = e.Flags&URE == URE
			}
		}

		if !allowed {
			return 0, curated.Errorf(faults.AccessViolation,
				va, fmt.Sprintf("%s mode %s", mode, accessLabel(write)))
		}

		return e.PhysicalPage | memorymap.PageOffset(va), nil
	}

	return 0, curated.Errorf(faults.TranslationMiss, va, asn)
}

func accessLabel(write bool) string {
	if write {
		return "write"
	}
	return "read"
}

// InstallEntry caches the result of a page table walk. Addresses in the
// entry are reduced to their page base. Any existing entry for the same
// (page, ASN) pair is replaced.
func (tu *TranslationUnit) InstallEntry(e Entry) {
	e.VirtualPage = memorymap.PageBase(e.VirtualPage)
	e.PhysicalPage = memorymap.PageBase(e.PhysicalPage)
	e.valid = true

	// replace-on-update. an existing entry for the pair is never mutated,
	// it is overwritten wholesale
	for i := range tu.entries {
		o := &tu.entries[i]
		if o.valid && o.VirtualPage == e.VirtualPage && o.ASN == e.ASN && o.Global == e.Global {
			tu.entries[i] = e
			return
		}
	}

	// prefer an invalid slot over eviction
	for i := range tu.entries {
		if !tu.entries[i].valid {
			tu.entries[i] = e
			return
		}
	}

	tu.entries[tu.victim] = e
	tu.victim = (tu.victim + 1) % len(tu.entries)
}

// Invalidate removes entries matching the scope: a single virtual address,
// every entry for an ASN, or the entire table.
//
// Single-address invalidation removes the page for every ASN. Over
// invalidation is always safe; a stale survivor never is. By-ASN
// invalidation leaves global entries in place. A global flush removes
// everything, global entries included.
func (tu *TranslationUnit) Invalidate(scope Scope) {
	for i := range tu.entries {
		e := &tu.entries[i]
		if !e.valid {
			continue
		}

		switch scope.kind {
		case scopeAddress:
			if e.VirtualPage == memorymap.PageBase(scope.va) {
				e.valid = false
			}
		case scopeASN:
			if !e.Global && e.ASN == scope.asn {
				e.valid = false
			}
		case scopeAll:
			e.valid = false
		}
	}
}

// Entries returns a copy of the valid entries in the unit. A debugging
// function: entries are returned in table order, which has no
// architectural meaning.
func (tu *TranslationUnit) Entries() []Entry {
	ent := make([]Entry, 0, len(tu.entries))
	for i := range tu.entries {
		if tu.entries[i].valid {
			ent = append(ent, tu.entries[i])
		}
	}
	return ent
}

func (tu *TranslationUnit) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s:\n", tu.label))
	for _, e := range tu.Entries() {
		s.WriteString(fmt.Sprintf("  %s\n", e))
	}
	return s.String()
}
