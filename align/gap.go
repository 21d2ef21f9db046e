// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"sort"

	"github.com/biogo/hts/sam"
)

// SplitGaps splits a at every insertion or deletion of at least minGap
// bases, returning the pieces in contig order. Each piece is marked as
// FromSplitGappedAlignment and inherits the mapping quality and mismatch
// count of a. If a has no such gap, or minGap is not positive, a is
// returned alone.
func SplitGaps(a Alignment, minGap int) []Alignment {
	if minGap <= 0 || len(a.Cigar) == 0 {
		return []Alignment{a}
	}
	lead, core, trail := splitClips(a.Cigar)
	span := a.ReadSpan()

	var (
		pieces []Alignment

		ref, query         = a.Start, 0
		pieceRef, pieceQry = a.Start, 0
		ops                []sam.CigarOp
	)
	piece := func() {
		c := make(sam.Cigar, 0, len(ops)+4)
		c = append(c, addSoftClip(lead, pieceQry, true)...)
		c = append(c, ops...)
		c = append(c, addSoftClip(trail, span-query, false)...)
		p := a
		p.Start, p.End = pieceRef, ref-1
		if a.Forward {
			p.ReadStart, p.ReadEnd = a.ReadStart+pieceQry, a.ReadStart+query-1
		} else {
			p.ReadStart, p.ReadEnd = a.ReadEnd-query+1, a.ReadEnd-pieceQry
		}
		p.Cigar = c
		p.Origin = FromSplitGappedAlignment
		pieces = append(pieces, p)
	}
	for _, co := range core {
		t := co.Type()
		con := t.Consumes()
		if (t == sam.CigarInsertion || t == sam.CigarDeletion) && co.Len() >= minGap && aligned(ops) {
			piece()
			ref += co.Len() * con.Reference
			query += co.Len() * con.Query
			pieceRef, pieceQry, ops = ref, query, nil
			continue
		}
		ref += co.Len() * con.Reference
		query += co.Len() * con.Query
		ops = append(ops, co)
	}
	if len(pieces) == 0 {
		return []Alignment{a}
	}
	if aligned(ops) {
		piece()
	}
	if len(pieces) == 1 {
		return []Alignment{a}
	}
	if !a.Forward {
		for i, j := 0, len(pieces)-1; i < j; i, j = i+1, j-1 {
			pieces[i], pieces[j] = pieces[j], pieces[i]
		}
	}
	return pieces
}

func aligned(ops []sam.CigarOp) bool {
	for _, co := range ops {
		con := co.Type().Consumes()
		if con.Query != 0 && con.Reference != 0 {
			return true
		}
	}
	return false
}

// SplitContigGaps returns c with each of its alignments split by SplitGaps
// and the resulting alignments sorted in contig order.
func SplitContigGaps(c Contig, minGap int) Contig {
	if minGap <= 0 {
		return c
	}
	var split []Alignment
	for _, a := range c.Alignments {
		split = append(split, SplitGaps(a, minGap)...)
	}
	sort.SliceStable(split, func(i, j int) bool { return split[i].ReadStart < split[j].ReadStart })
	c.Alignments = split
	return c
}
