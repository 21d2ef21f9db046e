// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package align implements the alignment intervals of assembled contigs
// against a reference, the ordering of reference coordinates and the
// pairwise removal of read overlap between neighbouring alignments.
package align

import (
	"bytes"
	"fmt"

	"github.com/biogo/hts/sam"
)

// ModType describes how an Alignment was derived from the aligner output.
type ModType uint8

const (
	Unmodified               ModType = iota // Alignment as reported by the aligner.
	FromSplitGappedAlignment                // Piece of an alignment split at a large gap.
	UnderwentClip                           // Alignment clipped to remove read overlap.
	lastModType
)

var modTypes = []string{"UNMODIFIED", "FROM_SPLIT_GAPPED_ALIGNMENT", "UNDERWENT_CLIP", "?"}

// Valid returns whether m is a known ModType.
func (m ModType) Valid() bool { return m < lastModType }

// String returns the string representation of a ModType.
func (m ModType) String() string {
	if m > lastModType {
		m = lastModType
	}
	return modTypes[m]
}

// Alignment is a single contiguous mapping of a range of contig bases
// to a reference span.
//
// Reference and read coordinates are 1-based and closed. Read coordinates
// are given along the contig as assembled, so for a reverse strand alignment
// the contig's ReadStart base is aligned to the reference End base. Cigar is
// in reference orientation, as in SAM, and includes clipping of the contig
// bases outside the alignment.
type Alignment struct {
	Ref        string
	Start, End int
	Forward    bool

	ReadStart, ReadEnd int

	Cigar      sam.Cigar
	MapQ       int
	Mismatches int
	Origin     ModType
}

// Span returns the reference span of the alignment.
func (a Alignment) Span() Interval {
	return Interval{Ref: a.Ref, Start: a.Start, End: a.End}
}

// ReadSpan returns the number of contig bases covered by the alignment.
func (a Alignment) ReadSpan() int {
	return a.ReadEnd - a.ReadStart + 1
}

// Strand returns an int8 indicating the strand of the alignment in the
// manner of sam.Record.Strand.
func (a Alignment) Strand() int8 {
	if a.Forward {
		return 1
	}
	return -1
}

// String returns a string representation of the Alignment.
func (a Alignment) String() string {
	strand := '+'
	if !a.Forward {
		strand = '-'
	}
	return fmt.Sprintf("%d_%d_%s:%d-%d_%c_%v_%d_%d_%v",
		a.ReadStart, a.ReadEnd,
		a.Ref, a.Start, a.End,
		strand,
		a.Cigar,
		a.MapQ, a.Mismatches,
		a.Origin,
	)
}

// OverlapOnRead returns the number of contig bases covered by both one and two.
func OverlapOnRead(one, two Alignment) int {
	return max(0, min(one.ReadEnd, two.ReadEnd)-max(one.ReadStart, two.ReadStart)+1)
}

// Contig is an assembled sequence with its ordered alignments.
type Contig struct {
	Name string
	Seq  []byte

	// Alignments are ordered by ReadStart.
	Alignments []Alignment

	// Ambiguous indicates that the aligner found
	// equally good alignment configurations.
	Ambiguous bool
}

// String returns a string representation of the Contig.
func (c Contig) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\t%t\t%d\t[", c.Name, c.Ambiguous, len(c.Seq))
	for i, a := range c.Alignments {
		if i != 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.String())
	}
	buf.WriteByte(']')
	return buf.String()
}
