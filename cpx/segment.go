// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpx

import (
	"fmt"

	"github.com/biogo/sv/align"
)

// Segmentation is the segmented reference region affected by an event
// and the order and orientation in which the contig traverses it.
type Segmentation struct {
	// Segments are closed intervals on the primary chromosome.
	// Neighbouring segments share exactly one boundary base.
	Segments []align.Interval

	// Order holds one entry for each traversal of a segment by an
	// alignment, in contig order. The absolute value is one more than
	// the index into Segments and the sign is negative when the segment
	// is traversed inverted relative to the contig's representation.
	Order []int
}

// String returns a string representation of the Segmentation.
func (s Segmentation) String() string {
	return fmt.Sprintf("Segments:\t%v\nEvents:\t%v", s.Segments, s.Order)
}

// Segment returns the segmentation of the primary chromosome region
// bounded by the breakpoints of a.
func Segment(a *AnnotatedContig) (Segmentation, error) {
	chr := a.info.PrimaryChromosome
	bps := a.breakpoints
	switch len(bps) {
	case 0:
		return Segmentation{}, &InterpretationError{Reason: "no segmenting location on primary chromosome", Contig: a}
	case 1:
		// A single jump location on the primary chromosome arises when the
		// middle alignment maps somewhere disjoint and the head and tail
		// alignments share a single boundary base.
		var n int
		for _, aln := range a.contig.Alignments {
			if aln.Ref == chr {
				n++
			}
		}
		if n != 2 || len(a.contig.Alignments) != 3 {
			return Segmentation{}, &InterpretationError{Reason: "single segmenting location without inserted sequence", Contig: a}
		}
		return Segmentation{
			Segments: []align.Interval{bps[0], bps[0]},
			Order:    []int{1, 1},
		}, nil
	}

	segments := make([]align.Interval, 0, len(bps)-1)
	left := bps[0]
	for _, right := range bps[1:] {
		segments = append(segments, align.Interval{Ref: chr, Start: left.Start, End: right.Start})
		left = right
	}

	alignments := a.contig.Alignments
	if !a.info.ForwardRep {
		alignments = make([]align.Alignment, len(a.contig.Alignments))
		for i, aln := range a.contig.Alignments {
			alignments[len(alignments)-1-i] = aln
		}
	}
	var order []int
	for _, aln := range alignments {
		span := aln.Span()
		for i, seg := range segments {
			// Sharing only a boundary base is not a traversal.
			if !seg.Overlaps(span) || seg.Intersect(span).Len() <= 1 {
				continue
			}
			if aln.Forward == a.info.ForwardRep {
				order = append(order, i+1)
			} else {
				order = append(order, -(i + 1))
			}
		}
	}
	return Segmentation{Segments: segments, Order: order}, nil
}
