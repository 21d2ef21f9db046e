// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpx

import (
	"fmt"

	"github.com/biogo/sv/align"
)

// BasicInfo is the geometry of a contig's event derived from its
// head and tail alignments.
type BasicInfo struct {
	// PrimaryChromosome is the reference the head and tail alignments
	// are mapped to. Alignments to other references are considered
	// inserted sequence.
	PrimaryChromosome string

	// ForwardRep is whether the contig is a forward strand
	// representation of the event, that is whether the head
	// alignment is on the forward strand.
	ForwardRep bool

	// Alpha is the start of the head alignment for forward strand
	// representations and the start of the tail alignment otherwise.
	// Omega is the end of the tail alignment for forward strand
	// representations and the end of the head alignment otherwise.
	Alpha, Omega align.Interval
}

// NewBasicInfo returns the BasicInfo for a contig with the given
// non-empty ordered alignments.
func NewBasicInfo(alignments []align.Alignment) BasicInfo {
	head, tail := alignments[0], alignments[len(alignments)-1]
	b := BasicInfo{
		PrimaryChromosome: head.Ref,
		ForwardRep:        head.Forward,
	}
	if b.ForwardRep {
		b.Alpha = align.Locus(head.Ref, head.Start)
		b.Omega = align.Locus(tail.Ref, tail.End)
	} else {
		b.Alpha = align.Locus(tail.Ref, tail.Start)
		b.Omega = align.Locus(head.Ref, head.End)
	}
	return b
}

// String returns a string representation of the BasicInfo.
func (b BasicInfo) String() string {
	strand := '+'
	if !b.ForwardRep {
		strand = '-'
	}
	return fmt.Sprintf("primary chr: %s\tstrand rep:%c\talpha: %v\tomega: %v",
		b.PrimaryChromosome, strand, b.Alpha, b.Omega)
}

// AnnotatedContig is a contig with the derived geometry of its event.
// An AnnotatedContig is only created by Annotate or by decoding a
// checkpoint and is not altered after creation.
type AnnotatedContig struct {
	contig      align.Contig
	info        BasicInfo
	jumps       []Jump
	breakpoints []align.Interval
}

// Contig returns the contig with its de-overlapped alignments. The
// returned value's slices should not be altered.
func (a *AnnotatedContig) Contig() align.Contig { return a.contig }

// Name returns the name of the contig.
func (a *AnnotatedContig) Name() string { return a.contig.Name }

// Info returns the BasicInfo of the contig.
func (a *AnnotatedContig) Info() BasicInfo { return a.info }

// Jumps returns the jumps between neighbouring alignments in contig
// order. The returned slice should not be altered.
func (a *AnnotatedContig) Jumps() []Jump { return a.jumps }

// Breakpoints returns the sorted jump locations that segment the
// primary chromosome. The returned slice should not be altered.
func (a *AnnotatedContig) Breakpoints() []align.Interval { return a.breakpoints }

// Annotate returns the AnnotatedContig for c using the reference
// ordering in d. The alignments of c must be in contig order.
func Annotate(c align.Contig, d *align.Dictionary) (*AnnotatedContig, error) {
	if len(c.Alignments) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrTooFewAlignments, c.Name)
	}
	for _, a := range c.Alignments {
		if _, ok := d.Index(a.Ref); !ok {
			return nil, fmt.Errorf("%w: %s: %q", ErrUnknownReference, c.Name, a.Ref)
		}
	}
	if head, tail := c.Alignments[0], c.Alignments[len(c.Alignments)-1]; head.Ref != tail.Ref {
		return nil, fmt.Errorf("%w: %s: %s and %s", ErrSplitChromosome, c.Name, head.Ref, tail.Ref)
	}

	deoverlapped, err := DeOverlap(c.Alignments, d)
	if err != nil {
		return nil, fmt.Errorf("cpx: %s: %w", c.Name, err)
	}
	c.Alignments = deoverlapped

	info := NewBasicInfo(c.Alignments)
	jumps, err := ExtractJumps(c.Alignments)
	if err != nil {
		return nil, fmt.Errorf("cpx: %s: %w", c.Name, err)
	}
	return &AnnotatedContig{
		contig:      c,
		info:        info,
		jumps:       jumps,
		breakpoints: SelectBreakpoints(jumps, info, d),
	}, nil
}

// DeOverlap returns the alignments with read overlap between neighbours
// removed by align.RemoveOverlap. A gap split alignment lying entirely
// within the read overlap with its predecessor is dropped.
func DeOverlap(alignments []align.Alignment, d *align.Dictionary) ([]align.Alignment, error) {
	if len(alignments) == 0 {
		return nil, nil
	}
	result := make([]align.Alignment, 0, len(alignments))
	one := alignments[0]
	for _, two := range alignments[1:] {
		if two.Origin == align.FromSplitGappedAlignment && align.OverlapOnRead(one, two) >= two.ReadSpan() {
			continue
		}
		first, second, err := align.RemoveOverlap(one, two, d)
		if err != nil {
			return nil, err
		}
		result = append(result, first)
		one = second
	}
	return append(result, one), nil
}
