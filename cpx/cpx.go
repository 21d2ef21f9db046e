// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpx interprets assembled contigs whose alignments jump between
// more than two locations on one reference chromosome. The alignments of
// such a contig are annotated with the directional jumps between them and
// the jump locations are used to segment the affected reference region
// into ordered, oriented pieces describing a complex structural variant.
package cpx

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewAlignments is returned when a contig
	// has fewer than two alignments.
	ErrTooFewAlignments = errors.New("cpx: contig has fewer than two alignments")

	// ErrReadOverlap is returned when neighbouring alignments
	// passed to jump extraction overlap on the contig.
	ErrReadOverlap = errors.New("cpx: assumption that input alignments do not overlap is violated")

	// ErrUnknownReference is returned when an alignment
	// is to a reference not in the dictionary.
	ErrUnknownReference = errors.New("cpx: reference not in dictionary")

	// ErrSplitChromosome is returned when the head and tail
	// alignments of a contig are on different chromosomes.
	ErrSplitChromosome = errors.New("cpx: head and tail alignments on different chromosomes")
)

// InterpretationError is returned when the annotation of a contig
// cannot be made sense of. The error message holds the full annotated
// state of the contig.
type InterpretationError struct {
	Reason string
	Contig *AnnotatedContig
}

func (e *InterpretationError) Error() string {
	return fmt.Sprintf("cpx: %s:\n%v", e.Reason, e.Contig)
}
