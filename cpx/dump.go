// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
)

// String returns the debug description of the annotated contig.
func (a *AnnotatedContig) String() string {
	if a == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Contig:\t%v\nBasicInfo:\t%v\nJumps:\t%v\nSeg.Boundaries:\t%v",
		a.contig, a.info, a.jumps, a.breakpoints)
}

// WriteDump writes a debug description of each result to w, in contig
// name order. Results without an annotation are written with their error.
func WriteDump(w io.Writer, results []Result) error {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	bw := bufio.NewWriter(w)
	for _, r := range sorted {
		var err error
		switch {
		case r.Annotated == nil:
			_, err = fmt.Fprintf(bw, "\n%s\nError:\t%v\n", r.Name, r.Err)
		case r.Err != nil:
			reason := r.Err.Error()
			var ierr *InterpretationError
			if errors.As(r.Err, &ierr) {
				reason = ierr.Reason
			}
			_, err = fmt.Fprintf(bw, "\n%v\nError:\t%s\n", r.Annotated, reason)
		default:
			_, err = fmt.Fprintf(bw, "\n%v\n%v\n", r.Annotated, r.Segmentation)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
