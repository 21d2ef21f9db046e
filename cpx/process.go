// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpx

import (
	"context"
	"sync"

	"github.com/biogo/sv/align"
)

// Result is the outcome of interpreting a single contig.
type Result struct {
	Name string

	// Annotated is nil if annotation failed.
	Annotated    *AnnotatedContig
	Segmentation Segmentation

	// Err holds any annotation or
	// segmentation failure.
	Err error
}

// Interpret annotates and segments c.
func Interpret(c align.Contig, d *align.Dictionary) Result {
	r := Result{Name: c.Name}
	r.Annotated, r.Err = Annotate(c, d)
	if r.Err != nil {
		return r
	}
	r.Segmentation, r.Err = Segment(r.Annotated)
	return r
}

// Process interprets the contigs received from contigs using workers
// goroutines, passing each Result to visit. The dictionary is shared by
// all workers. Results are visited from a single goroutine in the order
// they complete, so callers should match them to their contigs by name.
//
// A failure to interpret a contig is reported in its Result and does not
// stop processing. Process returns when contigs is closed and all its
// contigs have been visited, when ctx is cancelled, or when visit
// returns a non-nil error, returning the first error seen.
func Process(ctx context.Context, contigs <-chan align.Contig, d *align.Dictionary, workers int, visit func(Result) error) error {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan Result, workers*2)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case c, ok := <-contigs:
					if !ok {
						return
					}
					select {
					case results <- Interpret(c, d):
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var err error
	for r := range results {
		if err != nil {
			continue
		}
		err = visit(r)
		if err != nil {
			cancel()
		}
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

// ProcessAll interprets all of contigs using workers goroutines and
// returns the results in the order of contigs.
func ProcessAll(ctx context.Context, contigs []align.Contig, d *align.Dictionary, workers int) ([]Result, error) {
	in := make(chan align.Contig)
	go func() {
		defer close(in)
		for _, c := range contigs {
			select {
			case in <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	byName := make(map[string][]Result, len(contigs))
	err := Process(ctx, in, d, workers, func(r Result) error {
		byName[r.Name] = append(byName[r.Name], r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(contigs))
	for _, c := range contigs {
		rs := byName[c.Name]
		if len(rs) == 0 {
			continue
		}
		results = append(results, rs[0])
		byName[c.Name] = rs[1:]
	}
	return results, nil
}
