// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/fai"

	"github.com/biogo/sv/align"
	"github.com/biogo/sv/cpx"
)

// writeOutputs writes the segment table and, if configured,
// the debug dump of results.
func writeOutputs(results []cpx.Result) error {
	err := writeSegmentFile(cfg.Segments, cfg.Reference, results)
	if err != nil {
		return err
	}
	if cfg.Dump == "" {
		return nil
	}
	return writeFile(cfg.Dump, func(w io.Writer) error {
		return cpx.WriteDump(w, results)
	})
}

func writeSegmentFile(path, reference string, results []cpx.Result) error {
	var ref *fai.File
	if reference != "" {
		f, fasta, err := openReference(reference)
		if err != nil {
			return err
		}
		defer fasta.Close()
		ref = f
	}
	if path == "-" {
		return writeSegments(os.Stdout, results, ref)
	}
	return writeFile(path, func(w io.Writer) error {
		return writeSegments(w, results, ref)
	})
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

// openReference opens the FASTA file at path using the FAI index at
// path+".fai". The returned os.File must be closed after the fai.File
// is no longer used.
func openReference(path string) (*fai.File, *os.File, error) {
	f, err := os.Open(path + ".fai")
	if err != nil {
		return nil, nil, err
	}
	idx, err := fai.ReadFrom(f)
	f.Close()
	if err != nil {
		return nil, nil, err
	}
	fasta, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return fai.NewFile(fasta, idx), fasta, nil
}

// writeSegments writes a tab-delimited table of the successfully
// segmented results: contig name, segments, segment order and, if
// ref is not nil, segment sequences.
func writeSegments(w io.Writer, results []cpx.Result, ref *fai.File) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		segs := make([]string, len(r.Segmentation.Segments))
		for i, s := range r.Segmentation.Segments {
			segs[i] = s.String()
		}
		order := make([]string, len(r.Segmentation.Order))
		for i, o := range r.Segmentation.Order {
			order[i] = strconv.Itoa(o)
		}
		fmt.Fprintf(bw, "%s\t%s\t%s", r.Name, strings.Join(segs, ","), strings.Join(order, ","))
		if ref != nil {
			seqs, err := segmentSeqs(ref, r.Segmentation.Segments)
			if err != nil {
				return fmt.Errorf("%s: %w", r.Name, err)
			}
			fmt.Fprintf(bw, "\t%s", strings.Join(seqs, ","))
		}
		_, err := bw.WriteString("\n")
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

func segmentSeqs(ref *fai.File, segs []align.Interval) ([]string, error) {
	seqs := make([]string, len(segs))
	for i, s := range segs {
		seq, err := ref.SeqRange(s.Ref, s.Start-1, s.End)
		if err != nil {
			return nil, err
		}
		b, err := io.ReadAll(seq)
		if err != nil {
			return nil, err
		}
		seqs[i] = string(b)
	}
	return seqs, nil
}
