// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/fai"
	"github.com/biogo/hts/sam"
	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"

	"github.com/biogo/sv/align"
	"github.com/biogo/sv/cpx"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <contigs.bam|contigs.sam>",
	Short: "Annotate and segment the contigs of a SAM or BAM file",
	Long: `annotate reads the primary and supplementary alignments of assembled
contigs, grouped by contig name, and interprets each contig with more than
two alignments whose head and tail map to the same chromosome.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return annotate(cmd.Context(), args[0])
	},
}

func init() {
	flags := annotateCmd.Flags()
	flags.Int("min-gap", v.GetInt("min-gap"), "split alignments at indels of at least this length, 0 to disable")
	flags.String("fai", "", "FAI index giving the reference order, default is the input header order")
}

func annotate(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	contigs, h, err := readContigs(f)
	if err != nil {
		return err
	}
	dict, err := dictionary(h)
	if err != nil {
		return err
	}

	candidates := contigs[:0]
	for _, c := range contigs {
		c = align.SplitContigGaps(c, cfg.MinGap)
		if !isCandidate(c) {
			log.Debug.Printf("skipping %s with %d alignments", c.Name, len(c.Alignments))
			continue
		}
		candidates = append(candidates, c)
	}
	log.Printf("interpreting %d of %d contigs", len(candidates), len(contigs))

	results, err := cpx.ProcessAll(ctx, candidates, dict, cfg.Workers)
	if err != nil {
		return err
	}
	reportFailures(results)

	if cfg.Checkpoint != "" {
		err = writeCheckpoint(cfg.Checkpoint, results)
		if err != nil {
			return err
		}
	}
	return writeOutputs(results)
}

// isCandidate returns whether c may describe a complex event: it must
// have more than two alignments and its head and tail must be on the
// same chromosome.
func isCandidate(c align.Contig) bool {
	n := len(c.Alignments)
	return n > 2 && c.Alignments[0].Ref == c.Alignments[n-1].Ref
}

// readContigs reads contigs from a BAM or SAM stream.
func readContigs(f *os.File) ([]align.Contig, *sam.Header, error) {
	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, nil, err
	}
	if bytes.Equal(magic, []byte{0x1f, 0x8b}) {
		r, err := bam.NewReader(br, cfg.Workers)
		if err != nil {
			return nil, nil, err
		}
		defer r.Close()
		contigs, err := align.ReadContigs(r)
		return contigs, r.Header(), err
	}
	r, err := sam.NewReader(br)
	if err != nil {
		return nil, nil, err
	}
	contigs, err := align.ReadContigs(r)
	return contigs, r.Header(), err
}

// dictionary returns the reference ordering from the configured FAI
// index, or from h if none is configured.
func dictionary(h *sam.Header) (*align.Dictionary, error) {
	if cfg.FAI == "" {
		if len(h.Refs()) == 0 {
			return nil, errors.New("no reference sequences in input header and no FAI index given")
		}
		return align.DictionaryFromHeader(h)
	}
	f, err := os.Open(cfg.FAI)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	idx, err := fai.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return align.DictionaryFromIndex(idx)
}

func reportFailures(results []cpx.Result) {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Error.Printf("%s: %v", r.Name, r.Err)
		}
	}
	if failed != 0 {
		log.Printf("%d of %d contigs could not be interpreted", failed, len(results))
	}
}

func writeCheckpoint(path string, results []cpx.Result) (err error) {
	comp, err := cpx.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w, err := cpx.NewWriter(f, comp, cfg.Workers)
	if err != nil {
		return err
	}
	var n int
	for _, r := range results {
		if r.Annotated == nil {
			continue
		}
		err = w.Write(r.Annotated)
		if err != nil {
			return err
		}
		n++
	}
	log.Printf("wrote %d annotated contigs to %s", n, path)
	return w.Close()
}
