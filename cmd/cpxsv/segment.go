// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"

	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"

	"github.com/biogo/sv/cpx"
)

var segmentCmd = &cobra.Command{
	Use:   "segment --checkpoint <annotated.cpx>",
	Short: "Segment the reference from a checkpoint of annotated contigs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return segment()
	},
}

func segment() error {
	if cfg.Checkpoint == "" {
		return errors.New("no checkpoint given")
	}
	var results []cpx.Result
	err := readCheckpoint(cfg.Checkpoint, func(a *cpx.AnnotatedContig) {
		r := cpx.Result{Name: a.Name(), Annotated: a}
		r.Segmentation, r.Err = cpx.Segment(a)
		results = append(results, r)
	})
	if err != nil {
		return err
	}
	reportFailures(results)
	return writeOutputs(results)
}

// readCheckpoint calls fn for each annotated contig in the checkpoint
// file at path.
func readCheckpoint(path string, fn func(*cpx.AnnotatedContig)) error {
	r, err := cpx.OpenCheckpoint(path, cfg.Workers)
	if err != nil {
		return err
	}
	defer r.Close()
	var n int
	for {
		a, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		fn(a)
		n++
	}
	log.Printf("read %d annotated contigs from %s", n, path)
	return nil
}
