// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/kortschak/utter"
	"github.com/spf13/cobra"

	"github.com/biogo/sv/cpx"
)

var dumpUtter bool

var dumpCmd = &cobra.Command{
	Use:   "dump --checkpoint <annotated.cpx>",
	Short: "Print the annotated contigs held in a checkpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Checkpoint == "" {
			return errors.New("no checkpoint given")
		}
		w := bufio.NewWriter(os.Stdout)
		err := readCheckpoint(cfg.Checkpoint, func(a *cpx.AnnotatedContig) {
			if dumpUtter {
				utter.Fdump(w, a)
				return
			}
			fmt.Fprintf(w, "\n%v\n", a)
		})
		if err != nil {
			return err
		}
		return w.Flush()
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpUtter, "utter", false, "dump the complete Go value of each contig")
}
