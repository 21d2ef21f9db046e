// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/biogo/sv/internal/config"
)

var (
	v   = newViper()
	cfg config.Config
)

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	return v
}

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cpxsv",
	Short: "Interpret complex structural variants from multi-alignment assembly contigs",
	Long: `cpxsv decomposes contigs whose alignments jump between more than two
locations on one chromosome into ordered, oriented reference segments.

Settings may be given as flags, as CPXSV_* environment variables or in
a cpxsv.yaml file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		err := v.BindPFlags(cmd.Flags())
		if err != nil {
			return err
		}
		cfg, err = config.New(v)
		return err
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("workers", v.GetInt("workers"), "number of contigs interpreted concurrently")
	flags.String("checkpoint", "", "annotated contig checkpoint file")
	flags.String("compression", v.GetString("compression"), "checkpoint compression: bgzf or xz")
	flags.String("dump", "", "debug dump file")
	flags.String("segments", v.GetString("segments"), "segment table output, - for stdout")
	flags.String("reference", "", "FASTA file with .fai index used to report segment sequences")

	rootCmd.AddCommand(annotateCmd, segmentCmd, dumpCmd)
}

// execute runs the root command, exiting on failure.
func execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}
