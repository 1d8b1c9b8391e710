package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bitforge",
	Short: "Bitforge - FPGA image build orchestrator",
	Long: `Bitforge drives the Vivado synthesis flow for USRP FPGA images.
It resolves the build mode, composes per-variant macro definitions, invokes
the toolchain, and stages finished bitstreams under their canonical names.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}
