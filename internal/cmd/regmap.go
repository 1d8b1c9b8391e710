package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/bitforge/internal/imagecore"
)

var (
	regmapOut        string
	regmapChdrWidth  int
	regmapProtoMajor int
	regmapProtoMinor int
)

var regmapCmd = &cobra.Command{
	Use:   "regmap",
	Short: "Emit the generated image-core header",
	Long: `Write the image-core constants header consumed by the HDL build:
the CHDR bus width and the RFNoC protocol version tuple.

The defaults match the current image-core generation; override them
only when building against a different core.`,
	Args: cobra.NoArgs,
	RunE: runRegmap,
}

func init() {
	rootCmd.AddCommand(regmapCmd)
	regmapCmd.Flags().StringVarP(&regmapOut, "out", "o", "rfnoc_image_core.vh", "Output header path")
	regmapCmd.Flags().IntVar(&regmapChdrWidth, "chdr-width", imagecore.Default().ChdrWidth, "CHDR bus width in bits")
	regmapCmd.Flags().IntVar(&regmapProtoMajor, "proto-major", imagecore.Default().ProtoMajor, "Protocol major version")
	regmapCmd.Flags().IntVar(&regmapProtoMinor, "proto-minor", imagecore.Default().ProtoMinor, "Protocol minor version")
}

func runRegmap(cmd *cobra.Command, args []string) error {
	header := imagecore.Header{
		ChdrWidth:  regmapChdrWidth,
		ProtoMajor: regmapProtoMajor,
		ProtoMinor: regmapProtoMinor,
	}

	if err := header.WriteFile(regmapOut); err != nil {
		return err
	}

	fmt.Printf("✅ Wrote %s (CHDR_W=%d, protover %d.%d)\n",
		regmapOut, header.ChdrWidth, header.ProtoMajor, header.ProtoMinor)
	return nil
}
