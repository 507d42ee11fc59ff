package cmd

import (
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "toolledger",
	Short: "Tools ledger backend CLI",
}

var bannerFonts = []string{"banner", "big", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "rectangles"}

// Execute runs the CLI. ASCII banner on start (random font each run).
func Execute() {
	fig := figure.NewFigure("ToolLedger ->", bannerFonts[rand.Intn(len(bannerFonts))], true)
	fig.Print()

	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
