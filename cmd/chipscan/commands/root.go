package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chipscan",
	Short: "chipscan - 台股籌碼掃描器",
	Long: `chipscan 台股籌碼掃描 CLI

讀取證交所三大法人買賣超與融資融券餘額匯出檔，
對照 Yahoo Finance 價量資料，計算籌碼綜合評分。

Usage:
  go run ./cmd/chipscan [command]

Examples:
  go run ./cmd/chipscan scan --inst T86.csv --margin MI_MARGN.csv
  go run ./cmd/chipscan series 2330`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
