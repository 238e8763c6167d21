package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series [code]",
	Short: "查詢單一個股價量序列",
	Long: `抓取單一個股的 Yahoo Finance 一年日線價量, 用於確認資料來源連線。

Example:
  go run ./cmd/chipscan series 2330`,
	Args: cobra.ExactArgs(1),
	RunE: runSeries,
}

func init() {
	rootCmd.AddCommand(seriesCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	code := args[0]

	series, err := rt.client.FetchSeries(context.Background(), code)
	if err != nil {
		return fmt.Errorf("failed to fetch series for %s: %w", code, err)
	}

	fmt.Printf("%s: %d 個交易日\n", code, len(series))
	tail := series
	if len(tail) > 5 {
		tail = tail[len(tail)-5:]
	}
	for _, obs := range tail {
		fmt.Printf("  %s  close=%.2f  volume=%.0f\n", obs.Date.Format("2006-01-02"), obs.Close, obs.Volume)
	}

	return nil
}
