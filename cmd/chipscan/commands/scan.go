package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weilun/chipscan/internal/ingest"
	"github.com/weilun/chipscan/internal/market"
	"github.com/weilun/chipscan/internal/report"
	"github.com/weilun/chipscan/internal/scan"
	"github.com/weilun/chipscan/internal/scheduler"
	"github.com/weilun/chipscan/internal/scoring"
	"github.com/weilun/chipscan/pkg/config"
	"github.com/weilun/chipscan/pkg/logger"
	"github.com/weilun/chipscan/pkg/redis"
)

var (
	instPath   string
	marginPath string
	topRows    int
	everySpec  string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "執行籌碼掃描",
	Long: `讀取兩份證交所匯出檔並執行一次完整掃描。

這個命令會:
- 解析三大法人買賣超 (T86) 與融資融券餘額 (MI_MARGN) 匯出檔
- 逐檔抓取 Yahoo Finance 一年日線價量
- 計算量能本質、趨勢、乖離與籌碼警示
- 依綜合評分由高至低輸出排行

Example:
  go run ./cmd/chipscan scan --inst T86.csv --margin MI_MARGN.csv
  go run ./cmd/chipscan scan --inst T86.csv --margin MI_MARGN.csv --top 30
  go run ./cmd/chipscan scan --inst T86.csv --margin MI_MARGN.csv --every "0 16 * * 1-5"`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&instPath, "inst", "", "三大法人買賣超匯出檔 (T86)")
	scanCmd.Flags().StringVar(&marginPath, "margin", "", "融資融券餘額匯出檔 (MI_MARGN)")
	scanCmd.Flags().IntVar(&topRows, "top", 0, "掃描視窗大小 (預設取 SCAN_TOP_ROWS)")
	scanCmd.Flags().StringVar(&everySpec, "every", "", "cron 排程表達式, 留空表示只掃描一次")

	scanCmd.MarkFlagRequired("inst")
	scanCmd.MarkFlagRequired("margin")
}

// runtime bundles what every command needs after boot.
type runtime struct {
	cfg    *config.Config
	logger *logger.Logger
	client *market.Client
	close  func()
}

// buildRuntime loads config, wires the logger, and picks the series cache:
// redis when enabled, otherwise an in-process cache.
func buildRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	var cache market.SeriesCache
	closeFn := func() {}

	if cfg.Redis.Enabled {
		redisClient, err := redis.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		cache = redis.NewCache(redisClient, "chipscan")
		closeFn = func() { redisClient.Close() }
		log.Info("Using redis series cache")
	} else {
		cache = market.NewMemoryCache()
	}

	return &runtime{
		cfg:    cfg,
		logger: log,
		client: market.NewClient(cfg, log, cache),
		close:  closeFn,
	}, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	top := rt.cfg.Scan.TopRows
	if topRows > 0 {
		top = topRows
	}

	if everySpec == "" {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return scanOnce(ctx, rt, top)
	}

	// Scheduled mode: scan immediately, then repeat on the cron schedule
	// until interrupted.
	sched := scheduler.New(rt.logger)
	job := &scanJob{rt: rt, top: top}
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	if err := sched.RunNow(job.Name()); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

// scanOnce runs a single scan and prints the ranked table.
func scanOnce(ctx context.Context, rt *runtime, top int) error {
	flows, margins, err := loadExports()
	if err != nil {
		return err
	}

	scanner := scan.New(rt.client, rt.logger, top)

	records, err := scanner.Run(ctx, flows, margins, func(done, total int) {
		fmt.Fprintf(os.Stderr, "\r掃描中 %d/%d", done, total)
	})
	fmt.Fprint(os.Stderr, "\r\033[K")
	if err != nil {
		return err
	}

	fmt.Println(report.Render(records))
	return nil
}

// loadExports parses both regulatory files fresh on every run so a scheduled
// scan picks up newly downloaded exports.
func loadExports() ([]scoring.FlowRow, []scoring.MarginRow, error) {
	inst, err := ingest.LoadInstitutional(instPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load institutional export: %w", err)
	}

	margin, err := ingest.LoadMargin(marginPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load margin export: %w", err)
	}

	return inst.Rows(), margin.Rows(), nil
}

// scanJob adapts a repeating scan to the scheduler.
type scanJob struct {
	rt  *runtime
	top int
}

func (j *scanJob) Name() string     { return "chip_scan" }
func (j *scanJob) Schedule() string { return everySpec }

func (j *scanJob) Run(ctx context.Context) error {
	return scanOnce(ctx, j.rt, j.top)
}
