package main

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	scanConfigPath  string
	scanRegion      string
	scanEnv         string
	scanLineagePath string
	scanOnce        bool
	scanInterval    time.Duration
	scanMetricsAddr string
	scanDebug       bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan SageMaker and emit catalog records",
	Long: `Scan SageMaker endpoints, models and model package groups and emit
one normalized catalog record per entity as a JSON line.

Endpoints are processed first, then models, then groups: model records
embed endpoint names and group records embed model names, so each pass
feeds the correlation tables of the next.`,
	Example: `  sagescan scan --once                       # single scan of us-east-1
  sagescan scan --region eu-west-1 --once    # single scan, other region
  sagescan scan --lineage lineage.yaml       # resolve links via lineage dump
  sagescan scan --interval 30m               # continuous scanning`,
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanConfigPath, "config", "c", "", "Path to config file")
	scanCmd.Flags().StringVarP(&scanRegion, "region", "r", "", "AWS region to scan")
	scanCmd.Flags().StringVarP(&scanEnv, "env", "e", "", "Catalog fabric for emitted URNs (e.g. PROD)")
	scanCmd.Flags().StringVarP(&scanLineagePath, "lineage", "l", "", "Path to precomputed lineage dump")
	scanCmd.Flags().BoolVar(&scanOnce, "once", false, "Run one scan and exit")
	scanCmd.Flags().DurationVar(&scanInterval, "interval", 0, "Scan interval in continuous mode")
	scanCmd.Flags().StringVar(&scanMetricsAddr, "metrics", "", "Metrics server address")
	scanCmd.Flags().BoolVar(&scanDebug, "debug", false, "Enable debug logging")
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	scanCommand := &ScanCommand{
		ConfigPath:  scanConfigPath,
		Region:      scanRegion,
		Env:         scanEnv,
		LineagePath: scanLineagePath,
		Once:        scanOnce,
		Interval:    scanInterval,
		MetricsAddr: scanMetricsAddr,
		Debug:       scanDebug,
	}

	return scanCommand.Run()
}
