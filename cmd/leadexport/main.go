// Command leadexport writes every locally saved lead to a dated CSV or XLSX
// file, using the same store configuration as the site.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wolfman30/rollerup-site/cmd/mainconfig"
	"github.com/wolfman30/rollerup-site/internal/app/bootstrap"
	appconfig "github.com/wolfman30/rollerup-site/internal/config"
	"github.com/wolfman30/rollerup-site/internal/leadexport"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

func main() {
	cfg, _ := mainconfig.LoadConfig()
	logger := logging.New(cfg.LogLevel)

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout, logger); err != nil {
		logger.Error("lead export failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *appconfig.Config, args []string, stdout io.Writer, logger *logging.Logger) error {
	fs := flag.NewFlagSet("leadexport", flag.ContinueOnError)
	fs.SetOutput(stdout)
	outDir := fs.String("out", ".", "directory to write the export into")
	format := fs.String("format", leadexport.FormatCSV, "export format: csv or xlsx")
	timeout := fs.Duration("timeout", 30*time.Second, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	storeRT, err := bootstrap.BuildLeadStore(ctx, cfg, mainconfig.LoadAWSConfig, logger, nil)
	if err != nil {
		return err
	}
	defer storeRT.Close()

	exporter := leadexport.NewExporter(storeRT.Store, logger, nil)
	path, err := exporter.WriteFile(ctx, *outDir, *format)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}
