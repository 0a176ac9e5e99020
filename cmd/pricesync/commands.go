package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"price-recon/internal/config"
	"price-recon/internal/fileio"
	"price-recon/internal/reconcile/model"
	"price-recon/internal/reconcile/profile"
	recSvc "price-recon/internal/reconcile/service"
)

type reconcileFlags struct {
	supplier, base string
	profile        string
	out            string
	threshold      float64
	changePercent  float64
	noCodes        bool
	noFuzzy        bool
	supplierHeader int
	baseHeader     int
}

func newRootCommand(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "pricesync",
		Short:         "Supplier price list reconciliation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newReconcileCommand(cfg, logger), newProfilesCommand())
	return root
}

func newReconcileCommand(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	var f reconcileFlags

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match a supplier price list against the product base",
		Example: `  pricesync reconcile --supplier JHT_05.xlsx --base base.xlsx
  pricesync reconcile --supplier dimi.xls --base base.xlsx --out report.xlsx
  pricesync reconcile --supplier p.csv --base base.csv --profile default --no-fuzzy --out -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReconcile(cmd.OutOrStdout(), f, logger)
		},
	}

	cmd.Flags().StringVar(&f.supplier, "supplier", "", "supplier price list (.xlsx, .xls, .csv)")
	cmd.Flags().StringVar(&f.base, "base", "", "product base (.xlsx, .xls, .csv)")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", cfg.DefaultProfile,
		"supplier profile: "+strings.Join(profile.Names(), ", ")+" or auto")
	cmd.Flags().StringVarP(&f.out, "out", "o", "-", "report file: .xlsx or .json; - for JSON on stdout")
	cmd.Flags().Float64Var(&f.threshold, "threshold", cfg.Threshold, "fuzzy name similarity threshold (0..1)")
	cmd.Flags().Float64Var(&f.changePercent, "change-percent", cfg.ChangePercent, "price change reported above this, %")
	cmd.Flags().BoolVar(&f.noCodes, "no-codes", false, "skip bracket and generic code stages")
	cmd.Flags().BoolVar(&f.noFuzzy, "no-fuzzy", false, "skip fuzzy name stage")
	cmd.Flags().IntVar(&f.supplierHeader, "supplier-header-row", 1, "header row in the supplier file (1-based)")
	cmd.Flags().IntVar(&f.baseHeader, "base-header-row", 1, "header row in the base file (1-based)")
	_ = cmd.MarkFlagRequired("supplier")
	_ = cmd.MarkFlagRequired("base")

	return cmd
}

func runReconcile(stdout io.Writer, f reconcileFlags, logger zerolog.Logger) error {
	start := time.Now()

	supplierRows, err := fileio.ReadFile(f.supplier, f.supplierHeader)
	if err != nil {
		return fmt.Errorf("read supplier: %w", err)
	}
	baseRows, err := fileio.ReadFile(f.base, f.baseHeader)
	if err != nil {
		return fmt.Errorf("read base: %w", err)
	}

	p, ok := profile.Resolve(f.profile, f.supplier)
	if !ok {
		return fmt.Errorf("unknown profile %q", f.profile)
	}
	opt := p.Apply(model.Options{
		Threshold:     f.threshold,
		ChangePercent: f.changePercent,
		EnableCodes:   !f.noCodes,
		EnableFuzzy:   !f.noFuzzy,
	})

	supplierRows, baseRows, st := p.Prepare(supplierRows, baseRows)
	logger.Info().
		Str("profile", p.Name).
		Int("supplier_rows", st.Total).
		Int("removed_by_price", st.ByPrice).
		Int("removed_by_balance", st.ByBalance).
		Msg("preprocess")

	rep, err := recSvc.Run(supplierRows, baseRows, opt)
	if err != nil {
		return err
	}

	if err := writeReport(stdout, f.out, rep); err != nil {
		return err
	}
	logger.Info().
		Int("article", len(rep.Matches)).
		Int("bracket", len(rep.BracketMatches)).
		Int("code", len(rep.CodeMatches)).
		Int("fuzzy", len(rep.FuzzyMatches)).
		Int("new", rep.UnmatchedCount).
		Int("price_changes", len(rep.PriceChanges)).
		Str("match_rate", fmt.Sprintf("%.1f%%", rep.MatchRate)).
		Dur("elapsed", time.Since(start)).
		Msg("reconcile done")
	return nil
}

func writeReport(stdout io.Writer, out string, rep model.Report) error {
	if out == "" || out == "-" {
		return fileio.WriteReportJSON(stdout, rep)
	}

	var write func(io.Writer, model.Report) error
	switch strings.ToLower(filepath.Ext(out)) {
	case ".xlsx":
		write = fileio.WriteReportXLSX
	case ".json":
		write = fileio.WriteReportJSON
	default:
		return fmt.Errorf("unsupported report format: %s", out)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := write(file, rep); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func newProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List supplier profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSUPPLIER ARTICLE\tSUPPLIER PRICE\tBASE PRICE")
			for _, p := range profile.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Supplier.Article, p.Supplier.Price, p.Base.Price)
			}
			return tw.Flush()
		},
	}
}
