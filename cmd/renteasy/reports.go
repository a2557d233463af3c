package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"renteasy/internal/export"
	applog "renteasy/internal/log"
	"renteasy/internal/report"
	"renteasy/internal/services"
)

func reportCmd() *cobra.Command {
	var start, end, tenant string
	var save bool

	cmd := &cobra.Command{
		Use:       "report <income|pl|arrears|statement>",
		Short:     "Render a report",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"income", "pl", "arrears", "statement"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := report.ParseKind(args[0])
			if !ok || kind == report.KindReceipt {
				return fmt.Errorf("unknown report %q", args[0])
			}
			a, err := newApp(cmd.Context(), applog.ComponentCLI)
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := a.backend.Reports.Generate(cmd.Context(), services.ReportRequest{
				Kind: kind, Start: start, End: end, Tenant: tenant,
			})
			if err != nil {
				return err
			}
			return emit(cmd, a, doc, save)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant name for the statement report")
	cmd.Flags().BoolVar(&save, "save", false, "write the report into EXPORT_DIR instead of stdout")
	return cmd
}

func receiptCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "receipt <payment-id>",
		Short: "Render the receipt of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), applog.ComponentCLI)
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := a.backend.Payments.Receipt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd, a, doc, save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the receipt into EXPORT_DIR instead of stdout")
	return cmd
}

func statementCmd() *cobra.Command {
	var start, end string
	var save bool

	cmd := &cobra.Command{
		Use:   "statement <tenant-name>",
		Short: "Render a tenant statement for a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), applog.ComponentCLI)
			if err != nil {
				return err
			}
			defer a.Close()

			if start == "" && end == "" {
				month := report.MonthOf(a.backend.Reports.Today())
				start, end = month.Start.String(), month.End.String()
			}
			doc, err := a.backend.Reports.Generate(cmd.Context(), services.ReportRequest{
				Kind: report.KindStatement, Start: start, End: end, Tenant: args[0],
			})
			if err != nil {
				return err
			}
			return emit(cmd, a, doc, save)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "period start (YYYY-MM-DD), defaults to the current month")
	cmd.Flags().StringVar(&end, "end", "", "period end (YYYY-MM-DD), defaults to the current month")
	cmd.Flags().BoolVar(&save, "save", false, "write the statement into EXPORT_DIR instead of stdout")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the payments and bills ledgers to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), applog.ComponentCLI)
			if err != nil {
				return err
			}
			defer a.Close()

			payments, err := a.backend.Payments.ListPayments(cmd.Context())
			if err != nil {
				return err
			}
			bills, err := a.backend.Bills.ListBills(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = "RentEasy-Ledger-" + time.Now().Format("2006-01-02") + ".xlsx"
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := export.Workbook(f, payments, bills); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}

// emit prints doc or, with save, writes it into the export directory.
func emit(cmd *cobra.Command, a *app, doc report.Document, save bool) error {
	if !save {
		_, err := fmt.Fprint(cmd.OutOrStdout(), doc.Body)
		return err
	}
	path, err := export.NewDirSaver(a.cfg.ExportDir).Save(cmd.Context(), doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
