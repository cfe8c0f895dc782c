package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/report"
)

// exportRecord is one transaction as returned by GET /api/v1/transactions.
type exportRecord struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      any    `json:"amount"`
	Date        string `json:"date"`
}

type reportOptions struct {
	file     string
	filter   string
	now      string
	timezone string
	currency string
	layout   string
}

func (o *reportOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "transaction export (JSON array or list response); - for stdin")
	cmd.Flags().StringVar(&o.filter, "filter", report.TokenAll, "time range: today, 7days, 2weeks, 1month, 3months, 6months, all")
	cmd.Flags().StringVar(&o.now, "now", "", "evaluate relative ranges at this RFC 3339 instant")
	cmd.Flags().StringVar(&o.timezone, "tz", "UTC", "time zone that defines calendar days")
	cmd.Flags().StringVar(&o.currency, "currency", report.DefaultPresentation.CurrencySymbol, "currency symbol")
	cmd.Flags().StringVar(&o.layout, "date-layout", report.DefaultPresentation.DateLayout, "Go layout for rendered dates")
	_ = cmd.MarkFlagRequired("file")
}

func (o *reportOptions) presentation() report.Presentation {
	return report.Presentation{CurrencySymbol: o.currency, DateLayout: o.layout}
}

// load reads the export and applies the filter window.
func (o *reportOptions) load(stdin io.Reader) ([]domain.Transaction, report.Range, error) {
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return nil, report.Range{}, fmt.Errorf("invalid --tz: %w", err)
	}

	now := time.Now()
	if o.now != "" {
		now, err = time.Parse(time.RFC3339, o.now)
		if err != nil {
			return nil, report.Range{}, fmt.Errorf("invalid --now: %w", err)
		}
	}

	var raw []byte
	if o.file == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(o.file)
	}
	if err != nil {
		return nil, report.Range{}, err
	}

	txs, err := parseExport(raw, loc)
	if err != nil {
		return nil, report.Range{}, err
	}

	r := report.Resolve(o.filter, now.In(loc))
	return report.Filter(txs, r), r, nil
}

func parseExport(raw []byte, loc *time.Location) ([]domain.Transaction, error) {
	raw = bytes.TrimSpace(raw)

	var records []exportRecord
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if len(raw) > 0 && raw[0] == '{' {
		var list struct {
			Transactions []exportRecord `json:"transactions"`
		}
		if err := dec.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode export: %w", err)
		}
		records = list.Transactions
	} else if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	txs := make([]domain.Transaction, 0, len(records))
	for _, rec := range records {
		txs = append(txs, rec.toDomain(loc))
	}
	return txs, nil
}

// toDomain keeps malformed records: an unknown type stays as given and
// an unreadable amount or date becomes zero.
func (r exportRecord) toDomain(loc *time.Location) domain.Transaction {
	txType, err := domain.ParseTransactionType(r.Type)
	if err != nil {
		txType = domain.TransactionType(r.Type)
	}

	amount := r.Amount
	if n, ok := amount.(json.Number); ok {
		amount = n.String()
	}

	var occurred time.Time
	if t, err := time.Parse(time.RFC3339, r.Date); err == nil {
		occurred = t.In(loc)
	} else if t, err := time.ParseInLocation(time.DateOnly, r.Date, loc); err == nil {
		occurred = t
	}

	return domain.Transaction{
		ID:          r.ID,
		Type:        txType,
		Category:    r.Category,
		Description: r.Description,
		Amount:      domain.ParseAmount(amount),
		OccurredAt:  occurred,
	}
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build reports from a transaction export",
	}
	cmd.AddCommand(summaryCmd(), contextCmd(), chartCmd())
	return cmd
}

func summaryCmd() *cobra.Command {
	var (
		opts   reportOptions
		asJSON bool
		topN   int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totals, averages and top expense categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, r, err := opts.load(cmd.InOrStdin())
			if err != nil {
				return err
			}

			pres := opts.presentation()
			agg := report.NewAggregator(txs, pres)
			summary := agg.Summarize(topN)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Filter:          %s\n", report.NormalizeToken(opts.filter))
			if r.Bounded {
				fmt.Fprintf(out, "Range:           %s to %s\n", pres.Date(r.Start), pres.Date(r.End))
			}
			fmt.Fprintf(out, "Transactions:    %d (%d income, %d expenses)\n", summary.TransactionCount, summary.IncomeCount, summary.ExpenseCount)
			fmt.Fprintf(out, "Total income:    %s\n", pres.Money(summary.TotalIncome))
			fmt.Fprintf(out, "Total expenses:  %s\n", pres.Money(summary.TotalExpenses))
			fmt.Fprintf(out, "Net savings:     %s\n", pres.Money(summary.NetSavings))
			fmt.Fprintf(out, "Monthly income:  %s\n", pres.Money(summary.AvgMonthlyIncome))
			fmt.Fprintf(out, "Monthly expense: %s\n", pres.Money(summary.AvgMonthlyExpense))
			if top := agg.TopCategories(topN); len(top) > 0 {
				fmt.Fprintf(out, "Top categories:  %s\n", strings.Join(top, ", "))
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().IntVar(&topN, "top", report.DefaultTopCategories, "number of top expense categories")
	return cmd
}

func contextCmd() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Render the assistant's financial context",
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, _, err := opts.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.BuildContext(txs, opts.presentation()))
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

func chartCmd() *cobra.Command {
	var (
		opts        reportOptions
		kind        string
		granularity string
		series      string
		txType      string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print line or pie chart data as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, _, err := opts.load(cmd.InOrStdin())
			if err != nil {
				return err
			}

			switch kind {
			case "line":
				g := report.GranularityFor(report.NormalizeToken(opts.filter))
				if granularity != "" {
					parsed, ok := report.ParseGranularity(granularity)
					if !ok {
						return fmt.Errorf("invalid --granularity %q", granularity)
					}
					g = parsed
				}
				return printJSON(cmd.OutOrStdout(), report.BuildLineChart(txs, g, report.ParseSeriesSelection(series)))
			case "pie":
				t, err := domain.ParseTransactionType(txType)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report.BuildPieChart(txs, t))
			default:
				return fmt.Errorf("invalid --kind %q, expected line or pie", kind)
			}
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", "line", "line or pie")
	cmd.Flags().StringVar(&granularity, "granularity", "", "daily, weekly or monthly (default depends on --filter)")
	cmd.Flags().StringVar(&series, "series", string(report.SeriesBoth), "income, expense or both")
	cmd.Flags().StringVar(&txType, "type", string(domain.TransactionTypeExpense), "transaction type for the pie chart")
	return cmd
}
