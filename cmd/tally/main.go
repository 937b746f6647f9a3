// Command tally records expenses, derives summary statistics and
// writes report and export files. Subcommands take their input from
// flags; there is no interactive prompt loop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"tally/internal/cli"
	"tally/internal/config"
	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/report"
	"tally/internal/services"
	gsheet "tally/internal/sheets/google"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cli.LoadEnvFile()
	settings := config.LoadSettings()
	logger := cli.SetupLogger(settings.LogLevel)
	settings = cli.LoadAndValidateSettings(logger)

	ctx := context.Background()
	prefsStore := config.NewPrefsStore(settings.PrefsFile(), logger)
	prefs := prefsStore.Load()
	layout, err := prefs.DateLayout()
	if err != nil {
		logger.Error("Unusable date format", applog.FieldError, err)
		os.Exit(1)
	}

	result := cli.InitStore(ctx, logger, settings, layout)
	tracker, err := services.NewTracker(ctx, result.Store, prefsStore, logger)
	if err != nil {
		logger.Error("Failed to start tracker", applog.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	if err := run(ctx, tracker, settings, logger, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, tracker *services.Tracker, settings *config.Settings, logger *applog.Logger, command string, args []string) error {
	symbol := tracker.Preferences().CurrencySymbol

	switch command {
	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		date := fs.String("date", "", "date in the configured format, blank for today")
		desc := fs.String("desc", "", "description")
		category := fs.String("category", "", "category name or menu number")
		amount := fs.String("amount", "", "amount")
		confirm := fs.Bool("confirm", false, "confirm an unusually large amount")
		fs.Parse(args)

		res, err := tracker.AddExpense(ctx, services.AddInput{
			Date: *date, Description: *desc, Category: *category,
			Amount: *amount, Confirmed: *confirm,
		})
		if errors.Is(err, core.ErrConfirmationRequired) {
			return fmt.Errorf("amount seems unusually large; re-run with -confirm to accept it")
		}
		if err != nil {
			return err
		}
		fmt.Printf("Expense added (ID: %s)\n", res.Record.ID)
		if res.BudgetWarning != nil {
			fmt.Printf("WARNING: monthly budget exceeded. Budget: %s, Spent: %s\n",
				res.BudgetWarning.Budget.Display(symbol),
				res.BudgetWarning.Spent.Display(symbol))
		}
		return nil

	case "edit":
		fs := flag.NewFlagSet("edit", flag.ExitOnError)
		id := fs.String("id", "", "expense id")
		field := fs.String("field", "", "date, description, category or amount")
		value := fs.String("value", "", "new value")
		confirm := fs.Bool("confirm", false, "confirm an unusually large amount")
		fs.Parse(args)

		rec, err := tracker.EditExpense(ctx, *id, *field, *value, *confirm)
		if err != nil {
			return err
		}
		fmt.Printf("Expense %s updated\n", rec.ID)
		return nil

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		id := fs.String("id", "", "expense id")
		fs.Parse(args)

		if err := tracker.DeleteExpense(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("Expense %s deleted\n", *id)
		return nil

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		category := fs.String("category", "", "filter by category")
		from := fs.String("from", "", "range start date")
		to := fs.String("to", "", "range end date")
		search := fs.String("search", "", "description substring")
		fs.Parse(args)

		records := tracker.Records()
		var err error
		switch {
		case *category != "":
			records, err = tracker.FindByCategory(*category)
		case *from != "" || *to != "":
			records, err = tracker.FindByDateRange(*from, *to)
		case *search != "":
			records = tracker.Search(*search)
		}
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No expenses found.")
			return nil
		}
		total := core.Money{}
		for _, rec := range records {
			fmt.Printf("%-8s %-12s %-25s %-20s %12s\n",
				rec.ID, rec.Date.Format(tracker.DateLayout()), rec.Description,
				rec.Category, rec.Amount.Display(symbol))
			total = total.Plus(rec.Amount)
		}
		fmt.Printf("Total: %s (%d records)\n", total.Display(symbol), len(records))
		return nil

	case "summary":
		return printSummary(tracker, settings, symbol)

	case "budget":
		fs := flag.NewFlagSet("budget", flag.ExitOnError)
		amount := fs.String("amount", "", "monthly budget, 0 to disable")
		fs.Parse(args)

		if err := tracker.SetBudget(*amount); err != nil {
			return err
		}
		if b := tracker.Preferences().MonthlyBudget; b != nil {
			fmt.Printf("Monthly budget set to %s\n", b.Display(symbol))
		} else {
			fmt.Println("Monthly budget disabled")
		}
		return nil

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		format := fs.String("format", "all", "csv, json, sheets or all")
		fs.Parse(args)
		return runExport(ctx, tracker, settings, logger, *format)

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printSummary(tracker *services.Tracker, settings *config.Settings, symbol string) error {
	s := tracker.Summarize()
	if s.Count == 0 {
		fmt.Println("No expense data found. Add some expenses first.")
		return nil
	}

	fmt.Println("Overall:")
	fmt.Printf("  Total Spent:        %s\n", s.Total.Display(symbol))
	fmt.Printf("  Average Expense:    %s\n", s.Average.Display(symbol))
	fmt.Printf("  Largest Expense:    %s\n", s.Max.Display(symbol))
	fmt.Printf("  Number of Expenses: %d\n", s.Count)

	if s.Budget != nil {
		fmt.Println("Current month budget:")
		fmt.Printf("  Budget:    %s\n", s.Budget.Budget.Display(symbol))
		fmt.Printf("  Spent:     %s\n", s.Budget.Spent.Display(symbol))
		fmt.Printf("  Remaining: %s\n", s.Budget.Remaining.Display(symbol))
		if s.Budget.OverBudget {
			fmt.Println("  OVER BUDGET")
		}
	}

	fmt.Println("By category:")
	for _, r := range s.ByCategory {
		fmt.Printf("  %-20s %12s  (%d items)  [%5.1f%%]\n",
			r.Category, r.Total.Display(symbol), r.Count, r.Percentage)
	}

	if len(s.RecentMonths) > 0 {
		fmt.Println("Monthly spending:")
		for _, r := range s.RecentMonths {
			fmt.Printf("  %-10s %12s\n", r.Month, r.Total.Display(symbol))
		}
	}

	if len(s.Top) > 0 {
		fmt.Println("Largest expenses:")
		for _, rec := range s.Top {
			fmt.Printf("  %s  %-25s %-20s %12s\n",
				rec.Date.Format(tracker.DateLayout()), rec.Description,
				rec.Category, rec.Amount.Display(symbol))
		}
	}

	if err := report.WriteSummary(settings.ReportFile(), s.ByCategory); err != nil {
		return err
	}
	fmt.Printf("Summary report saved to %s\n", settings.ReportFile())
	return nil
}

func runExport(ctx context.Context, tracker *services.Tracker, settings *config.Settings, logger *applog.Logger, format string) error {
	records := tracker.Records()
	if len(records) == 0 {
		fmt.Println("No data to export.")
		return nil
	}
	exporter := report.NewExporter(settings.ReportsDir, tracker.DateLayout(), logger)

	switch format {
	case "csv":
		path, err := exporter.ExportCSV(records)
		if err != nil {
			return err
		}
		fmt.Printf("Data exported to %s\n", path)
	case "json":
		path, err := exporter.ExportJSON(records)
		if err != nil {
			return err
		}
		fmt.Printf("Data exported to %s\n", path)
	case "sheets":
		client, err := gsheet.New(ctx, settings.SheetsSpreadsheetID, settings.SheetsSheetName, tracker.DateLayout(), logger)
		if err != nil {
			return err
		}
		if err := client.Export(ctx, records); err != nil {
			return err
		}
		fmt.Println("Data exported to spreadsheet")
	case "all":
		paths, err := exporter.ExportAll(ctx, records)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Printf("Data exported to %s\n", path)
		}
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: tally <command> [flags]

commands:
  add      add a new expense
  list     list expenses, optionally filtered
  edit     replace one field of an expense
  delete   remove an expense
  summary  print statistics and write the summary report
  budget   set or disable the monthly budget
  export   write export files (csv, json, sheets, all)`)
}
