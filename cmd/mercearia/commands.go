package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/catalog"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/config"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
	"github.com/LISSConsulting/LISSTech.Mercearia/internal/store"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the point-of-sale screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			saleID, _ := cmd.Flags().GetInt("sale")
			return executeRun(path, saleID)
		},
	}
	cmd.Flags().Int("sale", 0, "start on this sale (0 = no active sale)")
	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold a register (config, products, journal dir)",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			created, err := config.ScaffoldProject(dir)
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Println("All files already exist, nothing to create.")
				return nil
			}
			for _, path := range created {
				fmt.Printf("Created %s\n", path)
			}
			return nil
		},
	}
}

func salesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Inspect journaled sales",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every sale in the journal with its latest status",
		RunE: func(cmd *cobra.Command, args []string) error {
			sales, err := replayJournal(cmd)
			if err != nil {
				return err
			}
			fmt.Print(formatSaleList(sales))
			return nil
		},
	})
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Sales reports from the journal",
	}

	daily := &cobra.Command{
		Use:   "daily",
		Short: "Completed sales per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			sales, err := replayJournal(cmd)
			if err != nil {
				return err
			}
			to := startOfDay(time.Now()).AddDate(0, 0, 1)
			from := to.AddDate(0, 0, -days)
			fmt.Print(formatDailyReport(sale.DailyTotals(sales, from, to, time.Local)))
			return nil
		},
	}
	daily.Flags().Int("days", 7, "number of days to report, ending today")

	top := &cobra.Command{
		Use:   "top",
		Short: "Best-selling products",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			sales, err := replayJournal(cmd)
			if err != nil {
				return err
			}
			fmt.Print(formatTopReport(sale.TopProducts(sales, limit)))
			return nil
		},
	}
	top.Flags().Int("limit", 10, "number of products to show (0 = all)")

	stock := &cobra.Command{
		Use:   "stock",
		Short: "Stock moved by sales and returns, per product",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			moves, err := store.StockMoves(cfg.Resolve(cfg.Journal.Dir), zerolog.Nop())
			if err != nil {
				return err
			}
			fmt.Print(formatStockReport(sale.StockBalance(moves)))
			return nil
		},
	}

	cmd.AddCommand(daily, top, stock)
	return cmd
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the product catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			products, err := catalog.Load(cfg.Resolve(cfg.Catalog.Path))
			if err != nil {
				return err
			}
			fmt.Print(formatCatalog(products))
			return nil
		},
	})
	return cmd
}

// loadConfig loads and validates the config named by the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// replayJournal returns the latest snapshot of every journaled sale.
func replayJournal(cmd *cobra.Command) ([]*sale.Sale, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return store.Replay(cfg.Resolve(cfg.Journal.Dir), zerolog.Nop())
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func formatSaleList(sales []*sale.Sale) string {
	if len(sales) == 0 {
		return "No sales in the journal\n"
	}
	var b strings.Builder
	b.WriteString("Sales\n")
	b.WriteString("─────\n")
	for _, s := range sales {
		fmt.Fprintf(&b, "  #%-5d %-10s %-16s %3d items  %10s  %s\n",
			s.ID, s.Status.Label(), s.OpenedAt.Format("2006-01-02 15:04"), len(s.Items), s.Total, s.Operator.Name)
	}
	return b.String()
}

func formatDailyReport(days []sale.DayTotal) string {
	if len(days) == 0 {
		return "No completed sales in the period\n"
	}
	var b strings.Builder
	b.WriteString("Daily totals\n")
	b.WriteString("────────────\n")
	var total sale.Money
	var count int
	for _, d := range days {
		fmt.Fprintf(&b, "  %s  %4d sales  %12s\n", d.Day, d.Count, d.Total)
		total += d.Total
		count += d.Count
	}
	fmt.Fprintf(&b, "  %-10s  %4d sales  %12s\n", "total", count, total)
	return b.String()
}

func formatTopReport(products []sale.ProductTotal) string {
	if len(products) == 0 {
		return "No products sold\n"
	}
	var b strings.Builder
	b.WriteString("Top products\n")
	b.WriteString("────────────\n")
	for i, p := range products {
		fmt.Fprintf(&b, "  %2d. %-30s %10s  %12s\n", i+1, p.Name, p.Qty, p.Revenue)
	}
	return b.String()
}

func formatStockReport(products []sale.ProductStock) string {
	if len(products) == 0 {
		return "No stock movements\n"
	}
	var b strings.Builder
	b.WriteString("Stock movements\n")
	b.WriteString("───────────────\n")
	fmt.Fprintf(&b, "  %-12s %-30s %10s %10s %10s\n", "product", "name", "out", "returned", "net")
	for _, p := range products {
		fmt.Fprintf(&b, "  %-12s %-30s %10s %10s %10s\n", p.ProductID, p.Name, p.Out, p.Returned, p.Net)
	}
	return b.String()
}

func formatCatalog(products []catalog.Product) string {
	if len(products) == 0 {
		return "No products in the catalog\n"
	}
	var b strings.Builder
	b.WriteString("Products\n")
	b.WriteString("────────\n")
	for _, p := range products {
		state := ""
		if !p.Active {
			state = "  (inactive)"
		}
		fmt.Fprintf(&b, "  %-8s %-40s %10s/%s%s\n", p.ID, p.Label(), p.Price, p.Unit, state)
	}
	return b.String()
}
