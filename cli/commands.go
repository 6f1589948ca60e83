// Package cli provides the Cobra-based CLI for the store system.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"wecare/docs"
	"wecare/domain"
	"wecare/engine"
	"wecare/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rejectionMsg is the operator-facing text for a failed sale line. It
// deliberately does not distinguish an unknown ID from missing stock.
const rejectionMsg = "Invalid product ID or insufficient stock!"

var (
	rootCmd = &cobra.Command{
		Use:   "wecare",
		Short: "WeCare single-store inventory and transaction system",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject collaborators
			if catalogRepo != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			fs := afero.NewOsFs()
			var err error
			catalogRepo, err = store.NewRepository(
				viper.GetString("store"),
				viper.GetString("data"),
				fs,
			)
			if err != nil {
				return err
			}
			if docEmitter == nil {
				docEmitter = docs.NewEmitter(fs, viper.GetString("invoice-dir"))
			}
			return nil
		},
	}

	catalogRepo domain.CatalogRepository
	docEmitter  domain.DocumentEmitter
)

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(cmd.InOrStdin())
			for {
				fmt.Print("wecare> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					fmt.Println("Thank you for using WeCare Beauty Store System!")
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("store", "file", "store backend: memory|file")
	rootCmd.PersistentFlags().String("data", "products.txt", "catalog file path")
	rootCmd.PersistentFlags().String("invoice-dir", "", "directory for invoice/receipt files")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	viper.BindPFlag("invoice-dir", rootCmd.PersistentFlags().Lookup("invoice-dir"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("WECARE")
	viper.AutomaticEnv()

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "View the inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := catalogRepo.Load(context.Background())
			if err != nil {
				return err
			}
			if catalog.Len() == 0 {
				fmt.Println("No products available!")
				return nil
			}
			printCatalog(catalog)
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	// sell
	var customer string
	var items []string
	sellCmd := &cobra.Command{
		Use:   "sell",
		Short: "Make a sale (buy three, get one free)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if customer == "" {
				return errors.New("customer required")
			}
			lines := items
			items = nil // repeatable flag, do not accumulate across runs

			ctx := context.Background()
			catalog, err := catalogRepo.Load(ctx)
			if err != nil {
				return err
			}
			if catalog.Len() == 0 {
				fmt.Println("No products available!")
				return nil
			}

			sales := engine.NewSaleProcessor(catalog)
			cart := &domain.Cart{}
			if len(lines) > 0 {
				sellItems(sales, cart, lines)
			} else {
				printCatalog(catalog)
				sellInteractive(cmd, sales, cart)
			}
			if cart.Empty() {
				return nil
			}

			path, err := docEmitter.EmitSaleInvoice(customer, cart)
			if err != nil {
				return err
			}
			start := time.Now()
			if err := catalogRepo.Save(ctx, catalog); err != nil {
				slog.Error("catalog save failed", "error", err)
				return err
			}
			slog.Info("sale completed",
				"customer", customer,
				"lines", len(cart.Lines),
				"total", cart.TotalAmount,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			fmt.Println("Sales invoice generated: " + path)
			fmt.Println("Sale completed successfully!")
			return nil
		},
	}
	sellCmd.Flags().StringVar(&customer, "customer", "", "customer name")
	sellCmd.Flags().StringArrayVar(&items, "item", nil, "sale line as ID:QUANTITY (repeatable)")
	rootCmd.AddCommand(sellCmd)

	// add
	var name, brand, country, costStr string
	var quantity int
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Purchase a new product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("name required")
			}
			if brand == "" {
				return errors.New("brand required")
			}
			cost, err := parseCost(costStr)
			if err != nil {
				return err
			}
			ctx := context.Background()
			catalog, err := catalogRepo.Load(ctx)
			if err != nil {
				return err
			}

			purchases := engine.NewPurchaseProcessor(catalog)
			p, err := purchases.AddNewProduct(name, brand, country, quantity, cost)
			if err != nil {
				if domain.IsDuplicateProductError(err) {
					fmt.Println("Product exists! Use restock instead.")
					return nil
				}
				return err
			}
			return completePurchase(ctx, catalog, p, quantity, cost, "Product added")
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "product name")
	addCmd.Flags().StringVar(&brand, "brand", "", "brand")
	addCmd.Flags().StringVar(&country, "country", "", "country of origin")
	addCmd.Flags().IntVar(&quantity, "quantity", 0, "quantity")
	addCmd.Flags().StringVar(&costStr, "cost", "", "unit cost price (Rs)")
	rootCmd.AddCommand(addCmd)

	// restock
	var restockID, restockQty int
	var restockCostStr string
	restockCmd := &cobra.Command{
		Use:   "restock",
		Short: "Restock an existing product",
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, err := parseCost(restockCostStr)
			if err != nil {
				return err
			}
			ctx := context.Background()
			catalog, err := catalogRepo.Load(ctx)
			if err != nil {
				return err
			}

			purchases := engine.NewPurchaseProcessor(catalog)
			p, err := purchases.Restock(restockID, restockQty, cost)
			if err != nil {
				return err
			}
			return completePurchase(ctx, catalog, p, restockQty, cost, "Stock updated!")
		},
	}
	restockCmd.Flags().IntVar(&restockID, "id", 0, "product ID")
	restockCmd.Flags().IntVar(&restockQty, "quantity", 0, "additional quantity")
	restockCmd.Flags().StringVar(&restockCostStr, "cost", "", "new unit cost price (Rs)")
	rootCmd.AddCommand(restockCmd)
}

// sellItems applies non-interactive ID:QUANTITY sale lines. Rejected
// lines are reported and skipped; the rest of the sale continues.
func sellItems(sales *engine.SaleProcessor, cart *domain.Cart, items []string) {
	for _, item := range items {
		idStr, qtyStr, ok := strings.Cut(item, ":")
		if !ok || !engine.ValidateQuantity(qtyStr) {
			fmt.Println("Invalid item! Use ID:QUANTITY with a positive quantity.")
			continue
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			fmt.Println("Invalid item! Use ID:QUANTITY with a positive quantity.")
			continue
		}
		qty, _ := strconv.Atoi(qtyStr)
		addToCart(sales, cart, id, qty)
	}
}

// sellInteractive builds the cart from operator prompts, ID 0 ends the sale.
func sellInteractive(cmd *cobra.Command, sales *engine.SaleProcessor, cart *domain.Cart) {
	r := bufio.NewReader(cmd.InOrStdin())
	for {
		fmt.Print("\nEnter product ID (0 to finish): ")
		idStr, err := r.ReadString('\n')
		if err != nil {
			return
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			fmt.Println("Invalid input! Please enter a number.")
			continue
		}
		if id == 0 {
			return
		}

		fmt.Print("Enter quantity: ")
		qtyStr, err := r.ReadString('\n')
		if err != nil {
			return
		}
		qtyStr = strings.TrimSpace(qtyStr)
		if !engine.ValidateQuantity(qtyStr) {
			fmt.Println("Invalid quantity! Please enter a positive number.")
			continue
		}
		qty, _ := strconv.Atoi(qtyStr)
		addToCart(sales, cart, id, qty)
	}
}

func addToCart(sales *engine.SaleProcessor, cart *domain.Cart, id, qty int) {
	line, err := sales.ProcessSale(id, qty)
	if err != nil {
		slog.Debug("sale line rejected", "product_id", id, "quantity", qty, "error", err)
		fmt.Println(rejectionMsg)
		return
	}
	cart.Add(line)
	fmt.Printf("Added to cart: %s x %d (+%d free)\n", line.Name, line.Quantity, line.Free)
}

// completePurchase persists the catalog and emits the purchase receipt
// shared by the add and restock paths.
func completePurchase(ctx context.Context, catalog *domain.Catalog, p domain.Product, quantity int, cost decimal.Decimal, doneMsg string) error {
	start := time.Now()
	if err := catalogRepo.Save(ctx, catalog); err != nil {
		slog.Error("catalog save failed", "error", err)
		return err
	}
	path, err := docEmitter.EmitPurchaseReceipt(p.Name, p.Brand, quantity, cost)
	if err != nil {
		return err
	}
	slog.Info("purchase completed",
		"name", p.Name,
		"brand", p.Brand,
		"quantity", quantity,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	fmt.Println("Purchase receipt generated: " + path)
	fmt.Println(doneMsg)
	return nil
}

func parseCost(s string) (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid cost %q", s)
	}
	if !cost.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("cost must be positive")
	}
	return cost, nil
}

func printCatalog(catalog *domain.Catalog) {
	line := strings.Repeat("-", 74)
	fmt.Println(line)
	fmt.Printf("%-5s%-20s%-15s%-10s%-10s%s\n", "ID", "Product Name", "Brand", "Quantity", "Price", "Origin")
	fmt.Println(line)
	for i, p := range catalog.Products() {
		fmt.Printf("%-5d%-20s%-15s%-10d%-10s%s\n",
			i+1, p.Name, p.Brand, p.Quantity, p.SellingPrice.StringFixed(2), p.Country)
	}
	fmt.Println(line)
}

func Execute() error {
	return rootCmd.Execute()
}
