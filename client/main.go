package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go-smartshop/internal/app"
	"go-smartshop/internal/chat"
	"go-smartshop/internal/config"
	ierr "go-smartshop/internal/errors"
	"go-smartshop/internal/export"
	"go-smartshop/internal/loader"
	"go-smartshop/internal/model"
	"go-smartshop/internal/repository/helper"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "smartshop-client",
		Short:         "Load, export and query SmartShop products",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(loadCommand(), exportsCommand(), chatCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadCommand() *cobra.Command {
	var (
		formats   []string
		questions []string
	)

	cmd := &cobra.Command{
		Use:   "load <products.json>",
		Short: "Add products from a JSON file, mirror them and export the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a := app.NewOrPanic(ctx, config.LoadConfigOrPanic())
			defer a.Close()

			// product events queue up until the publisher runs
			go a.Publisher.Start(ctx)

			if err := readProductsFromJsonAndSave(ctx, a, args[0]); err != nil {
				return err
			}

			a.Products.Wait()
			if err := a.Products.SyncUnsynced(ctx); err != nil {
				return err
			}

			products := helper.ToDomain(a.Store.GetAll())
			printStatistics(products)
			printRemoteState(ctx, a, products)

			for _, name := range formats {
				format, err := export.ParseFormat(name)
				if err != nil {
					return err
				}
				path, err := a.Exporter.Export(products, format)
				if err != nil {
					return err
				}
				fmt.Println("Exported", path)
			}

			for _, q := range questions {
				if err := ask(ctx, a.Chat, q); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&formats, "export", []string{"csv", "excel", "text", "json", "xlsx"}, "export formats to write after loading")
	cmd.Flags().StringArrayVar(&questions, "ask", nil, "question for the SmartShop helper, may be repeated")
	return cmd
}

func exportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "Manage exported files",
	}

	exporter := func() (*export.Exporter, error) {
		cnf, err := config.LoadSection[config.Export]()
		if err != nil {
			return nil, err
		}
		return export.New(cnf.Dir), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exported files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := exporter()
			if err != nil {
				return err
			}
			names, err := e.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <file>",
		Short: "Delete an exported file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := exporter()
			if err != nil {
				return err
			}
			removed, err := e.Remove(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%s: %w", args[0], ierr.NotFound)
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	})

	return cmd
}

func chatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>...",
		Short: "Ask the SmartShop helper",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gilas, err := config.LoadSection[config.GilasAI]()
			if err != nil {
				return err
			}
			chatCnf, err := config.LoadSection[config.Chat]()
			if err != nil {
				return err
			}

			session := chat.NewSession(app.NewResponderOrPanic(gilas), chatCnf.TypingDelay)
			return ask(cmd.Context(), session, strings.Join(args, " "))
		},
	}
}

func readProductsFromJsonAndSave(ctx context.Context, a *app.App, filePath string) error {
	jsonFile, err := os.Open(filePath)
	if err != nil {
		fmt.Println("Error opening JSON file:", err)
		return err
	}
	defer jsonFile.Close()

	items, err := loader.Decode(jsonFile)
	if err != nil {
		fmt.Println("Error reading JSON file:", err)
		return err
	}

	result, err := loader.Load(ctx, items, a.Products)
	if err != nil {
		fmt.Println("Error saving products:", err)
		return err
	}

	for _, r := range result.Rejected {
		fmt.Printf("Skipped item %d (%q): %s\n", r.Index, r.Name, r.Reason)
	}
	fmt.Printf("%d products saved.\n", result.Added)
	return nil
}

func printStatistics(products []model.Product) {
	s := export.Summarize(products)
	fmt.Println("Total products:", s.Count)
	fmt.Println("Total stock value:", s.TotalValue.StringFixed(2))
	if s.Count == 0 {
		return
	}
	fmt.Println("Average product value:", s.AverageValue.StringFixed(2))
	fmt.Printf("Most expensive: %s (%s)\n", s.MostExpensive.Name, s.MostExpensive.Price.StringFixed(2))
	fmt.Printf("Lowest stock: %s (%d units)\n", s.LowestStock.Name, s.LowestStock.Quantity)
}

func printRemoteState(ctx context.Context, a *app.App, products []model.Product) {
	for _, p := range products {
		remote, err := a.Mirror.Remote(ctx, p.Id)
		switch {
		case errors.Is(err, ierr.NotFound):
			fmt.Printf("%s: not mirrored\n", p.Name)
		case err != nil:
			fmt.Printf("%s: remote read failed: %v\n", p.Name, err)
		default:
			fmt.Printf("%s: mirrored, %d units at %s\n", remote.Name, remote.Quantity, remote.Price.StringFixed(2))
		}
	}
}

func ask(ctx context.Context, session *chat.Session, question string) error {
	reply, err := session.Send(ctx, question)
	if err != nil {
		return err
	}
	fmt.Printf("> %s\n%s\n", question, reply.Text)
	return nil
}
