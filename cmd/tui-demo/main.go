// Package main runs the ledger browser against a generated in-memory ledger.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/storage"
	"github.com/Veraticus/spice-ledger/internal/tui"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
)

type merchant struct {
	name     string
	category model.Category
	low      float64
	high     float64
}

var merchants = []merchant{
	{"Whole Foods Market", model.CategoryFood, 20, 180},
	{"Chipotle", model.CategoryFood, 9, 25},
	{"Starbucks", model.CategoryFood, 4, 12},
	{"Shell Oil", model.CategoryTransport, 30, 70},
	{"Uber", model.CategoryTransport, 8, 45},
	{"Netflix", model.CategoryEntertainment, 15.49, 15.49},
	{"AMC Theatres", model.CategoryEntertainment, 12, 40},
	{"CVS Pharmacy", model.CategoryOther, 5, 60},
	{"Home Depot", model.CategoryOther, 15, 250},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if _, err := store.SaveTransactions(ctx, generate(time.Now(), 100)); err != nil {
		return err
	}

	theme := themes.Default
	if len(os.Args) > 1 {
		theme = themes.GetTheme(os.Args[1])
	}

	return tui.Run(ctx,
		tui.WithStorage(store),
		tui.WithTheme(theme),
		tui.WithSize(120, 40),
		tui.WithExportDir(os.TempDir()),
	)
}

// generate builds n days of spending ending at now, with rent on the first
// of each month and a paycheck on the 1st and 15th.
func generate(now time.Time, n int) []model.Transaction {
	rng := rand.New(rand.NewPCG(1, 2))
	var txns []model.Transaction

	for i := range n {
		day := now.AddDate(0, 0, -i)
		date := model.FormatDate(day)

		switch day.Day() {
		case 1:
			txns = append(txns,
				model.Transaction{Date: date, Category: model.CategoryRent, Description: "Rent", Amount: 1850, Type: model.TypeExpense},
				model.Transaction{Date: date, Category: model.CategoryOther, Description: "Paycheck", Amount: 3200, Type: model.TypeIncome},
			)
		case 15:
			txns = append(txns,
				model.Transaction{Date: date, Category: model.CategoryOther, Description: "Paycheck", Amount: 3200, Type: model.TypeIncome})
		}

		m := merchants[rng.IntN(len(merchants))]
		amount := m.low + rng.Float64()*(m.high-m.low)
		txns = append(txns, model.Transaction{
			Date:        date,
			Category:    m.category,
			Description: m.name,
			Amount:      float64(int(amount*100)) / 100,
			Type:        model.TypeExpense,
		})
	}
	return txns
}
