package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"homekeeper/internal/config"
	"homekeeper/internal/domain/auth"
	"homekeeper/internal/domain/item"
	"homekeeper/internal/domain/maintenance"
	"homekeeper/internal/identity"
	"homekeeper/internal/pkg/civil"
	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/server"
)

const (
	demoEmail    = "demo@homekeeper.app"
	demoPassword = "demo1234"
)

type seedItem struct {
	name, category, room, retailer string
	price                          string
	currency                       item.Currency
	boughtDaysAgo                  int
	warrantyMonths                 int
	interval                       int
	serviceDaysAgo                 []int
	replace                        bool
}

var catalog = []seedItem{
	{"Samsung Refrigerator", "Appliances", "Kitchen", "Best Buy", "1299.99", item.CurrencyUSD, 700, 24, 180, []int{520, 340, 160}, false},
	{"Dyson V15 Vacuum", "Appliances", "Living Room", "Amazon", "749.00", item.CurrencyUSD, 340, 12, 30, []int{300, 250, 200, 20}, false},
	{"LG OLED TV", "Electronics", "Living Room", "Costco", "1899.00", item.CurrencyUSD, 95, 24, 365, nil, false},
	{"Voltas Split AC", "HVAC", "Bedroom", "Croma", "42990", item.CurrencyINR, 420, 12, 90, []int{330, 240}, false},
	{"Prestige Water Purifier", "Appliances", "Kitchen", "Flipkart", "15499", item.CurrencyINR, 1100, 12, 120, []int{980, 860, 500}, true},
	{"Bosch Drill", "Tools", "Garage", "Home Depot", "129.00", item.CurrencyUSD, 30, 36, 0, nil, false},
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()
	app, err := server.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("build app: %v", err)
	}
	defer app.Close(ctx)

	log.Println("Creating demo user...")
	userID, err := app.Auth.Signup(ctx, &auth.SignupRequest{Email: demoEmail, Password: demoPassword, Name: "Demo Household"})
	if errors.Is(err, identity.ErrEmailTaken) {
		log.Println("Demo user already exists; nothing to do")
		return
	}
	if err != nil {
		log.Fatalf("create demo user: %v", err)
	}

	today := civil.Today(time.Now())
	log.Println("Creating items...")
	for _, s := range catalog {
		price := decimal.RequireFromString(s.price)
		it, err := app.Items.Create(ctx, userID, &item.CreateItemRequest{
			Name:                s.name,
			Category:            s.category,
			Room:                s.room,
			PurchaseDate:        today.AddDays(-s.boughtDaysAgo),
			Price:               &price,
			Currency:            s.currency,
			Retailer:            s.retailer,
			WarrantyMonths:      s.warrantyMonths,
			MaintenanceInterval: s.interval,
		})
		if err != nil {
			log.Fatalf("create %s: %v", s.name, err)
		}

		for _, ago := range s.serviceDaysAgo {
			cost := decimal.NewFromInt(int64(ago % 50))
			if _, err := app.Maintenance.Log(ctx, userID, &maintenance.LogRequest{
				ItemID: it.ID,
				Date:   today.AddDays(-ago),
				Cost:   &cost,
				Notes:  "Routine service",
			}); err != nil {
				log.Fatalf("log maintenance for %s: %v", s.name, err)
			}
		}

		if s.replace {
			if _, err := app.Items.MarkForReplacement(ctx, userID, it.ID, true); err != nil {
				log.Fatalf("mark %s: %v", s.name, err)
			}
		}
	}

	log.Printf("Seed completed: %d items for %s", len(catalog), userID)
	log.Printf("Demo account: %s / %s", demoEmail, demoPassword)
}
