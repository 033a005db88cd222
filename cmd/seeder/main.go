package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/pricewise"
	"github.com/poiesic/pricewise/ingestion"
)

// A small demo catalog for local experimentation.
var products = []ingestion.SourceDocument{
	{
		Title:   "AeroType K68 Mechanical Keyboard",
		URL:     "https://shop.example.com/aerotype-k68",
		Price:   "$89.99",
		Tags:    []string{"keyboard", "mechanical", "office"},
		Content: "A compact 68-key mechanical keyboard with hot-swappable brown switches, PBT keycaps, and a detachable USB-C cable. Quiet enough for shared offices while keeping tactile feedback.",
	},
	{
		Title:   "AeroType K100 Pro",
		URL:     "https://shop.example.com/aerotype-k100",
		Price:   "$159.00",
		Tags:    []string{"keyboard", "mechanical", "gaming"},
		Content: "A full-size mechanical keyboard with optical switches rated for 100 million presses, per-key RGB lighting, and onboard macro storage. Aimed at competitive play.",
	},
	{
		Title:   "GlidePoint Wireless Mouse",
		URL:     "https://shop.example.com/glidepoint",
		Price:   "$24.50",
		Tags:    []string{"mouse", "wireless", "travel"},
		Content: "A budget wireless mouse with a 12-month battery life, silent clicks, and a compact shape that fits small bags. Connects over a 2.4 GHz dongle.",
	},
	{
		Title:   "GlidePoint MX Ergonomic Mouse",
		URL:     "https://shop.example.com/glidepoint-mx",
		Price:   "$99.99",
		Tags:    []string{"mouse", "wireless", "ergonomic"},
		Content: "A vertical ergonomic mouse with a 4000 DPI sensor, three-device Bluetooth pairing, and a sculpted thumb rest that keeps the wrist in a neutral position during long sessions.",
	},
	{
		Title:   "WideView 34 Ultrawide Monitor",
		URL:     "https://shop.example.com/wideview-34",
		Price:   "$499.00",
		Tags:    []string{"monitor", "ultrawide", "productivity"},
		Content: "A 34-inch ultrawide monitor with a 3440x1440 panel, 100 Hz refresh rate, and built-in picture-by-picture mode for driving two inputs side by side.",
	},
	{
		Title:   "WideView 27 4K",
		URL:     "https://shop.example.com/wideview-27",
		Price:   "$329.00",
		Tags:    []string{"monitor", "4k", "creative"},
		Content: "A 27-inch 4K IPS monitor with factory calibration, 95 percent DCI-P3 coverage, and USB-C power delivery for single-cable laptop setups.",
	},
	{
		Title:   "HushPods ANC Earbuds",
		URL:     "https://shop.example.com/hushpods",
		Price:   "$129.00",
		Tags:    []string{"audio", "earbuds", "anc"},
		Content: "True wireless earbuds with active noise cancellation, a transparency mode, and six hours of playback per charge. The case adds three full recharges.",
	},
	{
		Title:   "HushPods Lite",
		URL:     "https://shop.example.com/hushpods-lite",
		Price:   "$49.00",
		Tags:    []string{"audio", "earbuds", "budget"},
		Content: "Entry-level wireless earbuds with a comfortable fit, physical buttons, and IPX4 sweat resistance. No noise cancellation, but excellent value for calls and podcasts.",
	},
	{
		Title:   "DeskRise Standing Desk Converter",
		URL:     "https://shop.example.com/deskrise",
		Price:   "$189.00",
		Tags:    []string{"desk", "ergonomic", "office"},
		Content: "A gas-spring standing desk converter that sits on top of an existing desk. Holds a monitor and laptop up to 15 kg and raises smoothly with one lever.",
	},
	{
		Title:   "LumenBar Monitor Light",
		URL:     "https://shop.example.com/lumenbar",
		Price:   "$39.99",
		Tags:    []string{"lighting", "desk", "office"},
		Content: "A clip-on monitor light bar with adjustable color temperature and an asymmetric beam that lights the desk without glare on the screen.",
	},
	{
		Title:   "PackLite 25L Commuter Backpack",
		URL:     "https://shop.example.com/packlite-25",
		Price:   "$74.00",
		Tags:    []string{"bag", "commute", "travel"},
		Content: "A weatherproof commuter backpack with a padded 16-inch laptop sleeve, quick-access phone pocket, and a luggage pass-through strap for travel days.",
	},
	{
		Title:   "ChargeHub 100W GaN Charger",
		URL:     "https://shop.example.com/chargehub-100",
		Price:   "$59.00",
		Tags:    []string{"charger", "usb-c", "travel"},
		Content: "A 100W GaN wall charger with two USB-C ports and one USB-A port. Fast-charges a laptop and phone simultaneously while staying pocket sized.",
	},
}

var dbPath = flag.String("db", "./products_db", "path to the product database")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	db, err := pricewise.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	added, err := pipeline.Ingest(ctx, products...)
	if err != nil {
		panic(err)
	}

	// Wait for async embedding before exit
	pipeline.Wait()

	slog.Info("seeded product catalog", "products", len(products), "chunks", len(added))
}
