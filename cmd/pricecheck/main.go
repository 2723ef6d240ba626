// Command pricecheck queries the exchange once and prints the spot price in
// both directions. Useful for verifying gateway connectivity and reserve
// orientation before letting the engine trade.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"dexbot/internal/clients"
	"dexbot/internal/infra"
	"dexbot/internal/pricing"
)

func main() {
	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		slog.Error("load config failed", slog.Any("error", err))
		os.Exit(1)
	}

	exchange := clients.NewHTTPExchange(cfg.Exchange.Gateway, cfg.Exchange.ID)
	oracle := pricing.NewOracle(exchange)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	xtcPerWICP, err := oracle.Price(ctx, cfg.Tokens.XTC.ID, cfg.Tokens.WICP.ID)
	if err != nil {
		slog.Error("price query failed", slog.String("pair", "XTC/WICP"), slog.Any("error", err))
		os.Exit(1)
	}
	wicpPerXTC, err := oracle.Price(ctx, cfg.Tokens.WICP.ID, cfg.Tokens.XTC.ID)
	if err != nil {
		slog.Error("price query failed", slog.String("pair", "WICP/XTC"), slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("XTC per WICP: %s\n", xtcPerWICP.String())
	fmt.Printf("WICP per XTC: %s\n", wicpPerXTC.String())
}
