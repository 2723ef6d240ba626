package infra

import (
	"fmt"
	"strings"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
)

// PrintBanner displays the startup banner with mode-specific warnings.
func PrintBanner(cfg *Config) {
	mode := strings.ToUpper(cfg.Trading.Mode)

	color := colorCyan
	modeDesc := "VIRTUAL FILLS (no custody moves)"
	if mode == "REAL" {
		color = colorRed
		modeDesc = "REAL SETTLEMENT"
	}

	fmt.Println()
	fmt.Printf("%s###########################################################%s\n", color, colorReset)
	fmt.Printf("%s#               🤖 dexbot order engine                    #%s\n", color, colorReset)
	fmt.Printf("%s#   MODE:    %-44s #%s\n", color, mode, colorReset)
	fmt.Printf("%s#   TYPE:    %-44s #%s\n", color, modeDesc, colorReset)
	fmt.Printf("%s#   VERSION: %-44s #%s\n", color, cfg.App.Version, colorReset)
	if mode == "REAL" {
		fmt.Printf("%s#   ⚠️  TRADES WILL MOVE REAL FUNDS  ⚠️                   #%s\n", colorRed, colorReset)
	}
	fmt.Printf("%s###########################################################%s\n", color, colorReset)
	fmt.Println()
}
