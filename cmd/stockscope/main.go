// stockscope — stock analysis and losers screener CLI.
//
// Main CLI entrypoint using cobra command framework. Reports are printed
// as JSON envelopes on stdout; diagnostics go to stderr.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stockscope/internal/config"
	"stockscope/internal/marketdata"
	"stockscope/internal/report"
	"stockscope/pkg/models"
	"stockscope/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stockscope",
	Short: "stockscope — stock analysis and daily losers screener",
	Long: `stockscope fetches market data, derives price metrics, classifies
sentiment and risk, and emits JSON reports: a detailed single-symbol
analysis and a top-losers screen across a symbol universe.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "market data provider override (yahoo, synthetic)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(losersCmd)
	rootCmd.AddCommand(sourcesCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stockscope %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Info Command ---

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Detailed analysis of one stock",
	Long: `Fetch quote, history, fundamentals, and news for a symbol, derive
price change, volatility, sentiment, and risk, and print the report as
a JSON envelope.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, _ := cmd.Flags().GetString("symbol")
		if symbol == "" {
			return fmt.Errorf("--symbol is required")
		}
		pretty, _ := cmd.Flags().GetBool("pretty")

		svc, err := buildService(cmd)
		if err != nil {
			return err
		}

		resp := svc.StockDetail(cmd.Context(), utils.NormalizeSymbol(symbol))
		if pretty {
			printDetail(resp)
			return nil
		}
		return emit(resp)
	},
}

func init() {
	infoCmd.Flags().StringP("symbol", "s", "", "ticker symbol to analyze (required)")
	infoCmd.Flags().Bool("pretty", false, "human-readable output instead of JSON")
}

// --- Losers Command ---

var losersCmd = &cobra.Command{
	Use:   "losers",
	Short: "Top declining stocks across the universe",
	Long: `Scan the configured symbol universe and report the stocks that
declined the most versus their previous close, sorted worst first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		industry, _ := cmd.Flags().GetString("industry")
		limit, _ := cmd.Flags().GetInt("limit")
		pretty, _ := cmd.Flags().GetBool("pretty")
		if limit <= 0 {
			limit = cfg.Screener.DefaultLimit
		}

		svc, err := buildService(cmd)
		if err != nil {
			return err
		}

		resp := svc.TopLosers(cmd.Context(), industry, limit)
		if pretty {
			printLosers(resp)
			return nil
		}
		return emit(resp)
	},
}

func init() {
	losersCmd.Flags().StringP("industry", "i", "", "filter by industry (case-insensitive, \"all\" for no filter)")
	losersCmd.Flags().IntP("limit", "l", 0, "maximum losers to return (default from config, 20)")
	losersCmd.Flags().Bool("pretty", false, "human-readable output instead of JSON")
}

// --- Sources Command ---

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show configured data sources and their reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := buildProvider(cmd)
		if err != nil {
			return err
		}

		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  stockscope — Data Sources")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:   %s (%s)\n", version, commit)
		fmt.Printf("  Provider:  %s\n", provider.Name())
		fmt.Printf("  Cache TTL: %ds\n", cfg.Cache.TTLSeconds)
		fmt.Println()

		fmt.Println("  News feeds:")
		if !cfg.News.Enabled {
			fmt.Println("    (disabled)")
		} else {
			rss := buildRSS()
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			for _, feed := range rss.Feeds() {
				status := "✅ reachable"
				if err := marketdata.NewRSSNews([]marketdata.Feed{feed}).Ping(ctx); err != nil {
					status = fmt.Sprintf("❌ %v", err)
				}
				fmt.Printf("    %-18s %s\n", feed.Name+":", status)
			}
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Wiring ---

// buildProvider constructs the market data provider named by the
// --provider flag or the config file.
func buildProvider(cmd *cobra.Command) (marketdata.Provider, error) {
	name, _ := cmd.Flags().GetString("provider")
	if name == "" {
		name = cfg.Provider.Name
	}
	switch name {
	case "yahoo":
		return marketdata.NewYahooWithOptions(marketdata.YahooOptions{
			RatePerSecond: cfg.Provider.RatePerSecond,
			CacheTTL:      time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		}), nil
	case "synthetic", "":
		return marketdata.NewSynthetic(cfg.Provider.SyntheticSeed), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want yahoo or synthetic)", name)
	}
}

func buildRSS() *marketdata.RSSNews {
	feeds := make([]marketdata.Feed, 0, len(cfg.News.Feeds))
	for _, f := range cfg.News.Feeds {
		feeds = append(feeds, marketdata.Feed{Name: f.Name, URL: f.URL})
	}
	return marketdata.NewRSSNews(feeds)
}

func buildService(cmd *cobra.Command) (*report.Service, error) {
	provider, err := buildProvider(cmd)
	if err != nil {
		return nil, err
	}
	var rss *marketdata.RSSNews
	if cfg.News.Enabled {
		rss = buildRSS()
	}
	return report.New(provider, rss, report.Options{
		Universe:  cfg.Screener.Universe,
		BatchSize: cfg.Screener.BatchSize,
	}), nil
}

// emit writes the envelope as indented JSON on stdout.
func emit(resp *models.Response) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// --- Pretty printers ---

func printDetail(resp *models.Response) {
	if !resp.Success {
		printFailure(resp)
		return
	}
	d, ok := resp.Data.(*models.StockDetail)
	if !ok {
		fmt.Println(resp.Message)
		return
	}

	fmt.Printf("📊 %s (%s) — %s / %s\n", d.Name, d.Symbol, d.Sector, d.Industry)
	fmt.Printf("   Price:      $%.2f (prev close $%.2f)\n", d.CurrentPrice, d.PreviousClose)
	if d.PriceChangePercent != nil {
		fmt.Printf("   Change:     %s\n", utils.FormatPct(*d.PriceChangePercent))
	}
	if d.Volatility != nil {
		fmt.Printf("   Volatility: %.2f%%\n", *d.Volatility)
	}
	if d.MarketCap > 0 {
		fmt.Printf("   Market Cap: %s\n", utils.FormatUSDCompact(d.MarketCap))
	}
	fmt.Printf("   Sentiment:  %s (risk: %s)\n", d.Sentiment, d.RiskLevel)

	fmt.Println("\n   Insights:")
	for _, ins := range d.Insights {
		fmt.Printf("   • %s\n", ins)
	}

	if len(d.News) > 0 {
		fmt.Println("\n   News:")
		for _, n := range d.News {
			fmt.Printf("   • %s (%s, %s)\n", n.Title, n.Source, n.PublishedAt)
		}
	}
}

func printLosers(resp *models.Response) {
	if !resp.Success {
		printFailure(resp)
		return
	}
	losers, ok := resp.Data.([]models.Loser)
	if !ok {
		fmt.Println(resp.Message)
		return
	}

	fmt.Printf("📉 %s\n\n", resp.Message)
	fmt.Printf("   %-6s %-28s %10s %10s %12s %10s  %s\n",
		"SYMBOL", "COMPANY", "PRICE", "CHANGE", "MKT CAP", "VOLUME", "INDUSTRY")
	for _, l := range losers {
		fmt.Printf("   %-6s %-28.28s %10.2f %10s %12s %10s  %s\n",
			l.Symbol, l.CompanyName, l.CurrentPrice,
			utils.FormatPct(l.PriceChangePercent),
			utils.FormatUSDCompact(l.MarketCap),
			utils.FormatVolume(l.Volume),
			l.Industry)
	}
}

func printFailure(resp *models.Response) {
	if resp.Error != "" {
		fmt.Printf("❌ %s\n", resp.Error)
		return
	}
	fmt.Printf("⚠️  %s\n", resp.Message)
}
