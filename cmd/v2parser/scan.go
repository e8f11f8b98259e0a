package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"v2parser/internal/collectors"
	_ "v2parser/internal/collectors/file"
	_ "v2parser/internal/collectors/http"
	"v2parser/internal/config"
	"v2parser/internal/geoip"
	"v2parser/internal/logger"
	"v2parser/internal/xray"
	"v2parser/internal/xray/parser"
	"v2parser/internal/xray/schema"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	keepDuplicates bool
	scanProxy      string
	scanTimeout    time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan [file|url]",
	Short: "Extract share links from text or a subscription and print their metadata",
	Long:  `Reads text from a file, an http(s) subscription URL, or stdin when nothing or "-" is given. Base64 subscriptions are decoded. Every share link found is printed as one metadata JSON line. Links pointing at the same server are printed once unless --keep-duplicates is set.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			logger.Log.Fatalf("Error loading config: %v", err)
		}
		if cmd.Flags().Changed("proxy") {
			cfg.Scan.Proxy = scanProxy
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Scan.Timeout = scanTimeout
		}

		if cfg.Scan.GeoIPASN != "" || cfg.Scan.GeoIPCountry != "" {
			if err := geoip.Init(cfg.Scan.GeoIPASN, cfg.Scan.GeoIPCountry); err != nil {
				logger.Log.Fatalf("GeoIP Init failed: %v", err)
			}
			defer geoip.Close()
		}

		target := ""
		if len(args) > 0 {
			target = args[0]
		}

		collector, err := collectors.Get(collectors.KindOf(target))
		if err != nil {
			logger.Log.Fatalf("Error: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		links, err := collector.Collect(ctx, target, collectors.Options{
			Timeout: cfg.Scan.Timeout,
			Proxy:   cfg.Scan.Proxy,
		})
		if err != nil {
			logger.Log.Fatalf("Error collecting links: %v", err)
		}
		if len(links) == 0 {
			logger.Log.Warn("No share links found in input.")
			return
		}
		logger.Log.Infof("🔎 Found %d links", len(links))

		bar := progressbar.NewOptions(len(links),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan]Decoding...[reset]"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)

		seen := make(map[string]bool)
		var lines []string
		var failed, duplicates int

		for _, link := range links {
			bar.Add(1)

			p, err := parser.Parse(link)
			if err != nil {
				failed++
				logger.Log.Debugf("Skipping link: %v", err)
				continue
			}

			if !keepDuplicates {
				hash := p.CalculateHash()
				if seen[hash] {
					duplicates++
					continue
				}
				seen[hash] = true
			}

			line, err := schema.Marshal(annotate(p))
			if err != nil {
				failed++
				continue
			}
			lines = append(lines, line)
		}
		bar.Finish()
		fmt.Fprintln(os.Stderr)

		for _, line := range lines {
			fmt.Println(line)
		}

		logger.Log.Infof("✅ Decoded %d links (%d failed, %d duplicates)", len(lines), failed, duplicates)
	},
}

// scanEntry is one scan output line: the link metadata plus optional GeoIP tags.
type scanEntry struct {
	*schema.Metadata
	Country string `json:"country,omitempty"`
	ISP     string `json:"isp,omitempty"`
}

func annotate(p *parser.Profile) scanEntry {
	entry := scanEntry{Metadata: xray.MetadataOf(p)}
	if geoip.Enabled() {
		if geo, err := geoip.Lookup(p.Address); err == nil {
			entry.Country = geo.Country
			entry.ISP = geo.ISP
		}
	}
	return entry
}

func init() {
	scanCmd.Flags().BoolVar(&keepDuplicates, "keep-duplicates", false, "Print links that point at the same server more than once")
	scanCmd.Flags().StringVar(&scanProxy, "proxy", "", "Fetch subscriptions through this http:// or socks5:// proxy")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0, "Subscription download timeout (default from settings, 30s)")
	rootCmd.AddCommand(scanCmd)
}
