package cmd

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fotoctl/gateway"
	"github.com/s0up4200/fotoctl/metrics"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Fotolia API over a local HTTP gateway",
	Long: `Run an HTTP gateway in front of the configured client. Every response
carries X-Fotolia-API-Call-Method-N and X-Fotolia-API-Call-Time-N headers for
the API calls made on its behalf. Prometheus metrics are served on /metrics
unless gateway.metrics is false. /download only fetches from the API host and
gateway.download_hosts, and cross-origin requests are refused unless
gateway.cors_origins lists the origin.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gwCfg := gateway.Config{
			Listen:        cfg.Gateway.Listen,
			CORSOrigins:   cfg.Gateway.CORSOrigins,
			DownloadHosts: downloadHosts(cfg.Fotolia.BaseURL, cfg.Gateway.DownloadHosts),
		}
		if listenAddr != "" {
			gwCfg.Listen = listenAddr
		}

		var served *metrics.Collector
		if cfg.Gateway.Metrics {
			served = collector
		}

		srv := gateway.New(client, served, gwCfg, logger)
		return srv.Run(cmd.Context())
	},
}

// downloadHosts adds the API host to the configured download hosts.
func downloadHosts(baseURL string, configured []string) []string {
	hosts := append([]string(nil), configured...)
	if u, err := url.Parse(baseURL); err == nil && u.Hostname() != "" {
		hosts = append(hosts, u.Hostname())
	}
	return hosts
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on (default from config)")
}
