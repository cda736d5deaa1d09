// Command historyctl browses the gateway's recognition history in the terminal.
package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"alpr_gateway/internal/historybrowser"
	"alpr_gateway/internal/logger"
	"alpr_gateway/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

const (
	defaultGatewayURL = "http://localhost:8081"
	historyPath       = "/api/history"
)

func main() {
	env := viper.New()
	env.SetEnvPrefix("ALPR")
	env.AutomaticEnv()
	env.SetDefault("gateway_url", defaultGatewayURL)

	gatewayURL := flag.String("url", env.GetString("gateway_url"), "gateway base URL (env ALPR_GATEWAY_URL)")
	limit := flag.Int("limit", historybrowser.DefaultLimit, fmt.Sprintf("rows per page (at most %d)", historybrowser.MaxLimit))
	timeout := flag.Duration("timeout", historybrowser.DefaultTimeout, "per-request timeout")
	logFile := flag.String("log", "historyctl.log", "diagnostic log file")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	endpoint, err := historyEndpoint(*gatewayURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	pageSize, err := pageLimit(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	level := logger.InfoLevel
	if *debug {
		level = logger.DebugLevel
	}
	log := logger.New(logger.Options{Level: level, File: *logFile, NoStdout: true})
	defer func() { _ = log.Sync() }()
	log.Infow("historyctl_started", "endpoint", endpoint, "limit", pageSize, "timeout", timeout.String())

	src := historybrowser.NewHTTPSource(endpoint, *timeout)
	p := tea.NewProgram(tui.New(src, log, pageSize), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running history browser: %v\n", err)
		os.Exit(1)
	}
}

// historyEndpoint appends the history route to a gateway base URL.
func historyEndpoint(base string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("invalid gateway url %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid gateway url %q: scheme and host required", base)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + historyPath
	return u.String(), nil
}


// pageLimit validates -limit. Values above the gateway's page cap are
// lowered to it so paging never steps over rows.
func pageLimit(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid -limit %d: must be positive", n)
	}
	if n > historybrowser.MaxLimit {
		fmt.Fprintf(os.Stderr, "-limit %d exceeds the gateway maximum, using %d\n", n, historybrowser.MaxLimit)
	}
	return historybrowser.ClampLimit(n), nil
}
