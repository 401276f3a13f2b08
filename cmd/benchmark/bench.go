// Command benchmark load-tests the management surface with vegeta against a
// local mock backend, reporting latency percentiles and success rate.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"

	memorycache "github.com/okibi/gateway-bridge/internal/adapters/cache/memory"
	appconfig "github.com/okibi/gateway-bridge/internal/config"
	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/services"
	"github.com/okibi/gateway-bridge/internal/platform/logger"
	"github.com/okibi/gateway-bridge/internal/server"
)

const (
	mockPort = 9091
	appPort  = 9090
)

var mockModels = []byte(`{"data":[{"id":"bench-small"},{"id":"bench-large","context_window":131072}]}`)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rps := flag.Int("rate", 50, "Requests per second")
	refresh := flag.Bool("refresh", false, "Force a backend fetch per request")
	flag.Parse()

	go startMockBackend()

	logger.Initialize(logger.Config{Level: "error", Format: "console"})
	log := logger.Get()

	refreshOnList := *refresh
	settings := domain.ProviderSettings{
		BaseURL:       fmt.Sprintf("http://localhost:%d/v1", mockPort),
		RefreshOnList: &refreshOnList,
	}
	effective := domain.Resolve(settings, "sk-bench")

	discovery := services.NewDiscoveryService(log, memorycache.New())

	cfg := &appconfig.Config{
		Server:    appconfig.ServerConfig{Port: fmt.Sprintf("%d", appPort), Env: "production"},
		RateLimit: appconfig.RateLimitConfig{RequestsPerSecond: float64(*rps) * 2, Burst: *rps * 4},
	}

	srv := server.New(cfg, log, discovery, effective, nil)
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", appPort), srv.Handler()); err != nil {
			panic(err)
		}
	}()

	// Give both servers a moment to bind.
	time.Sleep(500 * time.Millisecond)

	targeter := vegeta.NewStaticTargeter(vegeta.Target{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("http://localhost:%d/v1/models", appPort),
	})

	attacker := vegeta.NewAttacker()
	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rps, Per: time.Second}, *duration, "models") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Printf("Requests:  %d\n", metrics.Requests)
	fmt.Printf("Success:   %.2f%%\n", metrics.Success*100)
	fmt.Printf("Mean:      %s\n", metrics.Latencies.Mean)
	fmt.Printf("P95:       %s\n", metrics.Latencies.P95)
	fmt.Printf("P99:       %s\n", metrics.Latencies.P99)
	fmt.Printf("Max:       %s\n", metrics.Latencies.Max)

	_ = log.Sync()
}

func startMockBackend() {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(mockModels)
	})
	if err := http.ListenAndServe(fmt.Sprintf(":%d", mockPort), mux); err != nil {
		panic(err)
	}
}
