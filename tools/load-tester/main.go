// Command load-tester logs into an insight-ops server and hammers the
// event listing endpoint at a bounded rate, reporting throughput at the
// end. It is a manual tool, not part of the service.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the insight-ops server")
	email := flag.String("email", "viewer@test.com", "Login email")
	password := flag.String("password", "password", "Login password")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 200, "Requests per second limit")
	flag.Parse()

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar, Timeout: 5 * time.Second}

	if err := login(client, *baseURL, *email, *password); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	log.Printf("Starting load test on %s", *baseURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d", *concurrency, *duration, *rps)

	var wg sync.WaitGroup
	var successCount, errorCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), 50)

	queries := []string{
		"/api/events?page=1&pageSize=20",
		"/api/events?category=Fraud&minScore=50",
		"/api/events?sortBy=severity&sortDir=desc",
		"/api/insights?days=7",
	}

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for n := 0; ; n++ {
				if err := limiter.Wait(ctx); err != nil {
					return
				}

				url := *baseURL + queries[n%len(queries)]
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
				if err != nil {
					continue
				}

				resp, err := client.Do(req)
				if err != nil {
					errorCount.Add(1)
					continue
				}
				if resp.StatusCode == http.StatusOK {
					successCount.Add(1)
				} else {
					errorCount.Add(1)
				}
				resp.Body.Close()
			}
		}(i)
	}

	wg.Wait()

	total := successCount.Load() + errorCount.Load()
	fmt.Printf("\nDone. total=%d success=%d errors=%d (%.1f req/s)\n",
		total, successCount.Load(), errorCount.Load(), float64(total)/(*duration).Seconds())
}

func login(client *http.Client, baseURL, email, password string) error {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := client.Post(baseURL+"/api/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
