package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "Base URL of the roster server")
	count := flag.Int("count", 500, "Number of requests to send")
	concurrency := flag.Int("concurrency", 20, "Maximum requests in flight")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	log.Printf("Sending %d requests to %s/api/users (%d concurrent)...", *count, *baseURL, *concurrency)
	start := time.Now()

	res, err := run(context.Background(), client, *baseURL+"/api/users", *count, *concurrency)
	if err != nil {
		log.Fatalf("Stress run aborted: %v", err)
	}

	elapsed := time.Since(start)
	log.Printf("Done in %s (%.1f req/s)", elapsed, float64(*count)/elapsed.Seconds())
	fmt.Print(res)
}

type result struct {
	mu       sync.Mutex
	statuses map[int]int
	failures int
	// users seen in successful responses; more than one value means the
	// document changed underneath the run.
	userCounts map[int]int
}

func (r *result) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes := make([]int, 0, len(r.statuses))
	for code := range r.statuses {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	out := ""
	for _, code := range codes {
		out += fmt.Sprintf("  %d %s: %d\n", code, http.StatusText(code), r.statuses[code])
	}
	if r.failures > 0 {
		out += fmt.Sprintf("  transport errors: %d\n", r.failures)
	}
	for n, seen := range r.userCounts {
		out += fmt.Sprintf("  responses with %d users: %d\n", n, seen)
	}
	return out
}

func run(ctx context.Context, client *http.Client, url string, count, concurrency int) (*result, error) {
	res := &result{statuses: make(map[int]int), userCounts: make(map[int]int)}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := 0; i < count; i++ {
		g.Go(func() error {
			status, users, err := fetchUsers(ctx, client, url)

			res.mu.Lock()
			defer res.mu.Unlock()
			if err != nil {
				res.failures++
				return nil
			}
			res.statuses[status]++
			if status == http.StatusOK {
				res.userCounts[users]++
			}
			return nil
		})
	}

	return res, g.Wait()
}

func fetchUsers(ctx context.Context, client *http.Client, url string) (int, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := client.Do(req) // #nosec G704 -- url comes from the operator's flag
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, 0, nil
	}

	var body struct {
		Users []json.RawMessage `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return resp.StatusCode, 0, err
	}
	return resp.StatusCode, len(body.Users), nil
}
