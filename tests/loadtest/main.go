package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Two daemons sharing one store directory, standing in for the two partner
// processes. Start them before running this:
//
//	onlyone -config config-a.yaml &
//	onlyone -config config-b.yaml &
const (
	primaryURL   = "http://127.0.0.1:18090"
	secondaryURL = "http://127.0.0.1:18091"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numQuestions = 15
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== OnlyOne Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Questions: %d\n\n", numWorkers, testDuration, numQuestions)

	for _, base := range []string{primaryURL, secondaryURL} {
		fmt.Printf("Waiting for %s... ", base)
		if !waitForServer(base) {
			fmt.Println("FAILED: server not responding")
			return
		}
		fmt.Println("OK")
	}

	// Phase 1: Seed answers on the primary daemon
	fmt.Println("\n--- Phase 1: Seeding answers (POST /answers) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doSaveAnswer(rng, primaryURL)
	})

	// Give the secondary daemon a few poll cycles to catch up.
	fmt.Println("\nWaiting 2s for cross-process sync...")
	time.Sleep(2 * time.Second)

	// Phase 2: Mixed load, writes on primary, reads on both
	fmt.Println("\n--- Phase 2: Mixed load (30% POST, 70% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.25:
			return doSaveAnswer(rng, primaryURL)
		case r < 0.30:
			return doMergePartner(rng, secondaryURL)
		case r < 0.50:
			return doGetToday(pickBase(rng))
		case r < 0.70:
			return doGetAnswers(pickBase(rng))
		case r < 0.80:
			return doGetByMonth(pickBase(rng))
		case r < 0.90:
			return doGetByCategory(pickBase(rng))
		default:
			return doGetAnswer(rng, pickBase(rng))
		}
	})

	// Phase 3: Read-heavy across both daemons
	fmt.Println("\n--- Phase 3: Read-heavy load (5% POST, 95% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doSaveAnswer(rng, primaryURL)
		case r < 0.40:
			return doGetToday(pickBase(rng))
		case r < 0.70:
			return doGetAnswers(pickBase(rng))
		case r < 0.85:
			return doGetByMonth(pickBase(rng))
		default:
			return doGetAnswer(rng, pickBase(rng))
		}
	})
}

func waitForServer(base string) bool {
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(base + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func pickBase(rng *rand.Rand) string {
	if rng.Intn(2) == 0 {
		return primaryURL
	}
	return secondaryURL
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func questionID(rng *rand.Rand) string {
	return fmt.Sprintf("%d", rng.Intn(numQuestions)+1)
}

func doSaveAnswer(rng *rand.Rand, base string) result {
	body := map[string]interface{}{
		"question_id": questionID(rng),
		"answer_text": fmt.Sprintf("load answer %d", rng.Intn(100000)),
	}
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(base+"/answers", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /answers", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /answers", resp.StatusCode, lat, resp.StatusCode != 201}
}

func doMergePartner(rng *rand.Rand, base string) result {
	body := map[string]interface{}{
		"question_id":  questionID(rng),
		"partner_text": fmt.Sprintf("partner answer %d", rng.Intn(100000)),
	}
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(base+"/answers/partner", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /answers/partner", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 404 is expected while the target question has no answer yet.
	ok := resp.StatusCode == 200 || resp.StatusCode == 404
	return result{"POST /answers/partner", resp.StatusCode, lat, !ok}
}

func doGetToday(base string) result {
	start := time.Now()
	resp, err := httpClient.Get(base + "/question/today")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /question/today", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /question/today", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetAnswers(base string) result {
	start := time.Now()
	resp, err := httpClient.Get(base + "/answers")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /answers", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /answers", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetAnswer(rng *rand.Rand, base string) result {
	url := fmt.Sprintf("%s/answers/get?q=%s", base, questionID(rng))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /answers/get", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	ok := resp.StatusCode == 200 || resp.StatusCode == 404
	return result{"GET /answers/get", resp.StatusCode, lat, !ok}
}

func doGetByMonth(base string) result {
	start := time.Now()
	resp, err := httpClient.Get(base + "/answers/by-month")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /answers/by-month", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /answers/by-month", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetByCategory(base string) result {
	start := time.Now()
	resp, err := httpClient.Get(base + "/answers/by-category")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /answers/by-category", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /answers/by-category", resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
