// Package runner sends every request of a collection, one after another.
package runner

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// Sender executes one request. *client.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, req model.Request, vars []model.EnvironmentVariable) (*model.Response, error)
}

// Options controls a run.
type Options struct {
	// RequestsPerSecond paces the run; zero or less means unlimited.
	RequestsPerSecond float64
	// StopOnError ends the run at the first request that fails to execute.
	StopOnError bool
	// OnResult is called after every request, in order.
	OnResult func(Result)
}

// Result is the outcome of one request in a run. Exactly one of Response
// and Err is set.
type Result struct {
	Request  model.Request
	Response *model.Response
	Err      error
}

// Summary holds the results of a run
type Summary struct {
	Total            int
	Succeeded        int
	Failed           int
	Duration         time.Duration
	MinLatency       time.Duration
	MaxLatency       time.Duration
	AvgLatency       time.Duration
	LatencyP50       time.Duration
	LatencyP95       time.Duration
	StatusCodeCounts map[int]int
}

// Runner executes collections sequentially.
type Runner struct {
	sender Sender
	log    logrus.FieldLogger
}

// New creates a runner that sends through sender.
func New(sender Sender, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{sender: sender, log: log}
}

// Run sends each request of c with vars. Only one request is ever in flight.
// A cancelled context stops the run and is returned as the error.
func (r *Runner) Run(ctx context.Context, c model.Collection, vars []model.EnvironmentVariable, opts Options) (*Summary, error) {
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	limiter := rate.NewLimiter(limit, 1)

	summary := &Summary{StatusCodeCounts: make(map[int]int)}
	var latencies []time.Duration
	start := time.Now()

	for _, req := range c.Requests {
		if err := limiter.Wait(ctx); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		log := r.log.WithFields(logrus.Fields{"collection": c.Name, "request": req.Name})
		resp, err := r.sender.Send(ctx, req, vars)
		summary.Total++

		result := Result{Request: req, Response: resp, Err: err}
		if err != nil {
			summary.Failed++
			log.WithError(err).Warn("request failed")
		} else {
			summary.Succeeded++
			summary.StatusCodeCounts[resp.Status]++
			latencies = append(latencies, time.Duration(resp.Time)*time.Millisecond)
			log.WithField("status", resp.Status).Debug("request completed")
		}
		if opts.OnResult != nil {
			opts.OnResult(result)
		}

		if ctx.Err() != nil {
			summary.Duration = time.Since(start)
			return summary, ctx.Err()
		}
		if err != nil && opts.StopOnError {
			break
		}
	}

	summary.Duration = time.Since(start)
	summarizeLatencies(summary, latencies)
	return summary, nil
}

func summarizeLatencies(s *Summary, latencies []time.Duration) {
	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	s.MinLatency = latencies[0]
	s.MaxLatency = latencies[len(latencies)-1]
	s.LatencyP50 = latencies[percentileIndex(len(latencies), 50)]
	s.LatencyP95 = latencies[percentileIndex(len(latencies), 95)]

	var sum time.Duration
	for _, lat := range latencies {
		sum += lat
	}
	s.AvgLatency = sum / time.Duration(len(latencies))
}

// percentileIndex calculates the index for a given percentile
func percentileIndex(n int, percentile int) int {
	if n == 0 {
		return 0
	}
	index := int(math.Ceil(float64(n)*float64(percentile)/100.0)) - 1
	if index < 0 {
		index = 0
	}
	if index >= n {
		index = n - 1
	}
	return index
}

// Format renders the summary for terminal output.
func (s *Summary) Format() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Requests: %d  Succeeded: %d  Failed: %d  Duration: %.2fs\n",
		s.Total, s.Succeeded, s.Failed, s.Duration.Seconds()))

	if s.Succeeded > 0 {
		sb.WriteString(fmt.Sprintf("Latency: min %v  avg %v  p50 %v  p95 %v  max %v\n",
			s.MinLatency, s.AvgLatency, s.LatencyP50, s.LatencyP95, s.MaxLatency))

		codes := make([]int, 0, len(s.StatusCodeCounts))
		for code := range s.StatusCodeCounts {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		sb.WriteString("Status codes:")
		for _, code := range codes {
			sb.WriteString(fmt.Sprintf("  %d×%d", code, s.StatusCodeCounts[code]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
