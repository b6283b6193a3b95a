package observability

import (
	"sync/atomic"
	"time"
)

// Collector keeps the in-process counters behind the /api/status endpoint.
// It is injected where needed; nothing reads or writes package globals.
type Collector struct {
	started time.Time

	requests  atomic.Int64
	successes atomic.Int64
	failures  atomic.Int64
	llmCalls  atomic.Int64
	searches  atomic.Int64
}

func NewCollector() *Collector {
	return &Collector{started: time.Now()}
}

func (c *Collector) IncRequest() { c.requests.Add(1) }
func (c *Collector) IncSuccess() { c.successes.Add(1) }
func (c *Collector) IncFailure() { c.failures.Add(1) }
func (c *Collector) IncLLMCall() { c.llmCalls.Add(1) }
func (c *Collector) IncSearch()  { c.searches.Add(1) }

func (c *Collector) Uptime() time.Duration { return time.Since(c.started) }

type Stats struct {
	Requests  int64 `json:"consultas_totales"`
	Successes int64 `json:"consultas_exitosas"`
	Failures  int64 `json:"consultas_fallidas"`
	LLMCalls  int64 `json:"llamadas_ia"`
	Searches  int64 `json:"busquedas"`
}

func (c *Collector) Snapshot() Stats {
	return Stats{
		Requests:  c.requests.Load(),
		Successes: c.successes.Load(),
		Failures:  c.failures.Load(),
		LLMCalls:  c.llmCalls.Load(),
		Searches:  c.searches.Load(),
	}
}
