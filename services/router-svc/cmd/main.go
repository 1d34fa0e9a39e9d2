// Package main is the entry point for router-svc.
//
// router-svc answers two questions about a weighted undirected road network:
// the shortest path between two vertices, and the shortest path between two
// vertices that passes at least one customer vertex ("minimum detour").
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                       Entry Point (cmd)                     │
//	│  flags, config, prompts, output file                        │
//	├─────────────────────────────────────────────────────────────┤
//	│                      Service Layer                          │
//	│  (internal/service/router.go - Router)                      │
//	│  - Route cache lookup and store                             │
//	│  - Metrics, tracing, structured logs                        │
//	│  - Batch fan-out over a bounded worker pool                 │
//	├─────────────────────────────────────────────────────────────┤
//	│                      Algorithm Layer                        │
//	│  (internal/algorithms/*.go)                                 │
//	│  - Indexed binary min-heap with decrease-key                │
//	│  - Dijkstra over any domain.Adjacency                       │
//	│  - Path reconstruction for both graphs                      │
//	├─────────────────────────────────────────────────────────────┤
//	│                       Domain Layer                          │
//	│  (pkg/domain)                                               │
//	│  - Graph: adjacency lists over ids 0..n                     │
//	│  - DetourGraph: two copies bridged at customers             │
//	├─────────────────────────────────────────────────────────────┤
//	│                 Converter / Generator Layers                │
//	│  - Edge, customer and query file parsing                    │
//	│  - text, json, csv, xlsx, pdf output                        │
//	└─────────────────────────────────────────────────────────────┘
//
// # Input Files
//
// Edge file: the first line holds n, every following line "u v w" is an
// undirected edge of non-negative weight w between vertices u and v in [0, n].
//
// Customer file: one vertex id per line.
//
// Batch file (-batch): one "source target" pair per line, '#' starts a comment.
//
// # Usage
//
//	router-svc -edges edges.txt -customers customers.txt -source 1 -target 3
//	router-svc -batch queries.txt -format csv -out routes.csv
//	router-svc                    # prompts "Enter source vertex: " and "Enter target vertex: "
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Command line flags
//  2. Environment variables (prefix: DETOUR_)
//  3. Config file (-config, CONFIG_PATH, config.yaml, config/config.yaml, /etc/detour/config.yaml)
//  4. Default values
//
// Key configuration options (environment variable format):
//
//	DETOUR_INPUT_EDGES_PATH      - Edge list file (default: edges.txt)
//	DETOUR_INPUT_CUSTOMERS_PATH  - Customer list file (default: customers.txt)
//	DETOUR_QUERY_WORKERS         - Batch worker pool size (default: 4)
//	DETOUR_QUERY_TIMEOUT         - Per-query timeout, 0 disables (default: 30s)
//	DETOUR_OUTPUT_FORMAT         - text, json, csv, xlsx, pdf (default: text)
//	DETOUR_OUTPUT_PATH           - Output file, stdout when empty; required for xlsx and pdf
//	DETOUR_LOG_LEVEL             - debug, info, warn, error (default: info)
//	DETOUR_CACHE_ENABLED         - Cache route answers (default: false)
//	DETOUR_CACHE_DRIVER          - memory, redis (default: memory)
//	DETOUR_METRICS_ENABLED       - Serve Prometheus metrics (default: false)
//	DETOUR_METRICS_PORT          - Metrics HTTP port (default: 9090)
//	DETOUR_TRACING_ENABLED       - Export OpenTelemetry spans over OTLP/gRPC (default: false)
//
// # Exit Codes
//
//	0 - every query answered, unreachable targets included
//	1 - invalid input, invalid query or cancellation
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "router-svc: %v\n", err)
		stop()
		os.Exit(1)
	}
}
