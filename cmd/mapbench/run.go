package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/elliottback/flatmap/anyhash"
	"github.com/elliottback/flatmap/hashmap"
)

// Result holds the outcome of filling and verifying one map.
type Result struct {
	Kind   string
	N      int
	Grows  int
	Cap    int
	Fill   time.Duration
	Verify time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("%-8s n=%d grows=%d cap=%d fill=%v verify=%v", r.Kind, r.N, r.Grows, r.Cap, r.Fill, r.Verify)
}

func newMap(kind string, opts *hashmap.Options[string]) hashmap.Map[string, string] {
	if kind == "chained" {
		return hashmap.NewChainedMap[string, string](anyhash.StringHasher{}, opts)
	}
	return hashmap.NewProbingMap[string, string](anyhash.StringHasher{}, opts)
}

// run fills, verifies and clears a map of every kind selected
// by cfg.
func run(cfg Config, logger *zap.Logger) ([]Result, error) {
	kinds, err := cfg.kinds()
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, kind := range kinds {
		r, err := runKind(kind, cfg, logger.With(zap.String("kind", kind)))
		if err != nil {
			return results, errors.Wrapf(err, "%s map", kind)
		}
		logger.Info("run complete",
			zap.String("kind", r.Kind),
			zap.Int("n", r.N),
			zap.Int("grows", r.Grows),
			zap.Int("cap", r.Cap),
			zap.Duration("fill", r.Fill),
			zap.Duration("verify", r.Verify),
		)
		results = append(results, r)
	}
	return results, nil
}

func runKind(kind string, cfg Config, logger *zap.Logger) (Result, error) {
	r := Result{
		Kind: kind,
		N:    cfg.N,
	}
	var m hashmap.Map[string, string]
	var growStart time.Time
	m = newMap(kind, &hashmap.Options[string]{
		Capacity: cfg.Capacity,
		MaxLoad:  cfg.MaxLoad,
		OnGrow: func(oldCap, newCap int) {
			r.Grows++
			logger.Debug("grow",
				zap.Int("old_cap", oldCap),
				zap.Int("new_cap", newCap),
				zap.Int("len", m.Len()),
				zap.Duration("put_latency", time.Since(growStart)),
			)
		},
	})

	start := time.Now()
	for i := range cfg.N {
		growStart = time.Now()
		m.Put(key(i), value(i))
	}
	r.Fill = time.Since(start)
	if got := m.Len(); got != cfg.N {
		return r, errors.Errorf("after filling, Len() = %d; want %d", got, cfg.N)
	}

	start = time.Now()
	for i := range cfg.N {
		v, ok := m.Get(key(i))
		if !ok || v != value(i) {
			return r, errors.Errorf("Get(%q) = %q, %v; want %q", key(i), v, ok, value(i))
		}
	}
	r.Verify = time.Since(start)
	r.Cap = m.Cap()

	m.Clear()
	if got := m.Len(); got != 0 {
		return r, errors.Errorf("after Clear, Len() = %d", got)
	}
	return r, nil
}

func key(i int) string {
	return fmt.Sprint(i)
}

func value(i int) string {
	return fmt.Sprintf("v: %d", i)
}
