package Workloads

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/g-m-twostay/probe-maps/Maps/ProbeMap"
)

const (
	Uniform = "uniform"
	Zipf    = "zipf"

	zipfS    = 1.1 //math/rand/v2 needs s > 1
	zipfIMax = 9999
	// gets and deletes pick an already inserted key with this probability.
	reuseRatio = 0.8
)

// Weights are relative operation frequencies. They don't have to sum to 1.
type Weights struct {
	Insert, Get, Delete float64
}

func (w Weights) asMap() map[string]float64 {
	return map[string]float64{OpInsert: w.Insert, OpGet: w.Get, OpDelete: w.Delete}
}

type Config struct {
	Name         string
	Size         int
	Distribution string
	Weights      Weights
	Seed         uint64
}

// Preset is a named operation mix.
type Preset struct {
	Name    string
	Weights Weights
}

var (
	Presets = []Preset{
		{"insert_heavy", Weights{Insert: 1}},
		{"read_heavy", Weights{Insert: 0.05, Get: 0.95}},
		{"mixed", Weights{Insert: 0.2, Get: 0.8}},
		{"delete_heavy", Weights{Insert: 0.2, Get: 0.6, Delete: 0.2}},
	}
	Distributions = []string{Uniform, Zipf}
	Sizes         = map[string]int{"small": 1_000, "medium": 10_000, "large": 100_000}
	// Seeds per preset and distribution; the operation count is added so every size gets its own stream.
	Seeds = map[string]uint64{
		"insert_heavy_uniform": 42,
		"insert_heavy_zipf":    43,
		"read_heavy_uniform":   44,
		"read_heavy_zipf":      45,
		"mixed_uniform":        46,
		"mixed_zipf":           47,
		"delete_heavy_uniform": 48,
		"delete_heavy_zipf":    49,
	}
)

// Standard returns the config of every preset and distribution for the named size, in a fixed order.
func Standard(sizeName string) ([]Config, error) {
	size, ok := Sizes[sizeName]
	if !ok {
		return nil, fmt.Errorf("unknown size %q", sizeName)
	}
	cfgs := make([]Config, 0, len(Presets)*len(Distributions))
	for _, p := range Presets {
		for _, d := range Distributions {
			base := p.Name + "_" + d
			cfgs = append(cfgs, Config{
				Name:         base + "_" + sizeName,
				Size:         size,
				Distribution: d,
				Weights:      p.Weights,
				Seed:         Seeds[base] + uint64(size),
			})
		}
	}
	return cfgs, nil
}

// keyPool is the set of keys inserted so far, with O(1) random pick and removal.
type keyPool struct {
	keys []string
	pos  *ProbeMap.ProbeMap[string, int]
}

func (p *keyPool) add(k string) {
	if p.pos.HasKey(k) {
		return
	}
	p.pos.Insert(k, len(p.keys))
	p.keys = append(p.keys, k)
}

func (p *keyPool) drop(k string) {
	i, ok := p.pos.Remove(k)
	if !ok {
		return
	}
	last := len(p.keys) - 1
	if i != last {
		p.keys[i] = p.keys[last]
		p.pos.Update(p.keys[i], func(v *int) { *v = i })
	}
	p.keys = p.keys[:last]
}

// Generate builds the workload described by cfg. The result depends only on cfg.
func Generate(cfg Config) (*Workload, error) {
	var draw func() string
	rg := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	switch cfg.Distribution {
	case Uniform:
		span := uint64(cfg.Size)*10 + 1
		draw = func() string { return fmt.Sprintf("key_%d", rg.Uint64N(span)) }
	case Zipf:
		z := rand.NewZipf(rg, zipfS, 1, zipfIMax)
		draw = func() string { return fmt.Sprintf("key_%d", z.Uint64()+1) }
	default:
		return nil, fmt.Errorf("unknown distribution %q", cfg.Distribution)
	}
	total := cfg.Weights.Insert + cfg.Weights.Get + cfg.Weights.Delete
	if total <= 0 || cfg.Weights.Insert < 0 || cfg.Weights.Get < 0 || cfg.Weights.Delete < 0 {
		return nil, fmt.Errorf("invalid weights %+v", cfg.Weights)
	}
	w := &Workload{
		Name:             cfg.Name,
		Description:      fmt.Sprintf("%s workload with %s key distribution", cfg.Name, cfg.Distribution),
		Size:             cfg.Size,
		Distribution:     cfg.Distribution,
		OperationWeights: cfg.Weights.asMap(),
		Seed:             cfg.Seed,
		Operations:       make([]Operation, 0, cfg.Size),
	}
	pool := keyPool{pos: ProbeMap.New[string, int](cfg.Size)}
	for range cfg.Size {
		key := draw()
		r := rg.Float64() * total
		switch {
		case r < cfg.Weights.Insert:
			w.Operations = append(w.Operations, Operation{OpInsert, key, fmt.Sprintf("value_%d", rg.IntN(1_000_001))})
			pool.add(key)
		case r < cfg.Weights.Insert+cfg.Weights.Get:
			if len(pool.keys) > 0 && rg.Float64() < reuseRatio {
				key = pool.keys[rg.IntN(len(pool.keys))]
			}
			w.Operations = append(w.Operations, Operation{Op: OpGet, Key: key})
		default:
			if len(pool.keys) > 0 && rg.Float64() < reuseRatio {
				key = pool.keys[rg.IntN(len(pool.keys))]
				pool.drop(key)
			}
			w.Operations = append(w.Operations, Operation{Op: OpDelete, Key: key})
		}
	}
	return w, nil
}

// Keys returns the distinct keys w mentions, sorted.
func (w *Workload) Keys() []string {
	seen := ProbeMap.New[string, struct{}](len(w.Operations))
	for _, op := range w.Operations {
		seen.Insert(op.Key, struct{}{})
	}
	keys := seen.Keys()
	slices.Sort(keys)
	return keys
}
