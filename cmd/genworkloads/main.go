// Command genworkloads writes the standard benchmark workloads and a manifest.json listing them.
//
//	genworkloads -dir workloads/map -sizes small,medium,large
//
// WORKLOAD_DIR and WORKLOAD_SIZES supply the flag defaults and may be set in a .env file in the working directory.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/g-m-twostay/probe-maps/Workloads"
)

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[GEN] No .env file loaded, using flags and environment")
	}
	var (
		dir    = flag.String("dir", getEnv("WORKLOAD_DIR", filepath.Join("workloads", "map")), "output directory")
		sizes  = flag.String("sizes", getEnv("WORKLOAD_SIZES", "small,medium,large"), "comma separated size names")
		indent = flag.Bool("indent", true, "indent the JSON output")
	)
	flag.Parse()

	names, err := generate(*dir, strings.Split(*sizes, ","), *indent)
	if err != nil {
		log.Fatalf("[GEN] %v", err)
	}
	log.Printf("[GEN] Generated %d workloads in %s", len(names), *dir)
}

// generate writes every standard workload of the given sizes to dir followed by the manifest, and returns the file names written.
func generate(dir string, sizes []string, indent bool) ([]string, error) {
	var names []string
	used := make(map[string]int, len(sizes))
	for _, s := range sizes {
		s = strings.TrimSpace(s)
		cfgs, err := Workloads.Standard(s)
		if err != nil {
			return nil, err
		}
		used[s] = Workloads.Sizes[s]
		for _, cfg := range cfgs {
			log.Printf("[GEN] Generating %s", cfg.Name)
			w, err := Workloads.Generate(cfg)
			if err != nil {
				return nil, err
			}
			name := cfg.Name + ".json"
			if err = Workloads.WriteJSON(filepath.Join(dir, name), w, indent); err != nil {
				return nil, err
			}
			names = append(names, name)
		}
	}
	manifest := Workloads.Manifest{
		Workloads:     names,
		Sizes:         used,
		Distributions: Workloads.Distributions,
		Seeds:         Workloads.Seeds,
	}
	if err := Workloads.WriteJSON(filepath.Join(dir, "manifest.json"), manifest, true); err != nil {
		return nil, err
	}
	return names, nil
}
