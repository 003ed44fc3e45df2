// Package params serves the loader-parameter groups shown on the vehicle
// parameters screens, behind an explicit per-category cache.
package params

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Categories are the loader parameter groups a client can request.
var Categories = []string{
	"HV Battery & BMS",
	"BTMS",
	"MCU",
	"Transmission System",
	"DC-DC Converter",
	"LV Battery",
	"HVAC",
	"Hydraulic System",
	"Axle Oil",
	"Vehicle Peripherals",
	"Operator Switch Board",
	"Android Display",
	"Vehicle Wide Parameters",
	"Machine Identification",
}

// Parameter is one row of a category's parameter table.
type Parameter struct {
	ID       string  `json:"parameter_id"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	SerialNo string  `json:"serial_no"`
}

// Loader produces the parameter rows for one category.
type Loader func(category string) ([]Parameter, error)

// Cache is an explicit category-keyed cache in front of a Loader. There is
// no TTL: entries live until a force-refresh bypasses and repopulates them.
type Cache struct {
	mu      sync.Mutex
	load    Loader
	entries map[string][]Parameter
}

// NewCache wraps load with an empty cache.
func NewCache(load Loader) *Cache {
	return &Cache{load: load, entries: make(map[string][]Parameter)}
}

// Get returns the parameters for category, loading on first access. With
// forceRefresh set the cached entry is bypassed and replaced.
func (c *Cache) Get(category string, forceRefresh bool) ([]Parameter, error) {
	if !known(category) {
		return nil, fmt.Errorf("unknown parameter category %q", category)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !forceRefresh {
		if cached, ok := c.entries[category]; ok {
			return cached, nil
		}
	}
	loaded, err := c.load(category)
	if err != nil {
		return nil, err
	}
	c.entries[category] = loaded
	return loaded, nil
}

func known(category string) bool {
	i := sort.SearchStrings(sortedCategories, category)
	return i < len(sortedCategories) && sortedCategories[i] == category
}

var sortedCategories = func() []string {
	s := append([]string(nil), Categories...)
	sort.Strings(s)
	return s
}()

// SyntheticLoader returns a Loader that fabricates plausible rows for demo
// deployments, tagged with the given vehicle serial.
func SyntheticLoader(serial string, rng *rand.Rand) Loader {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return func(category string) ([]Parameter, error) {
		n := 4 + rng.Intn(5)
		out := make([]Parameter, n)
		for i := range out {
			out[i] = Parameter{
				ID:       fmt.Sprintf("%s-%03d", abbreviate(category), i+1),
				Value:    round2(rng.Float64() * 100),
				Unit:     unitFor(i),
				SerialNo: serial,
			}
		}
		return out, nil
	}
}

func abbreviate(category string) string {
	out := make([]byte, 0, 4)
	for i := 0; i < len(category) && len(out) < 4; i++ {
		c := category[i]
		if c >= 'A' && c <= 'Z' {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		out = append(out, 'P')
	}
	return string(out)
}

func unitFor(i int) string {
	units := []string{"V", "A", "°C", "kW", "rpm"}
	return units[i%len(units)]
}

func round2(f float64) float64 {
	return float64(int(f*100)) / 100
}
