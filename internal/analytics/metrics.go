// Package analytics computes recruiting reports from an immutable snapshot of
// the record store. Every function here is pure: no I/O, no shared state.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
)

// EndOfDay returns 23:59:59.999 on t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DateWindowFilter keeps items whose field falls within [start, EndOfDay(end)].
func DateWindowFilter[T any](items []T, field func(T) time.Time, start, end time.Time) []T {
	upper := EndOfDay(end)
	out := make([]T, 0, len(items))
	for _, item := range items {
		ts := field(item)
		if ts.Before(start) || ts.After(upper) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Percentage returns numerator/denominator as a rounded 0-100 integer, or 0
// when the denominator is not positive.
func Percentage(numerator, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

// Bucket is one key and its count.
type Bucket struct {
	Key   string
	Count int
}

// Buckets is a key to count mapping that remembers first-seen key order.
type Buckets []Bucket

// Count returns the count for key, or 0.
func (b Buckets) Count(key string) int {
	for _, bucket := range b {
		if bucket.Key == key {
			return bucket.Count
		}
	}
	return 0
}

// Total sums all counts.
func (b Buckets) Total() int {
	total := 0
	for _, bucket := range b {
		total += bucket.Count
	}
	return total
}

// BucketBy counts items per key. Empty keys are counted as models.UnknownSource.
func BucketBy[T any](items []T, key func(T) string) Buckets {
	index := make(map[string]int)
	buckets := make(Buckets, 0)
	for _, item := range items {
		k := strings.TrimSpace(key(item))
		if k == "" {
			k = models.UnknownSource
		}
		if i, ok := index[k]; ok {
			buckets[i].Count++
			continue
		}
		index[k] = len(buckets)
		buckets = append(buckets, Bucket{Key: k, Count: 1})
	}
	return buckets
}

// RankDescending orders buckets by count, highest first. Ties keep first-seen order.
func RankDescending(b Buckets) Buckets {
	ranked := make(Buckets, len(b))
	copy(ranked, b)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

func roundDays(d float64) float64 {
	return math.Round(d*10) / 10
}
