package dedupe

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"photosift/internal/models"
)

// Grouper partitions records into equivalence classes. Records are bucketed
// by capture day and by content hash so that pairwise comparison stays
// sub-quadratic; the hash index is kept separate from the day index so that
// byte-identical files union even when their capture days differ.
type Grouper struct {
	cmp     *Comparer
	workers int
}

// NewGrouper creates a Grouper with the given tunables.
func NewGrouper(cfg Config) *Grouper {
	return &Grouper{
		cmp:     NewComparer(cfg),
		workers: runtime.NumCPU(),
	}
}

// Union-Find data structure for efficient grouping
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent, rank: rank}
}

func (uf *unionFind) find(x int) int {
	if uf.parent[x] != x {
		uf.parent[x] = uf.find(uf.parent[x]) // Path compression
	}
	return uf.parent[x]
}

func (uf *unionFind) union(x, y int) {
	px, py := uf.find(x), uf.find(y)
	if px == py {
		return
	}
	// Union by rank
	if uf.rank[px] < uf.rank[py] {
		px, py = py, px
	}
	uf.parent[py] = px
	if uf.rank[px] == uf.rank[py] {
		uf.rank[px]++
	}
}

type unionPair struct {
	a, b int
}

// Group partitions records into equivalence classes, deterministic for a
// fixed input order. Every input record lands in exactly one class; classes
// are emitted in first-seen input order with members in input order. A
// record with neither hash nor timestamp joins no bucket and comes back as
// its own singleton class.
func (g *Grouper) Group(records []*models.PhotoRecord) []*models.EquivalenceClass {
	n := len(records)
	if n == 0 {
		return nil
	}

	// Bucket record indices into pairwise-comparable sets.
	buckets := make(map[string][]int)
	for i, r := range records {
		if r.ContentHash != "" {
			key := "h:" + r.ContentHash
			buckets[key] = append(buckets[key], i)
		}
		if r.HasTimestamp() {
			key := "d:" + r.TakenAt.Format("2006-01-02")
			buckets[key] = append(buckets[key], i)
		}
	}

	keys := make([]string, 0, len(buckets))
	for key, members := range buckets {
		if len(members) >= 2 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	// Compare within buckets concurrently. Workers only read; each collects
	// its union pairs locally so the shared structure is mutated by a single
	// writer afterwards.
	pairs := make([][]unionPair, len(keys))
	eg := new(errgroup.Group)
	eg.SetLimit(g.workers)
	for bi, key := range keys {
		bi := bi
		members := buckets[key]
		eg.Go(func() error {
			var local []unionPair
			for i := 0; i < len(members); i++ {
				for j := i + 1; j < len(members); j++ {
					if g.cmp.Compare(records[members[i]], records[members[j]]) != Distinct {
						local = append(local, unionPair{members[i], members[j]})
					}
				}
			}
			pairs[bi] = local
			return nil
		})
	}
	eg.Wait() // workers never return an error

	// Single-writer merge phase.
	uf := newUnionFind(n)
	for _, bucketPairs := range pairs {
		for _, p := range bucketPairs {
			uf.union(p.a, p.b)
		}
	}

	// Emit connected components as classes, in first-seen input order.
	classIndex := make(map[int]int)
	var classes []*models.EquivalenceClass
	for i, r := range records {
		root := uf.find(i)
		ci, ok := classIndex[root]
		if !ok {
			ci = len(classes)
			classIndex[root] = ci
			classes = append(classes, &models.EquivalenceClass{ID: ci + 1})
		}
		classes[ci].Records = append(classes[ci].Records, r)
	}

	return classes
}
