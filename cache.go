package polycalc

import (
	"slices"
	"strings"
	"sync/atomic"

	"github.com/VictoriaMetrics/fastcache"
	"golang.org/x/crypto/sha3"

	"github.com/mike006322/PolynomialCalculator-sub000/parse"
	"github.com/mike006322/PolynomialCalculator-sub000/poly"
)

// BasisCache memoizes reduced Gröbner bases by ideal. Entries are keyed by
// the Keccak-256 of the ring and the sorted generators, which identifies the
// ideal independently of generator order. Bases are stored in their string
// form and parsed back on a hit.
type BasisCache struct {
	c            *fastcache.Cache
	hits, misses atomic.Uint64
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries uint64 `json:"entries"`
	Bytes   uint64 `json:"bytes"`
}

func NewBasisCache(maxBytes int) *BasisCache {
	return &BasisCache{c: fastcache.New(maxBytes)}
}

func cacheKey(r poly.Ring, gens []*poly.Polynomial) []byte {
	ss := make([]string, len(gens))
	for i, g := range gens {
		ss[i] = g.String()
	}
	slices.Sort(ss)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(r.String()))
	for _, s := range ss {
		h.Write([]byte{0})
		h.Write([]byte(s))
	}
	return h.Sum(nil)
}

// Get returns the cached basis of the ideal generated by gens over r.
func (bc *BasisCache) Get(r poly.Ring, gens []*poly.Polynomial) ([]*poly.Polynomial, bool) {
	v := bc.c.GetBig(nil, cacheKey(r, gens))
	// Every stored value carries a leading marker so an empty basis is
	// distinguishable from a miss.
	if len(v) == 0 {
		bc.misses.Add(1)
		return nil, false
	}
	body := string(v[1:])
	if body == "" {
		bc.hits.Add(1)
		return nil, true
	}
	G, err := parse.Polynomials(r, strings.Split(body, "\n")...)
	if err != nil {
		bc.misses.Add(1)
		return nil, false
	}
	bc.hits.Add(1)
	return G, true
}

// Put stores the basis G of the ideal generated by gens over r.
func (bc *BasisCache) Put(r poly.Ring, gens, G []*poly.Polynomial) {
	ss := make([]string, len(G))
	for i, g := range G {
		ss[i] = g.String()
	}
	bc.c.SetBig(cacheKey(r, gens), []byte("B"+strings.Join(ss, "\n")))
}

func (bc *BasisCache) Reset() {
	bc.c.Reset()
	bc.hits.Store(0)
	bc.misses.Store(0)
}

func (bc *BasisCache) Stats() CacheStats {
	var s fastcache.Stats
	bc.c.UpdateStats(&s)
	return CacheStats{
		Hits:    bc.hits.Load(),
		Misses:  bc.misses.Load(),
		Entries: s.EntriesCount,
		Bytes:   s.BytesSize,
	}
}
