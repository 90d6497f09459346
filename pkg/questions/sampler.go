package questions

import (
	"math/rand/v2"
	"sync"
)

// perCategoryDraw is how many questions a mock interview takes from each
// requested category before the final draw.
const perCategoryDraw = 2

// Rand is the source of randomness for sampling. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a generator that produces the same sequence for the same seed.
func NewRand(seed uint64) (r *rand.Rand) {
	r = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return r
}

// lockedRand serializes access to a generator shared between goroutines.
type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

// NewLockedRand wraps r so it can be shared between goroutines.
func NewLockedRand(r Rand) (locked Rand) {
	locked = &lockedRand{r: r}
	return locked
}

func (l *lockedRand) IntN(n int) (v int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v = l.r.IntN(n)
	return v
}

// Sample draws up to k distinct items from pool uniformly without
// replacement. When k exceeds the pool, every item is returned in random
// order.
func Sample(r Rand, pool []Question, k int) (sample []Question) {
	n := len(pool)
	if k > n {
		k = n
	}
	sample = make([]Question, 0, max(k, 0))
	if k <= 0 {
		return sample
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	// Partial Fisher-Yates over the index slice.
	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
		sample = append(sample, pool[idx[i]].clone())
	}

	return sample
}

// Choice picks one item from pool uniformly. ok is false for an empty pool.
func Choice(r Rand, pool []Question) (q Question, ok bool) {
	if len(pool) == 0 {
		return q, ok
	}
	q = pool[r.IntN(len(pool))].clone()
	ok = true
	return q, ok
}

// Sampler draws questions from a bank using an injected generator. A
// Sampler is not safe for concurrent use unless its generator is.
type Sampler struct {
	bank *Bank
	rng  Rand
}

// NewSampler creates a sampler over bank. A nil rng uses a randomly seeded
// generator.
func NewSampler(bank *Bank, rng Rand) (sampler *Sampler) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	sampler = &Sampler{
		bank: bank,
		rng:  rng,
	}
	return sampler
}

// Bank returns the bank the sampler draws from.
func (s *Sampler) Bank() (bank *Bank) {
	bank = s.bank
	return bank
}

// Random picks one question. An empty category draws from the whole bank;
// technical first picks a subcategory, then a question within it. ok is
// false for an unknown category or an empty pool.
func (s *Sampler) Random(category string) (q Question, ok bool) {
	switch {
	case category == "":
		q, ok = Choice(s.rng, s.bank.pool(""))
	case category == CategoryTechnical:
		if len(s.bank.subcategories) == 0 {
			return q, ok
		}
		subcategory := s.bank.subcategories[s.rng.IntN(len(s.bank.subcategories))]
		q, ok = Choice(s.rng, s.bank.technical[subcategory])
	case s.bank.HasCategory(category):
		q, ok = Choice(s.rng, s.bank.flat[category])
	}
	return q, ok
}

// MockInterview assembles a practice set of at most n questions. Technical
// contributes up to two questions drawn from a pool of one question per
// subcategory; other categories contribute up to two each. The collected
// questions are then sampled down to n. Categories repeated in the request
// are considered once, and short pools yield fewer questions.
func (s *Sampler) MockInterview(categories []string, n int) (selected []Question) {
	collected := make([]Question, 0)
	seen := make(map[string]bool, len(categories))

	for _, category := range categories {
		if seen[category] {
			continue
		}
		seen[category] = true

		switch {
		case category == CategoryTechnical:
			pooled := make([]Question, 0, len(s.bank.subcategories))
			for _, subcategory := range s.bank.subcategories {
				pooled = append(pooled, Sample(s.rng, s.bank.technical[subcategory], 1)...)
			}
			collected = append(collected, Sample(s.rng, pooled, perCategoryDraw)...)
		case s.bank.HasCategory(category):
			collected = append(collected, Sample(s.rng, s.bank.flat[category], perCategoryDraw)...)
		}
	}

	selected = Sample(s.rng, collected, n)
	return selected
}
