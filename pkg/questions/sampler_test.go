package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed values, reduced modulo n.
type scriptedRand struct {
	values []int
	pos    int
}

func (s *scriptedRand) IntN(n int) (v int) {
	if len(s.values) == 0 {
		return v
	}
	v = s.values[s.pos%len(s.values)] % n
	s.pos++
	return v
}

func assertDistinct(t *testing.T, list []Question) {
	t.Helper()
	seen := make(map[string]bool, len(list))
	for _, question := range list {
		assert.False(t, seen[question.Question], "duplicate question %q", question.Question)
		seen[question.Question] = true
	}
}

func TestSample(t *testing.T) {
	pool := []Question{q("a"), q("b"), q("c"), q("d")}

	got := Sample(&scriptedRand{values: []int{2, 0}}, pool, 2)
	assert.Equal(t, []string{"c", "b"}, texts(got))

	all := Sample(NewRand(1), pool, 10)
	assert.Len(t, all, 4)
	assertDistinct(t, all)

	assert.Empty(t, Sample(NewRand(1), pool, 0))
	assert.Empty(t, Sample(NewRand(1), pool, -3))
	assert.Empty(t, Sample(NewRand(1), nil, 2))
}

func TestSampleIsReproducible(t *testing.T) {
	pool := testBank().All()

	first := Sample(NewRand(42), pool, 5)
	second := Sample(NewRand(42), pool, 5)
	assert.Equal(t, first, second)
}

func TestChoice(t *testing.T) {
	_, ok := Choice(NewRand(1), nil)
	assert.False(t, ok)

	got, ok := Choice(&scriptedRand{values: []int{1}}, []Question{q("a"), q("b")})
	require.True(t, ok)
	assert.Equal(t, "b", got.Question)
}

func TestRandom(t *testing.T) {
	bank := testBank()

	// Subcategories are [empty go python]; index 2 picks python, then py2.
	got, ok := NewSampler(bank, &scriptedRand{values: []int{2, 1}}).Random(CategoryTechnical)
	require.True(t, ok)
	assert.Equal(t, "py2", got.Question)

	// An empty subcategory yields nothing rather than an error.
	_, ok = NewSampler(bank, &scriptedRand{values: []int{0}}).Random(CategoryTechnical)
	assert.False(t, ok)

	got, ok = NewSampler(bank, &scriptedRand{values: []int{4}}).Random(CategoryBehavioral)
	require.True(t, ok)
	assert.Equal(t, "b5", got.Question)

	// The whole bank: go1 py1 py2 py3 b1 b2 b3 b4 b5 s1.
	got, ok = NewSampler(bank, &scriptedRand{values: []int{9}}).Random("")
	require.True(t, ok)
	assert.Equal(t, "s1", got.Question)

	_, ok = NewSampler(bank, NewRand(1)).Random("nonexistent")
	assert.False(t, ok)

	_, ok = NewSampler(New(nil, nil, nil), NewRand(1)).Random("")
	assert.False(t, ok)
}

func TestRandomOnlyReturnsCategoryMembers(t *testing.T) {
	bank := testBank()
	sampler := NewSampler(bank, NewRand(3))

	allowed := map[string]bool{}
	for _, question := range bank.ByCategory(CategoryBehavioral, "") {
		allowed[question.Question] = true
	}

	for i := 0; i < 50; i++ {
		got, ok := sampler.Random(CategoryBehavioral)
		require.True(t, ok)
		assert.True(t, allowed[got.Question])
	}
}

func TestMockInterviewBehavioral(t *testing.T) {
	bank := testBank()
	behavioral := map[string]bool{}
	for _, question := range bank.ByCategory(CategoryBehavioral, "") {
		behavioral[question.Question] = true
	}

	for seed := uint64(0); seed < 20; seed++ {
		got := NewSampler(bank, NewRand(seed)).MockInterview([]string{CategoryBehavioral}, 2)
		require.Len(t, got, 2)
		assertDistinct(t, got)
		for _, question := range got {
			assert.True(t, behavioral[question.Question])
		}
	}
}

func TestMockInterviewTechnicalTakesOnePerSubcategory(t *testing.T) {
	// Two non-empty subcategories: at most one question from each.
	bank := New(
		map[string][]Question{
			"go":     {q("go1"), q("go2")},
			"python": {q("py1"), q("py2"), q("py3")},
		},
		nil, nil,
	)

	for seed := uint64(0); seed < 20; seed++ {
		got := NewSampler(bank, NewRand(seed)).MockInterview([]string{CategoryTechnical}, 5)
		require.Len(t, got, 2)
		assertDistinct(t, got)

		var goCount, pyCount int
		for _, question := range got {
			switch question.Question[:2] {
			case "go":
				goCount++
			case "py":
				pyCount++
			}
		}
		assert.Equal(t, 1, goCount)
		assert.Equal(t, 1, pyCount)
	}
}

func TestMockInterviewCombinesCategories(t *testing.T) {
	bank := testBank()
	sampler := NewSampler(bank, NewRand(9))

	// technical (2) + behavioral (2) + system_design (1) = 5 collected.
	got := sampler.MockInterview([]string{CategoryTechnical, CategoryBehavioral, CategorySystemDesign, "nonexistent"}, 10)
	assert.Len(t, got, 5)
	assertDistinct(t, got)

	got = sampler.MockInterview([]string{CategoryTechnical, CategoryBehavioral, CategorySystemDesign}, 3)
	assert.Len(t, got, 3)
	assertDistinct(t, got)
}

func TestMockInterviewIgnoresRepeatedCategories(t *testing.T) {
	bank := testBank()

	got := NewSampler(bank, NewRand(5)).MockInterview([]string{CategoryBehavioral, CategoryBehavioral, CategoryBehavioral}, 10)
	assert.Len(t, got, 2)
	assertDistinct(t, got)
}

func TestMockInterviewDegradesGracefully(t *testing.T) {
	bank := testBank()
	sampler := NewSampler(bank, NewRand(1))

	assert.Empty(t, sampler.MockInterview(nil, 5))
	assert.Empty(t, sampler.MockInterview([]string{CategoryBehavioral}, 0))
	assert.Len(t, sampler.MockInterview([]string{CategorySystemDesign}, 5), 1)
}

func TestMockInterviewReproducible(t *testing.T) {
	bank := DefaultBank()
	categories := []string{CategoryTechnical, CategoryBehavioral, CategorySystemDesign}

	first := NewSampler(bank, NewRand(2024)).MockInterview(categories, 4)
	second := NewSampler(bank, NewRand(2024)).MockInterview(categories, 4)
	assert.Equal(t, first, second)
}

func TestLockedRand(t *testing.T) {
	r := NewLockedRand(NewRand(1))
	for i := 0; i < 100; i++ {
		v := r.IntN(3)
		assert.True(t, v >= 0 && v < 3)
	}
}
