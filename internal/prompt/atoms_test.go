package prompt

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("a"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
}

func TestHashContent(t *testing.T) {
	assert.Equal(t, "", HashContent(""))
	assert.Len(t, HashContent("atlas"), 64)
	assert.Equal(t, HashContent("atlas"), HashContent("atlas"))
	assert.NotEqual(t, HashContent("atlas"), HashContent("Atlas"))
}

func TestPromptAtomValidate(t *testing.T) {
	assert.NoError(t, NewPromptAtom("a", CategoryRules, 0, "x").Validate())
	assert.Error(t, NewPromptAtom("", CategoryRules, 0, "x").Validate())
	assert.Error(t, NewPromptAtom("a", AtomCategory("protocol"), 0, "x").Validate())
	assert.Error(t, NewPromptAtom("a", CategoryRules, 0, "").Validate())
}

func TestEmbeddedAtomsCoverEveryCategory(t *testing.T) {
	atoms, err := LoadEmbeddedAtoms()
	require.NoError(t, err)

	seen := make(map[AtomCategory]int)
	for _, a := range atoms {
		seen[a.Category]++
		assert.Equal(t, HashContent(a.Content), a.ContentHash)
		assert.Equal(t, EstimateTokens(a.Content), a.TokenCount)
	}
	for _, cat := range AllCategories() {
		assert.Positive(t, seen[cat], "no atoms for %s", cat)
	}
	assert.Equal(t, 10, seen[CategorySummary])
}

func TestLoadAtomsSkipsBadInput(t *testing.T) {
	fsys := fstest.MapFS{
		"atoms/good.yaml": {Data: []byte(`
- id: a
  category: identity
  content: "hello"
- id: missing-category
  content: "dropped"
`)},
		"atoms/single.yml":  {Data: []byte("id: b\ncategory: rules\ncontent: rule\n")},
		"atoms/z_dup.yaml":  {Data: []byte("- id: a\n  category: stance\n  content: again\n")},
		"atoms/broken.yaml": {Data: []byte("- id: [unterminated\n")},
		"atoms/readme.md":   {Data: []byte("# not an atom")},
	}

	atoms, err := loadAtoms(fsys, "atoms")
	require.NoError(t, err)

	ids := make([]string, 0, len(atoms))
	for _, a := range atoms {
		ids = append(ids, a.ID+"/"+string(a.Category))
	}
	assert.ElementsMatch(t, []string{"a/identity", "b/rules"}, ids)
}

func TestAssemblerOrdering(t *testing.T) {
	atoms := []*PromptAtom{
		NewPromptAtom("tools", CategoryTools, 0, "T"),
		NewPromptAtom("low", CategorySummary, 1, "S-low"),
		NewPromptAtom("high", CategorySummary, 9, "S-high"),
		NewPromptAtom("b", CategorySummary, 5, "S-b"),
		NewPromptAtom("a", CategorySummary, 5, "S-a"),
		NewPromptAtom("who", CategoryIdentity, 0, "I"),
	}

	got := NewFinalAssembler().Assemble(atoms)
	assert.Equal(t, "I\n\nS-high\n\nS-a\n\nS-b\n\nS-low\n\nT", got)
	assert.Equal(t, "", NewFinalAssembler().Assemble(nil))
}

func TestPromptCacheBuildsOnce(t *testing.T) {
	c := NewPromptCache()
	var builds atomic.Int32
	build := func() string {
		builds.Add(1)
		return "block"
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "block", c.Area("games", build))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	assert.Equal(t, 1, c.Len())

	var coreBuilds atomic.Int32
	for i := 0; i < 3; i++ {
		assert.Equal(t, "core", c.Core(func() string {
			coreBuilds.Add(1)
			return "core"
		}))
	}
	assert.Equal(t, int32(1), coreBuilds.Load())
	assert.Equal(t, 1, c.Len(), "core is not an area entry")
}

func TestPromptCacheEmptyValueIsCached(t *testing.T) {
	c := NewPromptCache()
	calls := 0
	for i := 0; i < 2; i++ {
		assert.Equal(t, "", c.Area("library:none", func() string {
			calls++
			return ""
		}))
	}
	assert.Equal(t, 1, calls)
}
