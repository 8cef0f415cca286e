package factcheck

import (
	"strings"
	"testing"

	"truthonly/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed draws so each branch can be asserted exactly.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		panic("scripted int out of range")
	}
	return v
}

func TestGenerateKeywordRules(t *testing.T) {
	g := NewMockGenerator(&scriptedRand{})

	t.Run("Flat earth", func(t *testing.T) {
		res := g.Generate(models.InputText, "The earth is flat")
		assert.False(t, res.IsTrue)
		assert.Equal(t, 99, res.Confidence)
		assert.Equal(t, models.OriginFallback, res.Origin)
		found := false
		for _, s := range res.Sources {
			if strings.Contains(s.URL, "nasa.gov") {
				found = true
			}
		}
		assert.True(t, found, "expected a NASA source")
	})

	t.Run("Covid vaccine", func(t *testing.T) {
		res := g.Generate(models.InputText, "New COVID-19 vaccine approved")
		assert.True(t, res.IsTrue)
		assert.Equal(t, 92, res.Confidence)
		assert.Equal(t, "https://www.fda.gov/vaccines-blood-biologics/vaccines/", res.Sources[2].URL)
	})

	t.Run("Covid hoax wins over vaccine", func(t *testing.T) {
		res := g.Generate(models.InputText, "covid vaccine is a hoax")
		assert.False(t, res.IsTrue)
		assert.Equal(t, 98, res.Confidence)
	})

	t.Run("Climate change", func(t *testing.T) {
		res := g.Generate(models.InputText, "Climate Change is accelerating")
		assert.True(t, res.IsTrue)
		assert.Equal(t, 97, res.Confidence)
	})

	t.Run("Celebrity death hoax", func(t *testing.T) {
		res := g.Generate(models.InputText, "Breaking: Virat Kohli died yesterday")
		assert.False(t, res.IsTrue)
		assert.Equal(t, 95, res.Confidence)
		assert.Len(t, res.Sources, 4)
	})

	t.Run("Applies to URLs and file names too", func(t *testing.T) {
		res := g.Generate(models.InputURL, "https://news.example.com/the-earth-is-flat")
		assert.Equal(t, 99, res.Confidence)
		res = g.Generate(models.InputImage, "flat_earth_proof.png")
		assert.Equal(t, 99, res.Confidence)
	})
}

func TestGenerateURLHeuristics(t *testing.T) {
	t.Run("Satire marker", func(t *testing.T) {
		res := NewMockGenerator(&scriptedRand{}).Generate(models.InputURL, "https://www.theonion.com/man-finds-thing")
		assert.False(t, res.IsTrue)
		assert.Equal(t, 99, res.Confidence)
		assert.Equal(t, "https://www.theonion.com/about", res.Sources[0].URL)
	})

	t.Run("Satire domain", func(t *testing.T) {
		res := NewMockGenerator(&scriptedRand{}).Generate(models.InputURL, "https://babylonbee.com/news/x")
		assert.Equal(t, 99, res.Confidence)
	})

	t.Run("Social media biased false", func(t *testing.T) {
		res := NewMockGenerator(&scriptedRand{floats: []float64{0.5}}).Generate(models.InputURL, "https://www.facebook.com/post/1")
		assert.False(t, res.IsTrue)
		assert.Equal(t, 85, res.Confidence)

		res = NewMockGenerator(&scriptedRand{floats: []float64{0.9}}).Generate(models.InputURL, "https://m.twitter.com/someone/status/1")
		assert.True(t, res.IsTrue)
		assert.Equal(t, 65, res.Confidence)
	})

	t.Run("Generic domain", func(t *testing.T) {
		res := NewMockGenerator(&scriptedRand{floats: []float64{0.8}, ints: []int{12}}).Generate(models.InputURL, "https://example.org/story")
		assert.True(t, res.IsTrue)
		assert.Equal(t, 82, res.Confidence)

		res = NewMockGenerator(&scriptedRand{floats: []float64{0.1}, ints: []int{29}}).Generate(models.InputURL, "https://example.org/story")
		assert.False(t, res.IsTrue)
		assert.Equal(t, 69, res.Confidence)
		assert.Equal(t, "https://www.whois.net/", res.Sources[0].URL)
	})
}

func TestGenerateImage(t *testing.T) {
	t.Run("Disputed image names the scenario", func(t *testing.T) {
		res := NewMockGenerator(&scriptedRand{ints: []int{2, 10}, floats: []float64{0.2}}).Generate(models.InputImage, "IMG_0001.JPG")
		assert.False(t, res.IsTrue)
		assert.Equal(t, 70, res.Confidence)
		require.Len(t, res.Sources, 4)
		assert.Equal(t, models.Source{Name: "Analysis: Likely deepfake", URL: "https://www.factcheck.org/"}, res.Sources[3])
	})

	t.Run("Authentic image", func(t *testing.T) {
		res := NewMockGenerator(&scriptedRand{ints: []int{0, 24}, floats: []float64{0.95}}).Generate(models.InputImage, "")
		assert.True(t, res.IsTrue)
		assert.Equal(t, 99, res.Confidence)
		assert.Len(t, res.Sources, 3)
	})
}

func TestGenerateText(t *testing.T) {
	res := NewMockGenerator(&scriptedRand{floats: []float64{0.31}, ints: []int{0}}).Generate(models.InputText, "Bananas are berries")
	assert.True(t, res.IsTrue)
	assert.Equal(t, 60, res.Confidence)

	res = NewMockGenerator(&scriptedRand{floats: []float64{0.3}, ints: []int{39}}).Generate(models.InputText, "Bananas are berries")
	assert.False(t, res.IsTrue)
	assert.Equal(t, 59, res.Confidence)
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	inputs := []struct {
		typ     models.InputType
		content string
	}{
		{models.InputText, "Some unremarkable claim about tea"},
		{models.InputURL, "https://example.com/a"},
		{models.InputImage, "picture.png"},
		{models.InputURL, "https://www.instagram.com/p/abc"},
	}

	a := NewMockGenerator(NewRand(42))
	b := NewMockGenerator(NewRand(42))
	for _, in := range inputs {
		ra := a.Generate(in.typ, in.content)
		rb := b.Generate(in.typ, in.content)
		if diff := cmp.Diff(ra, rb); diff != "" {
			t.Errorf("seeded results differ for %q (-a +b):\n%s", in.content, diff)
		}
	}
}

func TestGenerateInvariants(t *testing.T) {
	g := NewMockGenerator(NewRand(7))
	contents := []string{"https://example.com", "hello world, this is text", "photo.jpg", "", "https://wa.me/123"}
	for i := 0; i < 500; i++ {
		for _, typ := range []models.InputType{models.InputURL, models.InputText, models.InputImage} {
			res := g.Generate(typ, contents[i%len(contents)])
			require.GreaterOrEqual(t, res.Confidence, 0)
			require.LessOrEqual(t, res.Confidence, 100)
			require.NotEmpty(t, res.Sources)
			require.Equal(t, models.OriginFallback, res.Origin)
		}
	}
}

func TestRegistrableDomain(t *testing.T) {
	assert.Equal(t, "bbc.co.uk", RegistrableDomain("https://www.news.bbc.co.uk/article"))
	assert.Equal(t, "facebook.com", RegistrableDomain("https://m.facebook.com/story.php"))
	assert.Equal(t, "", RegistrableDomain("just some words"))
}

func TestGeneratedSourcesAreCopies(t *testing.T) {
	g := NewMockGenerator(&scriptedRand{})
	res := g.Generate(models.InputText, "the earth is flat")
	res.Sources[0].Name = "tampered"

	again := g.Generate(models.InputText, "the earth is flat")
	assert.NotEqual(t, "tampered", again.Sources[0].Name)
}
