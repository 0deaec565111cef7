package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	b := map[string]bool{"x": true, "y": true}
	assert.Equal(t, 1.0, jaccard(a, b))

	c := map[string]bool{"z": true, "w": true}
	assert.Equal(t, 0.0, jaccard(a, c))

	d := map[string]bool{"x": true, "z": true}
	assert.InDelta(t, 1.0/3.0, jaccard(a, d), 0.0001)

	assert.Equal(t, 0.0, jaccard(map[string]bool{}, map[string]bool{}))
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("The **quick** brown fox, and a [dog](https://example.com)!")
	// "the", "and", "a" filtrés (stop words / longueur 1)
	assert.Equal(t, []string{"quick", "brown", "fox", "dog"}, tokens)
}

func TestShingleSetFallback(t *testing.T) {
	// Moins de 3 tokens : l'ensemble des tokens fait foi
	set := shingleSet([]string{"alpha", "beta"})
	assert.Len(t, set, 2)
	assert.True(t, set["alpha"])

	set = shingleSet([]string{"alpha", "beta", "gamma", "delta"})
	assert.Len(t, set, 2)
	assert.True(t, set["alpha beta gamma"])
	assert.True(t, set["beta gamma delta"])
}

func TestCheckSimilarityIdenticalContent(t *testing.T) {
	title := "Building Cheap Robot Arms"
	content := "We machined aluminium brackets, printed gearboxes, calibrated stepper motors and wrote inverse kinematics firmware controlling every joint angle precisely."

	corpus := []Candidate{
		{ID: "p1", Title: title, Content: content},
	}

	warnings := CheckSimilarity(title, content, corpus)

	assert.True(t, HasBlocking(warnings))
	assert.Equal(t, SourceCopyright, warnings[0].Source)
	assert.Equal(t, SeverityHigh, warnings[0].Severity)
	assert.True(t, warnings[0].Blocking)
	assert.Contains(t, warnings[0].Evidence, "1.00")
	assert.Contains(t, warnings[0].Evidence, "Building Cheap Robot Arms")

	// Le score de titre est rapporté indépendamment du score de contenu
	assert.Len(t, warnings, 2)
	assert.Equal(t, SeverityMedium, warnings[1].Severity)
	assert.False(t, warnings[1].Blocking)
}

func TestCheckSimilarityUnrelatedContent(t *testing.T) {
	warnings := CheckSimilarity(
		"Growing Tomatoes Indoors",
		"Seedlings need warmth, consistent watering schedules and sixteen hours of artificial sunlight during winter months.",
		[]Candidate{{
			ID:      "p1",
			Title:   "Rocket Engine Combustion",
			Content: "Turbopumps feed cryogenic propellant mixtures through regeneratively cooled nozzles achieving tremendous exhaust velocities.",
		}},
	)
	assert.Empty(t, warnings)
}

func TestCheckSimilarityTitleOnlyMatch(t *testing.T) {
	warnings := CheckSimilarity(
		"Growing Tomatoes Indoors",
		"Seedlings need warmth, consistent watering schedules and sixteen hours of artificial sunlight during winter months.",
		[]Candidate{{
			ID:      "p1",
			Title:   "Growing Tomatoes Indoors",
			Content: "Turbopumps feed cryogenic propellant mixtures through regeneratively cooled nozzles achieving tremendous exhaust velocities.",
		}},
	)

	assert.Len(t, warnings, 1)
	assert.Equal(t, SeverityMedium, warnings[0].Severity)
	assert.False(t, warnings[0].Blocking)
	assert.Contains(t, warnings[0].Message, "Title")
}

func TestCheckSimilarityEmptyCorpus(t *testing.T) {
	warnings := CheckSimilarity("Anything", "Whatever content", nil)
	assert.Empty(t, warnings)
}
