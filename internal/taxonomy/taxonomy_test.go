package taxonomy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
)

func TestDefaultRegistryIsValid(t *testing.T) {
	reg := taxonomy.Default()
	require.NoError(t, reg.Validate())

	uk, ok := reg.Country(models.CountryUK)
	require.True(t, ok)
	require.Equal(t, "United Kingdom", uk.Name)
	require.NotEmpty(t, uk.LocalTopics)
	require.NotEmpty(t, uk.Politicians)

	_, ok = reg.Country(models.Country("FR"))
	require.False(t, ok)
}

func TestFallbackCategoryPresent(t *testing.T) {
	reg := taxonomy.Default()

	var fallback *taxonomy.Topic
	for i := range reg.ViralTopics {
		if reg.ViralTopics[i].Name == taxonomy.FallbackCategory {
			fallback = &reg.ViralTopics[i]
		}
	}
	require.NotNil(t, fallback)
	require.False(t, fallback.Leaf())
}

func TestTrackedEntitiesCombinesLayers(t *testing.T) {
	reg := taxonomy.Default()

	ukEntities := reg.TrackedEntities(models.CountryUK)
	names := map[string]bool{}
	for _, e := range ukEntities {
		require.False(t, names[e.Name], "duplicate entity %s", e.Name)
		names[e.Name] = true
	}

	// Country politicians come first, then the global viral-people groups.
	require.Equal(t, "Keir Starmer", ukEntities[0].Name)
	require.True(t, names["Elon Musk"])
	require.True(t, names["Taylor Swift"])
	require.False(t, names["Donald Trump"], "US politicians must not leak into the UK set")

	globalEntities := reg.TrackedEntities("")
	require.Equal(t, "Elon Musk", globalEntities[0].Name)
}

func TestWeightDefaultsToOne(t *testing.T) {
	reg := taxonomy.Default()
	require.Equal(t, 10, reg.Weight("Cost of Living"))
	require.Equal(t, 1, reg.Weight("Unknown Topic"))
}

func TestFlagFallsBackToGlobal(t *testing.T) {
	reg := taxonomy.Default()
	require.Equal(t, "🇺🇸", reg.Flag(models.CountryUS))
	require.Equal(t, taxonomy.GlobalFlag, reg.Flag(""))
	require.Equal(t, "Global", reg.CountryName(""))
}

func TestValidateRejectsBrokenRegistries(t *testing.T) {
	tests := []struct {
		name  string
		bend  func(r *taxonomy.Registry)
		wants string
	}{
		{
			name:  "no active countries",
			bend:  func(r *taxonomy.Registry) { r.Active = nil },
			wants: "no active countries",
		},
		{
			name:  "active country without config",
			bend:  func(r *taxonomy.Registry) { r.Active = append(r.Active, "DE") },
			wants: "no configuration",
		},
		{
			name: "leaf without keywords",
			bend: func(r *taxonomy.Registry) {
				r.GlobalTopics = append(r.GlobalTopics, taxonomy.Topic{Name: "Empty"})
			},
			wants: "no keywords",
		},
		{
			name: "viral category without children",
			bend: func(r *taxonomy.Registry) {
				r.ViralTopics = append(r.ViralTopics, taxonomy.Topic{Name: "Flat", Keywords: []string{"x"}})
			},
			wants: "must have subcategories",
		},
		{
			name: "missing fallback category",
			bend: func(r *taxonomy.Registry) {
				kept := r.ViralTopics[:0]
				for _, cat := range r.ViralTopics {
					if cat.Name != taxonomy.FallbackCategory {
						kept = append(kept, cat)
					}
				}
				r.ViralTopics = kept
			},
			wants: "missing fallback category",
		},
		{
			name: "entity without aliases",
			bend: func(r *taxonomy.Registry) {
				r.ViralPeople = append(r.ViralPeople, taxonomy.EntityGroup{
					Name:     "Broken",
					Entities: []taxonomy.Entity{{Name: "Nobody"}},
				})
			},
			wants: "no aliases",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := taxonomy.Default()
			tt.bend(&reg)
			err := reg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wants)
		})
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	reg, err := taxonomy.Load("")
	require.NoError(t, err)
	require.Equal(t, taxonomy.Default().Active, reg.Active)
}

func TestLoadMergesOverrideFile(t *testing.T) {
	override := `
global_topics:
  - name: Climate
    keywords: [climate change, net zero]
weights:
  Climate: 9
`
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	reg, err := taxonomy.Load(path)
	require.NoError(t, err)

	// Overridden section replaced wholesale.
	require.Len(t, reg.GlobalTopics, 1)
	require.Equal(t, "Climate", reg.GlobalTopics[0].Name)
	require.Equal(t, 9, reg.Weight("Climate"))
	require.Equal(t, 1, reg.Weight("Cost of Living"))

	// Untouched sections keep the defaults.
	require.NotEmpty(t, reg.ViralTopics)
	require.NotEmpty(t, reg.Countries)
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	override := `
viral_topics:
  - name: Solo
    children:
      - name: Leaf
        keywords: [word]
`
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	_, err := taxonomy.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing fallback category")
}
