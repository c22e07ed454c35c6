package catalog

import (
	"testing"

	"Sampler/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSubmit_ValidDraftAppendsOne(t *testing.T) {
	c := New(Seed())
	before := c.Len()

	s, err := c.Submit(model.Draft{Name: "Clap", Source: "http://x/a.mp3", Label: "👏"})
	require.NoError(t, err)

	require.Equal(t, before+1, c.Len())
	assert.Equal(t, "Clap", s.Name)
	assert.Equal(t, "http://x/a.mp3", s.Source)
	assert.Equal(t, "👏", s.Label)
	assert.NotEmpty(t, s.ID)

	list := c.List()
	assert.Equal(t, s, list[len(list)-1])
}

func TestSubmit_DefaultsLabel(t *testing.T) {
	c := New(nil)

	s, err := c.Submit(model.Draft{Name: "Clap", Source: "http://x/a.mp3"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLabel, s.Label)
}

func TestSubmit_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		draft model.Draft
	}{
		{"empty name", model.Draft{Name: "", Source: "http://x/a.mp3"}},
		{"empty source", model.Draft{Name: "Clap", Source: ""}},
		{"both empty", model.Draft{}},
		{"whitespace name", model.Draft{Name: "   ", Source: "http://x/a.mp3"}},
		{"whitespace source", model.Draft{Name: "Clap", Source: "\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Seed())
			before := c.Len()

			_, err := c.Submit(tt.draft)
			require.ErrorIs(t, err, ErrIncompleteDraft)
			assert.Equal(t, before, c.Len())
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", model.DefaultLabel},
		{"  ", model.DefaultLabel},
		{"👏", "👏"},
		{"⏱️", "⏱️"}, // one cluster: U+23F1 + VS16
		{"ab", "ab"},
		{"abc", "ab"},
		{" 🎵 ", "🎵"},
		{"👍🏽👍🏽👍🏽", "👍🏽👍🏽"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeLabel(tt.in))
		})
	}
}

// TestProperty_CatalogOnlyGrows verifies that any sequence of submissions
// keeps earlier entries in place and grows by one per accepted draft.
func TestProperty_CatalogOnlyGrows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := New(Seed())
		initial := c.List()

		n := rapid.IntRange(0, 30).Draw(t, "n")
		accepted := 0
		for i := 0; i < n; i++ {
			d := model.Draft{
				Name:   rapid.SampledFrom([]string{"", " ", "Clap", "Boom"}).Draw(t, "name"),
				Source: rapid.SampledFrom([]string{"", "http://x/a.mp3", "/tmp/b.wav"}).Draw(t, "source"),
				Label:  rapid.SampledFrom([]string{"", "🎵", "xyz"}).Draw(t, "label"),
			}
			before := c.Len()
			_, err := c.Submit(d)
			if err == nil {
				accepted++
				if c.Len() != before+1 {
					t.Fatalf("accepted draft grew catalog by %d", c.Len()-before)
				}
			} else if c.Len() != before {
				t.Fatalf("rejected draft changed catalog length")
			}
		}

		list := c.List()
		if len(list) != len(initial)+accepted {
			t.Fatalf("len = %d, want %d", len(list), len(initial)+accepted)
		}
		for i, s := range initial {
			if list[i] != s {
				t.Fatalf("entry %d changed: %+v -> %+v", i, s, list[i])
			}
		}
	})
}
