package catalog

import (
	"errors"
	"strings"

	"Sampler/model"

	"github.com/rivo/uniseg"
)

// ErrIncompleteDraft is returned when a draft lacks a name or a source.
var ErrIncompleteDraft = errors.New("sound draft needs a name and a source")

// maxLabelClusters mirrors the two-character limit of the label input.
const maxLabelClusters = 2

// Submit validates d and, when it has a name and a source, appends a new
// sound with a fresh id. A rejected draft leaves the catalog untouched.
func (c *Catalog) Submit(d model.Draft) (model.Sound, error) {
	name := strings.TrimSpace(d.Name)
	source := strings.TrimSpace(d.Source)
	if name == "" || source == "" {
		return model.Sound{}, ErrIncompleteDraft
	}

	s := model.Sound{
		ID:     c.NewID(),
		Name:   name,
		Source: source,
		Label:  normalizeLabel(d.Label),
	}
	c.Append(s)
	return s, nil
}

// normalizeLabel trims the label to its first two grapheme clusters and
// falls back to the default glyph when nothing is left.
func normalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.DefaultLabel
	}

	var b strings.Builder
	state := -1
	rest := label
	for n := 0; n < maxLabelClusters && rest != ""; n++ {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		b.WriteString(cluster)
	}
	return b.String()
}
