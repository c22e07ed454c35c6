package model

// DefaultLabel is shown on entries submitted without a label.
const DefaultLabel = "🔊"

// Sound is one soundboard entry. Entries are immutable once created.
type Sound struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Source string `json:"source"` // URL, local path or minio://bucket/key
	Label  string `json:"label"`
}

// Draft is the pending input of the add-sound form.
type Draft struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Label  string `json:"label"`
}

// SoundView is a Sound as rendered in the grid.
type SoundView struct {
	Sound
	Playing bool `json:"playing"`
}
