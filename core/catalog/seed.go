package catalog

import "Sampler/model"

// Seed returns the default sound set loaded at startup.
func Seed() []model.Sound {
	return []model.Sound{
		{ID: "1", Name: "Palmas", Source: "https://cdn.freesound.org/previews/397/397354_5121236-lq.mp3", Label: "👏"},
		{ID: "2", Name: "Risada do Peludinho", Source: "https://cdn.freesound.org/previews/387/387232_6406119-lq.mp3", Label: "🐻"},
		{ID: "3", Name: "Dedicatória Romântica", Source: "https://cdn.freesound.org/previews/415/415683_7193358-lq.mp3", Label: "💕"},
		{ID: "4", Name: "Música de Casamento", Source: "https://cdn.freesound.org/previews/521/521570_11167183-lq.mp3", Label: "💒"},
		{ID: "5", Name: "Rapaiz do Ratinho", Source: "https://cdn.freesound.org/previews/397/397354_5121236-lq.mp3", Label: "🐭"},
		{ID: "6", Name: "Tempo Correndo", Source: "https://cdn.freesound.org/previews/320/320655_5260872-lq.mp3", Label: "⏰"},
		{ID: "7", Name: "Tempo Acabando", Source: "https://cdn.freesound.org/previews/156/156859_2538033-lq.mp3", Label: "⏱️"},
	}
}
