package pattern

// Template is a pre-defined starting point for a new pattern
type Template struct {
	ID           string
	Name         string
	Description  string
	Category     string // "foundation", "genre", "fill"
	Difficulty   Difficulty
	Voices       Voices
	SuggestedBPM int
}

// Pattern builds a pattern from the template. Empty metadata fields are
// filled from the template.
func (t Template) Pattern(number int, meta Metadata) (Pattern, error) {
	if meta.Name == "" {
		meta.Name = t.Name
	}
	if meta.Description == "" {
		meta.Description = t.Description
	}
	if meta.BPM == 0 {
		meta.BPM = t.SuggestedBPM
	}
	if meta.Difficulty == DifficultyNone {
		meta.Difficulty = t.Difficulty
	}
	if meta.Source == "" {
		meta.Source = "Template: " + t.Name
	}
	if meta.Created.IsZero() {
		meta.Created = Today()
	}
	return New(number, t.Voices, meta)
}

var builtInTemplates = []Template{
	{
		ID:          "four-on-the-floor",
		Name:        "Four on the Floor",
		Description: "Basic house/disco pattern with kick on every beat",
		Category:    "foundation",
		Difficulty:  DifficultyBeginner,
		Voices: Voices{
			Kick:     {1, 5, 9, 13},
			ClosedHH: {1, 3, 5, 7, 9, 11, 13, 15},
		},
		SuggestedBPM: 120,
	},
	{
		ID:          "basic-rock",
		Name:        "Basic Rock",
		Description: "Classic rock beat with kick, snare, and hi-hats",
		Category:    "genre",
		Difficulty:  DifficultyBeginner,
		Voices: Voices{
			Kick:     {1, 9},
			Snare:    {5, 13},
			ClosedHH: {1, 3, 5, 7, 9, 11, 13, 15},
		},
		SuggestedBPM: 120,
	},
	{
		ID:          "basic-breakbeat",
		Name:        "Basic Breakbeat",
		Description: "Syncopated breakbeat pattern",
		Category:    "genre",
		Difficulty:  DifficultyIntermediate,
		Voices: Voices{
			Kick:     {1, 7, 11},
			Snare:    {5, 13},
			ClosedHH: {1, 3, 5, 7, 9, 11, 13, 15},
		},
		SuggestedBPM: 140,
	},
	{
		ID:          "basic-hiphop",
		Name:        "Basic Hip-Hop",
		Description: "Classic hip-hop groove",
		Category:    "genre",
		Difficulty:  DifficultyBeginner,
		Voices: Voices{
			Kick:  {1, 11},
			Snare: {5, 13},
		},
		SuggestedBPM: 90,
	},
	{
		ID:          "basic-techno",
		Name:        "Basic Techno",
		Description: "Four-on-the-floor techno with hi-hats and claps",
		Category:    "genre",
		Difficulty:  DifficultyBeginner,
		Voices: Voices{
			Kick:     {1, 5, 9, 13},
			ClosedHH: {3, 7, 11, 15},
			HandClap: {5, 13},
		},
		SuggestedBPM: 128,
	},
}

// Templates returns all built-in templates
func Templates() []Template {
	out := make([]Template, len(builtInTemplates))
	for i, t := range builtInTemplates {
		t.Voices = t.Voices.Clone()
		out[i] = t
	}
	return out
}

// TemplatesByCategory filters the built-ins by category
func TemplatesByCategory(category string) []Template {
	var out []Template
	for _, t := range Templates() {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// TemplatesByDifficulty filters the built-ins by difficulty
func TemplatesByDifficulty(d Difficulty) []Template {
	var out []Template
	for _, t := range Templates() {
		if t.Difficulty == d {
			out = append(out, t)
		}
	}
	return out
}

// TemplateByID finds a built-in template
func TemplateByID(id string) (Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
