package taxonomy

import "github.com/dtnitsch/chat-profiler/models"

const (
	shortExcerpt = 200
	longExcerpt  = 300
)

// DefaultDefinitions returns the built-in facet table. Callers may modify
// the returned slice freely.
func DefaultDefinitions() []models.FacetDefinition {
	return []models.FacetDefinition{
		{
			Name: "tone_indicators",
			Categories: []models.CategoryDefinition{
				{Name: "direct_requests", Kind: KindNever, DisplayLimit: 5, ExcerptLength: shortExcerpt},
				{
					Name:          "frustrated_moments",
					Kind:          KindKeywords,
					Keywords:      []string{"shit", "fuck", "retard", "dumbass", "balls"},
					DisplayLimit:  5,
					ExcerptLength: shortExcerpt,
				},
				{
					Name:          "enthusiastic_moments",
					Kind:          KindCompound,
					Markers:       []string{"!"},
					Keywords:      []string{"great", "works", "better", "yes", "perfect"},
					DisplayLimit:  5,
					ExcerptLength: shortExcerpt,
				},
				{
					Name:          "questioning",
					Kind:          KindPrefix,
					Prefixes:      []string{"Can ", "can ", "How ", "how ", "What ", "what ", "Why ", "why "},
					DisplayLimit:  10,
					ExcerptLength: shortExcerpt,
				},
				{Name: "casual_language", Kind: KindNever, DisplayLimit: 5, ExcerptLength: shortExcerpt},
			},
		},
		{
			Name: "technical_approach",
			Categories: []models.CategoryDefinition{
				{
					Name:          "tool_mentions",
					Kind:          KindKeywords,
					Keywords:      []string{"api", "deploy", "github", "netlify", "vercel", "react", "typescript", "tailwind"},
					DisplayLimit:  15,
					ExcerptLength: longExcerpt,
				},
				{Name: "architecture_decisions", Kind: KindNever, DisplayLimit: 10, ExcerptLength: longExcerpt},
				{Name: "problem_identification", Kind: KindNever, DisplayLimit: 10, ExcerptLength: longExcerpt},
			},
		},
		{
			Name: "projects",
			Categories: []models.CategoryDefinition{
				{
					Name:          "portfolio",
					Kind:          KindKeywords,
					Keywords:      []string{"chatbot", "resume", "portfolio"},
					DisplayLimit:  10,
					ExcerptLength: longExcerpt,
				},
				{
					Name:          "legal_transcription",
					Kind:          KindKeywords,
					Keywords:      []string{"legal", "transcription", "whisper"},
					DisplayLimit:  10,
					ExcerptLength: longExcerpt,
				},
				{
					Name:          "cream_of_creams",
					Kind:          KindKeywords,
					Keywords:      []string{"cream"},
					DisplayLimit:  10,
					ExcerptLength: longExcerpt,
				},
			},
		},
		{
			Name: "soft_skills_evidence",
			Categories: []models.CategoryDefinition{
				{
					Name:          "iteration",
					Kind:          KindKeywords,
					Keywords:      []string{"improve", "better", "adjust", "refine", "optimize"},
					DisplayLimit:  8,
					ExcerptLength: shortExcerpt,
				},
				{Name: "learning", Kind: KindNever, DisplayLimit: 8, ExcerptLength: shortExcerpt},
				{
					Name:          "autonomy",
					Kind:          KindKeywords,
					Keywords:      []string{"autonomous", "work on this", "figure out", "decide"},
					DisplayLimit:  8,
					ExcerptLength: shortExcerpt,
				},
				{
					Name:          "vision",
					Kind:          KindKeywords,
					Keywords:      []string{"i want", "my goal", "my vision", "i need"},
					DisplayLimit:  8,
					ExcerptLength: shortExcerpt,
				},
			},
		},
		{
			Name: "work_patterns",
			Categories: []models.CategoryDefinition{
				{
					Name:          "problem_solving",
					Kind:          KindKeywords,
					Keywords:      []string{"fix", "debug", "issue", "problem", "bug", "error"},
					DisplayLimit:  10,
					ExcerptLength: longExcerpt,
				},
				{
					Name:          "project_stories",
					Kind:          KindKeywords,
					Keywords:      []string{"cream of creams", "legal transcription", "portfolio", "chatbot"},
					DisplayLimit:  10,
					ExcerptLength: longExcerpt,
				},
				{
					Name:          "communication_style",
					Kind:          KindMarkers,
					Markers:       []string{"!", "?"},
					DisplayLimit:  10,
					ExcerptLength: shortExcerpt,
				},
				{
					Name:          "work_ethic",
					Kind:          KindKeywords,
					Keywords:      []string{"improve", "optimize", "better", "enhance", "refactor"},
					DisplayLimit:  10,
					ExcerptLength: longExcerpt,
				},
			},
		},
	}
}

// Default compiles the built-in facet table.
func Default() *Taxonomy {
	t, err := Compile(DefaultDefinitions())
	if err != nil {
		panic("taxonomy: invalid default definitions: " + err.Error())
	}
	return t
}
