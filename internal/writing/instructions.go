package writing

// Per-style instruction fragments used to steer the evaluation model. The
// text mirrors the rubric shown to users in the product copy, so changes
// here are product changes, not refactors.

var promptInstructions = map[Style]string{
	StyleProfessional: "Generate a professional writing prompt that would be suitable for business communication, reports, or formal correspondence. The prompt should challenge the writer to use clear, concise language and proper business etiquette.",
	StyleCreative:     "Generate a creative writing prompt that encourages imagination, storytelling, and artistic expression. The prompt should inspire vivid descriptions, character development, or innovative narrative techniques.",
	StyleMarketing:    "Generate a marketing writing prompt that focuses on persuasive content, brand messaging, or customer engagement. The prompt should challenge the writer to create compelling, action-oriented content.",
	StyleAcademic:     "Generate an academic writing prompt that requires research-based arguments, critical analysis, or scholarly discussion. The prompt should challenge the writer to use formal language and evidence-based reasoning.",
}

type analysisRubric struct {
	Criteria string
	Focus    string
}

var analysisRubrics = map[Style]analysisRubric{
	StyleProfessional: {
		Criteria: "clarity, conciseness, professional tone, business appropriateness, structure, and formal language usage",
		Focus:    "business communication standards, professional etiquette, and workplace-appropriate language",
	},
	StyleCreative: {
		Criteria: "creativity, imagination, narrative flow, character development, descriptive language, and artistic expression",
		Focus:    "storytelling techniques, literary devices, and creative word choice",
	},
	StyleMarketing: {
		Criteria: "persuasiveness, audience engagement, call-to-action effectiveness, brand voice, and compelling messaging",
		Focus:    "marketing effectiveness, audience appeal, and conversion potential",
	},
	StyleAcademic: {
		Criteria: "formal tone, logical argumentation, evidence-based reasoning, scholarly language, and research depth",
		Focus:    "academic writing conventions, critical analysis, and scholarly discourse",
	},
}

// PromptInstruction returns the style-specific task handed to the prompt
// generation model.
func (s Style) PromptInstruction() string {
	return promptInstructions[s]
}

// AnalysisCriteria returns the scoring criteria list for the style.
func (s Style) AnalysisCriteria() string {
	return analysisRubrics[s].Criteria
}

// AnalysisFocus returns the special-attention areas for the style.
func (s Style) AnalysisFocus() string {
	return analysisRubrics[s].Focus
}
