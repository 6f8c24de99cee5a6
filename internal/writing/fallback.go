package writing

import "fmt"

// Static degradations used when the evaluation service is unreachable or
// returns garbage. The user flow proceeds on these instead of blocking.

var fallbackPrompts = map[Style]string{
	StyleProfessional: "Write a brief memo to your team announcing a change to the weekly meeting schedule, explaining the reason for the change and what you need from them.",
	StyleCreative:     "Write the opening scene of a story in which a character discovers something unexpected in a place they visit every day.",
	StyleMarketing:    "Write a short product announcement that convinces a skeptical customer to try a new service, ending with a clear call to action.",
	StyleAcademic:     "Write a short argumentative passage on whether technology improves learning outcomes, supporting your position with reasoning and evidence.",
}

// FallbackPrompt returns the static prompt served when generation fails.
func FallbackPrompt(style Style) string {
	return fallbackPrompts[style]
}

// FallbackReport returns the static analysis served when evaluation fails.
func FallbackReport(style Style) ScoreReport {
	return ScoreReport{
		OverallScore: 75,
		Metrics: Metrics{
			Clarity:    75,
			Structure:  75,
			WordChoice: 75,
			Grammar:    80,
		},
		StyleSpecificScore: 75,
		Strengths: []string{
			"Good attempt at the writing task",
			"Shows understanding of the prompt",
			"Demonstrates effort and engagement",
		},
		Weaknesses: []string{
			"Could benefit from more detailed analysis",
			"May need refinement in style-specific elements",
		},
		StyleSpecificTips: []string{
			fmt.Sprintf("Focus on %s-specific techniques", style),
			"Practice more exercises in this style",
			"Consider studying examples of excellent writing",
		},
	}
}
