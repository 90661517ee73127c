package entity

import "advisory_portal_backend/internal/assessments/engine"

// Result is the recommender outcome.
type Result struct {
	Recommendation Structure                  `json:"recommendation"`
	Ranking        []engine.Ranked[Structure] `json:"ranking"`
	Scores         map[Structure]int          `json:"scores"`
	Findings       []string                   `json:"findings"`
	Profile        Profile                    `json:"profile"`
	Tie            bool                       `json:"tie"`
	FiredFactors   []string                   `json:"firedFactors"`
	IgnoredAnswers []engine.IgnoredAnswer     `json:"ignoredAnswers"`
	Version        string                     `json:"version"`
}

// Recommend ranks every structure and returns the winner. Equal scores are resolved by
// a fixed priority (sl, subsidiary, branch, sa) and flagged with Tie.
func Recommend(answers engine.Answers) Result {
	clean, ignored := questionnaire.Sanitize(answers)
	card := engine.Score(clean, catalog)
	ranking := engine.Rank(card, tiePriority, structures)

	winner := ranking[0]
	findings := engine.Findings(card.FiredIn(winner.Category), clean)

	return Result{
		Recommendation: winner.Category,
		Ranking:        ranking,
		Scores:         card.CategoryTotals,
		Findings:       findings,
		Profile:        profiles[winner.Category],
		Tie:            len(ranking) > 1 && ranking[1].Score == winner.Score,
		FiredFactors:   card.FiredIDs(),
		IgnoredAnswers: ignored,
		Version:        Version,
	}
}
