package entity

import (
	"bytes"
	"encoding/json"
	"testing"

	"advisory_portal_backend/internal/assessments/engine"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name    string
		answers engine.Answers
		want    Structure
		scores  map[Structure]int
		tie     bool
	}{
		{
			name: "stand-alone small business",
			answers: engine.Answers{
				QGoal: "full-operations", QParentCompany: "no", QLiability: "separate",
				QCapital: "under60k", QInvestors: "none",
			},
			want:   StructureSL,
			scores: map[Structure]int{StructureSL: 15, StructureSA: 5, StructureBranch: 5, StructureSubsidiary: 10},
		},
		{
			name: "listing project",
			answers: engine.Answers{
				QGoal: "public-listing", QParentCompany: "no", QLiability: "separate",
				QCapital: "over60k", QInvestors: "public",
			},
			want:   StructureSA,
			scores: map[Structure]int{StructureSL: 8, StructureSA: 13, StructureBranch: 2, StructureSubsidiary: 7},
		},
		{
			name: "parent testing the market with liability",
			answers: engine.Answers{
				QGoal: "test-market", QParentCompany: "yes", QLiability: "parent-liable",
				QCapital: "under60k", QInvestors: "none",
			},
			want:   StructureBranch,
			scores: map[Structure]int{StructureSL: 8, StructureSA: 1, StructureBranch: 13, StructureSubsidiary: 8},
		},
		{
			name: "sl and subsidiary tie",
			answers: engine.Answers{
				QGoal: "test-market", QParentCompany: "yes", QLiability: "separate",
				QCapital: "under60k", QInvestors: "none",
			},
			want:   StructureSL,
			scores: map[Structure]int{StructureSL: 11, StructureSA: 4, StructureBranch: 10, StructureSubsidiary: 11},
			tie:    true,
		},
		{
			name: "subsidiary beats branch on tie",
			answers: engine.Answers{
				QGoal: "test-market", QParentCompany: "yes", QInvestors: "private",
			},
			want:   StructureSubsidiary,
			scores: map[Structure]int{StructureSL: 4, StructureSA: 3, StructureBranch: 6, StructureSubsidiary: 6},
			tie:    true,
		},
		{
			name:    "no answers",
			answers: engine.Answers{},
			want:    StructureSL,
			scores:  map[Structure]int{StructureSL: 0, StructureSA: 0, StructureBranch: 0, StructureSubsidiary: 0},
			tie:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Recommend(tt.answers)
			if res.Recommendation != tt.want {
				t.Fatalf("expected %s, got %s (scores %v)", tt.want, res.Recommendation, res.Scores)
			}
			for s, want := range tt.scores {
				if res.Scores[s] != want {
					t.Errorf("score[%s] = %d, want %d", s, res.Scores[s], want)
				}
			}
			if res.Tie != tt.tie {
				t.Errorf("tie = %v, want %v", res.Tie, tt.tie)
			}
			if len(res.Ranking) != len(structures) {
				t.Fatalf("expected %d ranked structures, got %d", len(structures), len(res.Ranking))
			}
			if res.Ranking[0].Category != res.Recommendation {
				t.Errorf("ranking head %s differs from recommendation %s", res.Ranking[0].Category, res.Recommendation)
			}
			if res.Profile.Name == "" {
				t.Errorf("expected a profile for %s", res.Recommendation)
			}
		})
	}
}

func TestRankingIsDescending(t *testing.T) {
	res := Recommend(engine.Answers{QGoal: "public-listing", QInvestors: "public", QCapital: "over60k"})
	for i := 1; i < len(res.Ranking); i++ {
		if res.Ranking[i].Score > res.Ranking[i-1].Score {
			t.Fatalf("ranking not descending: %+v", res.Ranking)
		}
	}
}

func TestFindingsFavourWinner(t *testing.T) {
	res := Recommend(engine.Answers{
		QGoal: "public-listing", QParentCompany: "no", QLiability: "separate",
		QCapital: "over60k", QInvestors: "public",
	})

	want := []string{
		"Only an SA can list its shares on a stock exchange.",
		"An SA limits shareholders' liability to the capital contributed.",
		"Your capital covers the 60,000 EUR minimum required for an SA.",
		"Raising money from the public requires an SA.",
	}
	if len(res.Findings) != len(want) {
		t.Fatalf("expected %d findings, got %v", len(want), res.Findings)
	}
	for i := range want {
		if res.Findings[i] != want[i] {
			t.Errorf("finding %d = %q, want %q", i, res.Findings[i], want[i])
		}
	}
}

func TestRecommendIsIdempotent(t *testing.T) {
	answers := engine.Answers{QGoal: "full-operations", QParentCompany: "yes", QCapital: "bogus"}

	first, err := json.Marshal(Recommend(answers))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(Recommend(answers))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output:\n%s\n%s", first, second)
	}
}

func TestRecommendReportsIgnoredAnswers(t *testing.T) {
	res := Recommend(engine.Answers{QCapital: "bogus", QGoal: "full-operations"})
	if len(res.IgnoredAnswers) != 1 || res.IgnoredAnswers[0].QuestionID != QCapital {
		t.Fatalf("expected capital to be ignored, got %+v", res.IgnoredAnswers)
	}
}

func TestEveryStructureHasProfile(t *testing.T) {
	for _, s := range structures {
		if _, ok := ProfileOf(s); !ok {
			t.Errorf("missing profile for %s", s)
		}
	}
}
