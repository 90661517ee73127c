// Package service runs assessments for the HTTP layer and for lead capture.
package service

import (
	"context"

	"advisory_portal_backend/internal/assessments/engine"
	"advisory_portal_backend/internal/assessments/transport"
	"advisory_portal_backend/platform/apperr"
	"advisory_portal_backend/platform/logger"
)

const msgUnknownKind = "unknown assessment kind"

// Recorder receives one call per evaluation.
type Recorder interface {
	AssessmentEvaluated(kind, outcome string, ignored int)
}

// Service evaluates answer sets against the registered assessments.
type Service struct {
	log      *logger.Logger
	recorder Recorder
}

// New creates a new assessments service.
func New(log *logger.Logger) *Service {
	return &Service{log: log}
}

// SetRecorder attaches a metrics recorder.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

func lookup(kind string) (registration, error) {
	reg, ok := registry[Kind(kind)]
	if !ok {
		return registration{}, apperr.NotFound(msgUnknownKind).WithDetails(Kinds())
	}
	return reg, nil
}

// Evaluate computes an assessment. Ignored answers are logged here; the engine
// only reports them.
func (s *Service) Evaluate(ctx context.Context, kind string, answers engine.Answers) (Outcome, error) {
	reg, err := lookup(kind)
	if err != nil {
		return Outcome{}, err
	}

	out := reg.evaluate(answers)
	if len(out.Ignored) > 0 && s.log != nil {
		ids := make([]string, 0, len(out.Ignored))
		for _, ig := range out.Ignored {
			ids = append(ids, ig.QuestionID)
		}
		s.log.WithContext(ctx).AssessmentAnswersIgnored(string(out.Kind), out.Version, ids)
	}
	if s.recorder != nil {
		s.recorder.AssessmentEvaluated(string(out.Kind), out.Label, len(out.Ignored))
	}
	return out, nil
}

// Respond evaluates and wraps the result for the public API.
func (s *Service) Respond(ctx context.Context, kind string, answers engine.Answers) (transport.EvaluateResponse, error) {
	out, err := s.Evaluate(ctx, kind, answers)
	if err != nil {
		return transport.EvaluateResponse{}, err
	}
	return transport.EvaluateResponse{
		Kind:    string(out.Kind),
		Version: out.Version,
		Result:  out.Result,
	}, nil
}

// Questionnaire returns the questions for kind.
func (s *Service) Questionnaire(kind string) (transport.QuestionnaireResponse, error) {
	reg, err := lookup(kind)
	if err != nil {
		return transport.QuestionnaireResponse{}, err
	}
	return transport.QuestionnaireResponse{
		Kind:      kind,
		Version:   reg.version,
		Questions: reg.questionnaire(),
	}, nil
}

// Kinds lists the available assessments.
func (s *Service) Kinds() transport.KindsResponse {
	kinds := Kinds()
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return transport.KindsResponse{Kinds: out}
}
