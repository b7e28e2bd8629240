package review

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/scriptguard/internal/application"
	"github.com/bryanwahyu/scriptguard/internal/domain/ai"
	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
)

// Service runs the four category checks for a submission.
// It holds no per-request state and may be shared across goroutines.
type Service struct {
	completer  ai.Completer
	prompter   domain.Prompter
	rubric     *domain.Rubric
	clock      application.Clock
	logger     *slog.Logger
	parallel   bool
	processors map[domain.Category]domain.Processor
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp submissions.
func WithClock(c application.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithParallel toggles concurrent category calls (enabled by default).
func WithParallel(on bool) Option {
	return func(s *Service) { s.parallel = on }
}

// WithProcessor replaces the processor used for one category.
func WithProcessor(c domain.Category, p domain.Processor) Option {
	return func(s *Service) {
		if p != nil {
			s.processors[c] = p
		}
	}
}

func NewService(completer ai.Completer, prompter domain.Prompter, rubric *domain.Rubric, opts ...Option) *Service {
	s := &Service{
		completer:  completer,
		prompter:   prompter,
		rubric:     rubric,
		clock:      application.SystemClock{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		parallel:   true,
		processors: make(map[domain.Category]domain.Processor, 4),
	}
	for _, c := range domain.Categories() {
		p, _ := domain.ProcessorFor(c)
		s.processors[c] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rubric returns the rubric the service evaluates against.
func (s *Service) Rubric() *domain.Rubric { return s.rubric }

// SubmitCommand is the input of Submit.
type SubmitCommand struct {
	Content     string
	CreatorName string
	BriefType   string
}

// NewSubmission stamps cmd with an ID and the current time.
func (s *Service) NewSubmission(cmd SubmitCommand) domain.Submission {
	return domain.Submission{
		ID:          uuid.New().String(),
		Content:     cmd.Content,
		CreatorName: strings.TrimSpace(cmd.CreatorName),
		BriefType:   strings.TrimSpace(cmd.BriefType),
		SubmittedAt: s.clock.Now(),
	}
}

// Submit builds a submission from cmd and analyzes it.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (domain.Analysis, error) {
	return s.AnalyzeScript(ctx, s.NewSubmission(cmd))
}

// AnalyzeScript asks the model one question per category, interprets each
// answer and derives the verdict. A failing completion call aborts the whole
// analysis; a failing processor only affects its own category.
func (s *Service) AnalyzeScript(ctx context.Context, sub domain.Submission) (domain.Analysis, error) {
	categories := domain.Categories()
	outputs := make([][]domain.Result, len(categories))

	if s.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, c := range categories {
			g.Go(func() error {
				res, err := s.runCategory(gctx, sub, c)
				if err != nil {
					return err
				}
				outputs[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return domain.Analysis{}, err
		}
	} else {
		for i, c := range categories {
			res, err := s.runCategory(ctx, sub, c)
			if err != nil {
				return domain.Analysis{}, err
			}
			outputs[i] = res
		}
	}

	var report domain.Report
	for i, c := range categories {
		report.Set(c, outputs[i])
	}
	status := domain.Verdict(report)

	s.logger.InfoContext(ctx, "script analyzed",
		"submission_id", sub.ID,
		"creator", sub.CreatorName,
		"status", status,
	)
	return domain.Analysis{Status: status, Details: report}, nil
}

func (s *Service) runCategory(ctx context.Context, sub domain.Submission, c domain.Category) ([]domain.Result, error) {
	prompt, err := s.prompter.Render(c, sub.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}

	response, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	s.logger.DebugContext(ctx, "completion received",
		"submission_id", sub.ID,
		"category", c.String(),
		"bytes", len(response),
	)

	results, err := s.process(c, response)
	if err != nil {
		s.logger.WarnContext(ctx, "category processing failed",
			"submission_id", sub.ID,
			"category", c.String(),
			"error", err,
		)
		return domain.ErrorResults(c, err), nil
	}
	return results, nil
}

// process runs the category processor, turning a panic into an error.
func (s *Service) process(c domain.Category, response string) (results []domain.Result, err error) {
	p, ok := s.processors[c]
	if !ok || p == nil {
		return nil, fmt.Errorf("no processor for %s", c)
	}
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return p(s.rubric, response)
}
