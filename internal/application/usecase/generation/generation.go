package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/application/usecase/careercontext"
	"github.com/khoahotran/career-os/internal/application/usecase/prompt"
	"github.com/khoahotran/career-os/internal/domain/document"
	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/logger"
)

var tracer = otel.Tracer("generation_usecase")

const placeholderFormat = "I've generated the %s based on your career data and the job description."

type ContextSource interface {
	BuildContext(ctx context.Context) (*careercontext.Composite, error)
}

type UseCase struct {
	contexts ContextSource
	llm      service.LLMService
	ledger   service.UsageLedger
	events   service.EventPublisher
	logger   logger.Logger
}

func NewUseCase(
	contexts ContextSource,
	llm service.LLMService,
	ledger service.UsageLedger,
	events service.EventPublisher,
	log logger.Logger,
) *UseCase {
	return &UseCase{
		contexts: contexts,
		llm:      llm,
		ledger:   ledger,
		events:   events,
		logger:   log,
	}
}

type GenerateInput struct {
	Kind              document.Kind
	Job               document.JobInfo
	AdditionalContext string
	// Question and MaxLength apply to application answers only.
	Question  string
	MaxLength int
}

type ReviseInput struct {
	Kind      document.Kind
	Job       document.JobInfo
	Question  string
	MaxLength int
	Feedback  string
	// CurrentAnswer is the application answer being revised.
	CurrentAnswer string
}

// Generate issues one model call with a single user turn.
func (uc *UseCase) Generate(ctx context.Context, input GenerateInput) (*document.Result, error) {
	if err := validateRequest(input.Kind, input.Job, input.Question, input.MaxLength, nil); err != nil {
		return nil, err
	}

	l := uc.logger.With(zap.String("kind", string(input.Kind)), zap.String("mode", "generate"))
	messages := []service.Message{
		{Role: service.RoleUser, Content: requestTurn(input.Kind, input.Job, input.Question, input.MaxLength, input.AdditionalContext)},
	}
	return uc.run(ctx, l, input.Kind, messages, service.EventDocumentGenerated)
}

// Revise issues one model call over a fixed user, assistant, user conversation.
func (uc *UseCase) Revise(ctx context.Context, input ReviseInput) (*document.Result, error) {
	var missing []string
	if strings.TrimSpace(input.Feedback) == "" {
		missing = append(missing, "feedback")
	}
	if input.Kind == document.KindApplicationAnswer && strings.TrimSpace(input.CurrentAnswer) == "" {
		missing = append(missing, "currentAnswer")
	}
	if err := validateRequest(input.Kind, input.Job, input.Question, input.MaxLength, missing); err != nil {
		return nil, err
	}

	l := uc.logger.With(zap.String("kind", string(input.Kind)), zap.String("mode", "revise"))
	messages := []service.Message{
		{Role: service.RoleUser, Content: requestTurn(input.Kind, input.Job, input.Question, input.MaxLength, "")},
		{Role: service.RoleAssistant, Content: assistantTurn(input.Kind, input.CurrentAnswer)},
		{Role: service.RoleUser, Content: revisionTurn(input.Kind, input.Feedback, input.MaxLength)},
	}
	return uc.run(ctx, l, input.Kind, messages, service.EventDocumentRevised)
}

func (uc *UseCase) run(
	ctx context.Context,
	l logger.Logger,
	kind document.Kind,
	messages []service.Message,
	eventType string,
) (*document.Result, error) {
	// An abandoned caller does not stop in-flight store or model calls.
	ctx = context.WithoutCancel(ctx)

	ctx, span := tracer.Start(ctx, eventType, trace.WithAttributes(
		attribute.String("kind", string(kind)),
		attribute.Int("turns", len(messages)),
	))
	defer span.End()

	composite, err := uc.contexts.BuildContext(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.ClassifyDatabaseError(fmt.Errorf("build career context: %w", err))
	}

	system, err := prompt.BuildSystemPrompt(kind, careercontext.Render(composite))
	if err != nil {
		return nil, err
	}
	l.Info("System prompt built", zap.Int("length", len(system)))

	completion, err := uc.llm.Complete(ctx, service.CompletionRequest{
		System:      system,
		CacheSystem: true,
		Messages:    messages,
	})
	if err != nil {
		span.RecordError(err)
		return nil, apperror.ClassifyAIError(err)
	}

	usage := completion.Usage
	span.SetAttributes(
		attribute.Int64("input_tokens", usage.InputTokens),
		attribute.Int64("output_tokens", usage.OutputTokens),
	)
	l.Info("Document generated",
		zap.Int("content_length", len(completion.Content)),
		zap.Int64("input_tokens", usage.InputTokens),
		zap.Int64("output_tokens", usage.OutputTokens),
	)

	if err := uc.ledger.Record(ctx, kind, usage); err != nil {
		l.Warn("Failed to record token usage", zap.Error(err))
	}
	uc.events.Publish(ctx, service.Event{
		Type:       eventType,
		Entity:     string(kind),
		Payload:    usage,
		OccurredAt: time.Now().UTC(),
	})

	return &document.Result{Content: completion.Content, Usage: usage}, nil
}

// validateRequest reports every missing field at once, after any already
// collected in missing.
func validateRequest(kind document.Kind, job document.JobInfo, question string, maxLength int, missing []string) error {
	if _, ok := document.ParseKind(string(kind)); !ok {
		return apperror.NewValidation(fmt.Sprintf("Unsupported document kind '%s'", kind), "kind")
	}

	all := job.MissingFields()
	if kind == document.KindApplicationAnswer && strings.TrimSpace(question) == "" {
		all = append(all, "question")
	}
	all = append(all, missing...)
	if len(all) > 0 {
		return apperror.NewMissingFields("job application", all)
	}

	if maxLength < 0 {
		return apperror.NewValidation("maxLength must not be negative", "maxLength")
	}
	return nil
}

func requestTurn(kind document.Kind, job document.JobInfo, question string, maxLength int, additional string) string {
	var b strings.Builder
	if kind == document.KindApplicationAnswer {
		b.WriteString("Please answer the following application question for this job opportunity.\n\n")
	} else {
		fmt.Fprintf(&b, "Please write a %s for the following job opportunity.\n\n", kind.Label())
	}

	if job.Title != "" {
		fmt.Fprintf(&b, "Job Title: %s\n", job.Title)
	}
	if job.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", job.Company)
	}
	if job.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", job.Location)
	}
	fmt.Fprintf(&b, "Job Type: %s\n\n", job.JobType)
	fmt.Fprintf(&b, "Job Description:\n%s", job.Description)

	if kind == document.KindApplicationAnswer {
		fmt.Fprintf(&b, "\n\nQuestion:\n%s", question)
		if maxLength > 0 {
			fmt.Fprintf(&b, "\n\nKeep the answer under %d words.", maxLength)
		}
	}
	if strings.TrimSpace(additional) != "" {
		fmt.Fprintf(&b, "\n\nAdditional Context:\n%s", additional)
	}
	return b.String()
}

func assistantTurn(kind document.Kind, currentAnswer string) string {
	if kind == document.KindApplicationAnswer {
		return currentAnswer
	}
	return fmt.Sprintf(placeholderFormat, kind.Label())
}

func revisionTurn(kind document.Kind, feedback string, maxLength int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please revise the %s based on the following feedback:\n\n%s\n\n", kind.Label(), feedback)
	if kind == document.KindApplicationAnswer && maxLength > 0 {
		fmt.Fprintf(&b, "Keep the answer under %d words.\n", maxLength)
	}
	fmt.Fprintf(&b, "Return the complete revised %s.", kind.Label())
	return b.String()
}
