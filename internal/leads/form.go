package leads

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/rollerup-site/internal/observability/metrics"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

// State is the lifecycle position of a Form.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSucceeded
	StateFailedButSaved
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailedButSaved:
		return "failed_but_saved"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailedButSaved
}

// Transport delivers a lead to the remote intake endpoint.
type Transport interface {
	Send(ctx context.Context, lead Lead) error
}

// Store receives leads that could not be delivered.
type Store interface {
	Append(ctx context.Context, lead Lead) error
}

// FallbackFunc observes a fallback save together with its cause.
type FallbackFunc func(ctx context.Context, lead Lead, cause error)

// FormConfig wires a Form's collaborators. Transport and Store are required.
type FormConfig struct {
	Transport Transport
	Store     Store
	Logger    *logging.Logger
	Metrics   *metrics.LeadMetrics
	Tracer    trace.Tracer
	Now       func() time.Time

	// OnSaved fires once per accepted Submit with the submitted lead,
	// whether it was delivered or fallback-saved.
	OnSaved func(Lead)

	// OnFallback fires after a fallback save, before OnSaved.
	OnFallback FallbackFunc
}

// Result is the terminal outcome of Submit.
type Result struct {
	State   State
	Lead    Lead
	Warning string
	Cause   error
}

// Form owns one draft lead through Editing → Submitting → terminal.
// Every failure ends in StateFailedButSaved: capture is never blocked.
type Form struct {
	mu      sync.Mutex
	state   State
	draft   Lead
	warning string

	transport  Transport
	store      Store
	logger     *logging.Logger
	metrics    *metrics.LeadMetrics
	tracer     trace.Tracer
	onSaved    func(Lead)
	onFallback FallbackFunc
}

// NewForm creates a form in StateEditing with a default draft stamped now.
func NewForm(cfg FormConfig) *Form {
	if cfg.Transport == nil {
		panic("leads: transport required")
	}
	if cfg.Store == nil {
		panic("leads: store required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer("rollerup.internal.leads.form")
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	return &Form{
		state:      StateEditing,
		draft:      NewDraft(now()),
		transport:  cfg.Transport,
		store:      cfg.Store,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		tracer:     cfg.Tracer,
		onSaved:    cfg.OnSaved,
		onFallback: cfg.OnFallback,
	}
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Lead {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Clone()
}

// Warning returns the warning shown with a fallback acknowledgment.
func (f *Form) Warning() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.warning
}

// Update replaces one text field of the draft. No required-field checks run here.
func (f *Form) Update(field Field, value string) (Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return f.draft.Clone(), err
	}
	next, err := f.draft.with(field, value)
	if err != nil {
		return f.draft.Clone(), err
	}
	f.draft = next
	return next.Clone(), nil
}

// ToggleInterest adds tag when absent and removes it when present.
func (f *Form) ToggleInterest(tag Interest) (Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return f.draft.Clone(), err
	}
	if !tag.Valid() {
		return f.draft.Clone(), ErrUnknownInterest
	}
	f.draft = f.draft.toggled(tag)
	return f.draft.Clone(), nil
}

func (f *Form) editableLocked() error {
	switch f.state {
	case StateEditing:
		return nil
	case StateSubmitting:
		return ErrAlreadySubmitted
	default:
		return ErrNotEditing
	}
}

// Submit validates the draft, sends it, and fallback-saves it on any failure.
// The state moves to StateSubmitting before any I/O, so a concurrent second
// call returns ErrAlreadySubmitted without side effects. There is no timeout:
// a hung transport keeps the form in StateSubmitting until ctx ends.
func (f *Form) Submit(ctx context.Context) (Result, error) {
	f.mu.Lock()
	if err := f.editableLocked(); err != nil {
		f.mu.Unlock()
		return Result{}, err
	}
	f.state = StateSubmitting
	lead := f.draft.Clone()
	f.mu.Unlock()

	ctx, span := f.tracer.Start(ctx, "leads.form.submit")
	defer span.End()

	cause := lead.Validate()
	if cause == nil {
		start := time.Now()
		cause = f.transport.Send(ctx, lead)
		f.metrics.ObserveTransportLatency(cause == nil, time.Since(start).Seconds())
	}

	if cause == nil {
		f.finish(StateSucceeded, "")
		span.SetAttributes(attribute.String("lead.state", StateSucceeded.String()))
		f.metrics.ObserveSubmission(StateSucceeded.String())
		f.logger.Info("lead delivered", "company", lead.Company, "sites", string(lead.Sites))
		f.notifySaved(lead)
		return Result{State: StateSucceeded, Lead: lead}, nil
	}

	span.RecordError(cause)
	reason := fallbackReason(cause)
	f.metrics.ObserveFallback(reason)
	// A cancelled request context must not also cancel the fallback write.
	if err := f.store.Append(context.WithoutCancel(ctx), lead); err != nil {
		// Still acknowledged; the lead only survives in this log line.
		f.metrics.ObserveStoreError("append")
		f.logger.Error("fallback save failed", "error", err, "cause", cause.Error(),
			"email", lead.Email, "company", lead.Company)
	} else {
		f.logger.Warn("lead saved locally", "reason", reason, "cause", cause.Error(), "company", lead.Company)
	}

	warning := warningFor(cause)
	f.finish(StateFailedButSaved, warning)
	span.SetAttributes(
		attribute.String("lead.state", StateFailedButSaved.String()),
		attribute.String("lead.fallback_reason", reason),
	)
	f.metrics.ObserveSubmission(StateFailedButSaved.String())
	if f.onFallback != nil {
		f.onFallback(ctx, lead, cause)
	}
	f.notifySaved(lead)
	return Result{State: StateFailedButSaved, Lead: lead, Warning: warning, Cause: cause}, nil
}

func (f *Form) finish(state State, warning string) {
	f.mu.Lock()
	f.state = state
	f.warning = warning
	f.mu.Unlock()
}

func (f *Form) notifySaved(lead Lead) {
	if f.onSaved != nil {
		f.onSaved(lead.Clone())
	}
}
