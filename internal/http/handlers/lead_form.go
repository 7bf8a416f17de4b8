package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wolfman30/rollerup-site/internal/leads"
	"github.com/wolfman30/rollerup-site/internal/observability/metrics"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

const maxLeadBodyBytes = 64 << 10

// LeadFormConfig wires the form handler.
type LeadFormConfig struct {
	Transport  leads.Transport
	Store      leads.Store
	Logger     *logging.Logger
	Metrics    *metrics.LeadMetrics
	OnFallback leads.FallbackFunc
	Now        func() time.Time
}

// LeadFormHandler runs one lead form per POST: it fills a fresh draft from the
// body, submits it, and reports the terminal state.
type LeadFormHandler struct {
	transport  leads.Transport
	store      leads.Store
	logger     *logging.Logger
	metrics    *metrics.LeadMetrics
	onFallback leads.FallbackFunc
	now        func() time.Time
}

// NewLeadFormHandler creates a lead form handler. Transport and Store are required.
func NewLeadFormHandler(cfg LeadFormConfig) *LeadFormHandler {
	if cfg.Transport == nil || cfg.Store == nil {
		panic("handlers: lead form needs transport and store")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &LeadFormHandler{
		transport:  cfg.Transport,
		store:      cfg.Store,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		onFallback: cfg.OnFallback,
		now:        cfg.Now,
	}
}

// submitLeadRequest is a partial draft. Absent fields keep their defaults.
// source and ts are accepted for compatibility and ignored: the server stamps both.
type submitLeadRequest struct {
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Email     *string  `json:"email"`
	Phone     *string  `json:"phone"`
	Company   *string  `json:"company"`
	Role      *string  `json:"role"`
	Sites     *string  `json:"sites"`
	Country   *string  `json:"country"`
	Interests []string `json:"interests"`
	Message   *string  `json:"message"`
	Source    string   `json:"source"`
	TS        string   `json:"ts"`
}

func (req submitLeadRequest) textFields() []struct {
	field leads.Field
	value *string
} {
	return []struct {
		field leads.Field
		value *string
	}{
		{leads.FieldFirstName, req.FirstName},
		{leads.FieldLastName, req.LastName},
		{leads.FieldEmail, req.Email},
		{leads.FieldPhone, req.Phone},
		{leads.FieldCompany, req.Company},
		{leads.FieldRole, req.Role},
		{leads.FieldSites, req.Sites},
		{leads.FieldCountry, req.Country},
		{leads.FieldMessage, req.Message},
	}
}

// SubmitLeadResponse is returned for every accepted submission.
type SubmitLeadResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Warning string     `json:"warning,omitempty"`
	Lead    leads.Lead `json:"lead"`
}

// SubmitLead handles POST /leads. Any decodable body yields 200: delivery and
// validation failures are saved locally and reported as a warning.
func (h *LeadFormHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLeadBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req submitLeadRequest
	if err := dec.Decode(&req); err != nil {
		h.logger.Warn("invalid lead body", "error", err)
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	form := leads.NewForm(leads.FormConfig{
		Transport:  h.transport,
		Store:      h.store,
		Logger:     h.logger,
		Metrics:    h.metrics,
		Now:        h.now,
		OnFallback: h.onFallback,
	})
	if err := fillForm(form, req); err != nil {
		if isClientError(err) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("lead form rejected input", "error", err)
		jsonError(w, "submission failed", http.StatusInternalServerError)
		return
	}

	result, err := form.Submit(r.Context())
	if err != nil {
		h.logger.Error("lead submit rejected", "error", err)
		jsonError(w, "submission failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, SubmitLeadResponse{
		Status:  result.State.String(),
		Message: leads.AcknowledgeMessage,
		Warning: result.Warning,
		Lead:    result.Lead,
	})
}

// fillForm applies the request onto the form's default draft.
func fillForm(form *leads.Form, req submitLeadRequest) error {
	for _, tf := range req.textFields() {
		if tf.value == nil {
			continue
		}
		if tf.field == leads.FieldSites && *tf.value == "" {
			continue
		}
		if _, err := form.Update(tf.field, *tf.value); err != nil {
			return err
		}
	}
	if req.Interests == nil {
		return nil
	}

	wanted := make(map[leads.Interest]bool, len(req.Interests))
	for _, raw := range req.Interests {
		tag := leads.Interest(raw)
		if !tag.Valid() {
			return leads.ErrUnknownInterest
		}
		wanted[tag] = true
	}
	current := form.Draft()
	for _, tag := range current.Interests {
		if !wanted[tag] {
			if _, err := form.ToggleInterest(tag); err != nil {
				return err
			}
		}
	}
	for _, raw := range req.Interests {
		tag := leads.Interest(raw)
		if form.Draft().HasInterest(tag) {
			continue
		}
		if _, err := form.ToggleInterest(tag); err != nil {
			return err
		}
	}
	return nil
}

// Draft handles GET /api/leads/draft with a fresh default draft.
func (h *LeadFormHandler) Draft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, leads.NewDraft(h.now()))
}

// IntakePlaceholder handles POST /api/leads. The real intake service is not
// part of this site, so the default webhook target always fails and every
// submission takes the fallback path.
func IntakePlaceholder(w http.ResponseWriter, r *http.Request) {
	jsonError(w, "lead intake is not implemented", http.StatusNotImplemented)
}

// isClientError reports whether err came from bad form input.
func isClientError(err error) bool {
	return errors.Is(err, leads.ErrUnknownField) ||
		errors.Is(err, leads.ErrReadOnlyField) ||
		errors.Is(err, leads.ErrUnknownInterest) ||
		errors.Is(err, leads.ErrInvalidSites)
}
