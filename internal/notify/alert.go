package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wolfman30/rollerup-site/internal/leads"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

const (
	alertTimeout      = 10 * time.Second
	maxAlertsInFlight = 8
)

// FallbackAlerter emails the sales inbox when a lead could not be delivered
// and was only saved locally. Sends run in the background so the visitor's
// response never waits on the mail provider.
type FallbackAlerter struct {
	email  EmailSender
	to     string
	logger *logging.Logger
	slots  chan struct{}
	wg     sync.WaitGroup
}

// NewFallbackAlerter returns nil when there is no sender or recipient, and a
// nil alerter ignores every call.
func NewFallbackAlerter(email EmailSender, to string, logger *logging.Logger) *FallbackAlerter {
	if email == nil || strings.TrimSpace(to) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackAlerter{
		email:  email,
		to:     to,
		logger: logger.Component("fallback_alert"),
		slots:  make(chan struct{}, maxAlertsInFlight),
	}
}

// LeadFallback queues the alert and returns immediately. Leads rejected for
// missing required fields are not alerted. When maxAlertsInFlight sends are
// already pending the alert is dropped and logged. It matches
// leads.FallbackFunc.
func (a *FallbackAlerter) LeadFallback(ctx context.Context, lead leads.Lead, cause error) {
	if a == nil {
		return
	}
	var verr *leads.ValidationError
	if errors.As(cause, &verr) {
		return
	}

	select {
	case a.slots <- struct{}{}:
	default:
		a.logger.Warn("fallback alert dropped", "company", lead.Company, "in_flight", maxAlertsInFlight)
		return
	}

	msg := a.message(lead, cause)
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() { <-a.slots }()
		defer cancel()
		if err := a.email.Send(sendCtx, msg); err != nil {
			a.logger.Error("fallback alert failed", "error", err, "company", lead.Company)
		}
	}()
}

// Wait blocks until every queued alert has been sent or has timed out.
func (a *FallbackAlerter) Wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}

func (a *FallbackAlerter) message(lead leads.Lead, cause error) EmailMessage {
	who := strings.TrimSpace(lead.FirstName + " " + lead.LastName)
	if who == "" {
		who = "Unknown visitor"
	}
	company := lead.Company
	if company == "" {
		company = "unknown company"
	}
	reason := "unknown"
	if cause != nil {
		reason = cause.Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A demo request was saved locally instead of being delivered.\n\n")
	fmt.Fprintf(&b, "Reason: %s\n\n", reason)
	for _, f := range leads.FieldOrder {
		value := lead.Value(f)
		if tags, ok := value.([]string); ok {
			value = strings.Join(tags, ", ")
		}
		fmt.Fprintf(&b, "%s: %v\n", f, value)
	}
	fmt.Fprintf(&b, "\nExport all saved leads from /admin/leads/export.csv?admin=1\n")

	return EmailMessage{
		To:      a.to,
		Subject: fmt.Sprintf("Lead saved locally - %s (%s)", who, company),
		Body:    b.String(),
	}
}

var _ leads.FallbackFunc = (*FallbackAlerter)(nil).LeadFallback
