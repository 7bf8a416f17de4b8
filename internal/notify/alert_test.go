package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/rollerup-site/internal/leads"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []EmailMessage
	ctxs []context.Context
	errs []error
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	r.ctxs = append(r.ctxs, ctx)
	r.errs = append(r.errs, ctx.Err())
	return r.err
}

func alertLead() leads.Lead {
	lead := leads.NewDraft(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	lead.FirstName = "Jane"
	lead.LastName = "Doe"
	lead.Email = "jane@x.com"
	lead.Company = "Acme"
	return lead
}

func TestNewFallbackAlerterRequiresSenderAndRecipient(t *testing.T) {
	assert.Nil(t, NewFallbackAlerter(nil, "sales@rollerup.com", nil))
	assert.Nil(t, NewFallbackAlerter(&recordingSender{}, " ", nil))

	var alerter *FallbackAlerter
	assert.NotPanics(t, func() {
		alerter.LeadFallback(context.Background(), alertLead(), errors.New("x"))
		alerter.Wait()
	})
}

func TestFallbackAlertMessage(t *testing.T) {
	sender := &recordingSender{}
	alerter := NewFallbackAlerter(sender, "sales@rollerup.com", nil)

	cause := &leads.TransportError{StatusCode: 503}
	alerter.LeadFallback(context.Background(), alertLead(), cause)
	alerter.Wait()

	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, "sales@rollerup.com", msg.To)
	assert.Equal(t, "Lead saved locally - Jane Doe (Acme)", msg.Subject)
	assert.Contains(t, msg.Body, "status 503")
	assert.Contains(t, msg.Body, "email: jane@x.com")
	assert.Contains(t, msg.Body, "interests: LPR, Memberships")

	_, hasDeadline := sender.ctxs[0].Deadline()
	assert.True(t, hasDeadline)
}

func TestFallbackAlertSurvivesCancelledRequest(t *testing.T) {
	sender := &recordingSender{}
	alerter := NewFallbackAlerter(sender, "sales@rollerup.com", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	alerter.LeadFallback(ctx, leads.NewDraft(time.Now()), nil)
	alerter.Wait()

	require.Len(t, sender.msgs, 1)
	assert.NoError(t, sender.errs[0], "alert context is detached from the request")
	assert.Equal(t, "Lead saved locally - Unknown visitor (unknown company)", sender.msgs[0].Subject)
}

func TestFallbackAlertErrorIsSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	alerter := NewFallbackAlerter(sender, "sales@rollerup.com", nil)

	assert.NotPanics(t, func() {
		alerter.LeadFallback(context.Background(), alertLead(), errors.New("boom"))
		alerter.Wait()
	})
	assert.Len(t, sender.msgs, 1)
}

func TestFallbackAlertSkipsValidationFailures(t *testing.T) {
	sender := &recordingSender{}
	alerter := NewFallbackAlerter(sender, "sales@rollerup.com", nil)

	lead := leads.NewDraft(time.Now())
	alerter.LeadFallback(context.Background(), lead, lead.Validate())
	alerter.Wait()

	assert.Empty(t, sender.msgs)
}

// blockingSender holds every send until release is closed.
type blockingSender struct {
	started chan struct{}
	release chan struct{}
	mu      sync.Mutex
	sent    int
}

func newBlockingSender() *blockingSender {
	return &blockingSender{started: make(chan struct{}, 64), release: make(chan struct{})}
}

func (b *blockingSender) Send(ctx context.Context, _ EmailMessage) error {
	b.started <- struct{}{}
	select {
	case <-b.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	b.mu.Lock()
	b.sent++
	b.mu.Unlock()
	return nil
}

func TestFallbackAlertDoesNotBlockCaller(t *testing.T) {
	sender := newBlockingSender()
	alerter := NewFallbackAlerter(sender, "sales@rollerup.com", nil)

	done := make(chan struct{})
	go func() {
		alerter.LeadFallback(context.Background(), alertLead(), &leads.TransportError{StatusCode: 500})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("LeadFallback waited for the email send")
	}

	<-sender.started
	close(sender.release)
	alerter.Wait()
	assert.Equal(t, 1, sender.sent)
}

func TestFallbackAlertDropsWhenSaturated(t *testing.T) {
	sender := newBlockingSender()
	alerter := NewFallbackAlerter(sender, "sales@rollerup.com", nil)

	for i := 0; i < maxAlertsInFlight+3; i++ {
		alerter.LeadFallback(context.Background(), alertLead(), errors.New("down"))
	}
	close(sender.release)
	alerter.Wait()

	assert.Equal(t, maxAlertsInFlight, sender.sent)
}
