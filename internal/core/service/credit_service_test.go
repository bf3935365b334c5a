package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
)

type stubCreditRepo struct {
	byID map[string]*domain.Credit
	seq  int
}

func newStubCreditRepo() *stubCreditRepo {
	return &stubCreditRepo{byID: make(map[string]*domain.Credit)}
}

func cloneCredit(c *domain.Credit) *domain.Credit {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCreditRepo) Create(_ context.Context, credit *domain.Credit) (*domain.Credit, error) {
	r.seq++
	created := cloneCredit(credit)
	created.ID = fmt.Sprintf("credit_%d", r.seq)
	r.byID[created.ID] = cloneCredit(created)
	return created, nil
}

func (r *stubCreditRepo) FindByID(_ context.Context, id string) (*domain.Credit, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCreditNotFound
	}
	return cloneCredit(c), nil
}

func (r *stubCreditRepo) FindAll(_ context.Context) ([]*domain.Credit, error) {
	out := make([]*domain.Credit, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, cloneCredit(c))
	}
	return out, nil
}

func (r *stubCreditRepo) FindBySubmitter(_ context.Context, userID string) ([]*domain.Credit, error) {
	var out []*domain.Credit
	for _, c := range r.byID {
		if c.SubmittedBy == userID {
			out = append(out, cloneCredit(c))
		}
	}
	return out, nil
}

func (r *stubCreditRepo) Decide(_ context.Context, id string, status domain.CreditStatus, remarks string) (*domain.Credit, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCreditNotFound
	}
	if c.Status != domain.CreditPending {
		return nil, domain.ErrCreditAlreadyDecided
	}
	c.Status = status
	c.Remarks = remarks
	return cloneCredit(c), nil
}

// ---------------------------------------------------------------------------

func analystClaims(userID string) domain.Claims {
	return domain.Claims{
		UserID: userID,
		Email:  userID + "@bank.example",
		Role:   domain.RoleAnalyst,
	}
}

type creditFixture struct {
	svc        *CreditService
	creditRepo *stubCreditRepo
	clientRepo *stubClientRepo
	userRepo   *stubUserRepo
	pub        *recordingPublisher
}

func newCreditFixture() *creditFixture {
	f := &creditFixture{
		creditRepo: newStubCreditRepo(),
		clientRepo: newStubClientRepo(),
		userRepo:   newStubUserRepo(),
		pub:        &recordingPublisher{},
	}
	f.svc = NewCreditService(f.creditRepo, f.clientRepo, f.userRepo, f.pub, zerolog.Nop())
	return f
}

func (f *creditFixture) seedClient(t *testing.T, ownerID, companyName string) *domain.Client {
	t.Helper()
	created, err := f.clientRepo.Create(context.Background(), &domain.Client{
		CompanyName: companyName,
		Industry:    "Agriculture",
		OwnerID:     ownerID,
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return created
}

func validCreditInput(clientID string) ports.CreditInput {
	return ports.CreditInput{
		ClientID:      clientID,
		RequestAmount: 500_000,
		TenureMonths:  24,
		Purpose:       "equipment purchase",
	}
}

func TestCreditService_Create_Pending(t *testing.T) {
	f := newCreditFixture()
	client := f.seedClient(t, "rm_1", "Acme Grain Co")

	created, err := f.svc.Create(context.Background(), rmClaims("rm_1"), validCreditInput(client.ID))
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}
	if created.Status != domain.CreditPending {
		t.Fatalf("new requests must be PENDING, got %s", created.Status)
	}
	if created.SubmittedBy != "rm_1" {
		t.Fatalf("expected submitter rm_1, got %s", created.SubmittedBy)
	}
	if created.Remarks != "" {
		t.Fatalf("remarks must start empty, got %q", created.Remarks)
	}

	events := f.pub.all()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev, ok := events[0].(domain.CreditEvent)
	if !ok {
		t.Fatalf("expected CreditEvent, got %T", events[0])
	}
	if ev.EventType != domain.EventCreditCreated || ev.Key() != created.ID {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

// A client owned by another RM must look exactly like a missing client.
func TestCreditService_Create_OtherRMsClient(t *testing.T) {
	f := newCreditFixture()
	client := f.seedClient(t, "rm_1", "Acme Grain Co")

	_, err := f.svc.Create(context.Background(), rmClaims("rm_2"), validCreditInput(client.ID))
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if len(f.pub.all()) != 0 {
		t.Fatalf("no event must be published for a rejected create")
	}
}

func TestCreditService_Create_Validation(t *testing.T) {
	f := newCreditFixture()

	_, err := f.svc.Create(context.Background(), rmClaims("rm_1"), ports.CreditInput{
		ClientID:      "",
		RequestAmount: 0,
		TenureMonths:  -1,
		Purpose:       "  ",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"clientId", "requestAmount", "tenureMonths", "purpose"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("expected field %q in validation error, got %v", field, ve.Fields)
		}
	}
}

func TestCreditService_Decide_Approve(t *testing.T) {
	f := newCreditFixture()
	client := f.seedClient(t, "rm_1", "Acme Grain Co")
	created, err := f.svc.Create(context.Background(), rmClaims("rm_1"), validCreditInput(client.ID))
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}

	decided, err := f.svc.Decide(context.Background(), analystClaims("an_1"), created.ID, ports.DecisionInput{
		Status:  domain.CreditApproved,
		Remarks: "healthy turnover, documents verified",
	})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != domain.CreditApproved {
		t.Fatalf("expected APPROVED, got %s", decided.Status)
	}
	if decided.Remarks != "healthy turnover, documents verified" {
		t.Fatalf("remarks not recorded: %q", decided.Remarks)
	}

	events := f.pub.all()
	if len(events) != 2 {
		t.Fatalf("expected create + decision events, got %d", len(events))
	}
	ev, ok := events[1].(domain.CreditEvent)
	if !ok {
		t.Fatalf("expected CreditEvent, got %T", events[1])
	}
	if ev.EventType != domain.EventCreditDecided {
		t.Fatalf("unexpected event type %s", ev.EventType)
	}
	if ev.PreviousStatus != domain.CreditPending || ev.Status != domain.CreditApproved {
		t.Fatalf("expected PENDING -> APPROVED, got %s -> %s", ev.PreviousStatus, ev.Status)
	}
	if ev.ActionBy != "an_1" {
		t.Fatalf("expected action_by an_1, got %s", ev.ActionBy)
	}
}

func TestCreditService_Decide_AlreadyDecided(t *testing.T) {
	f := newCreditFixture()
	client := f.seedClient(t, "rm_1", "Acme Grain Co")
	created, err := f.svc.Create(context.Background(), rmClaims("rm_1"), validCreditInput(client.ID))
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}

	first := ports.DecisionInput{Status: domain.CreditRejected, Remarks: "insufficient documentation"}
	if _, err := f.svc.Decide(context.Background(), analystClaims("an_1"), created.ID, first); err != nil {
		t.Fatalf("first decision: %v", err)
	}

	second := ports.DecisionInput{Status: domain.CreditApproved, Remarks: "changed my mind"}
	_, err = f.svc.Decide(context.Background(), analystClaims("an_2"), created.ID, second)
	if !errors.Is(err, domain.ErrCreditAlreadyDecided) {
		t.Fatalf("expected ErrCreditAlreadyDecided, got %v", err)
	}

	// The losing decision must not emit an event.
	decisionEvents := 0
	for _, e := range f.pub.all() {
		if ce, ok := e.(domain.CreditEvent); ok && ce.EventType == domain.EventCreditDecided {
			decisionEvents++
		}
	}
	if decisionEvents != 1 {
		t.Fatalf("expected exactly 1 decision event, got %d", decisionEvents)
	}
}

func TestCreditService_Decide_Validation(t *testing.T) {
	f := newCreditFixture()
	client := f.seedClient(t, "rm_1", "Acme Grain Co")
	created, err := f.svc.Create(context.Background(), rmClaims("rm_1"), validCreditInput(client.ID))
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}

	cases := []struct {
		name  string
		input ports.DecisionInput
		field string
	}{
		{"pending is not a decision", ports.DecisionInput{Status: domain.CreditPending, Remarks: "x"}, "status"},
		{"unknown status", ports.DecisionInput{Status: domain.CreditStatus("ESCALATED"), Remarks: "x"}, "status"},
		{"empty remarks", ports.DecisionInput{Status: domain.CreditApproved, Remarks: "   "}, "remarks"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Decide(context.Background(), analystClaims("an_1"), created.ID, tc.input)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := ve.Fields[tc.field]; !ok {
				t.Fatalf("expected field %q, got %v", tc.field, ve.Fields)
			}
		})
	}

	// The request is untouched by rejected decisions.
	current, err := f.svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Status != domain.CreditPending {
		t.Fatalf("request must still be PENDING, got %s", current.Status)
	}
}

func TestCreditService_List_RoleScoping(t *testing.T) {
	f := newCreditFixture()
	c1 := f.seedClient(t, "rm_1", "Acme Grain Co")
	c2 := f.seedClient(t, "rm_2", "Blue Mills Ltd")
	seedUser(t, f.userRepo, "rm_named", "named@bank.example", domain.RoleRelationshipManager, true)

	ctx := context.Background()
	if _, err := f.svc.Create(ctx, rmClaims("rm_1"), validCreditInput(c1.ID)); err != nil {
		t.Fatalf("seed credit: %v", err)
	}
	if _, err := f.svc.Create(ctx, rmClaims("rm_2"), validCreditInput(c2.ID)); err != nil {
		t.Fatalf("seed credit: %v", err)
	}

	// Analysts see everything.
	all, err := f.svc.List(ctx, analystClaims("an_1"))
	if err != nil {
		t.Fatalf("analyst list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("analyst must see 2 requests, got %d", len(all))
	}

	// An RM sees only their own submissions.
	own, err := f.svc.List(ctx, rmClaims("rm_1"))
	if err != nil {
		t.Fatalf("rm list: %v", err)
	}
	if len(own) != 1 || own[0].SubmittedBy != "rm_1" {
		t.Fatalf("rm must see only their own requests, got %+v", own)
	}
	if own[0].ClientName != "Acme Grain Co" {
		t.Fatalf("expected enriched client name, got %q", own[0].ClientName)
	}
}

// A lookup miss during enrichment degrades that row, never the whole read.
func TestCreditService_List_EnrichmentDegradesGracefully(t *testing.T) {
	f := newCreditFixture()
	client := f.seedClient(t, "rm_1", "Acme Grain Co")

	ctx := context.Background()
	created, err := f.svc.Create(ctx, rmClaims("rm_1"), validCreditInput(client.ID))
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}
	// The submitter rm_1 has no user record, so RMName cannot resolve.

	details, err := f.svc.List(ctx, analystClaims("an_1"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(details) != 1 || details[0].ID != created.ID {
		t.Fatalf("unexpected listing: %+v", details)
	}
	if details[0].ClientName != "Acme Grain Co" {
		t.Fatalf("client name should resolve, got %q", details[0].ClientName)
	}
	if details[0].RMName != "" {
		t.Fatalf("unresolvable submitter must yield empty RMName, got %q", details[0].RMName)
	}
}
