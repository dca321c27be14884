package email

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/mtcnamibia/careers/internal/database"
	"github.com/mtcnamibia/careers/internal/model"
	"github.com/mtcnamibia/careers/internal/store"
)

// fakeSES records sent inputs and optionally fails.
type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, input *ses.SendEmailInput, opts ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, input)
	return &ses.SendEmailOutput{}, nil
}

func setupEmailTest(t *testing.T) (*Service, *fakeSES, *store.EmailLogStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// :memory: databases are per-connection under the sql pool.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	logs := store.NewEmailLogStore(db)
	svc := NewService(Config{
		FromEmail: "careers@mtc.com.na",
		BaseURL:   "https://careers.mtc.test",
	}, logs, slog.New(slog.DiscardHandler))
	fake := &fakeSES{}
	svc.client = fake
	return svc, fake, logs
}

func lastLogFor(t *testing.T, logs *store.EmailLogStore, applicationID int64) model.EmailLog {
	t.Helper()
	entries, err := logs.ListByApplication(applicationID)
	if err != nil {
		t.Fatalf("list email logs: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one email log entry")
	}
	return entries[0]
}

func TestSendMagicLinkHR(t *testing.T) {
	svc, fake, _ := setupEmailTest(t)

	if err := svc.SendMagicLink(context.Background(), "hr@mtc.com.na", "tok-123", true); err != nil {
		t.Fatalf("SendMagicLink: %v", err)
	}
	if len(fake.inputs) != 1 {
		t.Fatalf("sent %d emails, want 1", len(fake.inputs))
	}

	in := fake.inputs[0]
	if got := in.Destination.ToAddresses[0]; got != "hr@mtc.com.na" {
		t.Errorf("to = %q, want %q", got, "hr@mtc.com.na")
	}
	subject := *in.Message.Subject.Data
	if subject != "Login to MTC Careers HR Admin Portal" {
		t.Errorf("subject = %q, want HR portal subject", subject)
	}
	if !strings.Contains(*in.Message.Body.Text.Data, "token=tok-123") {
		t.Error("expected text body to contain the magic link token")
	}
}

func TestSendMagicLinkApplicant(t *testing.T) {
	svc, fake, _ := setupEmailTest(t)

	if err := svc.SendMagicLink(context.Background(), "jane@example.com", "tok-456", false); err != nil {
		t.Fatalf("SendMagicLink: %v", err)
	}
	subject := *fake.inputs[0].Message.Subject.Data
	if subject != "Login to MTC Careers Applicant Portal" {
		t.Errorf("subject = %q, want applicant portal subject", subject)
	}
}

func TestSendApplicationReceivedLogsSent(t *testing.T) {
	svc, fake, logs := setupEmailTest(t)

	err := svc.SendApplicationReceived(context.Background(), 1, "jane@example.com", "Jane", "Network Engineer")
	if err != nil {
		t.Fatalf("SendApplicationReceived: %v", err)
	}
	if len(fake.inputs) != 1 {
		t.Fatalf("sent %d emails, want 1", len(fake.inputs))
	}

	entry := lastLogFor(t, logs, 1)
	if entry.EmailType != model.EmailApplicationReceived {
		t.Errorf("email type = %q, want %q", entry.EmailType, model.EmailApplicationReceived)
	}
	if entry.Status != model.EmailStatusSent {
		t.Errorf("status = %q, want %q", entry.Status, model.EmailStatusSent)
	}
}

func TestSendFailureLogsFailed(t *testing.T) {
	svc, fake, logs := setupEmailTest(t)
	fake.err = errors.New("ses unavailable")

	err := svc.SendStatusUpdate(context.Background(), 2, "jane@example.com", "Jane", "Network Engineer", model.ApplicationShortlisted)
	if err == nil {
		t.Fatal("expected error when SES send fails")
	}

	entry := lastLogFor(t, logs, 2)
	if entry.Status != model.EmailStatusFailed {
		t.Errorf("status = %q, want %q", entry.Status, model.EmailStatusFailed)
	}
	if entry.EmailType != model.EmailShortlisted {
		t.Errorf("email type = %q, want %q", entry.EmailType, model.EmailShortlisted)
	}
}

func TestUnconfiguredSimulates(t *testing.T) {
	svc, _, logs := setupEmailTest(t)
	svc.client = nil

	err := svc.SendStatusUpdate(context.Background(), 3, "jane@example.com", "Jane", "Network Engineer", model.ApplicationHired)
	if err != nil {
		t.Fatalf("SendStatusUpdate (simulated): %v", err)
	}

	entry := lastLogFor(t, logs, 3)
	if entry.Status != model.EmailStatusSimulated {
		t.Errorf("status = %q, want %q", entry.Status, model.EmailStatusSimulated)
	}
}

func TestStatusUpdateSkipsPending(t *testing.T) {
	svc, fake, _ := setupEmailTest(t)

	err := svc.SendStatusUpdate(context.Background(), 4, "jane@example.com", "Jane", "Network Engineer", model.ApplicationPending)
	if err != nil {
		t.Fatalf("SendStatusUpdate: %v", err)
	}
	if len(fake.inputs) != 0 {
		t.Errorf("sent %d emails for PENDING, want 0", len(fake.inputs))
	}
}

func TestStatusUpdateSubjects(t *testing.T) {
	cases := []struct {
		status  string
		subject string
	}{
		{model.ApplicationReviewed, "Application Under Review - Network Engineer at MTC"},
		{model.ApplicationShortlisted, "Congratulations! You've Been Shortlisted - Network Engineer at MTC"},
		{model.ApplicationRejected, "Application Update - Network Engineer at MTC"},
		{model.ApplicationHired, "Welcome to MTC! - Network Engineer at MTC"},
	}

	for _, tc := range cases {
		svc, fake, _ := setupEmailTest(t)
		err := svc.SendStatusUpdate(context.Background(), 1, "jane@example.com", "Jane", "Network Engineer", tc.status)
		if err != nil {
			t.Fatalf("SendStatusUpdate(%s): %v", tc.status, err)
		}
		if got := *fake.inputs[0].Message.Subject.Data; got != tc.subject {
			t.Errorf("subject for %s = %q, want %q", tc.status, got, tc.subject)
		}
	}
}
