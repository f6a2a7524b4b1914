package service

import (
	"context"
	"testing"
)

func TestSendToManyIsolatesFailures(t *testing.T) {
	sender := &fakeMailSender{failFor: map[string]bool{"bob@example.com": true}}
	svc := NewMailService(sender)

	recipients := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	sent := svc.SendToMany(context.Background(), recipients, "subject", "body")

	if sent != 2 {
		t.Fatalf("sent = %d, want 2", sent)
	}
	got := sender.recipients()
	if len(got) != 2 || got[0] != "alice@example.com" || got[1] != "carol@example.com" {
		t.Fatalf("recipients = %v, want alice and carol", got)
	}
}

func TestSendToOne(t *testing.T) {
	sender := &fakeMailSender{}
	svc := NewMailService(sender)

	if err := svc.SendToOne(context.Background(), "alice@example.com", "subject", "body"); err != nil {
		t.Fatalf("SendToOne() error = %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].to != "alice@example.com" {
		t.Fatalf("sent = %+v, want one mail to alice", sender.sent)
	}

	sender.failFor = map[string]bool{"bob@example.com": true}
	if err := svc.SendToOne(context.Background(), "bob@example.com", "subject", "body"); err == nil {
		t.Fatal("SendToOne() error = nil, want smtp error")
	}
}
