package payment

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"kvtogether/internal/domain"
)

func testRequest() Request {
	return Request{
		Campaign: &domain.Campaign{ID: "c-1", Slug: "giup-em-den-truong"},
		Donation: &domain.Donation{
			ID:        "d-1",
			Amount:    100_000,
			Reference: "KVT1A2B3C4D",
		},
		ClientIP: "203.0.113.9",
	}
}

func TestBankTransferBegin(t *testing.T) {
	bank, err := NewBankTransfer(BankConfig{
		Code:          "vietinbank",
		Name:          "VietinBank",
		AccountNumber: "113366668888",
		AccountName:   "KV TOGETHER",
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	outcome, err := bank.Begin(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if outcome.RedirectURL != "" {
		t.Fatal("bank transfer must not produce a redirect")
	}

	inst := outcome.Instructions
	if inst == nil {
		t.Fatal("expected instructions")
	}
	if inst.Amount != 100_000 {
		t.Fatalf("amount: got %d, want the donation amount", inst.Amount)
	}
	if inst.TransactionCode != "KVT1A2B3C4D" {
		t.Fatalf("transaction code: got %q", inst.TransactionCode)
	}
	if !strings.Contains(inst.TransferNote, "KVT1A2B3C4D") {
		t.Fatalf("transfer note must carry the reference, got %q", inst.TransferNote)
	}

	qr, err := url.Parse(inst.QRCodeURL)
	if err != nil {
		t.Fatalf("parse qr url: %v", err)
	}
	if !strings.Contains(qr.Path, "vietinbank-113366668888") {
		t.Fatalf("qr path must encode bank and account, got %q", qr.Path)
	}
	q := qr.Query()
	if q.Get("amount") != "100000" {
		t.Fatalf("qr amount: got %q", q.Get("amount"))
	}
	if q.Get("addInfo") != inst.TransferNote {
		t.Fatalf("qr note: got %q, want %q", q.Get("addInfo"), inst.TransferNote)
	}
}

func TestBankTransferRequiresAccount(t *testing.T) {
	if _, err := NewBankTransfer(BankConfig{Code: "acb"}); !errors.Is(err, ErrMissingBankAccount) {
		t.Fatalf("got %v, want ErrMissingBankAccount", err)
	}
}

func TestNewReferenceCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ref := NewReferenceCode()
		if !strings.HasPrefix(ref, "KVT") || len(ref) != 12 {
			t.Fatalf("unexpected reference %q", ref)
		}
		if ref != strings.ToUpper(ref) {
			t.Fatalf("reference must be upper-case, got %q", ref)
		}
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference %q", ref)
		}
		seen[ref] = struct{}{}
	}
}

func TestTransferNote(t *testing.T) {
	note := TransferNote("KVT1A2B3C4D", "giup-em-den-truong")
	if note != "KVT1A2B3C4D ung ho giup-em-den-truong" {
		t.Fatalf("unexpected note %q", note)
	}
}
