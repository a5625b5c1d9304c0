package payment

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"
)

func testVNPay(t *testing.T) *VNPay {
	t.Helper()
	v, err := NewVNPay(VNPayConfig{
		TmnCode:    "KVT00001",
		HashSecret: "secret",
		ReturnURL:  "https://kvtogether.test/donate/return",
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return v.WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	})
}

func TestVNPayBegin(t *testing.T) {
	outcome, err := testVNPay(t).Begin(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if outcome.Instructions != nil {
		t.Fatal("vnpay must not produce instructions")
	}

	u, err := url.Parse(outcome.RedirectURL)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	q := u.Query()
	if q.Get("vnp_Amount") != "10000000" {
		t.Fatalf("vnp_Amount: got %q, want amount*100", q.Get("vnp_Amount"))
	}
	if q.Get("vnp_TxnRef") != "KVT1A2B3C4D" {
		t.Fatalf("vnp_TxnRef: got %q", q.Get("vnp_TxnRef"))
	}
	if q.Get("vnp_CreateDate") != "20250601123045" {
		t.Fatalf("vnp_CreateDate: got %q", q.Get("vnp_CreateDate"))
	}
	if q.Get("vnp_SecureHash") == "" {
		t.Fatal("redirect must be signed")
	}
}

func TestVNPayIPNRoundTrip(t *testing.T) {
	v := testVNPay(t)

	// Begin produces a signed query; the same signature scheme verifies it.
	outcome, err := v.Begin(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	u, _ := url.Parse(outcome.RedirectURL)
	if !v.VerifyIPN(u.Query()) {
		t.Fatal("signed query must verify")
	}

	tampered := u.Query()
	tampered.Set("vnp_Amount", "999")
	if v.VerifyIPN(tampered) {
		t.Fatal("tampered query must not verify")
	}

	unsigned := url.Values{}
	unsigned.Set("vnp_TxnRef", "KVT1A2B3C4D")
	if v.VerifyIPN(unsigned) {
		t.Fatal("query without a hash must not verify")
	}
}

func TestVNPayRequiresCredentials(t *testing.T) {
	if _, err := NewVNPay(VNPayConfig{}); !errors.Is(err, ErrMissingVNPayCredentials) {
		t.Fatalf("got %v, want ErrMissingVNPayCredentials", err)
	}
}
