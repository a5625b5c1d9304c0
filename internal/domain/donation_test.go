package domain

import (
	"errors"
	"strings"
	"testing"
)

func activeCampaign() *Campaign {
	return &Campaign{
		ID:            "c-1",
		Slug:          "giup-em-den-truong",
		Status:        CampaignActive,
		TargetAmount:  500_000,
		CurrentAmount: 100_000,
	}
}

func TestValidateDonation(t *testing.T) {
	tests := []struct {
		name     string
		campaign func() *Campaign
		amount   int64
		method   PaymentMethod
		message  string
		wantErr  error
	}{
		{
			name:     "accepted",
			campaign: activeCampaign,
			amount:   100_000,
			method:   MethodBankTransfer,
		},
		{
			name:     "overshoot accepted",
			campaign: activeCampaign,
			amount:   450_000,
			method:   MethodVNPay,
		},
		{
			name:     "below minimum",
			campaign: activeCampaign,
			amount:   5_000,
			method:   MethodBankTransfer,
			wantErr:  ErrBelowMinimum,
		},
		{
			name:     "message too long",
			campaign: activeCampaign,
			amount:   50_000,
			method:   MethodBankTransfer,
			message:  strings.Repeat("a", MaxMessageLength+1),
			wantErr:  ErrMessageTooLong,
		},
		{
			name:     "unknown method",
			campaign: activeCampaign,
			amount:   50_000,
			method:   "paypal",
			wantErr:  ErrUnsupportedMethod,
		},
		{
			name: "completed status",
			campaign: func() *Campaign {
				c := activeCampaign()
				c.Status = CampaignCompleted
				return c
			},
			amount:  50_000,
			method:  MethodBankTransfer,
			wantErr: ErrCampaignCompleted,
		},
		{
			name: "target reached",
			campaign: func() *Campaign {
				c := activeCampaign()
				c.CurrentAmount = c.TargetAmount
				return c
			},
			amount:  50_000,
			method:  MethodBankTransfer,
			wantErr: ErrCampaignCompleted,
		},
		{
			name: "draft campaign",
			campaign: func() *Campaign {
				c := activeCampaign()
				c.Status = CampaignDraft
				return c
			},
			amount:  50_000,
			method:  MethodBankTransfer,
			wantErr: ErrCampaignClosed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDonation(tt.campaign(), tt.amount, tt.method, tt.message)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCampaignProgressPercent(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		target  int64
		want    float64
	}{
		{name: "partial", current: 100_000, target: 500_000, want: 20},
		{name: "overshoot capped", current: 600_000, target: 500_000, want: 100},
		{name: "zero target", current: 100, target: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Campaign{CurrentAmount: tt.current, TargetAmount: tt.target}
			if got := c.ProgressPercent(); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, valid := range []string{"bank_transfer", "momo", "vnpay"} {
		if _, err := ParsePaymentMethod(valid); err != nil {
			t.Fatalf("%s: unexpected error %v", valid, err)
		}
	}
	if _, err := ParsePaymentMethod("stripe"); !errors.Is(err, ErrUnsupportedMethod) {
		t.Fatalf("got %v, want ErrUnsupportedMethod", err)
	}
}
