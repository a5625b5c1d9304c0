package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"kvtogether/internal/domain"
	"kvtogether/internal/payment"
)

const (
	testVNPaySecret = "vnpay-secret"
	testMomoAccess  = "access-key"
	testMomoSecret  = "momo-secret"
)

func signVNPayValues(values url.Values) url.Values {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(values.Get(k)))
	}
	mac := hmac.New(sha512.New, []byte(testVNPaySecret))
	mac.Write([]byte(strings.Join(parts, "&")))
	values.Set("vnp_SecureHash", hex.EncodeToString(mac.Sum(nil)))
	return values
}

func ipnApp(t *testing.T) (*App, *fakeDonationRepo) {
	t.Helper()
	donations := newFakeDonationRepo()
	pending := &domain.Donation{
		ID:        "d-1",
		Reference: "KVT1A2B3C4D5",
		Amount:    100_000,
		Status:    domain.DonationPending,
	}
	donations.donations[pending.ID] = pending

	app := testApp(&fakeCampaignRepo{campaigns: []*domain.Campaign{activeCampaign()}}, donations, bankRegistry())
	vnpay, err := payment.NewVNPay(payment.VNPayConfig{TmnCode: "KVTEST", HashSecret: testVNPaySecret})
	if err != nil {
		t.Fatalf("vnpay: %v", err)
	}
	momo, err := payment.NewMomo(payment.MomoConfig{
		PartnerCode: "MOMOKVT",
		AccessKey:   testMomoAccess,
		SecretKey:   testMomoSecret,
	})
	if err != nil {
		t.Fatalf("momo: %v", err)
	}
	app.VNPay = vnpay
	app.Momo = momo
	return app, donations
}

func vnpayNotify(t *testing.T, app *App, values url.Values) vnpayReply {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/payments/vnpay/ipn?"+values.Encode(), nil)
	rr := httptest.NewRecorder()
	app.VNPayIPN(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("ipn status: got %d (%s)", rr.Code, rr.Body.String())
	}
	var reply vnpayReply
	if err := json.NewDecoder(rr.Body).Decode(&reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	return reply
}

func successfulVNPayValues(reference string, amount int64) url.Values {
	values := url.Values{}
	values.Set("vnp_TxnRef", reference)
	values.Set("vnp_Amount", fmt.Sprintf("%d", amount*100))
	values.Set("vnp_ResponseCode", "00")
	values.Set("vnp_TransactionNo", "14422574")
	return signVNPayValues(values)
}

func TestVNPayIPNInvalidSignature(t *testing.T) {
	app, donations := ipnApp(t)

	values := successfulVNPayValues("KVT1A2B3C4D5", 100_000)
	values.Set("vnp_SecureHash", "deadbeef")

	if reply := vnpayNotify(t, app, values); reply.RspCode != "97" {
		t.Fatalf("RspCode: got %q, want 97", reply.RspCode)
	}
	if donations.confirmCalls != 0 {
		t.Fatal("unsigned notifications must not settle anything")
	}
}

func TestVNPayIPNOrderNotFound(t *testing.T) {
	app, _ := ipnApp(t)
	if reply := vnpayNotify(t, app, successfulVNPayValues("KVTUNKNOWN00", 100_000)); reply.RspCode != "01" {
		t.Fatalf("RspCode: got %q, want 01", reply.RspCode)
	}
}

func TestVNPayIPNAmountMismatch(t *testing.T) {
	app, donations := ipnApp(t)
	if reply := vnpayNotify(t, app, successfulVNPayValues("KVT1A2B3C4D5", 999_999)); reply.RspCode != "04" {
		t.Fatalf("RspCode: got %q, want 04", reply.RspCode)
	}
	if donations.confirmCalls != 0 {
		t.Fatal("mismatched amounts must not settle anything")
	}
}

func TestVNPayIPNConfirmThenReplay(t *testing.T) {
	app, donations := ipnApp(t)
	values := successfulVNPayValues("KVT1A2B3C4D5", 100_000)

	if reply := vnpayNotify(t, app, values); reply.RspCode != "00" {
		t.Fatalf("first notification: got %q, want 00", reply.RspCode)
	}
	if donations.donations["d-1"].Status != domain.DonationConfirmed {
		t.Fatalf("status: got %s, want confirmed", donations.donations["d-1"].Status)
	}

	if reply := vnpayNotify(t, app, values); reply.RspCode != "02" {
		t.Fatalf("replay: got %q, want 02", reply.RspCode)
	}
	if donations.donations["d-1"].Status != domain.DonationConfirmed {
		t.Fatal("replay must leave the donation confirmed")
	}
}

func TestVNPayIPNFailedPayment(t *testing.T) {
	app, donations := ipnApp(t)

	values := url.Values{}
	values.Set("vnp_TxnRef", "KVT1A2B3C4D5")
	values.Set("vnp_Amount", "10000000")
	values.Set("vnp_ResponseCode", "24")

	if reply := vnpayNotify(t, app, signVNPayValues(values)); reply.RspCode != "00" {
		t.Fatalf("RspCode: got %q, want 00", reply.RspCode)
	}
	if len(donations.failed) != 1 || donations.donations["d-1"].Status != domain.DonationFailed {
		t.Fatalf("failed payments must mark the donation failed: %+v", donations.donations["d-1"])
	}
}

func signedMomoIPN(reference string, amount int64, resultCode int) payment.MomoIPN {
	p := payment.MomoIPN{
		PartnerCode:  "MOMOKVT",
		OrderID:      reference,
		RequestID:    "req-1",
		Amount:       amount,
		OrderInfo:    "ung ho",
		OrderType:    "momo_wallet",
		TransID:      987654321,
		ResultCode:   resultCode,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1735689600000,
	}
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		testMomoAccess, p.Amount, p.ExtraData, p.Message, p.OrderID, p.OrderInfo,
		p.OrderType, p.PartnerCode, p.PayType, p.RequestID, p.ResponseTime, p.ResultCode, p.TransID,
	)
	mac := hmac.New(sha256.New, []byte(testMomoSecret))
	mac.Write([]byte(raw))
	p.Signature = hex.EncodeToString(mac.Sum(nil))
	return p
}

func momoNotify(t *testing.T, app *App, p payment.MomoIPN) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("encode ipn: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/momo/ipn", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	app.MomoIPN(rr, req)
	return rr
}

func TestMomoIPNConfirms(t *testing.T) {
	app, donations := ipnApp(t)

	rr := momoNotify(t, app, signedMomoIPN("KVT1A2B3C4D5", 100_000, 0))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204 (%s)", rr.Code, rr.Body.String())
	}
	if donations.donations["d-1"].Status != domain.DonationConfirmed {
		t.Fatalf("status: got %s, want confirmed", donations.donations["d-1"].Status)
	}
}

func TestMomoIPNBadSignature(t *testing.T) {
	app, donations := ipnApp(t)

	p := signedMomoIPN("KVT1A2B3C4D5", 100_000, 0)
	p.Signature = "deadbeef"

	if rr := momoNotify(t, app, p); rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rr.Code)
	}
	if donations.confirmCalls != 0 {
		t.Fatal("unsigned notifications must not settle anything")
	}
}

func TestMomoIPNFailedPayment(t *testing.T) {
	app, donations := ipnApp(t)

	rr := momoNotify(t, app, signedMomoIPN("KVT1A2B3C4D5", 100_000, 1006))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rr.Code)
	}
	if donations.donations["d-1"].Status != domain.DonationFailed {
		t.Fatalf("status: got %s, want failed", donations.donations["d-1"].Status)
	}
}
