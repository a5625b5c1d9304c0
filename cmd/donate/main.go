// Command donate contributes to a campaign from the terminal: it fetches the
// campaign, validates the intake locally, submits the donation and, for bank
// transfers, walks through the confirmation flow.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"kvtogether/internal/history"
	"kvtogether/pkg/kvclient"
)

func main() {
	_ = godotenv.Load()

	var (
		apiURL    = flag.String("api", envOr("KVT_API_URL", "http://localhost:8080"), "donation API base URL")
		token     = flag.String("token", os.Getenv("KVT_TOKEN"), "session bearer token")
		slug      = flag.String("campaign", "", "campaign slug")
		amount    = flag.String("amount", "", "donation amount in VND, separators allowed (e.g. 100.000)")
		note      = flag.String("message", "", "optional supporter message")
		method    = flag.String("method", kvclient.MethodBankTransfer, "payment method: bank_transfer, momo or vnpay")
		anonymous = flag.Bool("anonymous", false, "hide your name on the campaign page")
		showLog   = flag.Bool("history", false, "list past donations and exit")
	)
	flag.Parse()

	printer := message.NewPrinter(language.Vietnamese)

	store, err := history.Open(historyPath())
	if err != nil {
		fail("open donation history: %v", err)
	}
	defer store.Close()

	if *showLog {
		printHistory(store, printer)
		return
	}

	if *slug == "" || *amount == "" {
		flag.Usage()
		os.Exit(2)
	}

	session := kvclient.NewSession(*token, time.Time{})
	client, err := kvclient.NewClient(kvclient.Options{
		BaseURL: *apiURL,
		Session: session,
	})
	if err != nil {
		fail("%v", err)
	}

	ctx := context.Background()
	campaign, err := client.Campaign(ctx, *slug)
	if err != nil {
		fail("fetch campaign: %v", err)
	}
	printCampaign(campaign, printer)

	intent, err := kvclient.ValidateIntake(*amount, *method, *campaign)
	if err != nil {
		fail("%s", intakeMessage(err, printer))
	}
	intent.Message = *note
	intent.Anonymous = *anonymous

	// One submit per run; nothing below ever re-posts.
	result, err := client.SubmitDonation(ctx, intent)
	if err != nil {
		fail("%s", submitMessage(err))
	}

	switch result.Kind {
	case kvclient.ResultRedirect:
		recordDonation(store, result, campaign.Slug, intent)
		fmt.Println("Open this URL in your browser to finish the payment:")
		fmt.Println("  " + result.RedirectURL)
	case kvclient.ResultInstructions:
		recordDonation(store, result, campaign.Slug, intent)
		runBankTransferFlow(ctx, client, store, campaign.Slug, result, printer)
	}
}

// runBankTransferFlow renders the instructions and drives the confirmation
// state machine: wait, ask, then refresh the campaign and show the
// certificate on a self-reported transfer.
func runBankTransferFlow(ctx context.Context, client *kvclient.Client, store *history.Store, slug string, result *kvclient.SubmitResult, printer *message.Printer) {
	inst := result.Instructions
	fmt.Println()
	fmt.Println("Transfer details:")
	fmt.Printf("  Bank:      %s\n", inst.BankName)
	fmt.Printf("  Account:   %s (%s)\n", inst.AccountNumber, inst.AccountName)
	printer.Printf("  Amount:    %d ₫\n", inst.Amount)
	fmt.Printf("  Note:      %s\n", inst.Message)
	if inst.QRURL != "" {
		// If the QR cannot be fetched or scanned, the text fields above
		// are sufficient; confirmation never depends on it.
		fmt.Printf("  QR code:   %s\n", inst.QRURL)
	}

	flow := kvclient.NewConfirmationFlow(kvclient.FlowHooks{
		RefreshCampaign: func() {
			refreshed, err := client.Campaign(ctx, slug)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not refresh campaign: %v\n", err)
				return
			}
			printCampaign(refreshed, printer)
		},
		ShowCertificate: func() {
			if err := store.MarkSelfReported(inst.TransactionCode); err != nil {
				fmt.Fprintf(os.Stderr, "could not update history: %v\n", err)
			}
			printCertificate(inst, printer)
		},
	})
	flow.Start()

	fmt.Println()
	fmt.Printf("Please complete the transfer. The confirm prompt unlocks in %s.\n", kvclient.ConfirmDelay)
	time.Sleep(kvclient.ConfirmDelay)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Have you completed the transfer? [y/N]: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			flow.Close()
			return
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			if err := flow.Confirm(); errors.Is(err, kvclient.ErrNotReady) {
				continue
			}
			return
		default:
			flow.Close()
			fmt.Println("No problem — the donation stays pending until the transfer arrives.")
			return
		}
	}
}

func recordDonation(store *history.Store, result *kvclient.SubmitResult, slug string, intent *kvclient.Intent) {
	reference := result.DonationID
	if result.Instructions != nil {
		reference = result.Instructions.TransactionCode
	}
	err := store.Record(history.Entry{
		Reference:    reference,
		DonationID:   result.DonationID,
		CampaignSlug: slug,
		Amount:       intent.Amount,
		Method:       intent.Method,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not record donation locally: %v\n", err)
	}
}

func printCampaign(c *kvclient.Campaign, printer *message.Printer) {
	fmt.Println()
	fmt.Printf("%s (%s)\n", c.Title, c.Status)
	printer.Printf("  Raised %d ₫ of %d ₫ (%.1f%%) from %d donations\n",
		c.CurrentAmount, c.TargetAmount, c.ProgressPercentage, c.DonationCount)
}

func printCertificate(inst *kvclient.PaymentInstructions, printer *message.Printer) {
	fmt.Println()
	fmt.Println("----------------------------------------")
	fmt.Println("     Thank you for your kindness!")
	printer.Printf("     Donation: %d ₫\n", inst.Amount)
	fmt.Printf("     Reference: %s\n", inst.TransactionCode)
	fmt.Println("  Your transfer will be verified soon.")
	fmt.Println("----------------------------------------")
}

func printHistory(store *history.Store, printer *message.Printer) {
	entries, err := store.Recent(20)
	if err != nil {
		fail("list history: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No donations recorded on this machine yet.")
		return
	}
	for _, e := range entries {
		marker := " "
		if e.SelfReported {
			marker = "*"
		}
		printer.Printf("%s %s  %s  %d ₫  %s  %s\n",
			marker, e.CreatedAt.Format("2006-01-02"), e.Reference, e.Amount, e.Method, e.CampaignSlug)
	}
}

func intakeMessage(err error, printer *message.Printer) string {
	var below *kvclient.BelowMinimumError
	var closed *kvclient.CampaignClosedError
	switch {
	case errors.Is(err, kvclient.ErrInvalidAmountFormat):
		return "the amount must be a number, e.g. 100.000"
	case errors.As(err, &below):
		return printer.Sprintf("the minimum donation is %d ₫", below.Minimum)
	case errors.As(err, &closed):
		if closed.Completed {
			return "this campaign has already reached its goal — thank you! try another campaign"
		}
		return "this campaign is not accepting donations right now"
	case errors.Is(err, kvclient.ErrUnsupportedMethod):
		return "choose one of: bank_transfer, momo, vnpay"
	}
	return err.Error()
}

func submitMessage(err error) string {
	var validation *kvclient.ValidationError
	switch {
	case errors.Is(err, kvclient.ErrAuthenticationRequired):
		return "please sign in first (set KVT_TOKEN or pass -token)"
	case errors.As(err, &validation):
		return validation.Message
	case errors.Is(err, kvclient.ErrForbidden):
		return "you are not allowed to donate to this campaign"
	case errors.Is(err, kvclient.ErrMalformedResponse):
		return "something went wrong, please try again later"
	}
	return err.Error()
}

func historyPath() string {
	if p := os.Getenv("KVT_HISTORY_PATH"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "kvtogether-history.db"
	}
	return filepath.Join(home, ".kvtogether", "history.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
