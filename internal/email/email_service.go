package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"go-digistore-api/internal/pkg/money"
)

//go:generate mockgen -source=email_service.go -destination=../mock/email/email_service_mock.go -package=mock
type Service interface {
	SendOrderConfirmation(ctx context.Context, to string, data OrderConfirmation) error
}

type OrderConfirmation struct {
	CustomerName string
	OrderNumber  string
	Total        int64
	Items        []ConfirmationItem
}

type ConfirmationItem struct {
	Title    string
	Quantity int32
	Keys     []string
}

type resendService struct {
	apiKey    string
	fromEmail string
	baseURL   string
	client    *http.Client
}

func NewResendService(apiKey, from string) (Service, error) {
	apiKey = strings.Trim(apiKey, "\"")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is not configured")
	}

	from = strings.TrimSpace(strings.Trim(from, "\""))
	if from == "" {
		from = "onboarding@resend.dev"
	}

	return &resendService{
		apiKey:    apiKey,
		fromEmail: from,
		baseURL:   "https://api.resend.com",
		client:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func NewNoopService() Service {
	return &noopService{}
}

func (s *resendService) SendOrderConfirmation(ctx context.Context, to string, data OrderConfirmation) error {
	subject := fmt.Sprintf("Pesanan %s berhasil dibayar", data.OrderNumber)
	return s.send(ctx, to, subject, renderOrderConfirmation(data))
}

func renderOrderConfirmation(data OrderConfirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Halo %s,</p>", html.EscapeString(data.CustomerName))
	fmt.Fprintf(&b, "<p>Terima kasih, pembayaran untuk pesanan <strong>%s</strong> sudah kami terima.</p>",
		html.EscapeString(data.OrderNumber))
	b.WriteString("<ul>")
	for _, it := range data.Items {
		fmt.Fprintf(&b, "<li>%s x%d", html.EscapeString(it.Title), it.Quantity)
		if len(it.Keys) > 0 {
			b.WriteString("<br/>Kode lisensi:<ul>")
			for _, k := range it.Keys {
				fmt.Fprintf(&b, "<li><code>%s</code></li>", html.EscapeString(k))
			}
			b.WriteString("</ul>")
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>Total dibayar: Rp %s</p>", money.FormatAmount(data.Total))
	return b.String()
}

func (s *resendService) send(ctx context.Context, to, subject, html string) error {
	payload := map[string]any{
		"from":    s.fromEmail,
		"to":      []string{to},
		"subject": subject,
		"html":    html,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > 500 {
			msg = msg[:500]
		}
		if msg == "" {
			return fmt.Errorf("resend API returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("resend API returned status %d: %s", resp.StatusCode, msg)
	}

	return nil
}

type noopService struct{}

func (s *noopService) SendOrderConfirmation(_ context.Context, _ string, _ OrderConfirmation) error {
	return nil
}
