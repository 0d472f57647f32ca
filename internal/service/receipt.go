package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/utils"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const roomChargeLabel = "Habitación"

type ReceiptLine struct {
	Description    string `json:"description"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

// Receipt is a read-only projection of an in-progress or finalized checkout.
type Receipt struct {
	TransactionID       string               `json:"transaction_id,omitempty"`
	Preview             bool                 `json:"preview"`
	GuestName           string               `json:"guest_name"`
	GuestEmail          string               `json:"guest_email,omitempty"`
	DocumentID          string               `json:"document_id"`
	RoomID              string               `json:"room_id"`
	CheckInAt           time.Time            `json:"check_in_at"`
	IssuedAt            time.Time            `json:"issued_at"`
	Nights              int                  `json:"nights"`
	Lines               []ReceiptLine        `json:"lines"`
	SubtotalCents       int64                `json:"subtotal_cents"`
	TaxRate             float64              `json:"tax_rate"`
	TaxCents            int64                `json:"tax_cents"`
	TotalCents          int64                `json:"total_cents"`
	Currency            string               `json:"currency"`
	PaymentMethod       domain.PaymentMethod `json:"payment_method,omitempty"`
	PaymentConfirmed    bool                 `json:"payment_confirmed"`
	ResultingRoomStatus domain.RoomStatus    `json:"resulting_room_status,omitempty"`
}

func NewReceipt(tx *domain.CheckoutTransaction) *Receipt {
	r := newReceipt(&tx.Guest, tx.Billing, tx.Payment, tx.CompletedAt)
	r.TransactionID = tx.ID
	r.ResultingRoomStatus = tx.ResultingRoomStatus
	return r
}

func newPreviewReceipt(guest *domain.Guest, billing domain.StayBillingSnapshot, payment domain.PaymentRecord) *Receipt {
	r := newReceipt(guest, billing, payment, billing.ComputedAt)
	r.Preview = true
	return r
}

func newReceipt(guest *domain.Guest, billing domain.StayBillingSnapshot, payment domain.PaymentRecord, issuedAt time.Time) *Receipt {
	lines := make([]ReceiptLine, 0, len(billing.ServiceLineItems)+1)
	lines = append(lines, ReceiptLine{
		Description:    roomChargeLabel,
		Quantity:       billing.Nights,
		UnitPriceCents: billing.NightlyRateCents,
		TotalCents:     billing.RoomChargeCents,
	})
	for _, item := range billing.ServiceLineItems {
		lines = append(lines, ReceiptLine{
			Description:    item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.LineTotalCents,
		})
	}
	return &Receipt{
		GuestName:        guest.Name,
		GuestEmail:       guest.Email,
		DocumentID:       guest.DocumentID,
		RoomID:           guest.RoomID,
		CheckInAt:        guest.CheckInAt,
		IssuedAt:         issuedAt,
		Nights:           billing.Nights,
		Lines:            lines,
		SubtotalCents:    billing.SubtotalCents,
		TaxRate:          billing.TaxRate,
		TaxCents:         billing.TaxCents,
		TotalCents:       billing.TotalCents,
		Currency:         billing.Currency,
		PaymentMethod:    payment.Method,
		PaymentConfirmed: payment.Confirmed,
	}
}

func (r *Receipt) Subject() string {
	return fmt.Sprintf("Recibo de estancia - Habitación %s", r.RoomID)
}

func (r *Receipt) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Huésped: %s\n", r.GuestName)
	fmt.Fprintf(&b, "Documento: %s\n", r.DocumentID)
	fmt.Fprintf(&b, "Habitación: %s\n", r.RoomID)
	fmt.Fprintf(&b, "Entrada: %s\n", r.CheckInAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Noches: %d\n\n", r.Nights)
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%-20s %3d x %10s = %10s\n", l.Description, l.Quantity, utils.FormatCents(l.UnitPriceCents), utils.FormatCents(l.TotalCents))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s %s\n", utils.FormatCents(r.SubtotalCents), r.Currency)
	fmt.Fprintf(&b, "IVA (%.0f%%): %s %s\n", r.TaxRate*100, utils.FormatCents(r.TaxCents), r.Currency)
	fmt.Fprintf(&b, "Total: %s %s\n", utils.FormatCents(r.TotalCents), r.Currency)
	if r.PaymentMethod != "" {
		fmt.Fprintf(&b, "Forma de pago: %s\n", r.PaymentMethod)
	}
	if r.TransactionID != "" {
		fmt.Fprintf(&b, "Referencia: %s\n", r.TransactionID)
	}
	return b.String()
}

func (r *Receipt) HTML() string {
	var rows strings.Builder
	for _, l := range r.Lines {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(l.Description), l.Quantity, utils.FormatCents(l.UnitPriceCents), utils.FormatCents(l.TotalCents))
	}
	return fmt.Sprintf(`
		<html>
			<body>
				<h2>Recibo de estancia</h2>
				<p><strong>%s</strong> - Habitación %s - %d noche(s)</p>
				<table>%s</table>
				<p>Subtotal: %s %s<br>IVA: %s %s<br><strong>Total: %s %s</strong></p>
			</body>
		</html>
	`, html.EscapeString(r.GuestName), html.EscapeString(r.RoomID), r.Nights, rows.String(),
		utils.FormatCents(r.SubtotalCents), r.Currency,
		utils.FormatCents(r.TaxCents), r.Currency,
		utils.FormatCents(r.TotalCents), r.Currency)
}

func validateRecipient(r *Receipt) error {
	if r == nil {
		return &domain.NotReadyError{Reason: "no receipt to send"}
	}
	if strings.TrimSpace(r.GuestEmail) == "" {
		return &domain.ValidationError{Field: "email", Reason: "guest has no e-mail address"}
	}
	return nil
}

type mailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridReceiptService struct {
	client    mailClient
	fromEmail string
	fromName  string
}

func NewSendGridReceiptService(apiKey, fromEmail, fromName string) ReceiptService {
	return &sendGridReceiptService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridReceiptService) SendReceipt(ctx context.Context, receipt *Receipt) error {
	if err := validateRecipient(receipt); err != nil {
		return err
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(receipt.GuestName, receipt.GuestEmail)
	message := mail.NewSingleEmail(from, receipt.Subject(), to, receipt.Text(), receipt.HTML())

	logger.ExternalServiceCall("sendgrid", "SendReceipt", "room_id", receipt.RoomID)
	response, err := s.client.Send(message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "SendReceipt", err, "room_id", receipt.RoomID)
	if err != nil {
		return fmt.Errorf("failed to send receipt: %w", err)
	}
	return nil
}

type loggingReceiptService struct{}

// NewLoggingReceiptService only logs receipts; used when no mail provider is configured.
func NewLoggingReceiptService() ReceiptService {
	return loggingReceiptService{}
}

func (loggingReceiptService) SendReceipt(ctx context.Context, receipt *Receipt) error {
	if err := validateRecipient(receipt); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Receipt delivery skipped, no mail provider configured",
		"to", receipt.GuestEmail,
		"room_id", receipt.RoomID,
		"total_cents", receipt.TotalCents,
		"transaction_id", receipt.TransactionID,
	)
	return nil
}
