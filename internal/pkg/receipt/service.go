// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/domain/settings"
)

// Service renders ticket receipts as PDF
type Service struct {
	config *config.Config
}

// NewService creates a new receipt service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// TicketData represents the data passed to the ticket template
type TicketData struct {
	Store *settings.StoreSettings
	Sale  *sale.Sale
}

// GenerateTicket renders a finalized sale as an 80mm thermal-style PDF
func (s *Service) GenerateTicket(st *settings.StoreSettings, sl *sale.Sale) (*bytes.Buffer, error) {
	htmlContent, err := s.generateHTML(TicketData{Store: st, Sale: sl})
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	// 80mm receipt roll
	pdfg.Dpi.Set(300)
	pdfg.PageWidth.Set(80)
	pdfg.PageHeight.Set(200)
	pdfg.MarginLeft.Set(4)
	pdfg.MarginRight.Set(4)
	pdfg.MarginTop.Set(4)
	pdfg.MarginBottom.Set(4)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(true)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data TicketData) (string, error) {
	tmpl := template.Must(template.New("ticket").Funcs(template.FuncMap{
		"tnd": formatTND,
	}).Parse(ticketTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// formatTND renders millimes as dinars with three decimal places
func formatTND(millimes int64) string {
	sign := ""
	if millimes < 0 {
		sign = "-"
		millimes = -millimes
	}
	return fmt.Sprintf("%s%d.%03d", sign, millimes/1000, millimes%1000)
}

// Ticket HTML template
const ticketTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Ticket {{.Sale.SaleNumber}}</title>
    <style>
        body {
            font-family: "Courier New", monospace;
            font-size: 11px;
            margin: 0;
            padding: 0;
            color: #000;
        }
        .center { text-align: center; }
        .store-name {
            font-size: 14px;
            font-weight: bold;
        }
        .rule {
            border-top: 1px dashed #000;
            margin: 6px 0;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        td { padding: 1px 0; vertical-align: top; }
        .qty { width: 28px; }
        .amount { text-align: right; white-space: nowrap; }
        .totals td { padding: 2px 0; }
        .grand-total {
            font-size: 13px;
            font-weight: bold;
        }
        .footer {
            margin-top: 10px;
            font-size: 10px;
        }
    </style>
</head>
<body>
    <div class="center">
        <div class="store-name">{{.Store.Name}}</div>
        <div>{{.Store.Address}}</div>
        <div>Tél: {{.Store.Phone}}</div>
        <div>MF: {{.Store.TaxID}}</div>
    </div>

    <div class="rule"></div>
    <div>Ticket: {{.Sale.SaleNumber}}</div>
    <div>Date: {{.Sale.Timestamp.Format "02/01/2006 15:04"}}</div>
    <div>Caisse: {{.Sale.TerminalID}}</div>
    <div class="rule"></div>

    <table>
        {{range .Sale.Items}}
        <tr>
            <td colspan="3">{{.Name}}</td>
        </tr>
        <tr>
            <td class="qty">{{.Quantity}} x</td>
            <td>{{tnd .UnitPrice}}</td>
            <td class="amount">{{tnd .TotalPrice}}</td>
        </tr>
        {{end}}
    </table>

    <div class="rule"></div>
    <table class="totals">
        <tr>
            <td>Sous-total</td>
            <td class="amount">{{tnd .Sale.SubtotalAmount}}</td>
        </tr>
        <tr>
            <td>Dont TVA 19%</td>
            <td class="amount">{{tnd .Sale.TaxAmount}}</td>
        </tr>
        {{if gt .Sale.TaxStampAmount 0}}
        <tr>
            <td>Timbre fiscal</td>
            <td class="amount">{{tnd .Sale.TaxStampAmount}}</td>
        </tr>
        {{end}}
        <tr class="grand-total">
            <td>TOTAL</td>
            <td class="amount">{{tnd .Sale.TotalAmount}} TND</td>
        </tr>
        <tr>
            <td>Paiement</td>
            <td class="amount">{{.Sale.PaymentMethod}}</td>
        </tr>
        {{if gt .Sale.PointsEarned 0}}
        <tr>
            <td>Points fidélité</td>
            <td class="amount">+{{.Sale.PointsEarned}}</td>
        </tr>
        {{end}}
    </table>

    <div class="rule"></div>
    <div class="center footer">
        <p>Merci de votre visite !</p>
    </div>
</body>
</html>
`
