package render

import (
	"bytes"
	"html/template"

	"transport-backend/internal/billing"
	"transport-backend/internal/models"
	"transport-backend/internal/money"
	"transport-backend/internal/timeutil"
)

// documentTemplate lays out the printable invoice: company header, bill-to
// block, line item table, totals, bank details and signature. It is a
// single tall document; pagination happens after capture, not here.
var documentTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: Arial, Helvetica, sans-serif; background: #fff; color: #1f2937; }
  .page { padding: 32px; }
  .company { text-align: center; border-bottom: 2px solid #d1d5db; padding-bottom: 16px; margin-bottom: 24px; }
  .company h2 { font-size: 28px; letter-spacing: 1px; }
  .company p { font-size: 13px; color: #4b5563; margin-top: 4px; }
  .meta { display: flex; justify-content: space-between; margin-bottom: 24px; }
  .meta h3 { font-size: 14px; margin-bottom: 8px; }
  .meta .detail { font-size: 13px; color: #4b5563; line-height: 1.5; }
  .meta .title { text-align: right; }
  .meta .title h1 { font-size: 30px; margin-bottom: 8px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
  th { background: #1f2937; color: #fff; font-size: 13px; padding: 8px; text-align: left; border: 1px solid #9ca3af; }
  th.num, td.num { text-align: right; }
  td { font-size: 13px; color: #374151; padding: 8px; border: 1px solid #d1d5db; }
  .totals { width: 320px; margin-left: auto; margin-bottom: 32px; font-size: 14px; }
  .totals .row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #d1d5db; font-weight: 600; }
  .totals .grand { background: #f3f4f6; padding: 12px; border-radius: 4px; font-weight: 700; font-size: 17px; border-bottom: none; }
  .bank { border-top: 2px solid #d1d5db; padding-top: 24px; margin-bottom: 32px; font-size: 13px; line-height: 1.7; }
  .bank h3 { font-size: 14px; margin-bottom: 12px; }
  .sign { text-align: center; margin-left: auto; width: 220px; margin-top: 48px; font-size: 13px; font-weight: 600; }
  .sign .space { height: 64px; }
</style>
</head>
<body>
<div class="page">
  <div class="company">
    <h2>R.K.R. TRANSPORT &amp; TRAVELS</h2>
    <p>All Types of Transport Contractors &amp; Travel Arrangements</p>
  </div>

  <div class="meta">
    <div>
      <h3>Bill To:</h3>
      <div class="detail">
        <p><strong>{{.CustomerName}}</strong></p>
        <p>{{.CustomerAddress}}</p>
        <p>{{.CustomerPhone}}</p>
      </div>
    </div>
    <div class="title">
      <h1>INVOICE</h1>
      <div class="detail">
        <p><strong>Invoice No:</strong> {{.InvoiceNo}}</p>
        <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
      </div>
    </div>
  </div>

  <table>
    <thead>
      <tr>
        <th>S.No</th><th>Date</th><th>Vehicle No</th><th>Description</th>
        <th class="num">Qty/Km</th><th class="num">Rate (&#8377;)</th><th class="num">Amount (&#8377;)</th>
      </tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td>{{.SerialNo}}</td>
        <td>{{.Date}}</td>
        <td>{{.VehicleNo}}</td>
        <td>{{.Description}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{.Rate}}</td>
        <td class="num"><strong>{{.Amount}}</strong></td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals">
    <div class="row"><span>Subtotal:</span><span>&#8377; {{.Subtotal}}</span></div>
    <div class="row"><span>Old Balance:</span><span>&#8377; {{.OldBalance}}</span></div>
    <div class="row"><span>Advance:</span><span>- &#8377; {{.Advance}}</span></div>
    <div class="row grand"><span>Total:</span><span>&#8377; {{.Total}}</span></div>
  </div>

  <div class="bank">
    <h3>Bank/Payment Details:</h3>
    <p><strong>Bank Name:</strong> Union Bank of India</p>
    <p><strong>Branch Name:</strong> Chamiers Road</p>
    <p><strong>Account No:</strong> 332301010050547</p>
    <p><strong>IFSC Code:</strong> UBIN0533238</p>
    <p><strong>Google Pay:</strong> 89399-15816</p>
  </div>

  <div class="sign">
    <p>For RKR TRANSPORT AND TRAVELS</p>
    <div class="space"></div>
    <p>Authorized Signatory</p>
  </div>
</div>
</body>
</html>`))

type documentItem struct {
	SerialNo    int
	Date        string
	VehicleNo   string
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

type documentView struct {
	InvoiceNo       string
	InvoiceDate     string
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	Items           []documentItem
	Subtotal        string
	OldBalance      string
	Advance         string
	Total           string
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// InvoiceHTML renders the invoice into the printable document. Totals are
// recomputed from the entered quantity/rate text before display.
func InvoiceHTML(inv *models.Invoice) (string, error) {
	totals := billing.Recompute(inv)

	view := documentView{
		InvoiceNo:       orNA(inv.InvoiceNo),
		InvoiceDate:     orNA(timeutil.FormatDisplayDate(inv.InvoiceDate)),
		CustomerName:    orNA(inv.CustomerName),
		CustomerAddress: orNA(inv.CustomerAddress),
		CustomerPhone:   orNA(inv.CustomerPhone),
		Subtotal:        money.Format(totals.Subtotal),
		OldBalance:      money.Format(money.Parse(inv.OldBalance)),
		Advance:         money.Format(money.Parse(inv.Advance)),
		Total:           money.Format(totals.Total),
	}
	for i, it := range inv.Items {
		qty := it.Quantity
		if qty == "" {
			qty = "0"
		}
		view.Items = append(view.Items, documentItem{
			SerialNo:    i + 1,
			Date:        orNA(timeutil.FormatDisplayDate(it.Date)),
			VehicleNo:   orNA(it.VehicleNo),
			Description: orNA(it.Description),
			Quantity:    qty,
			Rate:        money.Format(money.Parse(it.Rate)),
			Amount:      money.Format(it.Amount),
		})
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
