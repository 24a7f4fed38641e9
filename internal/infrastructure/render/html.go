// Package render provides the built-in document renderer.
//
// It produces a self-contained HTML document from the assembled render
// input; converting that into the final PDF stream is the job of an external
// layout engine behind the same interface.
package render

import (
	"bytes"
	"context"
	"html/template"

	"shopinvoice/internal/core/types"
	"shopinvoice/internal/domain/invoice"
)

// HTMLRenderer implements invoice.Renderer with html/template.
type HTMLRenderer struct {
	tmpl *template.Template
}

var _ invoice.Renderer = (*HTMLRenderer)(nil)

// New parses the built-in document template.
func New() (*HTMLRenderer, error) {
	tmpl, err := template.New("invoice").Funcs(template.FuncMap{
		"money": func(m types.Money) string { return m.StringFixed(2) },
		"rate":  func(r types.TaxRate) string { return r.String() },
	}).Parse(documentTemplate)
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render executes the template over the render input.
func (r *HTMLRenderer) Render(ctx context.Context, doc *invoice.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const documentTemplate = `<!DOCTYPE html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Number}}</title>
</head>
<body>
<h1>{{.Title}} {{.Number}}</h1>

<section class="participants">
  <div class="supplier">
    <h2>Supplier</h2>
    <p>{{.Supplier.Name}}<br>{{.Supplier.Street}}<br>{{.Supplier.Zip}} {{.Supplier.City}}</p>
    {{if .Supplier.CompanyID}}<p>Company ID: {{.Supplier.CompanyID}}</p>{{end}}
    {{if .Supplier.TaxID}}<p>Tax ID: {{.Supplier.TaxID}}</p>{{end}}
    {{if .Supplier.BankAccount}}<p>Bank account: {{.Supplier.BankAccount}}</p>{{end}}
  </div>
  <div class="customer">
    <h2>Customer</h2>
    <p>{{.Customer.Name}}<br>{{.Customer.Street}}<br>{{.Customer.Zip}} {{.Customer.City}}</p>
    {{if .Customer.CompanyID}}<p>Company ID: {{.Customer.CompanyID}}</p>{{end}}
    {{if .Customer.TaxID}}<p>Tax ID: {{.Customer.TaxID}}</p>{{end}}
  </div>
</section>

<section class="dates">
  <p>Issue date: {{.IssueDate.Format "2006-01-02"}}</p>
  <p>Due date: {{.DueDate.Format "2006-01-02"}}</p>
  <p>Tax point date: {{.TaxPointDate.Format "2006-01-02"}}</p>
  <p>Payment reference: {{.PaymentReference}}</p>
</section>

<table class="lines">
  <thead>
    <tr><th>Item</th><th>Qty</th><th>Unit price</th><th>VAT</th><th>Total</th></tr>
  </thead>
  <tbody>
    {{range .Lines}}
    <tr>
      <td>{{.Label}}</td>
      <td>{{.Count}}</td>
      <td>{{money .UnitPrice}}</td>
      <td>{{rate .TaxRate}} %</td>
      <td>{{money .Total}}</td>
    </tr>
    {{end}}
  </tbody>
  <tfoot>
    <tr><td colspan="4">Total ({{.Currency}})</td><td>{{money .Total}}</td></tr>
  </tfoot>
</table>

{{if .FooterText}}<footer><p>{{.FooterText}}</p></footer>{{end}}
</body>
</html>
`
