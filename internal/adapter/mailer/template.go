package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

const orderConfirmationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #333;">
  <h2>Hello {{.Customer}},</h2>
  <p>Your order has been placed successfully.</p>
  <table style="border-collapse: collapse; width: 100%;">
    <thead>
      <tr>
        <th align="left">Product</th>
        <th align="right">Price</th>
        <th align="right">Quantity</th>
      </tr>
    </thead>
    <tbody>
      {{- range .Items}}
      <tr>
        <td>{{.Name}}</td>
        <td align="right">{{.Price.StringFixed 2}}</td>
        <td align="right">{{.Quantity}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
  <p>Thank you for shopping with us.</p>
  <p>Regards,<br>DeeShop</p>
</body>
</html>`

// TemplateRenderer renders transactional emails from embedded HTML templates.
type TemplateRenderer struct {
	orderConfirmation *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	tpl, err := template.New("order_confirmation").Parse(orderConfirmationHTML)
	if err != nil {
		return nil, fmt.Errorf("parse order confirmation template: %w", err)
	}
	return &TemplateRenderer{orderConfirmation: tpl}, nil
}

// RenderOrderConfirmation lists the purchased items addressed to customer.
func (r *TemplateRenderer) RenderOrderConfirmation(customer string, items []model.CartItem) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Customer string
		Items    []model.CartItem
	}{Customer: customer, Items: items}
	if err := r.orderConfirmation.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render order confirmation: %w", err)
	}
	return buf.String(), nil
}
