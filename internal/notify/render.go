package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/vasiliy-maslov/storefront/internal/checkout"
)

var receiptTmpl = template.Must(template.New("receipt").Parse(`<h2>New storefront order!</h2>
<p><b>Name:</b> {{.Contact.Name}}</p>
<p><b>Email:</b> {{.Contact.Email}}</p>
<p><b>Phone:</b> {{.Contact.Phone}}</p>
<p><b>City:</b> {{.Contact.City}}</p>
<p><b>Delivery:</b> {{if .Courier}}Home delivery{{else}}Pickup at store{{end}}</p>
{{if .Courier}}<p><b>Address:</b> {{.Contact.Address}}</p>
{{end}}<p><b>Comments:</b> {{.Comments}}</p>
<h3>Items:</h3>
<ul>
{{range .Lines}}<li>{{.Name}} x{{.Quantity}} - ${{printf "%.2f" .UnitPrice}}</li>
{{end}}</ul>
<p><b>Total:</b> ${{printf "%.2f" .Total}}</p>
`))

type receiptData struct {
	checkout.OrderRecord
	Courier  bool
	Comments string
}

// renderReceipt produces the HTML body of the order confirmation:
// contact details, delivery mode, the address only for courier orders,
// comments defaulting to "none", the itemized list and the total.
func renderReceipt(order checkout.OrderRecord) (string, error) {
	data := receiptData{
		OrderRecord: order,
		Courier:     order.Contact.DeliveryType == checkout.DeliveryCourier,
		Comments:    order.Contact.Comments,
	}
	if data.Comments == "" {
		data.Comments = "none"
	}

	var sb strings.Builder
	if err := receiptTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("notify: receipt template failed: %w", err)
	}
	return sb.String(), nil
}
