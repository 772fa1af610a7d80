package notify

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/storefront/internal/checkout"
)

func testOrder(delivery checkout.DeliveryType, address, comments string) checkout.OrderRecord {
	return checkout.OrderRecord{
		ID: uuid.Must(uuid.NewV4()),
		Contact: checkout.Intent{
			Name:         "Ana García",
			Email:        "ana@example.com",
			Phone:        "555-0101",
			City:         "Bogotá",
			DeliveryType: delivery,
			Address:      address,
			Comments:     comments,
		},
		Lines: []checkout.OrderLine{
			{ProductID: 1, Name: "Smartphone Galaxy Pro", UnitPrice: 699.99, Quantity: 2},
			{ProductID: 9, Name: "Esterilla de Yoga", UnitPrice: 19.99, Quantity: 1},
		},
		Total: 1419.97,
	}
}

func TestRenderReceipt_Pickup(t *testing.T) {
	html, err := renderReceipt(testOrder(checkout.DeliveryPickup, "", ""))
	require.NoError(t, err)

	assert.Contains(t, html, "Ana García")
	assert.Contains(t, html, "ana@example.com")
	assert.Contains(t, html, "555-0101")
	assert.Contains(t, html, "Bogotá")
	assert.Contains(t, html, "Pickup at store")
	assert.NotContains(t, html, "Address:", "pickup receipts carry no address block")
	assert.Contains(t, html, "<b>Comments:</b> none")
	assert.Contains(t, html, "Smartphone Galaxy Pro x2 - $699.99")
	assert.Contains(t, html, "Esterilla de Yoga x1 - $19.99")
	assert.Contains(t, html, "<b>Total:</b> $1419.97")
}

func TestRenderReceipt_Delivery(t *testing.T) {
	html, err := renderReceipt(testOrder(checkout.DeliveryCourier, "Calle 12 #3-45", "sin timbre"))
	require.NoError(t, err)

	assert.Contains(t, html, "Home delivery")
	assert.Contains(t, html, "Calle 12 #3-45")
	assert.Contains(t, html, "<b>Comments:</b> sin timbre")
}
