package checkout

// DeliveryType способ получения заказа.
type DeliveryType string

const (
	DeliveryPickup  DeliveryType = "pickup"
	DeliveryCourier DeliveryType = "delivery"
)

func (d DeliveryType) String() string {
	return string(d)
}

// ContactForm — сырые данные формы оформления заказа. Живёт только на
// время checkout.
type ContactForm struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	City         string       `json:"city"`
	DeliveryType DeliveryType `json:"delivery_type"`
	Address      string       `json:"address"`
	Comments     string       `json:"comments"`
}

// Intent is a contact form that passed validation. Fields are trimmed.
type Intent struct {
	Name         string
	Email        string
	Phone        string
	City         string
	DeliveryType DeliveryType
	Address      string
	Comments     string
}
