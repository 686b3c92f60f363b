package domain

// PaymentMethod identifies how an order or appointment is paid.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentSyriatelCash   PaymentMethod = "syriatel_cash"
	PaymentBankAlBaraka   PaymentMethod = "bank_al_baraka"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCashOnDelivery, PaymentSyriatelCash, PaymentBankAlBaraka}

var paymentNames = map[PaymentMethod]string{
	PaymentCashOnDelivery: "الدفع عند الاستلام",
	PaymentSyriatelCash:   "سيرياتيل كاش",
	PaymentBankAlBaraka:   "بنك البركة",
}

// DisplayName returns the localized label, falling back to the raw value.
func (m PaymentMethod) DisplayName() string {
	if name, ok := paymentNames[m]; ok {
		return name
	}
	return string(m)
}

// Order is the checkout payload submitted to the backend.
type Order struct {
	Products      []CartItem    `json:"products"`
	TotalPrice    float64       `json:"total_price"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}
