package domain

const (
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

const (
	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
	FulfillmentDineIn   = "dine_in"
)

const (
	StaffingOwnStaff     = "own_staff"
	StaffingLokmaDrivers = "lokma_drivers"
	StaffingHybrid       = "hybrid"
)

const (
	DriverTypeLokma    = "lokma"
	DriverTypeBusiness = "business"
)

const (
	ShiftStatusActive = "active"
	ShiftStatusPaused = "paused"
)

// Courier types double as the commission rate keys of a subscription plan.
const (
	CourierClickCollect = "click_collect"
	CourierOwn          = "own_courier"
	CourierLokma        = "lokma_courier"
)

const (
	FeeTypeNone       = "none"
	FeeTypePercentage = "percentage"
	FeeTypeFixed      = "fixed"
)

const (
	PaymentMethodCard   = "card"
	PaymentMethodStripe = "stripe"
	PaymentMethodCash   = "cash"
)

const (
	PaymentStatusPaid      = "paid"
	PaymentStatusCompleted = "completed"
)

const (
	CollectionAutoCollected = "auto_collected"
	CollectionPending       = "pending"
)

// Platform settings (system_settings keys).
const (
	SettingSponsoredEnabled          = "sponsored_enabled"
	SettingSponsoredFeePerConversion = "sponsored_fee_per_conversion"
)

// Fixed billing constants. The VAT rate is the German standard rate for every business.
const (
	DefaultCommissionRate            = "5"
	VATRatePercent                   = "19"
	DefaultSponsoredFeePerConversion = "0.40"
)

// IsCardPayment reports whether the payment processor collects the commission automatically.
func IsCardPayment(method string) bool {
	return method == PaymentMethodCard || method == PaymentMethodStripe
}
