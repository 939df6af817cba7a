package models

// OrderStatus is the stored lifecycle state of an order.
type OrderStatus string

const (
	StatusNew            OrderStatus = "NEW"
	StatusPaymentPending OrderStatus = "PAYMENT_PENDING"
	StatusPaid           OrderStatus = "PAID"
	StatusInvoiced       OrderStatus = "INVOICED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusShipped        OrderStatus = "SHIPPED"
	StatusCargoShipped   OrderStatus = "CARGO_SHIPPED"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusDeliveredToSch OrderStatus = "DELIVERED_TO_SCHOOL"
	StatusDeliveredCargo OrderStatus = "DELIVERED_BY_CARGO"
	StatusCompleted      OrderStatus = "COMPLETED"
	StatusCancelled      OrderStatus = "CANCELLED"
	StatusRefunded       OrderStatus = "REFUNDED"
)

// StatusInfo is the display metadata of a status code.
type StatusInfo struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Color string `json:"color"`
}

const unknownStatusColor = "gray"

var orderStatusInfo = map[OrderStatus]StatusInfo{
	StatusNew:            {Code: string(StatusNew), Label: "Yeni", Color: "blue"},
	StatusPaymentPending: {Code: string(StatusPaymentPending), Label: "Ödeme Bekleniyor", Color: "yellow"},
	StatusPaid:           {Code: string(StatusPaid), Label: "Ödendi", Color: "green"},
	StatusInvoiced:       {Code: string(StatusInvoiced), Label: "Faturalandı", Color: "cyan"},
	StatusPreparing:      {Code: string(StatusPreparing), Label: "Hazırlanıyor", Color: "orange"},
	StatusShipped:        {Code: string(StatusShipped), Label: "Kargoya Verildi", Color: "purple"},
	StatusCargoShipped:   {Code: string(StatusCargoShipped), Label: "Kargoda", Color: "purple"},
	StatusDelivered:      {Code: string(StatusDelivered), Label: "Teslim Edildi", Color: "teal"},
	StatusDeliveredToSch: {Code: string(StatusDeliveredToSch), Label: "Okula Teslim Edildi", Color: "teal"},
	StatusDeliveredCargo: {Code: string(StatusDeliveredCargo), Label: "Kargo ile Teslim Edildi", Color: "teal"},
	StatusCompleted:      {Code: string(StatusCompleted), Label: "Tamamlandı", Color: "emerald"},
	StatusCancelled:      {Code: string(StatusCancelled), Label: "İptal Edildi", Color: "red"},
	StatusRefunded:       {Code: string(StatusRefunded), Label: "İade Edildi", Color: "rose"},
}

// orderStatusOrder is the display order used by dashboards.
var orderStatusOrder = []OrderStatus{
	StatusNew,
	StatusPaymentPending,
	StatusPaid,
	StatusInvoiced,
	StatusPreparing,
	StatusShipped,
	StatusCargoShipped,
	StatusDelivered,
	StatusDeliveredToSch,
	StatusDeliveredCargo,
	StatusCompleted,
	StatusCancelled,
	StatusRefunded,
}

// Delivery and billing sub-states map onto the base status they refine.
var canonicalStatus = map[OrderStatus]OrderStatus{
	StatusCargoShipped:   StatusShipped,
	StatusDeliveredToSch: StatusDelivered,
	StatusDeliveredCargo: StatusDelivered,
	StatusInvoiced:       StatusPaid,
	StatusRefunded:       StatusCancelled,
}

var cancellableStatuses = map[OrderStatus]bool{
	StatusNew:            true,
	StatusPaymentPending: true,
	StatusPaid:           true,
	StatusPreparing:      true,
}

var revenueStatuses = map[OrderStatus]bool{
	StatusPaid:      true,
	StatusPreparing: true,
	StatusShipped:   true,
	StatusDelivered: true,
	StatusCompleted: true,
}

// AllOrderStatuses returns every known status code in display order.
func AllOrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatusOrder))
	copy(out, orderStatusOrder)
	return out
}

// Known reports whether s is a registered status code.
func (s OrderStatus) Known() bool {
	_, ok := orderStatusInfo[s]
	return ok
}

// Info returns display metadata. Unknown codes get their raw code as label.
func (s OrderStatus) Info() StatusInfo {
	if info, ok := orderStatusInfo[s]; ok {
		return info
	}
	return StatusInfo{Code: string(s), Label: string(s), Color: unknownStatusColor}
}

// Label returns the localized display label.
func (s OrderStatus) Label() string { return s.Info().Label }

// Color returns the display color tag.
func (s OrderStatus) Color() string { return s.Info().Color }

// Canonical returns the base status that s refines, or s itself.
func (s OrderStatus) Canonical() OrderStatus {
	if base, ok := canonicalStatus[s]; ok {
		return base
	}
	return s
}

// IsCancellable reports whether a cancellation request may be opened from s.
func (s OrderStatus) IsCancellable() bool {
	return cancellableStatuses[s.Canonical()]
}

// IsRevenue reports whether orders in s count toward realized revenue.
func (s OrderStatus) IsRevenue() bool {
	return revenueStatuses[s.Canonical()]
}

// CancelRequestStatus is the state of a cancellation request.
type CancelRequestStatus string

const (
	CancelPending  CancelRequestStatus = "PENDING"
	CancelApproved CancelRequestStatus = "APPROVED"
	CancelRejected CancelRequestStatus = "REJECTED"
)

var cancelStatusInfo = map[CancelRequestStatus]StatusInfo{
	CancelPending:  {Code: string(CancelPending), Label: "Beklemede", Color: "yellow"},
	CancelApproved: {Code: string(CancelApproved), Label: "Onaylandı", Color: "green"},
	CancelRejected: {Code: string(CancelRejected), Label: "Reddedildi", Color: "red"},
}

// Info returns display metadata for the request status.
func (s CancelRequestStatus) Info() StatusInfo {
	if info, ok := cancelStatusInfo[s]; ok {
		return info
	}
	return StatusInfo{Code: string(s), Label: string(s), Color: unknownStatusColor}
}

// IsDecision reports whether s is a valid resolution outcome.
func (s CancelRequestStatus) IsDecision() bool {
	return s == CancelApproved || s == CancelRejected
}

// PaymentStatus is the state of a school payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

var paymentStatusInfo = map[PaymentStatus]StatusInfo{
	PaymentPending: {Code: string(PaymentPending), Label: "Ödeme Bekleniyor", Color: "yellow"},
	PaymentPaid:    {Code: string(PaymentPaid), Label: "Ödendi", Color: "green"},
}

// Info returns display metadata for the payment status.
func (s PaymentStatus) Info() StatusInfo {
	if info, ok := paymentStatusInfo[s]; ok {
		return info
	}
	return StatusInfo{Code: string(s), Label: string(s), Color: unknownStatusColor}
}

// StatusCatalog groups every label table for front-ends.
type StatusCatalog struct {
	Orders         []StatusInfo `json:"orders"`
	CancelRequests []StatusInfo `json:"cancel_requests"`
	Payments       []StatusInfo `json:"payments"`
}

// Catalog returns the full label tables in display order.
func Catalog() StatusCatalog {
	cat := StatusCatalog{}
	for _, s := range orderStatusOrder {
		cat.Orders = append(cat.Orders, s.Info())
	}
	for _, s := range []CancelRequestStatus{CancelPending, CancelApproved, CancelRejected} {
		cat.CancelRequests = append(cat.CancelRequests, s.Info())
	}
	for _, s := range []PaymentStatus{PaymentPending, PaymentPaid} {
		cat.Payments = append(cat.Payments, s.Info())
	}
	return cat
}
