// Package event turns raw order documents published by the ordering apps into the
// canonical models.Order. Legacy field names are resolved here and nowhere else.
package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lokma/internal/domain"
	"lokma/internal/models"

	"github.com/shopspring/decimal"
)

// OrderChange is one order-document update: the snapshot before and after the write.
type OrderChange struct {
	OrderID string
	Before  *models.Order
	After   *models.Order
}

type changeEnvelope struct {
	OrderID string          `json:"orderId"`
	Before  json.RawMessage `json:"before"`
	After   json.RawMessage `json:"after"`
}

var ErrMalformedDocument = errors.New("malformed order document")

// DecodeChange parses a change envelope. Missing snapshots stay nil.
func DecodeChange(payload []byte) (*OrderChange, error) {
	var env changeEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	change := &OrderChange{OrderID: env.OrderID}
	var err error
	if change.Before, err = decodeSnapshot(env.Before, env.OrderID); err != nil {
		return nil, err
	}
	if change.After, err = decodeSnapshot(env.After, env.OrderID); err != nil {
		return nil, err
	}
	return change, nil
}

func decodeSnapshot(raw json.RawMessage, orderID string) (*models.Order, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	o, err := DecodeOrder(raw)
	if err != nil {
		return nil, err
	}
	if o.ID == "" {
		o.ID = orderID
	}
	return o, nil
}

// DecodeOrder maps one raw order document onto models.Order.
func DecodeOrder(raw []byte) (*models.Order, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	d := document(doc)

	o := &models.Order{
		ID:                 d.str("id", "orderId"),
		OrderNumber:        d.str("orderNumber"),
		BusinessID:         d.str("businessId", "butcherId"),
		CustomerID:         d.str("customerId", "userId"),
		CustomerName:       d.str("customerName"),
		CustomerPhone:      d.str("customerPhone", "phone"),
		CustomerFCMToken:   d.str("fcmToken", "customerFcmToken"),
		TotalAmount:        d.dec("totalAmount", "totalPrice", "total"),
		FulfillmentType:    fulfillment(d.str("orderType", "deliveryMethod", "fulfillmentType")),
		TableNumber:        d.table("tableNumber", "table"),
		Status:             domain.OrderStatus(d.str("status")),
		PaymentMethod:      strings.ToLower(d.str("paymentMethod")),
		PaymentStatus:      strings.ToLower(d.str("paymentStatus")),
		CourierID:          d.str("courierId", "driverId"),
		CourierName:        d.str("courierName", "driverName"),
		RejectionReason:    d.str("rejectionReason", "rejectReason"),
		CancellationReason: d.str("cancellationReason", "cancelReason"),
		SponsoredItemIDs:   d.ids("sponsoredItemIds", "sponsoredItems"),
		Items:              d.items("items"),
	}
	o.CreatedAt = d.timestamp("createdAt")
	o.UpdatedAt = d.timestamp("updatedAt")
	if t := d.timestamp("scheduledAt", "scheduledTime"); !t.IsZero() {
		o.ScheduledAt = &t
	}
	if o.FulfillmentType == "" && o.TableNumber != nil {
		o.FulfillmentType = domain.FulfillmentDineIn
	}
	return o, nil
}

func fulfillment(raw string) string {
	switch strings.ToLower(raw) {
	case "":
		return ""
	case "delivery":
		return domain.FulfillmentDelivery
	case "dine_in", "dinein", "dine-in", "table":
		return domain.FulfillmentDineIn
	default:
		// pickup, collect, click_collect and anything unrecognized
		return domain.FulfillmentPickup
	}
}

type document map[string]interface{}

func (d document) first(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := d[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (d document) str(keys ...string) string {
	v, ok := d.first(keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func (d document) dec(keys ...string) decimal.Decimal {
	v, ok := d.first(keys...)
	if !ok {
		return decimal.Zero
	}
	return toDecimal(v)
}

func toDecimal(v interface{}) decimal.Decimal {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return decimal.Zero
	}
	n, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return n
}

func (d document) table(keys ...string) *int {
	v, ok := d.first(keys...)
	if !ok {
		return nil
	}
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// ids accepts either a list of strings or a list of objects carrying an id.
func (d document) ids(keys ...string) []string {
	v, ok := d.first(keys...)
	if !ok {
		return nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch t := item.(type) {
		case string:
			if t != "" {
				out = append(out, t)
			}
		case map[string]interface{}:
			if id := document(t).str("id", "productId"); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}

func (d document) items(key string) []models.OrderItem {
	list, ok := d[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]models.OrderItem, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		it := document(m)
		out = append(out, models.OrderItem{
			ProductID: it.str("productId", "id"),
			Name:      it.str("name", "productName"),
			Quantity:  it.dec("quantity", "weight"),
			Unit:      it.str("unit"),
			UnitPrice: it.dec("unitPrice", "price"),
		})
	}
	return out
}

func (d document) timestamp(keys ...string) time.Time {
	v, ok := d.first(keys...)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}
		}
		return parsed
	case json.Number:
		ms, err := t.Int64()
		if err != nil {
			return time.Time{}
		}
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}
