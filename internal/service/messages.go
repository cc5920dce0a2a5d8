package service

import (
	"fmt"

	"lokma/internal/domain"
	"lokma/internal/models"
)

const notificationType = "order_status"

// customerMessage builds the customer push for a status. ok is false when the status has
// no customer notification.
func customerMessage(before, after *models.Order, status domain.OrderStatus, callbackPhone string) (msg PushMessage, ok bool) {
	num := after.DisplayNumber()
	switch status {
	case domain.StatusPreparing:
		msg = PushMessage{
			Title: "Bestellung wird zubereitet",
			Body:  fmt.Sprintf("Ihre Bestellung #%s wird jetzt zubereitet.", num),
		}
	case domain.StatusReady:
		if after.IsDelivery() {
			msg = PushMessage{
				Title: "Bestellung fertig",
				Body:  fmt.Sprintf("Ihre Bestellung #%s ist fertig und wartet auf den Kurier.", num),
			}
		} else {
			msg = PushMessage{
				Title: "Bestellung abholbereit",
				Body:  fmt.Sprintf("Ihre Bestellung #%s ist fertig und kann abgeholt werden.", num),
			}
		}
	case domain.StatusOnTheWay:
		courier := after.CourierName
		if courier == "" {
			courier = "Ihr Kurier"
		}
		msg = PushMessage{
			Title: "Bestellung unterwegs",
			Body:  fmt.Sprintf("%s ist mit Ihrer Bestellung #%s auf dem Weg zu Ihnen.", courier, num),
		}
	case domain.StatusServed:
		if after.TableNumber != nil {
			msg = PushMessage{
				Title: "Guten Appetit!",
				Body:  fmt.Sprintf("Ihre Bestellung #%s wurde an Tisch %d serviert.", num, *after.TableNumber),
			}
		} else {
			msg = PushMessage{
				Title: "Guten Appetit!",
				Body:  fmt.Sprintf("Ihre Bestellung #%s wurde serviert.", num),
			}
		}
	case domain.StatusDelivered:
		msg = PushMessage{
			Title: "Bestellung zugestellt",
			Body:  fmt.Sprintf("Ihre Bestellung #%s wurde zugestellt. Guten Appetit!", num),
		}
	case domain.StatusCompleted:
		msg = PushMessage{
			Title: "Bestellung abgeschlossen",
			Body:  fmt.Sprintf("Vielen Dank für Ihre Bestellung #%s!", num),
		}
	case domain.StatusRejected:
		body := fmt.Sprintf("Ihre Bestellung #%s wurde leider abgelehnt. Grund: %s.", num, reasonOrDefault(after.RejectionReason))
		if callbackPhone != "" {
			body += fmt.Sprintf(" Bei Fragen erreichen Sie uns unter %s.", callbackPhone)
		}
		msg = PushMessage{Title: "Bestellung abgelehnt", Body: body}
	case domain.StatusCancelled:
		body := fmt.Sprintf("Ihre Bestellung #%s wurde storniert. Grund: %s.", num, reasonOrDefault(after.CancellationReason))
		if before.WasPaid() || after.WasPaid() {
			body += " " + refundNote(after.PaymentMethod)
		}
		msg = PushMessage{Title: "Bestellung storniert", Body: body}
	default:
		return PushMessage{}, false
	}
	msg.Data = map[string]string{
		"type":        notificationType,
		"orderId":     after.ID,
		"orderNumber": num,
		"status":      string(status),
	}
	return msg, true
}

func refundNote(paymentMethod string) string {
	if domain.IsCardPayment(paymentMethod) {
		return "Der bezahlte Betrag wird automatisch auf Ihre Karte zurückerstattet."
	}
	return "Die Rückerstattung wird manuell bearbeitet. Wir melden uns in Kürze bei Ihnen."
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return "keine Angabe"
	}
	return reason
}

// staffMessage is sent to drivers and waiters when an order is ready for them.
func staffMessage(order *models.Order, recipient string) PushMessage {
	num := order.DisplayNumber()
	var msg PushMessage
	if recipient == recipientWaiters && order.TableNumber != nil {
		msg = PushMessage{
			Title: fmt.Sprintf("Tisch %d: Bestellung fertig", *order.TableNumber),
			Body:  fmt.Sprintf("Bestellung #%s kann serviert werden.", num),
		}
	} else {
		msg = PushMessage{
			Title: "Lieferung bereit",
			Body:  fmt.Sprintf("Bestellung #%s ist fertig zur Abholung durch den Fahrer.", num),
		}
	}
	msg.Data = map[string]string{
		"type":       "order_ready",
		"orderId":    order.ID,
		"businessId": order.BusinessID,
		"recipient":  recipient,
	}
	return msg
}
