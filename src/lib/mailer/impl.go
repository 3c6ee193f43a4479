package mailer

import (
	"log"
	"os"

	"ftb/src/lib"
)

// NotifyKind selects the notification template.
type NotifyKind string

const (
	NOTIFY_NEW_REQUEST       NotifyKind = "new_request"
	NOTIFY_BOOKING_CONFIRMED NotifyKind = "booking_confirmed"
	NOTIFY_PACKAGING         NotifyKind = "packaging_reminder"
)

// Notify sends a templated mail to the recipient. Fire-and-forget from the
// caller's perspective: failures are logged, never returned up a lifecycle
// transition.
func Notify(recipient string, kind NotifyKind, data map[string]string) {
	sender := os.Getenv("SENDER_EMAIL")
	input := &lib.SendMailInput{
		From:     sender,
		FromName: "BookTheFoodTruck",
		To:       []string{recipient},
		Html:     true,
	}
	switch kind {
	case NOTIFY_NEW_REQUEST:
		input.Subject = "Otrzymałeś nowe zapytanie o rezerwację!"
		input.Body = "<h1>Nowa rezerwacja!</h1><p>Otrzymałeś nowe zapytanie o rezerwację food trucka w platformie. Zaloguj się na swoje konto, aby zobaczyć szczegóły.</p>"
	case NOTIFY_BOOKING_CONFIRMED:
		input.Subject = "Twoja rezerwacja dla " + data["food_truck_name"] + " została potwierdzona!"
		input.Body = "<h1>Rezerwacja Potwierdzona!</h1><p>Twoja rezerwacja food trucka <strong>" + data["food_truck_name"] + "</strong> została potwierdzona.</p><p>Możesz teraz skontaktować się bezpośrednio z właścicielem pod numerem telefonu: <strong>" + data["owner_phone"] + "</strong> w celu umówienia szczegółów.</p>"
	case NOTIFY_PACKAGING:
		input.Subject = "Przypomnienie: Zamów opakowania dla " + data["food_truck_name"]
		input.Body = "<h1>Pamiętaj o opakowaniach!</h1><p>Zbliża się termin Twojej rezerwacji dla food trucka <strong>" + data["food_truck_name"] + "</strong>.</p><p><strong>Pamiętaj, że zgodnie z regulaminem, jesteś zobowiązany do zakupu opakowań na to wydarzenie w naszym sklepie: <a href=\"https://www.pakowanko.com\">www.pakowanko.com</a>.</strong></p>"
	default:
		log.Printf("[mailer] Unknown notification kind: %s\n", kind)
		return
	}
	if err := lib.SendMail(input); err != nil {
		log.Printf("[mailer] Could not send %s mail to %s: %s\n", kind, recipient, err.Error())
	}
}
