// Package messaging builds outbound deep links to the external messaging
// service. Pure string construction; no response is consumed.
package messaging

import (
	"net/url"
	"strings"
)

// countryCode is prefixed onto local numbers before link construction.
const countryCode = "237"

// NormalizePhone strips whitespace and enforces the leading country code.
func NormalizePhone(phone string) string {
	phone = strings.Join(strings.Fields(phone), "")
	if !strings.HasPrefix(phone, countryCode) {
		phone = countryCode + phone
	}
	return phone
}

// WhatsAppLink builds a wa.me deep link carrying the subject (bolded,
// upper-cased) and body, URL-encoded.
func WhatsAppLink(phone, subject, body string) string {
	text := "*" + strings.ToUpper(subject) + "*\n\n" + body
	return "https://wa.me/" + NormalizePhone(phone) + "?text=" + url.QueryEscape(text)
}
