package vehicle

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/rideboard/site/config"
)

// WhatsAppURL builds a click-to-chat link to the seller with a prefilled
// message about v. It returns false when the phone has no usable digits.
func WhatsAppURL(phone string, v Vehicle) (string, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	// wa.me wants the full international number without a leading 00
	digits = strings.TrimPrefix(digits, "00")
	if len(digits) < 7 {
		return "", false
	}

	text := fmt.Sprintf("Hi, is your %d %s %s (%s) still available?", v.Year, v.Make, v.Model, v.Title)
	return config.WhatsAppBaseURL + digits + "?text=" + url.QueryEscape(text), true
}

// ContactURL returns the WhatsApp link for the vehicle's seller, if any
func (v Vehicle) ContactURL() (string, bool) {
	if !v.SellerPhone.Valid {
		return "", false
	}
	return WhatsAppURL(v.SellerPhone.String, v)
}
