package fieldmap

import (
	"net/url"
	"strings"
)

var carrierNames = map[string]string{
	"ups":                 "UPS",
	"ups_walleted":        "UPS",
	"fedex":               "FedEx",
	"usps":                "USPS",
	"stamps_com":          "USPS",
	"dhl_express":         "DHL Express",
	"dhl_ecommerce":       "DHL eCommerce",
	"ontrac":              "OnTrac",
	"amazon_buy_shipping": "Amazon",
}

var trackingURLPrefixes = map[string]string{
	"ups":          "https://www.ups.com/track?tracknum=",
	"ups_walleted": "https://www.ups.com/track?tracknum=",
	"fedex":        "https://www.fedex.com/fedextrack/?trknbr=",
	"usps":         "https://tools.usps.com/go/TrackConfirmAction?tLabels=",
	"stamps_com":   "https://tools.usps.com/go/TrackConfirmAction?tLabels=",
	"dhl_express":  "https://www.dhl.com/en/express/tracking.html?AWB=",
	"ontrac":       "https://www.ontrac.com/tracking/?trackingnumber=",
}

// CarrierName maps a carrier code to its display name. Unknown codes are
// shown as-is; a missing code is "Unknown".
func CarrierName(code string) string {
	code = strings.TrimSpace(code)
	if name, ok := carrierNames[strings.ToLower(code)]; ok {
		return name
	}
	if code == "" {
		return "Unknown"
	}
	return code
}

// TrackingURL builds the carrier's public tracking link, or nil when the
// carrier has no known tracking page or there is no tracking number.
func TrackingURL(code, trackingNumber string) *string {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil
	}
	prefix, ok := trackingURLPrefixes[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	out := prefix + url.QueryEscape(trackingNumber)
	return &out
}
