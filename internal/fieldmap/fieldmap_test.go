package fieldmap

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

func TestNumericCoercionDefaultsToZero(t *testing.T) {
	cases := map[string]float64{
		"":         0,
		"   ":      0,
		"abc":      0,
		"NaN":      0,
		"Infinity": 0,
		"-":        0,
		".":        0,
		"12.50":    12.5,
		" 7 ":      7,
		"3.5kg":    3.5,
		".5":       0.5,
		"-2.25":    -2.25,
		"10.":      10,
	}
	for in, want := range cases {
		got := Float(in)
		assert.False(t, math.IsNaN(got), in)
		assert.Equal(t, want, got, "Float(%q)", in)
		assert.True(t, Decimal(in).Equal(decimal.NewFromFloat(want)), "Decimal(%q) = %s", in, Decimal(in))
	}
}

func TestIntTruncatesLikeParseInt(t *testing.T) {
	assert.Equal(t, 12, Int("12.9"))
	assert.Equal(t, -4, Int("-4 units"))
	assert.Equal(t, 0, Int("n/a"))
	assert.Equal(t, 0, Int(""))
}

func TestDate(t *testing.T) {
	require.NotNil(t, Date("3/5/2025"))
	assert.Equal(t, "2025-03-05", *Date("3/5/2025"))
	assert.Equal(t, "2024-12-31", *Date("12/31/2024"))
	assert.Equal(t, "2025-01-09", *Date(" 01/9/2025 "))

	// other shapes pass through untouched
	assert.Equal(t, "2025-03-05", *Date("2025-03-05"))
	assert.Equal(t, "March 5", *Date("March 5"))
	assert.Equal(t, "3/5", *Date("3/5"))

	assert.Nil(t, Date(""))
	assert.Nil(t, Date("  "))
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp("2025-03-05T10:20:30.0000000")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2025, 3, 5, 10, 20, 30, 0, time.UTC), *ts)

	ts = Timestamp("2025-03-05T10:20:30-05:00")
	require.NotNil(t, ts)
	assert.Equal(t, 15, ts.Hour())

	assert.Nil(t, Timestamp("soon"))
	assert.Nil(t, Timestamp(""))
}

func TestTextHelpers(t *testing.T) {
	assert.Nil(t, Text(" "))
	assert.Equal(t, "x", *Text(" x "))
	assert.Equal(t, "Unknown", TextOr("", "Unknown"))
	assert.Equal(t, "Acme", TextOr("Acme", "Unknown"))
	assert.Equal(t, "b", *FirstText("", " ", "b", "c"))
	assert.Nil(t, FirstText("", ""))
	assert.True(t, Flag("1"))
	assert.False(t, Flag("0"))
	assert.False(t, Flag("true"))
}

func TestPaymentStatus(t *testing.T) {
	d := decimal.NewFromInt
	assert.Equal(t, enums.PaymentStatusPaid, PaymentStatus(d(0), d(0), d(100)))
	assert.Equal(t, enums.PaymentStatusPartial, PaymentStatus(d(50), d(50), d(100)))
	assert.Equal(t, enums.PaymentStatusUnpaid, PaymentStatus(d(100), d(0), d(100)))
	assert.Equal(t, enums.PaymentStatusPaid, PaymentStatus(d(10), d(100), d(100)))
	assert.Equal(t, enums.PaymentStatusPaid, PaymentStatus(d(-5), d(0), d(100)))
}

func TestCarrierName(t *testing.T) {
	assert.Equal(t, "UPS", CarrierName("ups_walleted"))
	assert.Equal(t, "USPS", CarrierName("stamps_com"))
	assert.Equal(t, "DHL eCommerce", CarrierName("dhl_ecommerce"))
	assert.Equal(t, "Amazon", CarrierName("amazon_buy_shipping"))
	assert.Equal(t, "globegistics", CarrierName("globegistics"))
	assert.Equal(t, "Unknown", CarrierName(""))
}

func TestTrackingURL(t *testing.T) {
	u := TrackingURL("fedex", "123 456")
	require.NotNil(t, u)
	assert.Equal(t, "https://www.fedex.com/fedextrack/?trknbr=123+456", *u)
	assert.Equal(t, "https://www.ups.com/track?tracknum=1Z", *TrackingURL("ups", "1Z"))
	assert.Equal(t, "https://tools.usps.com/go/TrackConfirmAction?tLabels=9400", *TrackingURL("stamps_com", "9400"))

	assert.Nil(t, TrackingURL("dhl_ecommerce", "abc"))
	assert.Nil(t, TrackingURL("ups", ""))
}
