package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	cases := map[string]string{
		"user-name":       "UserName",
		"user_name":       "UserName",
		"userName":        "UserName",
		"order.item":      "OrderItem",
		"123test":         "123test",
		"order":           "Order",
		"OrderItem":       "OrderItem",
		"light/measured":  "LightMeasured",
		"user signed up":  "UserSignedUp",
		"v2-order-status": "V2OrderStatus",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToPascalCase(in), "input %q", in)
	}
}

func TestToUpperSnakeCase(t *testing.T) {
	cases := map[string]string{
		"low":         "LOW",
		"in-progress": "IN_PROGRESS",
		"inProgress":  "IN_PROGRESS",
		"SHIPPED":     "SHIPPED",
		"on hold":     "ON_HOLD",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToUpperSnakeCase(in), "input %q", in)
	}
}

func TestSanitizeTypeName(t *testing.T) {
	cases := map[string]string{
		"user-name": "UserName",
		"123test":   "_123test",
		"interface": "Interface_",
		"Type":      "Type_",
		"Order":     "Order",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeTypeName(in), "input %q", in)
	}
}

func TestPropertyKey(t *testing.T) {
	assert.Equal(t, "userId", PropertyKey("userId"))
	assert.Equal(t, "_private", PropertyKey("_private"))
	assert.Equal(t, "$ref", PropertyKey("$ref"))
	assert.Equal(t, "'user-name'", PropertyKey("user-name"))
	assert.Equal(t, "'123start'", PropertyKey("123start"))
	assert.Equal(t, `'it\'s'`, PropertyKey("it's"))
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, "'active'", QuoteLiteral("active"))
	assert.Equal(t, `'don\'t'`, QuoteLiteral("don't"))
	assert.Equal(t, `'a\\b'`, QuoteLiteral(`a\b`))
}

func TestEnumMemberName(t *testing.T) {
	assert.Equal(t, "LOW", EnumMemberName("low"))
	assert.Equal(t, "IN_PROGRESS", EnumMemberName("in-progress"))
	assert.Equal(t, "_2_DAY", EnumMemberName("2-day"))
}
