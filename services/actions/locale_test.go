package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "Payment request", Placeholders("en", TypePaymentRequest).Title)
	assert.Equal(t, "Solicitud de pago", Placeholders("es", TypePaymentRequest).Title)
	assert.Equal(t, "Solicitud de pago", Placeholders("es_AR", TypePaymentRequest).Title)
	assert.Equal(t, "Nueva acción", Placeholders("es", TypeResourceLink).Title, "locale default before English")
	assert.Equal(t, "Payment request", Placeholders("de", TypePaymentRequest).Title, "unsupported locales use English")
	assert.Equal(t, "Payment request", Placeholders("", TypePaymentRequest).Title)
	assert.Equal(t, "New action", Placeholders("en", "custom_type").Title)
}

func TestEveryBuiltinHasEnglishPlaceholders(t *testing.T) {
	for _, typ := range Bootstrap(nil).Types() {
		p := Placeholders("en", typ)
		assert.NotEmpty(t, p.Title, typ)
		assert.NotEmpty(t, p.Description, typ)
		assert.NotEqual(t, "New action", p.Title, typ)
	}
}
