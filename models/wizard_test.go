package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestAggregateTotalPrice(t *testing.T) {
	var agg RequestAggregate
	assert.Zero(t, agg.TotalPrice())

	agg.SetItemQuantity("room", ServiceItem{PriceBase: 10.10}, 3)
	agg.SetExtraQuantity("oven", Extra{Price: 0.2}, 1)
	assert.Equal(t, 30.50, agg.TotalPrice())

	agg.SetItemQuantity("room", ServiceItem{PriceBase: 10.10}, 0)
	assert.NotContains(t, agg.Items, "room")
	assert.Equal(t, 0.20, agg.TotalPrice())
}

func TestRequestAggregateJSONCarriesTotal(t *testing.T) {
	var agg RequestAggregate
	agg.SetItemQuantity("room", ServiceItem{PriceBase: 10}, 3)

	b, err := json.Marshal(agg)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"totalPrice":30`)

	var back RequestAggregate
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, 3, back.Items["room"].Quantity)
}

func TestAnswerAcceptsStringOrList(t *testing.T) {
	var text Answer
	require.NoError(t, json.Unmarshal([]byte(`"yes"`), &text))
	assert.False(t, text.IsMulti())
	assert.Equal(t, "yes", text.Text)

	var list Answer
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &list))
	assert.True(t, list.IsMulti())
	assert.Equal(t, []string{"a", "b"}, list.Choices)

	var empty Answer
	require.NoError(t, json.Unmarshal([]byte(`[]`), &empty))
	assert.True(t, empty.Empty())

	var bad Answer
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestWizardStepString(t *testing.T) {
	assert.Equal(t, "customer_details", StepCustomerDetails.String())
	assert.Equal(t, "unknown", WizardStep(42).String())
}
