package actions

import (
	"testing"

	"bizhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBootstrapRegistersBuiltins(t *testing.T) {
	reg := Bootstrap(zap.NewNop())
	assert.Len(t, reg.Types(), 12)

	for _, typ := range reg.Types() {
		cfg := reg.Get(typ)
		require.NotNil(t, cfg, typ)
		_, hasTitle := cfg.Field(FieldActionTitle)
		_, hasDesc := cfg.Field(FieldActionDescription)
		assert.True(t, hasTitle, "%s has a title field", typ)
		assert.True(t, hasDesc, "%s has a description field", typ)
		assert.NotEmpty(t, cfg.AvailablePlans, typ)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := Bootstrap(nil)
	assert.Nil(t, reg.Get("nonexistent"))

	var empty *Registry
	assert.Nil(t, empty.Get(TypeChecklist))
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	reg := Bootstrap(nil)
	cfg := reg.Get(TypePaymentRequest)
	require.NotNil(t, cfg)
	cfg.Fields[0].Label = "changed"
	cfg.PlanLimits[models.PlanPro] = 1

	again := reg.Get(TypePaymentRequest)
	assert.Equal(t, "Title", again.Fields[0].Label)
	assert.Equal(t, 20, again.PlanLimits[models.PlanPro])
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	reg := NewRegistry(nil,
		models.ActionConfig{ActionType: "custom", DisplayName: "First"},
		models.ActionConfig{ActionType: "other", DisplayName: "Other"},
		models.ActionConfig{ActionType: "custom", DisplayName: "Second"},
	)
	assert.Equal(t, []string{"custom", "other"}, reg.Types())
	assert.Equal(t, "Second", reg.Get("custom").DisplayName)
}

func TestRegistryAvailableFor(t *testing.T) {
	reg := Bootstrap(nil)

	free := reg.AvailableFor(models.PlanFree)
	var names []string
	for _, cfg := range free {
		assert.Contains(t, cfg.AvailablePlans, models.PlanFree)
		names = append(names, cfg.DisplayName)
	}
	assert.IsNonDecreasing(t, names)
	assert.NotContains(t, actionTypes(free), TypeSignatureRequest)

	pro := reg.AvailableFor(models.PlanPro)
	assert.Contains(t, actionTypes(pro), TypeSignatureRequest)
	assert.Len(t, reg.AvailableFor(models.PlanBusiness), 12)
	assert.Empty(t, reg.AvailableFor(99))
}

func actionTypes(cfgs []models.ActionConfig) []string {
	out := make([]string, 0, len(cfgs))
	for _, c := range cfgs {
		out = append(out, c.ActionType)
	}
	return out
}
