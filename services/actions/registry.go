package actions

import (
	"errors"
	"sort"

	"bizhub/models"

	"go.uber.org/zap"
)

var ErrUnknownActionType = errors.New("unknown action type")

// Registry is the immutable lookup of action configs built once at startup.
type Registry struct {
	configs map[string]models.ActionConfig
	order   []string
}

// Bootstrap builds the registry of built-in action types.
func Bootstrap(logger *zap.Logger) *Registry {
	return NewRegistry(logger, builtinConfigs()...)
}

// NewRegistry registers configs in order. A later config with the same action
// type replaces the earlier one and a warning is logged.
func NewRegistry(logger *zap.Logger, configs ...models.ActionConfig) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{configs: make(map[string]models.ActionConfig, len(configs))}
	for _, cfg := range configs {
		if _, exists := r.configs[cfg.ActionType]; exists {
			logger.Warn("action config registered twice, keeping the last one", zap.String("actionType", cfg.ActionType))
		} else {
			r.order = append(r.order, cfg.ActionType)
		}
		r.configs[cfg.ActionType] = cloneConfig(cfg)
	}
	return r
}

// Get returns a copy of the config for actionType, or nil when it is unknown.
func (r *Registry) Get(actionType string) *models.ActionConfig {
	if r == nil {
		return nil
	}
	cfg, ok := r.configs[actionType]
	if !ok {
		return nil
	}
	out := cloneConfig(cfg)
	return &out
}

// Types lists the registered action types in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AvailableFor lists copies of the configs usable on plan, sorted by display name.
func (r *Registry) AvailableFor(plan int) []models.ActionConfig {
	out := []models.ActionConfig{}
	for _, t := range r.order {
		if cfg := r.configs[t]; cfg.AvailableOn(plan) {
			out = append(out, cloneConfig(cfg))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

func cloneConfig(c models.ActionConfig) models.ActionConfig {
	c.AvailablePlans = append([]int(nil), c.AvailablePlans...)
	c.PlanLimits = cloneLimits(c.PlanLimits)
	fields := make([]models.FieldConfig, len(c.Fields))
	for i, f := range c.Fields {
		f.Options = append([]models.Option(nil), f.Options...)
		f.CardOptions = append([]models.CardOption(nil), f.CardOptions...)
		f.PlanLimits = cloneLimits(f.PlanLimits)
		if f.Conditional != nil {
			cond := *f.Conditional
			f.Conditional = &cond
		}
		if f.Validation != nil {
			v := *f.Validation
			f.Validation = &v
		}
		if f.FileUpload != nil {
			fu := *f.FileUpload
			fu.AcceptedTypes = append([]string(nil), fu.AcceptedTypes...)
			f.FileUpload = &fu
		}
		fields[i] = f
	}
	c.Fields = fields
	return c
}

func cloneLimits(m map[int]int) map[int]int {
	if m == nil {
		return nil
	}
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
