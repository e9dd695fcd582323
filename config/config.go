// Package config provides configuration loading and access for the
// simulation runtime: tick rate, spawn configuration, per-species
// behavior/reproduction tuning, and subsystem budgets.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/ethosim/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Tick       TickConfig                  `yaml:"tick"`
	Spawn      SpawnConfig                 `yaml:"spawn"`
	Behavior   map[string]BehaviorOverride `yaml:"behavior"`
	Reproduce  map[string]ReproduceOverride `yaml:"reproduction"`
	Validator  ValidatorConfig             `yaml:"validator"`
	Think      ThinkConfig                 `yaml:"think"`
	Pathing    PathingConfig               `yaml:"pathing"`
	Vegetation VegetationConfig            `yaml:"vegetation"`
	WorldPack  string                      `yaml:"world_pack"`
}

// TickConfig controls the heartbeat (C1).
type TickConfig struct {
	RateHz                float64 `yaml:"rate_hz"`
	DefaultSpeedMultiplier float64 `yaml:"default_speed_multiplier"`
}

// PeriodSeconds returns the wall-clock duration of one tick at 1x speed, in
// seconds.
func (t TickConfig) PeriodSeconds() float64 {
	if t.RateHz <= 0 {
		return 0.1
	}
	return 1.0 / t.RateHz
}

// SpeciesSpawn describes one species' entry in the spawn configuration.
type SpeciesSpawn struct {
	Count      int     `yaml:"count"`
	CenterX    int32   `yaml:"center_x"`
	CenterY    int32   `yaml:"center_y"`
	Radius     int32   `yaml:"radius"`
}

// SpawnConfig is the named per-species spawn entry table (§6).
type SpawnConfig struct {
	Species map[string]SpeciesSpawn `yaml:"species"`
}

// BehaviorOverride mirrors components.BehaviorConfig's tuning fields for
// YAML overrides; nil fields are left at the species default. The
// metabolism rate fields are not overridable.
type BehaviorOverride struct {
	HungerThresholdUrgent *float32 `yaml:"hunger_threshold_urgent"`
	HungerThresholdNormal *float32 `yaml:"hunger_threshold_normal"`
	ThirstThresholdUrgent *float32 `yaml:"thirst_threshold_urgent"`
	ThirstThresholdNormal *float32 `yaml:"thirst_threshold_normal"`
	EnergyThresholdUrgent *float32 `yaml:"energy_threshold_urgent"`
	FoodSearchRadius      *int32   `yaml:"food_search_radius"`
	WaterSearchRadius     *int32   `yaml:"water_search_radius"`
	WanderRadius          *int32   `yaml:"wander_radius"`
	MatingSearchRadius    *int32   `yaml:"mating_search_radius"`
	HuntSearchRadius      *int32   `yaml:"hunt_search_radius"`
	SightRadius           *int32   `yaml:"sight_radius"`
	FearThreshold         *float32 `yaml:"fear_threshold"`
	IdleThresholdTicks    *int32   `yaml:"idle_threshold_ticks"`
	GrazeAmount           *float32 `yaml:"graze_amount"`
	DrinkAmount           *float32 `yaml:"drink_amount"`
	RestRate              *float32 `yaml:"rest_rate"`
	RestTarget            *float32 `yaml:"rest_target"`
	HuntDamage            *float32 `yaml:"hunt_damage"`
	HuntRecomputeTiles    *int32   `yaml:"hunt_recompute_tiles"`
	PreemptionMargin      *float32 `yaml:"preemption_margin"`
}

// Apply overrides non-nil fields of base and returns the result.
func (o BehaviorOverride) Apply(base components.BehaviorConfig) components.BehaviorConfig {
	if o.HungerThresholdUrgent != nil {
		base.HungerThresholdUrgent = *o.HungerThresholdUrgent
	}
	if o.HungerThresholdNormal != nil {
		base.HungerThresholdNormal = *o.HungerThresholdNormal
	}
	if o.ThirstThresholdUrgent != nil {
		base.ThirstThresholdUrgent = *o.ThirstThresholdUrgent
	}
	if o.ThirstThresholdNormal != nil {
		base.ThirstThresholdNormal = *o.ThirstThresholdNormal
	}
	if o.EnergyThresholdUrgent != nil {
		base.EnergyThresholdUrgent = *o.EnergyThresholdUrgent
	}
	if o.FoodSearchRadius != nil {
		base.FoodSearchRadius = *o.FoodSearchRadius
	}
	if o.WaterSearchRadius != nil {
		base.WaterSearchRadius = *o.WaterSearchRadius
	}
	if o.WanderRadius != nil {
		base.WanderRadius = *o.WanderRadius
	}
	if o.MatingSearchRadius != nil {
		base.MatingSearchRadius = *o.MatingSearchRadius
	}
	if o.HuntSearchRadius != nil {
		base.HuntSearchRadius = *o.HuntSearchRadius
	}
	if o.SightRadius != nil {
		base.SightRadius = *o.SightRadius
	}
	if o.FearThreshold != nil {
		base.FearThreshold = *o.FearThreshold
	}
	if o.IdleThresholdTicks != nil {
		base.IdleThresholdTicks = *o.IdleThresholdTicks
	}
	if o.GrazeAmount != nil {
		base.GrazeAmount = *o.GrazeAmount
	}
	if o.DrinkAmount != nil {
		base.DrinkAmount = *o.DrinkAmount
	}
	if o.RestRate != nil {
		base.RestRate = *o.RestRate
	}
	if o.RestTarget != nil {
		base.RestTarget = *o.RestTarget
	}
	if o.HuntDamage != nil {
		base.HuntDamage = *o.HuntDamage
	}
	if o.HuntRecomputeTiles != nil {
		base.HuntRecomputeTiles = *o.HuntRecomputeTiles
	}
	if o.PreemptionMargin != nil {
		base.PreemptionMargin = *o.PreemptionMargin
	}
	return base
}

// ReproduceOverride mirrors components.ReproductionConfig for overrides,
// except MatingDwellTicks, which is not overridable.
type ReproduceOverride struct {
	CooldownTicks    *int32   `yaml:"cooldown_ticks"`
	PregnancyTicks   *int32   `yaml:"pregnancy_ticks"`
	WellFedStreakReq *int32   `yaml:"well_fed_streak_required"`
	SatiatedHunger   *float32 `yaml:"satiated_hunger"`
	MinEnergy        *float32 `yaml:"min_energy"`
	LitterSize       *int32   `yaml:"litter_size"`
}

// Apply overrides non-nil fields of base and returns the result.
func (o ReproduceOverride) Apply(base components.ReproductionConfig) components.ReproductionConfig {
	if o.CooldownTicks != nil {
		base.CooldownTicks = *o.CooldownTicks
	}
	if o.PregnancyTicks != nil {
		base.PregnancyTicks = *o.PregnancyTicks
	}
	if o.WellFedStreakReq != nil {
		base.WellFedStreakReq = *o.WellFedStreakReq
	}
	if o.SatiatedHunger != nil {
		base.SatiatedHunger = *o.SatiatedHunger
	}
	if o.MinEnergy != nil {
		base.MinEnergy = *o.MinEnergy
	}
	if o.LitterSize != nil {
		base.LitterSize = *o.LitterSize
	}
	return base
}

// ValidatorConfig controls the periodic entity-invariant sweep (§7).
type ValidatorConfig struct {
	IntervalTicks int32 `yaml:"interval_ticks"`
}

// ThinkConfig controls the think queue's per-tick budget (C8).
type ThinkConfig struct {
	BudgetPerTick        int   `yaml:"budget_per_tick"`
	IdleFallbackTicks    int32 `yaml:"idle_fallback_ticks"`
	AggressiveFallbackTicks int32 `yaml:"aggressive_fallback_ticks"`
}

// PathingConfig controls the pathfinding queue's per-tick budget (C7).
type PathingConfig struct {
	BudgetPerTick int `yaml:"budget_per_tick"`
	MaxRetries    int32 `yaml:"max_retries"`
}

// VegetationConfig controls the vegetation grid's regrowth model (C5).
type VegetationConfig struct {
	CellCap          float32 `yaml:"cell_cap"`
	RegrowthTicks    int32   `yaml:"regrowth_ticks"`
	RegrowthAmount   float32 `yaml:"regrowth_amount"`
	PressureDecay    float32 `yaml:"pressure_decay"`
}

// BehaviorFor resolves the effective BehaviorConfig for a species,
// applying the species override (if any) on top of the shared default.
func (c *Config) BehaviorFor(species string) components.BehaviorConfig {
	base := components.DefaultBehaviorConfig()
	if o, ok := c.Behavior[species]; ok {
		return o.Apply(base)
	}
	return base
}

// ReproductionFor resolves the effective ReproductionConfig for a
// species.
func (c *Config) ReproductionFor(species string) components.ReproductionConfig {
	base := components.DefaultReproductionConfig()
	if o, ok := c.Reproduce[species]; ok {
		return o.Apply(base)
	}
	return base
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}
