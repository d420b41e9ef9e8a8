// Package config resolves the numeric constants the core runs on: bundled
// defaults deep-merged with an optional user YAML overlay, built once at
// startup and passed to the core by value (spec.md §9 "Config overlay").
package config

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/paulgrocholske/bwplan/internal/bwerr"
)

//go:embed defaults.yaml
var bundled embed.FS

// Metrics holds the §4.1 normalization constants.
type Metrics struct {
	RestFactorFloorS   int     `yaml:"rest_factor_floor_s"`
	RestFactorRefS     float64 `yaml:"rest_factor_ref_s"`
	RestFactorExponent float64 `yaml:"rest_factor_exponent"`
	RestFactorMin      float64 `yaml:"rest_factor_min"`
	RestFactorMax      float64 `yaml:"rest_factor_max"`
	EstimateRIRMax     int     `yaml:"estimate_rir_max"`
}

// Physiology holds the §4.2 impulse and fitness-fatigue constants.
type Physiology struct {
	RIRPenaltyCoeff    float64 `yaml:"rir_penalty_coeff"`
	RIRBaseline        float64 `yaml:"rir_baseline"`
	LoadExponent       float64 `yaml:"load_exponent"`
	FitnessTauDays     float64 `yaml:"fitness_tau_days"`
	FitnessWeight      float64 `yaml:"fitness_weight"`
	FatigueTauDays     float64 `yaml:"fatigue_tau_days"`
	FatigueWeight      float64 `yaml:"fatigue_weight"`
	ReadinessEWMAAlpha float64 `yaml:"readiness_ewma_alpha"`
	MaxEWMAAlpha       float64 `yaml:"max_ewma_alpha"`
	MaxSigmaAlpha      float64 `yaml:"max_sigma_alpha"`
	InitialSigmaM      float64 `yaml:"initial_sigma_m"`
	ReadinessPredCoeff float64 `yaml:"readiness_pred_coeff"`
}

// Adaptation holds the §4.3 trend/plateau/deload/autoreg/overtraining
// constants.
type Adaptation struct {
	TrendWindowDays          int     `yaml:"trend_window_days"`
	PlateauSlopeThreshold    float64 `yaml:"plateau_slope_threshold"`
	DeloadReadinessZ         float64 `yaml:"deload_readiness_z"`
	DeloadComplianceMin      float64 `yaml:"deload_compliance_min"`
	UnderperformanceFraction float64 `yaml:"underperformance_fraction"`
	AutoregGateSessions      int     `yaml:"autoreg_gate_sessions"`
	AutoregLowZ              float64 `yaml:"autoreg_low_z"`
	AutoregHighZ             float64 `yaml:"autoreg_high_z"`
	AutoregLowSetFraction    float64 `yaml:"autoreg_low_set_fraction"`
	AutoregMinSets           int     `yaml:"autoreg_min_sets"`
	OvertrainingWindowDays   int     `yaml:"overtraining_window_days"`
	OvertrainingRestAddS     int     `yaml:"overtraining_rest_add_s"`
	ProgressionBaseRate      float64 `yaml:"progression_base_rate"`
	ProgressionMaxExtra      float64 `yaml:"progression_max_extra"`
	ProgressionExponent      float64 `yaml:"progression_exponent"`
	VolumeDeloadFraction     float64 `yaml:"volume_deload_fraction"`
	VolumeLowZFraction       float64 `yaml:"volume_low_z_fraction"`
	VolumeHighZFraction      float64 `yaml:"volume_high_z_fraction"`
	VolumeHighZComplianceMin float64 `yaml:"volume_high_z_compliance_min"`
	VolumeFloor              int    `yaml:"volume_floor"`
	VolumeCap                int    `yaml:"volume_cap"`
	ComplianceWindowWeeks    int    `yaml:"compliance_window_weeks"`
}

// MaxEstimator holds the §4.4 Track B constants.
type MaxEstimator struct {
	DefaultRestAssumedS float64            `yaml:"default_rest_assumed_s"`
	PCrRecoveryTable    map[float64]float64 `yaml:"pcr_recovery_table"`
	ReserveThreshold    float64            `yaml:"reserve_threshold"`
	ReserveCoefficient  float64            `yaml:"reserve_coefficient"`
	NuzzoTable          map[float64]float64 `yaml:"nuzzo_table"`
	RIREstimateScale    float64            `yaml:"rir_estimate_scale"`
}

// Planner holds the §4.5 schedule/prescription constants.
type Planner struct {
	AddedWeightRoundKg float64 `yaml:"added_weight_round_kg"`
	EnduranceKBase     float64 `yaml:"endurance_k_base"`
	EnduranceKMax      float64 `yaml:"endurance_k_max"`
	EnduranceTMRefLow  float64 `yaml:"endurance_tm_ref_low"`
	EnduranceTMRefSpan float64 `yaml:"endurance_tm_ref_span"`
	EnduranceMinSetReps int    `yaml:"endurance_min_set_reps"`
	AdaptiveRestLowRIRAddS   int     `yaml:"adaptive_rest_low_rir_add_s"`
	AdaptiveRestDropOffAddS  int     `yaml:"adaptive_rest_dropoff_add_s"`
	AdaptiveRestHighRIRSubS  int     `yaml:"adaptive_rest_high_rir_sub_s"`
	AdaptiveRestLowZAddS     int     `yaml:"adaptive_rest_low_z_add_s"`
	AdaptiveRestDropOffThreshold float64 `yaml:"adaptive_rest_dropoff_threshold"`
	AdaptiveRestHighRIRThreshold float64 `yaml:"adaptive_rest_high_rir_threshold"`
}

// Config is the fully resolved set of numeric knobs the core runs on.
type Config struct {
	Metrics      Metrics      `yaml:"metrics"`
	Physiology   Physiology   `yaml:"physiology"`
	Adaptation   Adaptation   `yaml:"adaptation"`
	MaxEstimator MaxEstimator `yaml:"max_estimator"`
	Planner      Planner      `yaml:"planner"`
}

// Load builds the resolved Config: bundled defaults deep-merged with the
// optional file at overridePath. A missing override file is not an error.
// A present-but-unparseable override file degrades to bundled defaults
// and returns a ConfigDegraded error alongside the usable Config so the
// caller can warn without aborting.
func Load(overridePath string) (Config, error) {
	cfg, err := loadBundled()
	if err != nil {
		// The bundled file is compiled in; a failure here is a packaging
		// bug, not a degraded runtime config, but there is nowhere safer
		// to fall back to than the zero value.
		return Config{}, bwerr.Inconsistent("bundled config defaults failed to parse", err)
	}

	if overridePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(overridePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, bwerr.ConfigDegraded(fmt.Sprintf("could not read config override %s, using bundled defaults", overridePath), err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		// Re-load a clean copy of the bundled defaults: a partially
		// applied bad overlay must not leak through.
		clean, loadErr := loadBundled()
		if loadErr != nil {
			return Config{}, bwerr.Inconsistent("bundled config defaults failed to parse", loadErr)
		}
		return clean, bwerr.ConfigDegraded(fmt.Sprintf("config override %s failed to parse, using bundled defaults", overridePath), err)
	}

	return cfg, nil
}

func loadBundled() (Config, error) {
	data, err := bundled.ReadFile("defaults.yaml")
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
