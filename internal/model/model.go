// Package model holds the data types shared across the planning core:
// exercise configuration, logged and prescribed sets, sessions, plans,
// the merged timeline, and the fitness-fatigue state.
package model

import "time"

// SessionType is a closed enum: strength, hypertrophy, endurance,
// technique, a max-effort test, or a rest day.
type SessionType string

const (
	Strength    SessionType = "S"
	Hypertrophy SessionType = "H"
	Endurance   SessionType = "E"
	Technique   SessionType = "T"
	Test        SessionType = "TEST"
	Rest        SessionType = "REST"
)

// Status is a closed enum describing how a TimelineEntry relates to
// history and the freshly computed plan.
type Status string

const (
	StatusDone    Status = "done"
	StatusRested  Status = "rested"
	StatusMissed  Status = "missed"
	StatusNext    Status = "next"
	StatusPlanned Status = "planned"
	StatusExtra   Status = "extra"
)

// LoadType distinguishes exercises that add external weight to bodyweight
// from exercises that load with external weight only.
type LoadType string

const (
	LoadBWPlusExternal LoadType = "bw_plus_external"
	LoadExternalOnly   LoadType = "external_only"
)

// TargetMetric is the unit a user's long-range goal is expressed in.
type TargetMetric string

const (
	TargetMaxReps TargetMetric = "max_reps"
	Target1RMKg   TargetMetric = "1rm_kg"
)

// SessionTypeParams bounds the rep/set/rest envelope for one session type
// of one exercise. See spec §3.
type SessionTypeParams struct {
	RepsFractionLow  float64
	RepsFractionHigh float64
	RepsMin          int
	RepsMax          int
	SetsMin          int
	SetsMax          int
	RestMin          int
	RestMax          int
	RIRTarget        float64
}

// Exercise is the immutable configuration for one bodyweight exercise.
type Exercise struct {
	ID                  string
	Name                string
	MuscleGroup         string
	BWFraction          float64
	LoadType            LoadType
	Variants            []string
	PrimaryVariant      string
	VariantStressFactor map[string]float64
	HasVariantRotation  bool
	GripCycles          map[SessionType][]string
	SessionParams       map[SessionType]SessionTypeParams
	TargetMetric        TargetMetric
	TargetValue          float64
	TestFrequencyWeeks  int
	OneRMIncludesBW     bool

	WeightIncrementFraction float64
	WeightTMThreshold       float64
	MaxAddedWeightKg        float64
}

// CompletedSet is one set as actually performed.
type CompletedSet struct {
	Reps     int
	WeightKg float64
	RestS    int
	RIR      *int // nil when not reported
}

// PlannedSet is one set as prescribed.
type PlannedSet struct {
	Reps     int
	WeightKg float64
	RestS    int
}

// EquipmentSnapshot is opaque to the core; the CLI attaches whatever it
// wants (a bench height, a band color, ...) tagged with a revision id.
type EquipmentSnapshot struct {
	RevisionID string
	Data       map[string]string
}

// SessionResult is a logged training session. HistoryID is the 1-based
// sequence position assigned by the store; zero means "not yet stored".
type SessionResult struct {
	HistoryID   int
	Date        time.Time
	ExerciseID  string
	SessionType SessionType
	Variant     string
	BodyweightKg float64
	Sets        []CompletedSet
	Equipment   *EquipmentSnapshot
	// PlannedSets is frozen at log time; nothing in the engine mutates
	// it afterward (invariant 1, spec §3).
	PlannedSets []PlannedSet
	Notes       string
	RIR         *int
}

// SessionPlan is an ephemeral, freshly computed prescription for one
// future or hypothetical session.
type SessionPlan struct {
	Date         time.Time
	ExerciseID   string
	SessionType  SessionType
	Variant      string
	ExpectedTM   int
	WeekNumber   int
	PlannedSets  []PlannedSet
}

// MaxEstimatePair is the between-test Track B max estimate (§4.4).
type MaxEstimatePair struct {
	FIEstimate float64
	NZEstimate float64
}

// TimelineEntry is one row of the merged past/future view (§4.6).
type TimelineEntry struct {
	Date        time.Time
	SessionType SessionType
	Variant     string
	Status      Status
	Actual      *SessionResult
	Prescribed  []PlannedSet
	ExpectedTM  int
	WeekNumber  int
	HistoryID   *int
	TrackBMax   *MaxEstimatePair
}

// FitnessFatigueState is the two-timescale impulse-response state plus
// the EWMA max estimator, rebuilt from scratch each invocation.
type FitnessFatigueState struct {
	Fitness  float64
	Fatigue  float64
	MHat     float64
	SigmaM2  float64
	ReadinessMean float64
	ReadinessVar  float64
	UpdateCount   int
	LastUpdate    time.Time
	HasLastUpdate bool
}

// UserProfile holds per-user settings (§3).
type UserProfile struct {
	HeightCm          float64
	Sex               string
	BodyweightKg      float64
	DefaultDaysPerWeek int
	ExerciseDaysPerWeek map[string]int
	TargetMaxReps      int
	EnabledExercises   []string
	PlanStartDate      map[string]time.Time
	RestPreference     string
	InjuryNotes        string
	BaselineMax        map[string]float64
}

// DaysPerWeek resolves the effective schedule density for one exercise,
// falling back to the profile default.
func (p *UserProfile) DaysPerWeek(exerciseID string) int {
	if p.ExerciseDaysPerWeek != nil {
		if d, ok := p.ExerciseDaysPerWeek[exerciseID]; ok {
			return d
		}
	}
	return p.DefaultDaysPerWeek
}
