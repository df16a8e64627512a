package srs

// Params defines all configurable parameters for the SM-2 scheduling algorithm.
type Params struct {
	// Core limits
	InitialEaseFactor float64
	MinEaseFactor     float64

	// QualityThreshold is the lowest quality rating that counts as a
	// successful recall. Ratings below it reset the repetition streak.
	QualityThreshold int

	// Intervals (in days) for the first and second qualifying reviews.
	// Later intervals grow by the ease factor.
	InitialInterval int
	SecondInterval  int

	// EaseFactorAdjustment maps each quality rating 0-5 to the delta applied
	// to the ease factor on a qualifying review. The domain is small and
	// closed, so a fixed array indexed by quality replaces a lookup table.
	EaseFactorAdjustment [6]float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero-valued fields keep the defaults.
type ParamsConfig struct {
	InitialEaseFactor float64
	MinEaseFactor     float64
	QualityThreshold  int
	InitialInterval   int
	SecondInterval    int
}

// NewDefaultParams creates a new Params instance with the standard SM-2
// values used by the vocabulary app.
func NewDefaultParams() *Params {
	return &Params{
		InitialEaseFactor: 2.5,
		MinEaseFactor:     1.3,
		QualityThreshold:  3,
		InitialInterval:   1,
		SecondInterval:    6,

		// Indexed by quality rating. Only ratings at or above the threshold
		// reach the adjustment on the qualifying branch, but the full table
		// is kept so the mapping stays in one place.
		EaseFactorAdjustment: [6]float64{
			-0.20, // 0: complete blackout
			-0.20, // 1: incorrect, answer felt familiar
			-0.14, // 2: incorrect, answer seemed easy to recall
			-0.14, // 3: correct with difficulty
			0.00,  // 4: correct after hesitation
			0.10,  // 5: perfect response
		},
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.InitialEaseFactor > 0 {
		params.InitialEaseFactor = config.InitialEaseFactor
	}
	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.QualityThreshold > 0 {
		params.QualityThreshold = config.QualityThreshold
	}
	if config.InitialInterval > 0 {
		params.InitialInterval = config.InitialInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}

	return params
}
