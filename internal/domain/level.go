package domain

// Level is a CEFR proficiency level used to bucket vocabulary by difficulty.
// The six levels are strictly ordered: A1 < A2 < B1 < B2 < C1 < C2.
type Level string

// The six CEFR levels, in ascending order of difficulty.
const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// levels holds all CEFR levels in ascending order. The slice index defines
// the ordering used by Next, Previous and Compare.
var levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// Levels returns all CEFR levels in ascending order.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// IsValid reports whether l is one of the six CEFR levels.
func (l Level) IsValid() bool {
	return l.index() >= 0
}

// index returns the position of l in the level ordering, or -1 if l is not
// a valid level.
func (l Level) index() int {
	for i, lv := range levels {
		if lv == l {
			return i
		}
	}
	return -1
}

// Next returns the level one tier above l. The second return value is false
// when l is already the highest level (C2) or invalid.
func (l Level) Next() (Level, bool) {
	i := l.index()
	if i < 0 || i >= len(levels)-1 {
		return "", false
	}
	return levels[i+1], true
}

// Previous returns the level one tier below l. The second return value is
// false when l is already the lowest level (A1) or invalid.
func (l Level) Previous() (Level, bool) {
	i := l.index()
	if i <= 0 {
		return "", false
	}
	return levels[i-1], true
}

// Compare returns -1, 0 or 1 as l is ordered before, equal to, or after other.
// Invalid levels order before all valid ones.
func (l Level) Compare(other Level) int {
	li, oi := l.index(), other.index()
	switch {
	case li < oi:
		return -1
	case li > oi:
		return 1
	default:
		return 0
	}
}

// levelNames maps each level to its conventional English name. The domain of
// the map is closed, so a plain map lookup is sufficient.
var levelNames = map[Level]string{
	LevelA1: "Beginner",
	LevelA2: "Elementary",
	LevelB1: "Intermediate",
	LevelB2: "Upper Intermediate",
	LevelC1: "Advanced",
	LevelC2: "Proficiency",
}

// Name returns the conventional English name of the level, or an empty
// string for an invalid level.
func (l Level) Name() string {
	return levelNames[l]
}
