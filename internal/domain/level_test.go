package domain

import "testing"

func TestLevelOrdering(t *testing.T) {
	all := Levels()

	if len(all) != 6 {
		t.Fatalf("Expected 6 levels, got %d", len(all))
	}

	for i := 1; i < len(all); i++ {
		if all[i-1].Compare(all[i]) != -1 {
			t.Errorf("Expected %s to order before %s", all[i-1], all[i])
		}
	}
}

func TestLevelNext(t *testing.T) {
	testCases := []struct {
		level    Level
		expected Level
		ok       bool
	}{
		{LevelA1, LevelA2, true},
		{LevelB2, LevelC1, true},
		{LevelC2, "", false},
		{Level("X9"), "", false},
	}

	for _, tc := range testCases {
		next, ok := tc.level.Next()
		if ok != tc.ok || next != tc.expected {
			t.Errorf("%s.Next() = (%s, %v), expected (%s, %v)",
				tc.level, next, ok, tc.expected, tc.ok)
		}
	}
}

func TestLevelPrevious(t *testing.T) {
	testCases := []struct {
		level    Level
		expected Level
		ok       bool
	}{
		{LevelC2, LevelC1, true},
		{LevelA2, LevelA1, true},
		{LevelA1, "", false},
		{Level("X9"), "", false},
	}

	for _, tc := range testCases {
		prev, ok := tc.level.Previous()
		if ok != tc.ok || prev != tc.expected {
			t.Errorf("%s.Previous() = (%s, %v), expected (%s, %v)",
				tc.level, prev, ok, tc.expected, tc.ok)
		}
	}
}

func TestLevelIsValid(t *testing.T) {
	for _, level := range Levels() {
		if !level.IsValid() {
			t.Errorf("Expected %s to be valid", level)
		}
	}

	for _, invalid := range []Level{"", "a1", "D1", "A3"} {
		if invalid.IsValid() {
			t.Errorf("Expected %q to be invalid", invalid)
		}
	}
}

func TestLevelName(t *testing.T) {
	if LevelA1.Name() != "Beginner" {
		t.Errorf("Expected A1 name Beginner, got %q", LevelA1.Name())
	}
	if Level("X9").Name() != "" {
		t.Error("Expected empty name for invalid level")
	}
}
