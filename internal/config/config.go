package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// StudyConfig contains the defaults for daily study-set composition.
// Per-request values override these.
type StudyConfig struct {
	// DailyGoal is the default number of words in a learner's daily set.
	DailyGoal int `mapstructure:"daily_goal" validate:"required,gt=0,lte=100"`

	// NewWordsRatio is the share of the daily goal reserved for new words;
	// the remainder is the review quota.
	NewWordsRatio float64 `mapstructure:"new_words_ratio" validate:"gte=0,lte=1"`
}
