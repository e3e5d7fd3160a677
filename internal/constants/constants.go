package constants

import "time"

const (
	AppName            = "habitduel"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitduel/habitduel.db"
	DefaultConfigFile  = "~/.config/habitduel/config.yaml"
	ConnectionEnvVar   = "HABITDUEL_DB_CONNECTION"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitduel-"

	// LockfileSuffix is appended to the data file path for the single-writer lock
	LockfileSuffix = ".lock"

	// Points table
	PointsBaseComplete     = 10
	PointsReplacementBonus = 5
	PointsEarlyBonus       = 5
	PointsPerfectDayBonus  = 20

	// StreakMultiplier is applied to the streak going into a check-in and floored.
	StreakMultiplier = 0.5

	// FreezeCooldownDays is the whole-day gap required between two streak freezes.
	FreezeCooldownDays = 7

	// Challenge constants
	ChallengeBatchSize  = 3
	ChallengeWindowDays = 7

	// Battle constants
	BattleBonusPoints = 25
	BattleCutoffHour  = 22

	// ComebackGapDays is the minimum number of empty days before a check-in counts as a comeback.
	ComebackGapDays = 3

	// PerfectWeekDays is the run of consecutive perfect days that earns the perfect-week badge.
	PerfectWeekDays = 7

	// Day is a calendar day for whole-day arithmetic.
	Day = 24 * time.Hour
)

// DefaultAvatars and DefaultColors rotate for new users.
var (
	DefaultAvatars = []string{"👤", "👨", "👩", "🧑", "👦", "👧", "🦸", "🧙", "🥷", "👻"}
	DefaultColors  = []string{"#667eea", "#f093fb", "#4facfe", "#43e97b", "#fa709a", "#fee140", "#30cfd0", "#a8edea"}
)
