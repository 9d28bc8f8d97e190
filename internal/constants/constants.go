package constants

// Centralized constants for env keys, routes, response keys and log fields.
const (
	// Environment variable keys
	EnvAddr       = "PROGRESSION_ADDR"
	EnvDBPath     = "PROGRESSION_DB"
	EnvConfigPath = "PROGRESSION_CONFIG"
	EnvSeed       = "PROGRESSION_SEED"
)

// Routes used by the backend router
const (
	RouteHealth        = "/healthz"
	RouteAPIPrefix     = "/api"
	RouteVersion       = "/version"
	RoutePlayerByID    = "/players/:playerID"
	RoutePlayerSeed    = "/players/:playerID/seed"
	RouteTeamStrength  = "/teams/:teamID/strength"
	RouteMatchComplete = "/matches/:matchID/complete"
	ParamPlayerID      = "playerID"
	ParamTeamID        = "teamID"
	ParamMatchID       = "matchID"
	QueryUserTeamID    = "user_team_id"
	QueryUserPlayerID  = "user_player_id"
)

// Common JSON response keys
const (
	JSONKeyError  = "error"
	JSONKeyStatus = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidPlayerID        = "Invalid player ID"
	ErrInvalidTeamID          = "Invalid team ID"
	ErrInvalidMatchID         = "Invalid match ID"
	ErrPlayerNotFound         = "Player not found"
	ErrTeamNotFound           = "Team not found"
	ErrMatchNotFound          = "Match not found"
	ErrMatchNotCompleted      = "Match is not completed"
	ErrMatchAlreadyProcessed  = "Match progression already applied"
	ErrFailedApplyProgression = "Failed to apply progression"
	ErrFailedSeedPlayer       = "Failed to seed player"
	ErrFailedFetchPlayer      = "Failed to fetch player"
	ErrFailedComputeStrength  = "Failed to compute team strength"
	ErrFailedGenerateSeed     = "Failed to generate random seed"
)

// Logging field names
const (
	LogFieldMatchID      = "match_id"
	LogFieldPlayerID     = "player_id"
	LogFieldTeamID       = "team_id"
	LogFieldHomeTeamID   = "home_team_id"
	LogFieldAwayTeamID   = "away_team_id"
	LogFieldExpectedHome = "expected_home"
	LogFieldActualHome   = "actual_home"
	LogFieldTeamDelta    = "team_delta"
	LogFieldUpdates      = "updates"
	LogFieldPlayers      = "players"
	LogFieldReason       = "reason"
	LogFieldSeedXP       = "seed_xp"
	LogFieldKD           = "kd"
	LogFieldAddr         = "addr"
	LogFieldDBPath       = "db_path"
	LogFieldConfigPath   = "config_path"
)
