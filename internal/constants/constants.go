package constants

// Centralized constants for headers, env keys, routes and messages.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "POKEBATTLE_CONFIG"
	EnvDatabasePath        = "POKEBATTLE_DB"
	EnvLogLevel            = "LOG_LEVEL"

	DefaultConfigPath   = "config.yaml"
	DefaultDatabasePath = "pokebattle.db"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Session / Cookie names
	CookieSessionName = "pb_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteHealth             = "/health"
	RouteVersion            = "/version"
	RouteSpecies            = "/species"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RoutePlayerStats        = "/player-stats"
	RouteBattles            = "/battles"
	RouteBattleSimulate     = "/battles/simulate"
	RouteBattleByID         = "/battles/:battleID"
	RouteBattleMove         = "/battles/:battleID/move"
	RouteBattleHack         = "/battles/:battleID/hack"
	RouteBattleForfeit      = "/battles/:battleID/forfeit"
	RouteBattleStream       = "/battles/:battleID/ws"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
	JSONKeyCorrect = "correct"
	JSONKeyState   = "state"
	JSONKeyExpired = "expired"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrBattleNotFound         = "Battle not found"
	ErrFailedFetchSpecies     = "Failed to fetch species"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrEmailRequired          = "email is required"

	ErrFailedCreateBattle   = "Failed to create battle"
	ErrFailedSimulateBattle = "Failed to simulate battle"
	ErrNotYourTurn          = "Not your turn"
	ErrInvalidMoveIndex     = "Invalid move index"
	ErrNoActiveChallenge    = "No active hack challenge"
	ErrBattleFinished       = "Battle already finished"
	ErrChallengeActive      = "Answer the hack challenge first"
	ErrNotParticipant       = "Player not part of this battle"
	ErrEmptyRoster          = "Both rosters need at least one pokemon"
	ErrInvalidRoster        = "Roster references unknown species"
	ErrFailedUpgrade        = "Failed to open live stream"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldTurn     = "turn"
	LogFieldSide     = "side"
	LogFieldPlayer   = "player"
	LogFieldWinner   = "winner"
	LogFieldMode     = "mode"
	LogFieldSource   = "source"
	LogFieldKey      = "key"
	LogFieldCount    = "count"
	LogFieldAddr     = "addr"
)
