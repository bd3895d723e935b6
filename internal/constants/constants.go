package constants

// Centralized constants for the mGBA-http API, routes and response keys.
const (
	// mGBA-http endpoints (v0.8.1)
	MgbaCurrentFramePath = "/Core/CurrentFrame"
	MgbaGameCodePath     = "/Core/GetGameCode"
	MgbaRead8Path        = "/Core/Read8"
	MgbaWrite8Path       = "/Core/Write8"
	MgbaButtonTapPath    = "/Mgba-Http/Button/Tap"
	MgbaScreenshotPath   = "/core/screenshot"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypePNG = "image/png"

	// Authorization prefix
	BearerPrefix = "Bearer "
)

// Routes used by the bridge router
const (
	RouteAPIPrefix    = "/api"
	RouteStatus       = "/status"
	RouteBattle       = "/battle"
	RouteBattlePlayer = "/battle/player"
	RouteBattleEnemy  = "/battle/enemy"
	RouteBattleAttack = "/battle/attack"
	RouteBattleSwitch = "/battle/switch"
	RouteParty        = "/party"
	RouteScreenshot   = "/screenshot"
	RouteHistory      = "/history"
	RouteEncounters   = "/encounters"
	RouteEvents       = "/events"
	RouteVersion      = "/version"
)

// Common JSON response keys
const (
	JSONKeyError = "error"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrNotInBattle         = "Not currently in a battle"
	ErrNoActivePokemon     = "No active Pokemon found"
	ErrNoEnemyPokemon      = "No enemy Pokemon found"
	ErrActionInFlight      = "Another action is still resolving"
	ErrEmulatorUnreachable = "Emulator transport failure"
	ErrFailedReadState     = "Failed to read battle state"
	ErrFailedScreenshot    = "Failed to capture screenshot"
	ErrFailedFetchHistory  = "Failed to fetch turn history"
	ErrAuthRequired        = "Authentication required"
	ErrInvalidToken        = "Invalid token"
)

// Logging field names
const (
	LogFieldAddr      = "addr"
	LogFieldMgbaURL   = "mgba_url"
	LogFieldAction    = "action"
	LogFieldMoveSlot  = "move_slot"
	LogFieldSlot      = "party_slot"
	LogFieldTurnUUID  = "turn_uuid"
	LogFieldKind      = "battle_kind"
	LogFieldEncounter = "encounter_uuid"
)
