package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Watchface"
	AppID             = "com.github.tartampluch.go-watchface"
	KeyringService    = "com.github.tartampluch.go-watchface"
	KeyringTokenUser  = "snapshot_token"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDump         = "dump"
	FlagAt           = "at"
	FlagShape        = "shape"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescDump     = "Print the computed frame geometry as YAML and exit"
	FlagDescAt       = "Wall-clock time (HH:MM:SS) used by -dump instead of now"
	FlagDescShape    = "Display shape used by -dump (round or rect)"
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
	AtLayout         = "15:04:05"
)

// -----------------------------------------------------------------------------
// Watchface Geometry
// -----------------------------------------------------------------------------

const (
	// PaddingRound and PaddingRect are subtracted from the display width
	// before halving it into the outer (hours) track radius.
	PaddingRound = 16
	PaddingRect  = 12

	// Track radii step inward from the hours track.
	MinutesTrackOffset = 10
	SecondsTrackOffset = 20

	TrackStroke = 2

	HoursHandRadius   = 4
	MinutesHandRadius = 3
	SecondsHandRadius = 2

	// DefaultArcDelta is the inset in degrees applied to both ends of every arc.
	DefaultArcDelta = 12

	DegreesPerRevolution = 360
	UnitsPerMinuteTrack  = 60
	UnitsPerHourTrack    = 12
	DegreesPerMinuteUnit = DegreesPerRevolution / UnitsPerMinuteTrack // 6
	DegreesPerHourUnit   = DegreesPerRevolution / UnitsPerHourTrack   // 30
	SubUnitsPerUnit      = 60

	// TrigMaxAngle is the device angle value equivalent to a full revolution.
	TrigMaxAngle = 0x10000

	// Pebble display sizes used as default window sizes.
	RectFaceWidth   = 144
	RectFaceHeight  = 168
	RoundFaceWidth  = 180
	RoundFaceHeight = 180

	// Digital readout metrics (font size, box height) per shape.
	ReadoutSizeRound   = 40
	ReadoutSizeRect    = 30
	ReadoutHeightRound = 45
	ReadoutHeightRect  = 36
	DateSizeRound      = 16
	DateSizeRect       = 14

	TickInterval     = 1 * time.Second
	TrayIconInterval = 1 * time.Minute

	// Layouts for the digital time readout.
	TimeLayout24h = "15:04"
	TimeLayout12h = "03:04"
	FormatDate    = "%s %02d"
)

// -----------------------------------------------------------------------------
// Display Shapes
// -----------------------------------------------------------------------------

const (
	ShapeRound   = "round"
	ShapeRect    = "rect"
	DefaultShape = ShapeRound
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 420

	// Preference Keys
	PrefLanguage      = "language"
	PrefShape         = "display_shape"
	PrefSweepMinutes  = "sweep_minutes"
	PrefSweepHours    = "sweep_hours"
	PrefShowDate      = "show_date"
	PrefUse24h        = "use_24h"
	PrefServerEnabled = "server_enabled"
	PrefServerPort    = "server_port"
	PrefLastRun       = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Geometry Window Constants
// -----------------------------------------------------------------------------

const (
	GeometryWinWidth  = 520
	GeometryWinHeight = 200

	// Table Column IDs
	ColIDTrack   = 0
	ColIDStart   = 1
	ColIDEnd     = 2
	ColIDDevice  = 3
	ColIDHand    = 4
	GeometryCols = 5

	ColWidthTrack  = 90
	ColWidthAngle  = 70
	ColWidthDevice = 140
	ColWidthHand   = 100

	TablePlaceholder = "Cell Content"
	FormatDegrees    = "%d°"
	FormatDevice     = "%d → %d"
	FormatPoint      = "(%d, %d)"
	LogMsgOpenWin    = "Opening geometry window"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinFace       = "win_face_title"
	TKeyWinGeometry   = "win_geometry_title"
	TKeyMenuShow      = "menu_show"
	TKeyMenuGeometry  = "menu_geometry"
	TKeyMenuSettings  = "menu_settings"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblShape      = "lbl_shape"
	TKeyShapeRound    = "shape_round"
	TKeyShapeRect     = "shape_rect"
	TKeyLblGeneral    = "lbl_general"
	TKeyLblMotion     = "lbl_motion"
	TKeyLblSweepMin   = "lbl_sweep_minutes"
	TKeyLblSweepHour  = "lbl_sweep_hours"
	TKeyLblShowDate   = "lbl_show_date"
	TKeyLblUse24h     = "lbl_use_24h"
	TKeyLblServer     = "lbl_server"
	TKeyLblServerOn   = "lbl_server_enabled"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyLblToken      = "lbl_token"
	TKeyHelpToken     = "help_token"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
	TKeyColTrack      = "col_track"
	TKeyColStart      = "col_start"
	TKeyColEnd        = "col_end"
	TKeyColDevice     = "col_device"
	TKeyColHand       = "col_hand"
	TKeyTrackHours    = "track_hours"
	TKeyTrackMinutes  = "track_minutes"
	TKeyTrackSeconds  = "track_seconds"
	TKeyErrPortReq    = "err_port_required"
	TKeyErrPortNum    = "err_port_number"
	TKeyErrPortRange  = "err_port_range"

	// Weekday abbreviations for the date readout, indexed by time.Weekday.
	TKeyDaySun = "day_sun"
	TKeyDayMon = "day_mon"
	TKeyDayTue = "day_tue"
	TKeyDayWed = "day_wed"
	TKeyDayThu = "day_thu"
	TKeyDayFri = "day_fri"
	TKeyDaySat = "day_sat"
)

// WeekdayKeys maps time.Weekday to its translation key.
var WeekdayKeys = [7]string{
	TKeyDaySun, TKeyDayMon, TKeyDayTue, TKeyDayWed, TKeyDayThu, TKeyDayFri, TKeyDaySat,
}

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultPort         = "18181"
	DefaultLanguage     = "en"
	DefaultSweepMinutes = false
	DefaultSweepHours   = false
	DefaultShowDate     = false
	DefaultUse24h       = true
	DefaultServerOn     = false
)

// -----------------------------------------------------------------------------
// Limits
// -----------------------------------------------------------------------------

const (
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "1"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	RouteFrameYAML     = "/frame.yaml"
	AddrSeparator      = ":"
	BearerPrefix       = "Bearer "
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAuthorization   = "Authorization"
	HeaderWWWAuthenticate = "WWW-Authenticate"
	HeaderFrameSeq        = "X-Frame-Sequence"

	MimePNG             = "image/png"
	MimeYAML            = "application/yaml; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	AuthChallenge       = `Bearer realm="go-watchface"`

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrPNGEncode        = "failed to encode face snapshot"
	ErrYAMLEncode       = "failed to encode frame report"
	ErrParseAt          = "invalid -at time, expected HH:MM:SS"
	ErrUnknownShape     = "unknown display shape"
	ErrTokenLoad        = "failed to read snapshot token from keyring"
	ErrTokenSave        = "failed to save snapshot token to keyring"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Watchface initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgUnauthorized = "Unauthorized"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	TitleStartupError = "Startup Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgWorkerStart    = "Tick worker started"
	MsgWorkerStop     = "Tick worker stopping due to context cancellation"
	MsgOptionsReload  = "Reloading face options"
	MsgTick           = "Tick"
	MsgRedraw         = "Redraw"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgServerDisabled = "Snapshot server disabled"
	MsgSnapshotUpdate = "Snapshot cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgTokenMissing   = "No snapshot token configured"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSettingsSaved  = "Saving preferences"
	MsgSettingsFocus  = "Settings window already open, requesting focus"
	MsgSettingsOpen   = "Opening settings window"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeyShape     = "shape"
	LogKeySweepMin  = "sweep_minutes"
	LogKeySweepHour = "sweep_hours"
	LogKeyHours     = "hours"
	LogKeyMinutes   = "minutes"
	LogKeySeconds   = "seconds"
	LogKeyStart     = "start"
	LogKeyEnd       = "end"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeySeq       = "seq"
	LogKeyWidth     = "width"
	LogKeyHeight    = "height"

	// Startup Info Keys
	LogKeyBuild     = "build"
	LogKeyApp       = "app"
	LogKeyVersion   = "version"
	LogKeyCommit    = "commit"
	LogKeyBuildDate = "build_date"
	LogKeyLastRun   = "last_run_version"
	LogKeyGoVer     = "go_version"
	LogKeyEnv       = "env"
	LogKeyOS        = "os"
	LogKeyArch      = "arch"
	LogKeyPID       = "pid"
	LogKeyFace      = "face"
	LogKeyShowDate  = "show_date"
	LogKeyUse24h    = "use_24h"
	LogKeyServer    = "server"
	LogKeyEnabled   = "enabled"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompFace    = "face"
	CompServer  = "server"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
	CompSampler = "sampler"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
