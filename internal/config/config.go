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

// UserAgent identifies the HTTP client used against a remote calendar converter.
var UserAgent = "Go-Saju/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Saju"
	AppID             = "com.github.tartampluch.go-saju"
	AppCommand        = "go-saju"
	KeyringService    = "com.github.tartampluch.go-saju"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	ConfigFileName    = "config.toml"
	CacheFileName     = "conversions.db"
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
	FlagConfig        = "config"
	FlagDebug         = "debug"
	FlagConverter     = "converter"
	FlagConverterURL  = "converter-url"
	FlagCache         = "cache"
	FlagName          = "name"
	FlagGender        = "gender"
	FlagDate          = "date"
	FlagCalendar      = "calendar"
	FlagLeap          = "leap"
	FlagTime          = "time"
	FlagPlace         = "place"
	FlagAsOf          = "as-of"
	FlagLang          = "lang"
	FlagFormat        = "format"
	FlagPort          = "port"
	FlagContentDir    = "content-dir"
	FlagDefaultGender = "default-gender"
	FlagWorkers       = "workers"
	FlagAccount       = "account"

	FlagDescConfig        = "Path to the TOML configuration file"
	FlagDescDebug         = "Enable debug logging to stdout"
	FlagDescConverter     = "Calendar converter: local (solar only) or remote"
	FlagDescConverterURL  = "Base URL of the remote calendar conversion service"
	FlagDescCache         = "Cache calendar conversions in SQLite"
	FlagDescName          = "Name of the person"
	FlagDescGender        = "Gender: male or female"
	FlagDescDate          = "Birth date as YYYY-MM-DD in the chosen calendar"
	FlagDescCalendar      = "Calendar system of --date: solar or lunar"
	FlagDescLeap          = "The lunar month is a leap month"
	FlagDescTime          = "Birth time slot (자시..해시), empty when unknown"
	FlagDescPlace         = "Birth place (informational only)"
	FlagDescAsOf          = "Reference year for luck cycles (default: current year)"
	FlagDescLang          = "Narrative language (ko, en)"
	FlagDescFormat        = "Output format: json or text"
	FlagDescPort          = "HTTP port to listen on"
	FlagDescContentDir    = "Directory with narrative YAML overrides (reloaded on SIGHUP)"
	FlagDescDefaultGender = "Gender used for cards without a GENDER property"
	FlagDescWorkers       = "Number of profiles computed in parallel"
	FlagDescAccount       = "Keyring account holding the converter API token"

	MsgVersionOutput = "%s version %s (%s/%s) commit %s built %s\n"
	MsgTokenPrompt   = "API token: "
	MsgTokenSaved    = "Token stored in the system keyring."
	MsgTokenCleared  = "Token removed from the system keyring."
	MsgCacheCleared  = "Removed %d cached conversions.\n"
	MsgCacheStats    = "%d cached conversions in %s\n"
	MsgImportFailed  = "%s: %v\n"

	CmdCompute    = "compute"
	CmdServe      = "serve"
	CmdImport     = "import FILE.vcf"
	CmdToken      = "token"
	CmdTokenSet   = "set"
	CmdTokenClear = "clear"
	CmdCache      = "cache"
	CmdCacheStats = "stats"
	CmdCacheClear = "clear"
	CmdVersion    = "version"

	CmdDescRoot       = "Four Pillars (saju) profiles from a birth date"
	CmdDescCompute    = "Compute one profile and print it"
	CmdDescServe      = "Serve profiles over HTTP"
	CmdDescImport     = "Compute profiles for every contact of a vCard file (- for stdin)"
	CmdDescToken      = "Manage the converter API token"
	CmdDescTokenSet   = "Store the converter API token in the system keyring"
	CmdDescTokenClear = "Remove the converter API token from the system keyring"
	CmdDescCache      = "Inspect the conversion cache"
	CmdDescCacheStats = "Show the number of cached conversions"
	CmdDescCacheClear = "Remove every cached conversion"
	CmdDescVersion    = "Print version information"

	ArgStdin   = "-"
	JSONIndent = "  "
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	ConverterModeLocal  = "local"
	ConverterModeRemote = "remote"
	FormatJSON          = "json"
	FormatText          = "text"
	DefaultPort         = "18081"
	DefaultLanguage     = "ko"
	DefaultAccount      = "default"
	DefaultWorkers      = 4
	UIDSalt             = "go-saju-v1-" // Salt for deterministic UID generation

	// Accepted birth year range.
	MinBirthYear = 1900
	MaxBirthYear = 2100

	// Free text limits in runes.
	MaxNameLength  = 64
	MaxPlaceLength = 64

	// Lunar months never exceed 30 days.
	MaxLunarDay = 30

	// Element status thresholds in percent.
	ExcessThreshold    = 40
	DeficientThreshold = 10

	// Daeun start ages. A calendrically exact engine derives this from the solar terms.
	DaeunStartAgeMale   = 8
	DaeunStartAgeFemale = 7
	DaeunPeriods        = 8
	DaeunSpan           = 10

	// Seun ratings at or above this value mark a lucky month.
	LuckyMonthRating = 4
	MonthsPerYear    = 12
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	FormatDate        = "%04d-%02d-%02d"
	FormatYearRange   = "%d-%d"
	FormatCacheKey    = "%s|%04d-%02d-%02d|leap=%t|hour=%s"
	FormatCacheNS     = "%s#%s" // Requires namespace, moment key
	FormatRemoteNS    = "%s@%s" // Requires mode, converter URL
	FormatHashInput   = "%s|%s|%s|%d|%s"
	FormatUID         = "%s-%d@%s"
	UIDHashLength     = 16
	UnknownPillarText = "??"
	UnknownPillarPart = "?"
	ColorSeparator    = "/"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Saju//Engine//EN"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gosaju"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	EventKindDaeun = "daeun"
	EventKindMonth = "month"

	VCardBirthplace  = "BIRTHPLACE"
	VCardXBirthplace = "X-BIRTHPLACE"
	VCardXCalendar   = "X-CALENDAR"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Narrative Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyContentVersion = "content_version"

	TKeyStarName = "star_%s_name" // Requires category code
	TKeyStarDesc = "star_%s_desc"

	TKeyDaeunFeature  = "daeun_feature_%d"  // 0..7
	TKeyDaeunAgeRange = "daeun_age_range"   // Requires Start, End
	TKeySeunFirst     = "seun_first_half"
	TKeySeunSecond    = "seun_second_half"
	TKeySeunMonth     = "seun_month_%d"     // 1..12
	TKeyLuckyDay      = "lucky_day"
	TKeyFortuneTitle  = "fortune_%s_title"  // Requires category code
	TKeyFortuneIcon   = "fortune_%s_icon"
	TKeyFortuneSum    = "fortune_%s_summary"
	TKeyFortuneDetail = "fortune_%s_detail_%d" // 1..3
	TKeyFortuneAdvice = "fortune_%s_advice"
	TKeyTipCategory   = "tip_%s_category" // Requires tip group code
	TKeyTipItem       = "tip_%s_item_%d"  // 1..3, templated with Color and Direction

	TKeyICalName      = "ical_calendar_name"
	TKeyICalDaeun     = "ical_daeun_summary" // Requires Ganji, AgeRange
	TKeyICalMonth     = "ical_month_summary" // Requires Year, Month, Rating
	TKeyICalMonthDesc = "ical_month_description" // Requires Text

	TKeyReportTitle   = "report_title" // Requires Name
	TKeyReportPillars = "report_pillars"
	TKeyReportLabels  = "report_pillar_labels"
	TKeyReportElems   = "report_elements"
	TKeyReportYongsin = "report_yongsin"
	TKeyReportUseful  = "report_yongsin_line" // Requires Useful, Favorable, Unfavorable
	TKeyReportLucky   = "report_lucky_line"   // Requires Direction, Color
	TKeyReportDaeun   = "report_daeun"
	TKeyReportSeun    = "report_seun"         // Requires Year, Ganji
	TKeyReportMonths  = "report_lucky_months" // Requires Months

	FortuneDetails = 3
	TipItems       = 3
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout              = 15 * time.Second
	ShutdownTimeout          = 5 * time.Second
	ServerReadTimeout        = 10 * time.Second
	ServerWriteTimeout       = 30 * time.Second
	ServerIdleTimeout        = 60 * time.Second
	MaxRequestBodySize       = 64 * 1024
	MaxConverterResponseSize = 64 * 1024
	AllowedMethodsProfile    = "GET, HEAD, POST"
	AllowedMethodsRead       = "GET, HEAD"
	SchemeHTTP               = "http"
	SchemeHTTPS              = "https"
	RouteProfile             = "/api/profile"
	RouteProfileICS          = "/api/profile.ics"
	RouteHealth              = "/healthz"
	RouteConvert             = "convert"
	AddrSeparator            = ":"
	BearerPrefix             = "Bearer "

	QueryYear     = "year"
	QueryMonth    = "month"
	QueryDay      = "day"
	QueryCalendar = "calendar"
	QueryLeap     = "leap"
	QueryHour     = "hour"
	QueryAsOfYear = "asOfYear"
	QueryLang     = "lang"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderContentLanguage = "Content-Language"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderAcceptLanguage  = "Accept-Language"
	HeaderAuthorization   = "Authorization"
	HeaderAccept          = "Accept"
	HeaderRequestID       = "X-Request-ID"

	MimeJSON            = "application/json; charset=utf-8"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`

	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
	HealthBody    = "ok"
)

// -----------------------------------------------------------------------------
// Validation Fields & Reasons
// -----------------------------------------------------------------------------

const (
	FieldName      = "name"
	FieldGender    = "gender"
	FieldCalendar  = "calendarType"
	FieldLeapMonth = "isLeapMonth"
	FieldBirthDate = "birthDate"
	FieldBirthTime = "birthTime"
	FieldPlace     = "birthPlace"
	FieldAsOfYear  = "asOfYear"
	FieldBody      = "body"

	ReasonRequired    = "is required"
	ReasonTooLong     = "is too long"
	ReasonUnknown     = "has an unsupported value"
	ReasonBadFormat   = "must be formatted as YYYY-MM-DD"
	ReasonYearRange   = "year is outside the supported range"
	ReasonNoSuchDay   = "is not a valid calendar day"
	ReasonLeapSolar   = "is only valid for lunar dates"
	ReasonNotInteger  = "must be an integer"
	ReasonNotBoolean  = "must be true or false"
	ReasonMalformed   = "is not valid JSON"
	ReasonNonPositive = "must be positive"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidInput      = "invalid input"
	ErrConversion        = "calendar conversion failed"
	ErrInvariant         = "internal invariant violated"
	ErrPillarText        = "unexpected pillar text"
	ErrPillarParity      = "stem and branch polarity differ"
	ErrLunarUnsupported  = "the local converter only resolves solar dates"
	ErrConverterStatus   = "converter returned unexpected status"
	ErrConverterRejected = "converter rejected the date"
	ErrConverterDecode   = "failed to decode converter response"
	ErrConverterIncomp   = "converter response is missing pillars"
	ErrConverterNotSet   = "configuration error: converter URL is empty"
	ErrModeUnsupport     = "configuration error: unsupported converter mode"
	ErrInvalidURL        = "invalid URL structure"
	ErrProtocol          = "unsupported protocol scheme (http/https only)"
	ErrServerStartup     = "server startup failed"
	ErrServerShutdown    = "server shutdown failed"
	ErrPortRequired      = "server port is required"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrDateParse         = "unable to parse date"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrAppFailed         = "application failed unexpectedly"
	ErrWriteResp         = "failed to write response body"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrConfigPath        = "config path is empty"
	ErrConfigStat        = "failed to stat config"
	ErrConfigDecode      = "failed to decode config"
	ErrStoreOpen         = "failed to open conversion cache"
	ErrStoreMigrate      = "failed to migrate conversion cache"
	ErrStoreQuery        = "conversion cache query failed"
	ErrKeyring           = "keyring access failed"
	ErrTokenEmpty        = "token is empty"
	ErrReadToken         = "failed to read token"
	ErrVCardRead         = "failed to read vCard stream"
	ErrOpenInput         = "failed to open input"
	ErrFormatUnsupport   = "unsupported output format"
	ErrWorkers           = "workers must be positive"
	ErrBatch             = "batch computation aborted"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgUpstream     = "Calendar conversion service unavailable"
	HTTPMsgTimeout      = "Calendar conversion timed out"
	HTTPMsgCanceled     = "Request canceled"

	// StatusClientClosed is the nginx convention for a client that went away.
	StatusClientClosed = 499
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgRequestServed  = "Request served"
	MsgProfileBuilt   = "Profile assembled"
	MsgProfileFailed  = "Profile assembly failed"
	MsgRequestAborted = "Request aborted before completion"
	MsgBatchDone      = "Batch computation finished"
	MsgConverting     = "Resolving pillars"
	MsgConverterCall  = "Calling remote converter"
	MsgCacheHit       = "Conversion cache hit"
	MsgCacheMiss      = "Conversion cache miss"
	MsgCacheFailed    = "Conversion cache unavailable, continuing without it"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping card without usable birth date"
	MsgSkippedGender  = "Skipping card without gender"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgCatalogReload  = "Narrative catalog reloaded"
	MsgCatalogFailed  = "Narrative catalog reload failed, keeping previous content"
	MsgTransMissing   = "Missing translation key"
	MsgTokenMissing   = "No converter token in keyring (continuing unauthenticated)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgConfigFallback = "Config file not found, using defaults"
	MsgLangFallback   = "Requested language not available, using fallback"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyRequestID = "request_id"
	LogKeyCalendar  = "calendar"
	LogKeyAsOf      = "as_of_year"
	LogKeyUseful    = "yongsin"
	LogKeyDayStem   = "day_stem"
	LogKeyCount     = "count"
	LogKeyFailed    = "failed"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyVersion   = "version"
	LogKeyDir       = "dir"
	LogKeyLangs     = "languages"
	LogKeyFallback  = "fallback"

	// Startup Info Keys
	LogKeyBuild = "build"
	LogKeyApp   = "app"
	LogKeyGoVer = "go_version"
	LogKeyEnv   = "env"
	LogKeyOS    = "os"
	LogKeyArch  = "arch"
	LogKeyPID   = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain      = "main"
	CompEngine    = "engine"
	CompServer    = "server"
	CompConverter = "converter"
	CompCache     = "cache"
	CompI18n      = "i18n"
	CompImport    = "import"
	CompConfig    = "config"
)
