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
	AppName         = "Go Addressbook"
	AppID           = "com.github.tartampluch.go-addressbook"
	BinaryName      = "go-addressbook"
	LogFileName     = "app.log"
	DataFileName    = "addressbook.vcf"
	ConfigFileName  = "config"
	ConfigFileType  = "yaml"
	EnvPrefix       = "GOADDRESSBOOK"
	EnvKeySeparator = "_"
	KeySeparator    = "."
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
	// Used for the address book and logs, both hold personal data.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// TempFilePattern names the scratch file used for atomic saves.
	TempFilePattern = ".addressbook-*.tmp"
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig      = "config"
	FlagConfigShort = "c"
	FlagData        = "data"
	FlagDebug       = "debug"
	FlagDays        = "days"
	FlagOut         = "out"

	FlagDescConfig = "Path to a YAML configuration file"
	FlagDescData   = "Path to the address book file (overrides data_file)"
	FlagDescDebug  = "Enable debug logging (also mirrored to stderr)"
	FlagDescDays   = "Number of days to look ahead (defaults to birthdays.window_days)"
	FlagDescOut    = "Destination of the generated .ics file"

	CmdShort          = "Personal address book with birthday reminders"
	CmdLong           = "Interactive assistant that stores contacts, phone numbers and birthdays, and tells you whom to congratulate in the coming days."
	CmdBirthdaysUse   = "birthdays"
	CmdBirthdaysShort = "Print upcoming birthdays and exit"
	CmdExportUse      = "export-calendar"
	CmdExportShort    = "Write upcoming birthdays to an iCalendar file and exit"

	MsgVersionTemplate = "{{.Name}} version {{.Version}}\n"
	MsgVersionOutput   = "%s (commit %s, built %s, %s/%s)"
)

// -----------------------------------------------------------------------------
// Settings Keys & Defaults
// -----------------------------------------------------------------------------

const (
	SettingDataFile      = "data_file"
	SettingLanguage      = "language"
	SettingWindowDays    = "birthdays.window_days"
	SettingReminder      = "birthdays.reminder"
	SettingLogFile       = "log.file"
	SettingLogLevel      = "log.level"
	SettingLogMaxSizeMB  = "log.max_size_mb"
	SettingLogMaxBackups = "log.max_backups"
	SettingLogCompress   = "log.compress"
	DefaultLanguage      = "en"
	DefaultWindowDays    = 7
	MaxWindowDays        = 366
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 5
	DefaultLogMaxBackups = 3
	LogLevelDebug        = "debug"
	LogLevelInfo         = "info"
	LogLevelWarn         = "warn"
	LogLevelError        = "error"
	FallbackDataFile     = DataFileName
	ISOPeriodPrefix      = "P"
)

// SupportedLanguages defines the list of available message catalogues (ISO 639-1).
var SupportedLanguages = []string{"en", "uk"}

// -----------------------------------------------------------------------------
// Domain Formats
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the only accepted user-facing date layout (DD.MM.YYYY).
	DateFormatBirthday = "02.01.2006"

	// Layouts accepted for vCard BDAY values.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// PhonePattern matches exactly ten ASCII digits.
	PhonePattern = `^[0-9]{10}$`

	PhoneSeparator   = "; "
	BirthdayUnset    = "not set"
	FormatRecordLine = "Contact name: %s, birthday: %s, phones: %s"
	RecordSeparator  = "\n"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Addressbook//Birthdays//EN"
	ICalCalName   = "Upcoming Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goaddressbook"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	FormatUID           = "%s@%s"
	FormatEventUIDInput = "%s|%s"
	FallbackSummary     = "Birthday: %s"
	FormatEventShifted  = "Birthday on %s, moved off the weekend."
	FileExtICS          = ".ics"
	DefaultCalendarFile = "birthdays" + FileExtICS

	MaxImportSize int64 = 64 * 1024 * 1024

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Assistant Commands
// -----------------------------------------------------------------------------

const (
	CmdHello           = "hello"
	CmdHelp            = "help"
	CmdAddContact      = "add-contact"
	CmdAddContactAlias = "add"
	CmdChangePhone     = "change-phone"
	CmdChangeAlias     = "change"
	CmdRemovePhone     = "remove-phone"
	CmdDeleteContact   = "delete-contact"
	CmdDeleteAlias     = "delete"
	CmdShowPhone       = "show-phone"
	CmdShowPhoneAlias  = "phone"
	CmdShowAll         = "show-all"
	CmdShowAllAlias    = "all"
	CmdAddBirthday     = "add-birthday"
	CmdShowBirthday    = "show-birthday"
	CmdUpcoming        = "list-upcoming-birthdays"
	CmdUpcomingAlias   = "birthdays"
	CmdExportCalendar  = "export-calendar"
	CmdImport          = "import"
	CmdClose           = "close"
	CmdExit            = "exit"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "msg_welcome"
	TKeyPrompt           = "msg_prompt"
	TKeyHello            = "msg_hello"
	TKeyHelp             = "msg_help"
	TKeyGoodbye          = "msg_goodbye"
	TKeyContactAdded     = "msg_contact_added"
	TKeyContactUpdated   = "msg_contact_updated"
	TKeyContactDeleted   = "msg_contact_deleted"
	TKeyPhoneChanged     = "msg_phone_changed"
	TKeyPhoneRemoved     = "msg_phone_removed"
	TKeyNoPhones         = "msg_no_phones" // Requires Name
	TKeyBirthdayAdded    = "msg_birthday_added"
	TKeyBirthdayUnset    = "msg_birthday_unset" // Requires Name
	TKeyBookEmpty        = "msg_book_empty"
	TKeyNoUpcoming       = "msg_no_upcoming"       // Requires Days
	TKeyUpcomingLine     = "msg_upcoming_line"     // Requires Name, Date
	TKeyCalendarExported = "msg_calendar_exported" // Requires Count, Path
	TKeyContactsImported = "msg_contacts_imported" // Requires Added, Skipped, Dropped
	TKeyUnknownCommand   = "msg_unknown_command"
	TKeyInvalidCommand   = "err_invalid_command" // Requires Error
	TKeyUnexpectedError  = "err_unexpected"      // Requires Error
	TKeyEventSummary     = "event_summary"       // Requires Name

	LocalesDir    = "locales"
	LocalePrefix  = "active."
	LocaleSuffix  = ".json"
	LocaleFormat  = "json"
	LocaleComment = "_"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrConfigRead      = "failed to read config"
	ErrConfigUnmarshal = "failed to unmarshal config"
	ErrConfigInvalid   = "invalid config"
	ErrLanguage        = "unsupported language"
	ErrWindowRange     = "birthdays.window_days must be between 0 and 366"
	ErrReminderFormat  = "birthdays.reminder must be an RFC 5545 duration such as -P1D"
	ErrLogLevel        = "log.level must be one of debug, info, warn, error"
	ErrDataFileEmpty   = "data_file must not be empty"
	ErrLoadBook        = "failed to load address book"
	ErrSaveBook        = "failed to save address book"
	ErrDecodeCard      = "failed to decode vCard"
	ErrEncodeCard      = "failed to encode vCard"
	ErrCardNoName      = "vCard has neither FN nor N"
	ErrCardPhone       = "vCard contains an invalid phone"
	ErrCardBirthday    = "vCard contains an invalid birthday"
	ErrDateParse       = "unable to parse date"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrWriteFile       = "failed to write file"
	ErrOpenFile        = "failed to open file"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrConfigDir       = "could not determine user config dir"
	ErrCreateDir       = "could not create directory"
	ErrAppFailed       = "application failed unexpectedly"
	ErrReadInput       = "failed to read input"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrWindowArg       = "days must be a whole number between 0 and 366"
	ErrNameEmpty       = "name must not be empty"
	ErrPhoneInvalid    = "phone must be exactly 10 digits"
	ErrBirthdayInvalid = "invalid date format, use DD.MM.YYYY"
	ErrMsgNotFound     = "%s '%s' is not found"
	ErrMsgValidation   = "incorrect %s value '%s': %s"
	ErrMsgArguments    = "'%s' needs %d argument(s), got %d"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgBookLoaded     = "Address book loaded"
	MsgBookMissing    = "Address book file not found, starting empty"
	MsgBookSaved      = "Address book saved"
	MsgSessionStart   = "Interactive session started"
	MsgSessionEnd     = "Interactive session ended"
	MsgCtxCancel      = "Context cancelled, closing session"
	MsgCommand        = "Command executed"
	MsgCommandFailed  = "Command failed"
	MsgSkippedCard    = "Skipping invalid vCard entry"
	MsgImportDone     = "Import finished"
	MsgCalendarDone   = "Calendar generation successful"
	MsgUpcomingScan   = "Upcoming birthdays computed"
	MsgConfigDefaults = "No config file found, using defaults"
	MsgConfigLoaded   = "Configuration loaded"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
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
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyCount     = "count"
	LogKeyRecords   = "records"
	LogKeyAdded     = "added"
	LogKeySkipped   = "skipped"
	LogKeyDropped   = "dropped_fields"
	LogKeyWindow    = "window_days"
	LogKeyToday     = "today"
	LogKeyDuration  = "duration_ms"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain      = "main"
	CompConfig    = "config"
	CompBook      = "addressbook"
	CompStorage   = "storage"
	CompCalendar  = "calendar"
	CompAssistant = "assistant"
	CompI18n      = "i18n"
)
