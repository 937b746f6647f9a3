package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldRecordID    = "record_id"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldMonth       = "month"
	FieldPath        = "path"
	FieldBackend     = "backend"
	FieldRecordCount = "record_count"
	FieldBackupCount = "backup_count"
	FieldFormat      = "format"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentConfig  = "config"
	ComponentReport  = "report"
	ComponentSheets  = "sheets"
	ComponentTracker = "tracker"
)

// Operations defines standard operation names
const (
	OpAdd     = "add"
	OpEdit    = "edit"
	OpDelete  = "delete"
	OpLoad    = "load"
	OpSave    = "save"
	OpBackup  = "backup"
	OpExport  = "export"
	OpReport  = "report"
	OpStartup = "startup"
)
