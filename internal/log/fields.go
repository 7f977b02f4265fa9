package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldOwnerID    = "owner_id"
	FieldAccountID  = "account_id"
	FieldRecordID   = "record_id"
	FieldRecordType = "record_type"
	FieldAmount     = "amount"
	FieldCategory   = "category"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentTransfer = "transfer"
	ComponentStorage  = "storage"
	ComponentAdvisor  = "advisor"
)
