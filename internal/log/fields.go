package log

// Attribute keys
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldQuery       = "query"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldReferer     = "referer"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldRecordID    = "record_id"
	FieldCategory    = "category"
	FieldProduct     = "product"
	FieldGameItem    = "game_item"
	FieldPaymentMode = "payment_mode"
	FieldAmount      = "amount"
	FieldFilter      = "filter"
	FieldCount       = "count"
	FieldFormat      = "format"
)

// Component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentAPI    = "api"
	ComponentLedger = "ledger"
	ComponentExport = "export"
	ComponentSheets = "sheets"
)

// Operation names
const (
	OpAppend   = "append"
	OpSummary  = "summary"
	OpExport   = "export"
	OpValidate = "validate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithClientIP adds client IP field
func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRecord adds the fields describing one ledger record. Game item is
// only set for Gaming records.
func (f LogFields) WithRecord(id int, category, product, gameItem, paymentMode, amount string) LogFields {
	f[FieldRecordID] = id
	f[FieldCategory] = category
	f[FieldProduct] = product
	if gameItem != "" {
		f[FieldGameItem] = gameItem
	}
	f[FieldPaymentMode] = paymentMode
	f[FieldAmount] = amount
	return f
}

// WithHTTPRequest adds HTTP request fields
func (f LogFields) WithHTTPRequest(method, path, query, userAgent, referer string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	if userAgent != "" {
		f[FieldUserAgent] = userAgent
	}
	if referer != "" {
		f[FieldReferer] = referer
	}
	return f
}

// WithHTTPResponse adds HTTP response fields
func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64, success bool) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = success
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
