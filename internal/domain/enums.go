package domain

// SentinelRecipient is emitted when no strategy could isolate a plausible
// recipient name. Records carrying it are kept (never dropped) so the
// admin review step can fix them before confirming an import.
const SentinelRecipient = "NOME NÃO IDENTIFICADO"

// Extraction strategy names reported in ParseMetadata.Strategy.
const (
	StrategyTable     = "table"
	StrategyLDILayout = "ldi-layout"
	StrategyLineScan  = "line-scan"
	StrategyCodesOnly = "codes-only"
	StrategyCache     = "cache"
	StrategyNone      = "none"
)

// LogLevel classifies per-parse log entries.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
