package sqlerr

import "github.com/jackc/pgx/v5/pgconn"

// Code categorizes database errors into the violations this layer
// cares about. Anything unmapped is Other.
type Code int

const (
	Other Code = iota
	ForeignKeyViolation
	UniqueViolation
	NotNullViolation
	CheckViolation
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// SQLSTATE codes for the integrity constraint violation class (23xxx).
const (
	sqlstateForeignKeyViolation = "23503"
	sqlstateUniqueViolation     = "23505"
	sqlstateNotNullViolation    = "23502"
	sqlstateCheckViolation      = "23514"
)

// Error is a structured database error: the mapped category plus the
// constraint metadata Postgres reports, with the original driver error
// retained for unwrapping.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string // original SQLSTATE
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr *pgconn.PgError
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original pgconn error to errors.As/Is.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE string onto a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case sqlstateForeignKeyViolation:
		return ForeignKeyViolation
	case sqlstateUniqueViolation:
		return UniqueViolation
	case sqlstateNotNullViolation:
		return NotNullViolation
	case sqlstateCheckViolation:
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps the Postgres severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}
