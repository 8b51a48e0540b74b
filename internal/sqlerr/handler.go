package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shoplore/backend/internal/errs"
)

// ErrCode reports the mapped sqlerr.Code for a given error, or Other
// when the error chain holds no *sqlerr.Error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into our structured
// sqlerr.Error, mapping SQLSTATE and severity onto the enums.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates consistent machine codes from DB errors.
//
// Format: <DOMAIN>_<ACTION>, e.g. reviews + ForeignKeyViolation on
// customer_id => REVIEW_NOT_FOUND. The DOMAIN is the table name
// uppercased with a trailing S stripped.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the end-user-facing message for a
// structured database error.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		// e.g. "The referenced customer does not exist"
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced later if a column can be inferred
		// from the constraint name.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column metadata.
//
// A column like "customer_id" beats the table name, since for foreign
// key violations the interesting entity is the referenced one, not the
// table being written.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case identifiers into Title Case,
// e.g. "customer_id" -> "Customer Id".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column name from a unique
// constraint name, supporting "unique_<table>_<column>" and
// "<table>_<column>_(key|ukey)" conventions.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	re := regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	matches := re.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// extractColumnFromFKConstraint recovers the violated column from a
// foreign key constraint named fk_<table>_<column>_<referenced_table>.
// Postgres reports the constraint name for FK violations but usually
// not the column, and the column is what names the missing entity.
func extractColumnFromFKConstraint(constraintName, tableName string) string {
	prefix := "fk_" + tableName + "_"
	if tableName == "" || !strings.HasPrefix(constraintName, prefix) {
		return ""
	}
	remainder := strings.TrimPrefix(constraintName, prefix)
	// Trailing segment is the referenced table.
	idx := strings.LastIndex(remainder, "_")
	if idx <= 0 {
		return ""
	}
	return remainder[:idx]
}

// extractTableFromFKConstraint recovers the owning table from a foreign
// key constraint named fk_<table>_<column>_<referenced_table>, e.g.
// fk_reviews_customer_id_customers -> "reviews". Used as a fallback
// when the driver does not report TableName.
func extractTableFromFKConstraint(constraintName string) string {
	if !strings.HasPrefix(constraintName, "fk_") {
		return ""
	}
	parts := strings.SplitN(strings.TrimPrefix(constraintName, "fk_"), "_", 2)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// HandleError converts a low-level database error into an
// application-level error.
//
// Mapping:
//   - *errs.HTTPError: returned unchanged (no double wrapping)
//   - pgconn.PgError: constraint violations become 400s with machine
//     codes and user-friendly messages; anything else becomes a 500
//   - pgx.ErrNoRows / sql.ErrNoRows: 404, naming the entity when the
//     repository wrapped the error with a "table:<name>:" prefix
//   - anything else: 500
//
// Repositories call this after every failed database operation.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		tableName := sqlErr.TableName
		if tableName == "" {
			tableName = extractTableFromFKConstraint(sqlErr.ConstraintName)
		}
		if sqlErr.Code == ForeignKeyViolation && sqlErr.ColumnName == "" {
			sqlErr.ColumnName = extractColumnFromFKConstraint(sqlErr.ConstraintName, tableName)
		}

		errorCode := generateErrorCode(tableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		errMsg := err.Error()
		tablePrefix := "table:"
		if strings.Contains(errMsg, tablePrefix) {
			table := strings.Split(strings.Split(errMsg, tablePrefix)[1], ":")[0]
			entityName := getEntityName(table, "")
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
