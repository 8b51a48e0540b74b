// Package sqlerr specifically handles database driver errors.
//
// It parses error codes from the PostgreSQL driver and converts them
// into user-friendly application errors (e.g. converting a foreign key
// violation on reviews.customer_id into a "referenced customer does not
// exist" bad-request error).
package sqlerr
