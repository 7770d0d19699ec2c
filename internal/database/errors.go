package database

import (
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

const constraintViolationCode = "Neo.ClientError.Schema.ConstraintValidationFailed"

// IsConstraintViolation reports whether the error is a node-key uniqueness
// violation, e.g. creating a User with an id that already exists.
func IsConstraintViolation(err error) bool {
	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) {
		return neoErr.Code == constraintViolationCode
	}
	return false
}

// IsUnavailable reports whether the error means the graph store could not be
// reached. Callers may retry the whole operation; every engine write is an
// idempotent upsert.
func IsUnavailable(err error) bool {
	return neo4j.IsConnectivityError(err)
}
