package constant

import "time"

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"
)

// Per-query wall clock cap. A query that exceeds it aborts with a context error
// and the open transaction rolls back.
const QUERY_TIMEOUT_DURATION = 5 * time.Second

const (
	MSG_INCOMPLETE_REQUIREMENTS = "Student has not completed all requirements"
	MSG_REQUIREMENT_EXISTS      = "Requirement already exists"
)
