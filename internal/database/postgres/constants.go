package postgres

// Postgres error codes the repositories care about.
const (
	PgErrCodeUniqueViolation  = "23505"
	PgErrCodeLockNotAvailable = "55P03"
	PgErrCodeDeadlockDetected = "40P01"
)
