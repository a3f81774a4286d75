package contextkeys

// Custom key type avoids collisions with other packages' context values.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB is
// stored (the shared pool or, in tests, a transaction).
const DBContextKey = contextKey("db")
