package health

import "context"

// DBPinger checks database availability. *sql.DB satisfies it through
// PingContext.
type DBPinger interface {
	PingContext(ctx context.Context) error
}
