package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// DB is the common lifecycle of the two backend connections. Repositories
// take the underlying driver handles directly.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
