package constants

// Provider tells which extraction pipeline produced a value.
type Provider string

const (
	ProviderLocal  Provider = "LOCAL"
	ProviderRemote Provider = "REMOTE"
)

// ResultSchemaVersion is bumped whenever the shape of an analysis result changes
// in a way persisted consumers must distinguish.
const ResultSchemaVersion = 2
