package domain

// Options carries the run configuration for one pipeline invocation.
// It is always passed explicitly; the package holds no ambient settings,
// so concurrent runs with different configurations are safe.
type Options struct {
	// AcceptedTokens are the substrings (matched case-insensitively) that a
	// Station_ID must contain for the row to be in scope.
	AcceptedTokens []string

	// RequiredColumns are the column names the schema validator demands.
	RequiredColumns []string
}

// DefaultAcceptedTokens are the two monitored station networks.
func DefaultAcceptedTokens() []string {
	return []string{"TUS", "CT"}
}

// DefaultRequiredColumns lists the canonical measurement export columns.
func DefaultRequiredColumns() []string {
	return []string{ColStationID, ColPCode, ColDateTime, ColResult}
}

// DefaultOptions returns Options populated with the default tokens and columns.
func DefaultOptions() Options {
	return Options{
		AcceptedTokens:  DefaultAcceptedTokens(),
		RequiredColumns: DefaultRequiredColumns(),
	}
}

// withDefaults fills in any zero-value field so callers can pass a partially
// populated Options.
func (o Options) withDefaults() Options {
	if len(o.AcceptedTokens) == 0 {
		o.AcceptedTokens = DefaultAcceptedTokens()
	}
	if len(o.RequiredColumns) == 0 {
		o.RequiredColumns = DefaultRequiredColumns()
	}
	return o
}
