package client

// Outcome of a cross-service validation call.
type Status int

const (
	StatusValid Status = iota
	StatusNotFound
	StatusUnreachable
)

type Result struct {
	Status Status
	Role   string
	Err    error
}
