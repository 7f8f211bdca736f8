package authz

//go:generate go run github.com/dmarkham/enumer -type=Decision -trimprefix=Decision -transform=lower -json -output decision.gen.go

// Decision is the outcome of an authorization check. The zero value is
// deny, so an unset or half-built decision never grants access.
type Decision int

const (
	DecisionDeny Decision = iota
	DecisionAllow
)
