package bracketservice

// BracketOperationResult is the outcome envelope every service
// operation returns. Exactly one of Success or Failure is set; a
// Failure is a business outcome (carried to the caller as a failure
// event payload), not an infrastructure error.
type BracketOperationResult struct {
	Success any
	Failure any
}
