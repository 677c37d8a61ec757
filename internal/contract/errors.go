package contract

type GenerationErrorCode string

const (
	ErrInvalidDateRange   GenerationErrorCode = "INVALID_DATE_RANGE"
	ErrUnknownAlgorithm   GenerationErrorCode = "UNKNOWN_ALGORITHM"
	ErrNoEligibleAnalysts GenerationErrorCode = "NO_ELIGIBLE_ANALYSTS"
	ErrInternalError      GenerationErrorCode = "INTERNAL_ERROR"
)

// GenerationError is a hard failure: the run produced no result at all.
type GenerationError struct {
	Code    GenerationErrorCode
	Message string
}

func (e *GenerationError) Error() string {
	return string(e.Code) + ": " + e.Message
}
