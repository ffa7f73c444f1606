package protocol

// Error codes the service is known to report. The set is open: unknown
// codes still surface as notifications, keyed by their literal value.
const (
	ErrCodeGameLogic         = "GAME_LOGIC_ERROR"
	ErrCodeInvalidAction     = "INVALID_ACTION"
	ErrCodeWrongTurn         = "WRONG_TURN"
	ErrCodeCardRequired      = "CARD_REQUIRED"
	ErrCodeInvalidCardFormat = "INVALID_CARD_FORMAT"
	ErrCodePlayCard          = "PLAY_CARD_ERROR"
	ErrCodeUnexpected        = "UNEXPECTED_ERROR"
)

// ProtocolError is a server-reported fault. It is never fatal to the
// session; callers surface it as a notification keyed by Code.
type ProtocolError struct {
	Code    string
	Message string
}

func (e *ProtocolError) Error() string {
	return e.Code + ": " + e.Message
}

// AsError converts the payload into a ProtocolError value.
func (p ErrorPayload) AsError() *ProtocolError {
	code := p.Code
	if code == "" {
		code = ErrCodeUnexpected
	}
	return &ProtocolError{Code: code, Message: p.Message}
}
