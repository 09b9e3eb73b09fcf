package user

// Principal identifies the authenticated caller. Verification is delegated
// to the external account service; the engine only consumes the result.
type Principal struct {
	UserID      string
	DisplayName string
	IsAdmin     bool
}
