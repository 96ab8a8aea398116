package errs

// Error kinds shared by the usecase and handler layers.
// Usecase sentinels are marked with exactly one of these so that the
// transport can map them without knowing every individual error.
var (
	ErrNotFound           = New("referenced entity does not exist")
	ErrForbidden          = New("actor is not allowed to perform this operation")
	ErrConflict           = New("requested state conflicts with the ledger")
	ErrVerificationFailed = New("payment signature verification failed")
	ErrValidation         = New("request validation failed")
	ErrTransient          = New("transient ledger failure")
)

// KindOf returns the kind err was marked with, or nil if none.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrNotFound,
		ErrForbidden,
		ErrConflict,
		ErrVerificationFailed,
		ErrValidation,
		ErrTransient,
	} {
		if Is(err, kind) {
			return kind
		}
	}
	return nil
}
