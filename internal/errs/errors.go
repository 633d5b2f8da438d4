package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
    // ErrNotFound reports a lookup miss. State is never changed when it is returned.
    ErrNotFound = errors.New("not_found")
    // ErrInvalid reports a validation failure; the mutation was refused.
    ErrInvalid = errors.New("invalid")
    // ErrUnprocessable is used for well-formed input that cannot be applied (HTTP 422)
    ErrUnprocessable = errors.New("unprocessable")
    // ErrSameAccount indicates a transfer whose source and destination are the same account
    ErrSameAccount = errors.New("same_account")
    // ErrReserved indicates an attempt to create a record only the ledger may synthesize
    ErrReserved = errors.New("reserved")
)
