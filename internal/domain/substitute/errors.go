package substitute

import "errors"

var (
	ErrNotFound              = errors.New("substitute not found")
	ErrDuplicateRegistration = errors.New("substitute registration already exists")
)
