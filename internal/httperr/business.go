package httperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota + 1
	KindPermission
	KindNotFound
	KindExpired
	KindDelivery
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	case KindExpired:
		return "expired"
	case KindDelivery:
		return "delivery"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// BusinessError is the error every use case returns for expected failures.
// Code is machine readable, Message is shown to the user.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Validation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func Permission(code, message string) error {
	return BusinessError{Kind: KindPermission, Code: code, Message: message}
}

func NotFoundErr(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func Expired(code, message string) error {
	return BusinessError{Kind: KindExpired, Code: code, Message: message}
}

func Delivery(code, message string, cause error) error {
	return BusinessError{Kind: KindDelivery, Code: code, Message: message, Err: cause}
}

func Storage(code, message string, cause error) error {
	return BusinessError{Kind: KindStorage, Code: code, Message: message, Err: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
