package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrSeatAlreadyReserved = errors.New("seat(s) are already reserved")
	ErrCheckoutNotFound    = errors.New("checkout not found or has expired")
	ErrCheckoutLocked      = errors.New("checkout is locked by another request")
	ErrPaymentFailed       = errors.New("payment could not be initiated")
	ErrDuplicateOrder      = errors.New("order has already been booked")
)
