package booking

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("you can only manage your own bookings")
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotAvailable = errors.New("room is not available for the selected dates")
	ErrCannotCancel     = errors.New("booking can no longer be cancelled")
	ErrCannotResend     = errors.New("confirmation can only be resent for pending or confirmed bookings")
)
