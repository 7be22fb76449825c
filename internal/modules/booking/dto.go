package booking

// CreateBookingRequest is the POST /bookings body. Hour is a pointer so a
// missing hour is rejected instead of binding to midnight.
type CreateBookingRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
	Year  int    `json:"year" binding:"required,gte=2022"`
	Month int    `json:"month" binding:"required,gte=1,lte=12"`
	Day   int    `json:"day" binding:"required,gte=1,lte=31"`
	Hour  *int   `json:"hour" binding:"required,gte=0,lte=23"`
}

// AvailabilityQuery is validated with the shared validator, which also
// rejects dates that do not exist (e.g. February 30).
type AvailabilityQuery struct {
	Year  int `form:"year" validate:"required,gte=2022"`
	Month int `form:"month" validate:"required,gte=1,lte=12"`
	Day   int `form:"day" validate:"required,gte=1,lte=31"`
}

type AvailabilityResponse struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Day   int   `json:"day"`
	Hours []int `json:"hours"`
}

type ListBookingsQuery struct {
	IncludeCancelled bool `form:"include_cancelled"`
}

type UserBookingsQuery struct {
	Email            string `form:"email" validate:"required,email"`
	IncludeCancelled bool   `form:"include_cancelled"`
}

type CancelBookingResponse struct {
	ID       string `json:"id"`
	Affected int64  `json:"affected"`
}
