package booking

type CreateBookingRequest struct {
	CeremonyTypeID int64  `json:"booking_type_id" binding:"required"`
	BookingDate    string `json:"booking_date" binding:"required"`
	BookingTime    string `json:"booking_time" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Details        string `json:"details"`
}

type ListMineQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
