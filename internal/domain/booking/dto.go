package booking

type CreateRequest struct {
	ServiceID           int64  `json:"service_id" binding:"required,gt=0" validate:"required,gt=0"`
	Date                string `json:"date" binding:"required,datetime=2006-01-02" validate:"required,datetime=2006-01-02"`
	TimeSlot            string `json:"time_slot" binding:"required,oneof=08:00-10:00 10:00-12:00 12:00-14:00 14:00-16:00 16:00-18:00" validate:"required,oneof=08:00-10:00 10:00-12:00 12:00-14:00 14:00-16:00 16:00-18:00"`
	SpecialInstructions string `json:"special_instructions" binding:"omitempty,max=2000" validate:"omitempty,max=2000"`
}

type RescheduleRequest struct {
	Date     string `json:"date" binding:"required,datetime=2006-01-02" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" binding:"required,oneof=08:00-10:00 10:00-12:00 12:00-14:00 14:00-16:00 16:00-18:00" validate:"required,oneof=08:00-10:00 10:00-12:00 12:00-14:00 14:00-16:00 16:00-18:00"`
}

// RateRequest is checked by the service as well, so out-of-range ratings
// never reach the store whichever way they arrive.
type RateRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CompletionRequest struct {
	Message string `json:"message"`
}
