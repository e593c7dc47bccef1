package http

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// activityRequest covers both create and edit. The hour bounds are per single
// activity; the cumulative cap is the service's job.
type activityRequest struct {
	Description string  `json:"description" validate:"required,min=1,max=500"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Hours       float64 `json:"hours" validate:"required,gte=0.5,lte=24"`
}

type reviewRequest struct {
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,role_name"`
}
