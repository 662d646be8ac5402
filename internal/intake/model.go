package intake

// Form is a raw booking submission exactly as a form posts it. Every field
// arrives as text; Validate produces the typed Request.
type Form struct {
	Name          string `json:"name" validate:"required,max=100"`
	Age           string `json:"age" validate:"required"`
	Gender        string `json:"gender" validate:"required,oneof=male female other"`
	ContactNumber string `json:"contactNumber" validate:"required,min=7,max=20,phone"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Problem       string `json:"problem" validate:"required,max=1000"`
}

// Request is a validated, normalized appointment request. It exists only for
// the duration of one submission and is never stored.
type Request struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Problem       string `json:"problem"`
}
