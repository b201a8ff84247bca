package handler

// --- Request / Response types ---

type paymentRequest struct {
	Employee string `json:"employee" validate:"required,email"`
	Period   string `json:"period"   validate:"required"`
	Salary   int64  `json:"salary"`
}

// paymentView is the employee-facing payroll record. Period and salary are
// rendered in their display forms ("January-2021", "1234 dollar(s) 56 cent(s)").
type paymentView struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Period   string `json:"period"`
	Salary   string `json:"salary"`
}
