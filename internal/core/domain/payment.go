package domain

// Payment is one payroll record: a salary (in cents) owed to an employee
// for a given MM-YYYY period. The employee+period pair is unique.
type Payment struct {
	ID       int64
	Employee string
	Period   string
	Salary   int64
}
