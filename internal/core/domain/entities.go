package domain

// Role represents user role (user type) in the system
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleBorrower Role = "BORROWER"
)

// BorrowingStatus is the derived state of a borrowing process
type BorrowingStatus string

const (
	StatusReturned BorrowingStatus = "Returned"
	StatusOverdue  BorrowingStatus = "Overdue"
	StatusActive   BorrowingStatus = "Active"
)

// DateLayout is the wire format for date-only fields (due_date etc.)
const DateLayout = "2006-01-02"
