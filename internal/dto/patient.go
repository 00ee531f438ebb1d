package dto

// DateLayout is the single calendar format accepted and emitted on the wire.
const DateLayout = "2006-01-02"

// PatientRequest is the external representation submitted by callers.
// Dates travel as YYYY-MM-DD text and are parsed on ingress.
type PatientRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	DateOfBirth    string `json:"date_of_birth"`
	RegisteredDate string `json:"registered_date,omitempty"`
}

// PatientResponse is what callers get back. The registered date is internal
// bookkeeping and is never echoed.
type PatientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
}

type PagedPatientsResponse struct {
	Data          []*PatientResponse `json:"data"`
	Page          int                `json:"page"`
	PageSize      int                `json:"page_size"`
	TotalElements int64              `json:"total_elements"`
	TotalPages    int                `json:"total_pages"`
}
