package results

// Status is the terminal outcome of looking up one roll number.
type Status string

const (
	STATUS_SUCCESS   Status = "Success"
	STATUS_NOT_FOUND Status = "Not Found"
	STATUS_ERROR     Status = "Error"
)

// NOT_AVAILABLE fills StudentName and SubjectMarks whenever there is nothing to show,
// those fields are never left empty.
const NOT_AVAILABLE = "N/A"

type Record struct {
	RollNumber   string `json:"roll_number"`
	StudentName  string `json:"student_name"`
	SubjectMarks string `json:"subject_marks"`
	Status       Status `json:"status"`
}

func errorRecord(rollNumber string) Record {
	return Record{
		RollNumber:   rollNumber,
		StudentName:  NOT_AVAILABLE,
		SubjectMarks: NOT_AVAILABLE,
		Status:       STATUS_ERROR,
	}
}

func notFoundRecord(rollNumber string) Record {
	return Record{
		RollNumber:   rollNumber,
		StudentName:  NOT_AVAILABLE,
		SubjectMarks: NOT_AVAILABLE,
		Status:       STATUS_NOT_FOUND,
	}
}

// Cause is why a record ended up with its status. It never leaves the engine,
// callers only see Status, but logs and metrics keep the causes apart.
type Cause string

const (
	CAUSE_NONE       Cause = "none"
	CAUSE_NOT_FOUND  Cause = "not_found"
	CAUSE_VALIDATION Cause = "validation"
	CAUSE_TRANSPORT  Cause = "transport"
	CAUSE_TOKEN      Cause = "token"
	CAUSE_PARSE      Cause = "parse"
	CAUSE_PANIC      Cause = "panic"
)
