// file: internals/features/college/marks/dto/marks_dto.go
package dto

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type MarkEntryRequest struct {
	StudentID      int     `json:"student_id" validate:"required,gt=0"`
	AssessmentType string  `json:"assessment_type" validate:"required,oneof=internal1 internal2 assignment project"`
	MarksObtained  float64 `json:"marks_obtained" validate:"min=0"`
	MaxMarks       float64 `json:"max_marks" validate:"required,gt=0"`
	AssessmentDate string  `json:"assessment_date" validate:"omitempty,datetime=2006-01-02"`
}

type AddMarksRequest struct {
	SubjectID int                `json:"subject_id" validate:"required,gt=0"`
	Entries   []MarkEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type AddMarksResponse struct {
	SubjectID int `json:"subject_id"`
	Added     int `json:"added"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
}
