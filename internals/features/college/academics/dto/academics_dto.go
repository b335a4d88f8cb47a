// file: internals/features/college/academics/dto/academics_dto.go
package dto

import (
	"strings"

	"moulya_backend/internals/features/college/academics/model"
)

func trimUpper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

/* =========================================================
   1) COURSE
   ========================================================= */

type CreateCourseRequest struct {
	CourseName string `json:"course_name" validate:"required,max=100"`
	CourseCode string `json:"course_code" validate:"required,max=20"`
}

func (r *CreateCourseRequest) ToModel() model.CourseModel {
	return model.CourseModel{
		CourseName: strings.TrimSpace(r.CourseName),
		CourseCode: trimUpper(r.CourseCode),
	}
}

type UpdateCourseRequest struct {
	CourseName *string `json:"course_name" validate:"omitempty,max=100"`
	CourseCode *string `json:"course_code" validate:"omitempty,max=20"`
}

/* =========================================================
   2) SUBJECT
   ========================================================= */

type CreateSubjectRequest struct {
	SubjectName string `json:"subject_name" validate:"required,max=100"`
	SubjectCode string `json:"subject_code" validate:"required,max=20"`
	CourseID    int    `json:"course_id" validate:"required,gt=0"`
	Year        int    `json:"year" validate:"required,min=1,max=6"`
	Semester    int    `json:"semester" validate:"required,min=1,max=12"`
}

func (r *CreateSubjectRequest) ToModel() model.SubjectModel {
	return model.SubjectModel{
		SubjectName: strings.TrimSpace(r.SubjectName),
		SubjectCode: trimUpper(r.SubjectCode),
		CourseID:    r.CourseID,
		Year:        r.Year,
		Semester:    r.Semester,
		IsActive:    true,
	}
}

type UpdateSubjectRequest struct {
	SubjectName *string `json:"subject_name" validate:"omitempty,max=100"`
	SubjectCode *string `json:"subject_code" validate:"omitempty,max=20"`
	Year        *int    `json:"year" validate:"omitempty,min=1,max=6"`
	Semester    *int    `json:"semester" validate:"omitempty,min=1,max=12"`
	IsActive    *bool   `json:"is_active" validate:"omitempty"`
}

/* =========================================================
   3) LECTURER
   ========================================================= */

type CreateLecturerRequest struct {
	LecturerName string `json:"lecturer_name" validate:"required,max=100"`
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
}

type UpdateLecturerRequest struct {
	LecturerName *string `json:"lecturer_name" validate:"omitempty,max=100"`
	Password     *string `json:"password" validate:"omitempty,min=6,max=72"`
	IsActive     *bool   `json:"is_active" validate:"omitempty"`
}

/* =========================================================
   4) STUDENT
   ========================================================= */

type CreateStudentRequest struct {
	StudentName  string `json:"student_name" validate:"required,max=100"`
	RollNumber   string `json:"roll_number" validate:"required,max=30"`
	CourseID     int    `json:"course_id" validate:"required,gt=0"`
	AcademicYear int    `json:"academic_year" validate:"required,min=2000,max=2100"`
}

func (r *CreateStudentRequest) ToModel() model.StudentModel {
	return model.StudentModel{
		StudentName:  strings.TrimSpace(r.StudentName),
		RollNumber:   trimUpper(r.RollNumber),
		CourseID:     r.CourseID,
		AcademicYear: r.AcademicYear,
		IsActive:     true,
	}
}

type UpdateStudentRequest struct {
	StudentName *string `json:"student_name" validate:"omitempty,max=100"`
	RollNumber  *string `json:"roll_number" validate:"omitempty,max=30"`
	IsActive    *bool   `json:"is_active" validate:"omitempty"`
}

/* =========================================================
   5) ENROLLMENT & ASSIGNMENT
   ========================================================= */

type EnrollStudentsRequest struct {
	SubjectID    int   `json:"subject_id" validate:"required,gt=0"`
	StudentIDs   []int `json:"student_ids" validate:"required,min=1,dive,gt=0"`
	AcademicYear int   `json:"academic_year" validate:"required,min=2000,max=2100"`
}

type UnenrollStudentsRequest struct {
	SubjectID  int   `json:"subject_id" validate:"required,gt=0"`
	StudentIDs []int `json:"student_ids" validate:"required,min=1,dive,gt=0"`
}

type AssignLecturerRequest struct {
	LecturerID   int `json:"lecturer_id" validate:"required,gt=0"`
	SubjectID    int `json:"subject_id" validate:"required,gt=0"`
	AcademicYear int `json:"academic_year" validate:"required,min=2000,max=2100"`
}
