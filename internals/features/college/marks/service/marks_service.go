// file: internals/features/college/marks/service/marks_service.go
//
// Pencatatan nilai per assessment (internal1/internal2/assignment/project)
// dan laporan nilai per subject. Entry dengan obtained > max dilewati tanpa
// menggagalkan batch, mengikuti perilaku form koreksi nilai yang lama.
package service

import (
	"errors"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	academicservice "moulya_backend/internals/features/college/academics/service"
	"moulya_backend/internals/features/college/marks/model"
)

// Ambang defisiensi nilai keseluruhan; di bawah ini siswa ditandai bermasalah.
const DeficiencyThreshold = 50.0

type MarksService struct {
	DB          *gorm.DB
	Assignments *academicservice.AssignmentService
	Enrollments *academicservice.EnrollmentService
}

func NewMarksService(db *gorm.DB) *MarksService {
	return &MarksService{
		DB:          db,
		Assignments: academicservice.NewAssignmentService(db),
		Enrollments: academicservice.NewEnrollmentService(db),
	}
}

func (s *MarksService) db(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.DB
}

// MarkEntry: satu nilai yang diketik lecturer.
type MarkEntry struct {
	StudentID      int
	AssessmentType string
	MarksObtained  float64
	MaxMarks       float64
	AssessmentDate *time.Time
}

// AddMarksResult: berapa entry dibuat, diperbarui, dan dilewati.
type AddMarksResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// AddMarks: update-or-create per (student, assessment_type). Entry dengan
// obtained > max atau max <= 0 dilewati (dihitung di Skipped), sisanya
// tersimpan dalam satu transaksi.
func (s *MarksService) AddMarks(subjectID, lecturerID int, entries []MarkEntry) (AddMarksResult, error) {
	var result AddMarksResult
	if len(entries) == 0 {
		return result, invalidInputf("no mark entries given")
	}
	for _, e := range entries {
		if !model.ValidAssessmentType(e.AssessmentType) {
			return result, invalidInputf("student %d: unknown assessment type '%s'", e.StudentID, e.AssessmentType)
		}
		if e.MarksObtained < 0 {
			return result, invalidInputf("student %d: marks cannot be negative", e.StudentID)
		}
	}

	assigned, err := s.Assignments.IsActivelyAssigned(nil, lecturerID, subjectID)
	if err != nil {
		return result, persistencef(err)
	}
	if !assigned {
		return result, ErrNotAuthorized
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if e.MaxMarks <= 0 || e.MarksObtained > e.MaxMarks {
				result.Skipped++
				continue
			}
			percentage := round2(e.MarksObtained / e.MaxMarks * 100)

			var existing model.StudentMarksModel
			err := tx.Where("student_id = ? AND subject_id = ? AND assessment_type = ?",
				e.StudentID, subjectID, e.AssessmentType).
				First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&existing).Updates(map[string]interface{}{
					"marks_obtained": e.MarksObtained,
					"max_marks":      e.MaxMarks,
					"percentage":     percentage,
					"grade":          model.GradeFor(percentage),
					"lecturer_id":    lecturerID,
				}).Error; err != nil {
					return persistencef(err)
				}
				result.Updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				row := model.StudentMarksModel{
					StudentID:      e.StudentID,
					SubjectID:      subjectID,
					LecturerID:     lecturerID,
					AssessmentType: e.AssessmentType,
					MarksObtained:  e.MarksObtained,
					MaxMarks:       e.MaxMarks,
					Percentage:     percentage,
					Grade:          model.GradeFor(percentage),
					AssessmentDate: e.AssessmentDate,
				}
				if err := tx.Create(&row).Error; err != nil {
					return persistencef(err)
				}
				result.Added++
			default:
				return persistencef(err)
			}
		}
		return nil
	})
	if err != nil {
		return AddMarksResult{}, err
	}
	return result, nil
}

type AssessmentMark struct {
	AssessmentType string  `json:"assessment_type"`
	MarksObtained  float64 `json:"marks_obtained"`
	MaxMarks       float64 `json:"max_marks"`
	Percentage     float64 `json:"percentage"`
	Grade          string  `json:"grade"`
}

type StudentMarksReport struct {
	StudentID         int              `json:"student_id"`
	RollNumber        string           `json:"roll_number"`
	StudentName       string           `json:"student_name"`
	Assessments       []AssessmentMark `json:"assessments"`
	TotalObtained     float64          `json:"total_obtained"`
	TotalMax          float64          `json:"total_max"`
	OverallPercentage float64          `json:"overall_percentage"`
	OverallGrade      string           `json:"overall_grade"`
	HasDeficiency     bool             `json:"has_deficiency"`
}

// SubjectReport: laporan nilai per siswa ter-enroll, urut roll number.
// Overall = total obtained / total max, bukan rata-rata persentase per
// assessment; siswa tanpa nilai tampil dengan overall 0 dan tanpa flag
// defisiensi. ClassAverage = rata-rata overall siswa yang punya nilai.
func (s *MarksService) SubjectReport(subjectID int) ([]StudentMarksReport, float64, error) {
	students, err := s.Enrollments.ActiveStudents(nil, subjectID)
	if err != nil {
		return nil, 0, persistencef(err)
	}

	var allMarks []model.StudentMarksModel
	if err := s.db(nil).
		Where("subject_id = ?", subjectID).
		Find(&allMarks).Error; err != nil {
		return nil, 0, persistencef(err)
	}
	byStudent := make(map[int][]model.StudentMarksModel, len(students))
	for _, m := range allMarks {
		byStudent[m.StudentID] = append(byStudent[m.StudentID], m)
	}

	reports := make([]StudentMarksReport, 0, len(students))
	sumOverall := 0.0
	graded := 0
	for _, st := range students {
		rep := StudentMarksReport{
			StudentID:   st.StudentID,
			RollNumber:  st.RollNumber,
			StudentName: st.StudentName,
			Assessments: []AssessmentMark{},
		}
		rows := byStudent[st.StudentID]
		sort.Slice(rows, func(i, j int) bool { return rows[i].AssessmentType < rows[j].AssessmentType })
		for _, m := range rows {
			rep.Assessments = append(rep.Assessments, AssessmentMark{
				AssessmentType: m.AssessmentType,
				MarksObtained:  m.MarksObtained,
				MaxMarks:       m.MaxMarks,
				Percentage:     m.Percentage,
				Grade:          m.Grade,
			})
			rep.TotalObtained += m.MarksObtained
			rep.TotalMax += m.MaxMarks
		}
		if rep.TotalMax > 0 {
			rep.OverallPercentage = round2(rep.TotalObtained / rep.TotalMax * 100)
			rep.OverallGrade = model.GradeFor(rep.OverallPercentage)
			rep.HasDeficiency = rep.OverallPercentage < DeficiencyThreshold
			sumOverall += rep.OverallPercentage
			graded++
		}
		reports = append(reports, rep)
	}

	classAverage := 0.0
	if graded > 0 {
		classAverage = round2(sumOverall / float64(graded))
	}
	return reports, classAverage, nil
}

// SubjectReportForLecturer: versi lecturer, dengan cek penugasan aktif.
func (s *MarksService) SubjectReportForLecturer(subjectID, lecturerID int) ([]StudentMarksReport, float64, error) {
	assigned, err := s.Assignments.IsActivelyAssigned(nil, lecturerID, subjectID)
	if err != nil {
		return nil, 0, persistencef(err)
	}
	if !assigned {
		return nil, 0, ErrNotAuthorized
	}
	return s.SubjectReport(subjectID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
