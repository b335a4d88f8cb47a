// file: internals/features/college/academics/service/assignment_service.go
package service

import (
	"gorm.io/gorm"

	"moulya_backend/internals/features/college/academics/model"
)

// AssignmentService menjawab "apakah lecturer ini ditugaskan aktif ke subject
// ini" — precondition check untuk semua operasi kehadiran.
type AssignmentService struct {
	DB *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService { return &AssignmentService{DB: db} }

func (s *AssignmentService) db(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.DB
}

func (s *AssignmentService) IsActivelyAssigned(tx *gorm.DB, lecturerID, subjectID int) (bool, error) {
	var count int64
	err := s.db(tx).Model(&model.SubjectAssignmentModel{}).
		Where("lecturer_id = ? AND subject_id = ? AND is_active = ?", lecturerID, subjectID, true).
		Count(&count).Error
	return count > 0, err
}

// AssignedSubjects: subject aktif yang ditugaskan ke lecturer.
func (s *AssignmentService) AssignedSubjects(lecturerID int) ([]model.SubjectModel, error) {
	var subjects []model.SubjectModel
	err := s.DB.Model(&model.SubjectModel{}).
		Joins("JOIN subject_assignments sa ON sa.subject_id = subjects.subject_id").
		Where("sa.lecturer_id = ? AND sa.is_active = ? AND subjects.is_active = ?", lecturerID, true, true).
		Order("subjects.subject_code ASC").
		Find(&subjects).Error
	return subjects, err
}

// AssignLecturer: aktifkan assignment lama bila ada, kalau tidak buat baru.
func (s *AssignmentService) AssignLecturer(lecturerID, subjectID, academicYear int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.SubjectAssignmentModel
		err := tx.Where("lecturer_id = ? AND subject_id = ? AND academic_year = ?",
			lecturerID, subjectID, academicYear).
			Take(&existing).Error
		if err == gorm.ErrRecordNotFound {
			a := model.SubjectAssignmentModel{
				LecturerID:   lecturerID,
				SubjectID:    subjectID,
				AcademicYear: academicYear,
				IsActive:     true,
			}
			return tx.Create(&a).Error
		}
		if err != nil {
			return err
		}
		if existing.IsActive {
			return nil
		}
		return tx.Model(&existing).Update("is_active", true).Error
	})
}

func (s *AssignmentService) UnassignLecturer(lecturerID, subjectID, academicYear int) (bool, error) {
	res := s.DB.Model(&model.SubjectAssignmentModel{}).
		Where("lecturer_id = ? AND subject_id = ? AND academic_year = ? AND is_active = ?",
			lecturerID, subjectID, academicYear, true).
		Update("is_active", false)
	return res.RowsAffected > 0, res.Error
}
