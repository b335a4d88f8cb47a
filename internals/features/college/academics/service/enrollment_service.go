// file: internals/features/college/academics/service/enrollment_service.go
package service

import (
	"gorm.io/gorm"

	"moulya_backend/internals/features/college/academics/model"
)

// EnrollmentService adalah satu-satunya pintu baca/tulis enrollment.
// Konsumen agregasi hanya memakai ActiveStudents (ordered, materialized) —
// tidak ada lazy relationship traversal.
type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService { return &EnrollmentService{DB: db} }

func (s *EnrollmentService) db(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.DB
}

// ActiveStudents: daftar siswa aktif ter-enroll pada subject,
// urut roll_number lalu nama (kontrak user-facing untuk laporan).
func (s *EnrollmentService) ActiveStudents(tx *gorm.DB, subjectID int) ([]model.StudentModel, error) {
	var students []model.StudentModel
	err := s.db(tx).Model(&model.StudentModel{}).
		Joins("JOIN student_enrollments se ON se.student_id = students.student_id").
		Where("se.subject_id = ? AND se.is_active = ?", subjectID, true).
		Order("students.roll_number ASC, students.student_name ASC").
		Find(&students).Error
	return students, err
}

// EnrollStudents: enroll banyak siswa sekaligus; yang pernah di-unenroll
// diaktifkan lagi (unique (student, subject) dipertahankan).
func (s *EnrollmentService) EnrollStudents(subjectID int, studentIDs []int, academicYear int) (int, error) {
	enrolled := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, studentID := range studentIDs {
			var existing model.StudentEnrollmentModel
			err := tx.Where("student_id = ? AND subject_id = ?", studentID, subjectID).
				Take(&existing).Error
			switch {
			case err == gorm.ErrRecordNotFound:
				e := model.StudentEnrollmentModel{
					StudentID:    studentID,
					SubjectID:    subjectID,
					AcademicYear: academicYear,
					IsActive:     true,
				}
				if err := tx.Create(&e).Error; err != nil {
					return err
				}
				enrolled++
			case err != nil:
				return err
			case !existing.IsActive:
				if err := tx.Model(&existing).Update("is_active", true).Error; err != nil {
					return err
				}
				enrolled++
			}
		}
		return nil
	})
	return enrolled, err
}

// UnenrollStudents: soft-deactivate (baris enrollment tidak pernah dihapus).
func (s *EnrollmentService) UnenrollStudents(subjectID int, studentIDs []int) (int, error) {
	res := s.DB.Model(&model.StudentEnrollmentModel{}).
		Where("subject_id = ? AND student_id IN ? AND is_active = ?", subjectID, studentIDs, true).
		Update("is_active", false)
	return int(res.RowsAffected), res.Error
}
