// file: internals/features/college/attendance/repository/attendance_repository.go
//
// AttendanceStore: satu-satunya pemilik persistence untuk tiga jenis record
// kehadiran (harian, summary bulanan per subject, bulanan per siswa).
// Semua method menerima tx; tx boleh nil → pakai s.DB.
package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moulya_backend/internals/features/college/attendance/model"
)

type AttendanceStore struct {
	DB *gorm.DB
}

func NewAttendanceStore(db *gorm.DB) *AttendanceStore { return &AttendanceStore{DB: db} }

func (s *AttendanceStore) db(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.DB
}

/* ===================== SUMMARY (per subject+lecturer+month) ===================== */

// PriorTotalClasses menjumlahkan delta total_classes SEBELUM (year, month).
func (s *AttendanceStore) PriorTotalClasses(tx *gorm.DB, subjectID, lecturerID, month, year int) (int, error) {
	var total int64
	err := s.db(tx).Model(&model.MonthlyAttendanceSummaryModel{}).
		Where("subject_id = ? AND lecturer_id = ?", subjectID, lecturerID).
		Where("(year < ?) OR (year = ? AND month < ?)", year, year, month).
		Select("COALESCE(SUM(total_classes), 0)").
		Scan(&total).Error
	return int(total), err
}

// SumTotalClassesYear: kumulatif setahun; lecturerID nil → lintas semua lecturer
// (dipakai laporan yang menjumlah lintas pergantian pengajar).
func (s *AttendanceStore) SumTotalClassesYear(tx *gorm.DB, subjectID int, lecturerID *int, year int) (int, error) {
	q := s.db(tx).Model(&model.MonthlyAttendanceSummaryModel{}).
		Where("subject_id = ? AND year = ?", subjectID, year)
	if lecturerID != nil {
		q = q.Where("lecturer_id = ?", *lecturerID)
	}
	var total int64
	err := q.Select("COALESCE(SUM(total_classes), 0)").Scan(&total).Error
	return int(total), err
}

// GetSummary mengembalikan nil (tanpa error) bila baris tidak ada —
// absennya data historis adalah keadaan normal, bukan fault.
func (s *AttendanceStore) GetSummary(tx *gorm.DB, subjectID, lecturerID, month, year int) (*model.MonthlyAttendanceSummaryModel, error) {
	var m model.MonthlyAttendanceSummaryModel
	err := s.db(tx).
		Where("subject_id = ? AND lecturer_id = ? AND month = ? AND year = ?", subjectID, lecturerID, month, year).
		Take(&m).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertSummary: idempotent pada unique key (subject, lecturer, month, year).
func (s *AttendanceStore) UpsertSummary(tx *gorm.DB, m *model.MonthlyAttendanceSummaryModel) error {
	return s.db(tx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "subject_id"}, {Name: "lecturer_id"}, {Name: "month"}, {Name: "year"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"total_classes", "total_students", "average_attendance", "updated_at"}),
	}).Create(m).Error
}

// UpdateSummaryTotals: dipakai jalur koreksi (BackfillCorrector) saja.
func (s *AttendanceStore) UpdateSummaryTotals(tx *gorm.DB, subjectID, lecturerID, month, year, totalClasses int, avg float64) error {
	return s.db(tx).Model(&model.MonthlyAttendanceSummaryModel{}).
		Where("subject_id = ? AND lecturer_id = ? AND month = ? AND year = ?", subjectID, lecturerID, month, year).
		Updates(map[string]interface{}{
			"total_classes":      totalClasses,
			"average_attendance": avg,
		}).Error
}

// LecturersWithSummary: lecturer yang punya summary di salah satu bulan tsb.
func (s *AttendanceStore) LecturersWithSummary(tx *gorm.DB, subjectID, year int, months ...int) ([]int, error) {
	var ids []int
	err := s.db(tx).Model(&model.MonthlyAttendanceSummaryModel{}).
		Where("subject_id = ? AND year = ? AND month IN ?", subjectID, year, months).
		Distinct().
		Order("lecturer_id").
		Pluck("lecturer_id", &ids).Error
	return ids, err
}

// MonthsWithSummary: bulan-bulan (urut naik) yang sudah punya summary tahun itu.
func (s *AttendanceStore) MonthsWithSummary(tx *gorm.DB, subjectID, lecturerID, year int) ([]int, error) {
	var months []int
	err := s.db(tx).Model(&model.MonthlyAttendanceSummaryModel{}).
		Where("subject_id = ? AND lecturer_id = ? AND year = ?", subjectID, lecturerID, year).
		Order("month").
		Pluck("month", &months).Error
	return months, err
}

/* ===================== PER-STUDENT MONTHLY ===================== */

func (s *AttendanceStore) PriorPresentCount(tx *gorm.DB, studentID, subjectID, lecturerID, month, year int) (int, error) {
	var total int64
	err := s.db(tx).Model(&model.MonthlyStudentAttendanceModel{}).
		Where("student_id = ? AND subject_id = ? AND lecturer_id = ?", studentID, subjectID, lecturerID).
		Where("(year < ?) OR (year = ? AND month < ?)", year, year, month).
		Select("COALESCE(SUM(present_count), 0)").
		Scan(&total).Error
	return int(total), err
}

// SumPresentYear: Σ present + Σ deputation setahun; lecturerID nil → lintas lecturer.
func (s *AttendanceStore) SumPresentYear(tx *gorm.DB, studentID, subjectID int, lecturerID *int, year int) (present int, deputation int, err error) {
	q := s.db(tx).Model(&model.MonthlyStudentAttendanceModel{}).
		Where("student_id = ? AND subject_id = ? AND year = ?", studentID, subjectID, year)
	if lecturerID != nil {
		q = q.Where("lecturer_id = ?", *lecturerID)
	}
	var row struct {
		Present    int64
		Deputation int64
	}
	err = q.Select("COALESCE(SUM(present_count), 0) AS present, COALESCE(SUM(deputation_count), 0) AS deputation").
		Scan(&row).Error
	return int(row.Present), int(row.Deputation), err
}

func (s *AttendanceStore) GetStudentMonthly(tx *gorm.DB, studentID, subjectID, lecturerID, month, year int) (*model.MonthlyStudentAttendanceModel, error) {
	var m model.MonthlyStudentAttendanceModel
	err := s.db(tx).
		Where("student_id = ? AND subject_id = ? AND lecturer_id = ? AND month = ? AND year = ?",
			studentID, subjectID, lecturerID, month, year).
		Take(&m).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AttendanceStore) ListStudentMonthly(tx *gorm.DB, subjectID, lecturerID, month, year int) ([]model.MonthlyStudentAttendanceModel, error) {
	var rows []model.MonthlyStudentAttendanceModel
	err := s.db(tx).
		Where("subject_id = ? AND lecturer_id = ? AND month = ? AND year = ?", subjectID, lecturerID, month, year).
		Order("student_id").
		Find(&rows).Error
	return rows, err
}

// UpsertStudentPresent meng-update HANYA present_count; deputation_count tidak
// boleh tersentuh jalur rekonsiliasi/koreksi.
func (s *AttendanceStore) UpsertStudentPresent(tx *gorm.DB, m *model.MonthlyStudentAttendanceModel) error {
	return s.db(tx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "subject_id"}, {Name: "lecturer_id"}, {Name: "month"}, {Name: "year"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"present_count", "updated_at"}),
	}).Create(m).Error
}

// UpsertStudentDeputation: kebalikannya — hanya deputation_count.
func (s *AttendanceStore) UpsertStudentDeputation(tx *gorm.DB, m *model.MonthlyStudentAttendanceModel) error {
	return s.db(tx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "subject_id"}, {Name: "lecturer_id"}, {Name: "month"}, {Name: "year"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"deputation_count", "updated_at"}),
	}).Create(m).Error
}

func (s *AttendanceStore) SetStudentPresent(tx *gorm.DB, studentID, subjectID, lecturerID, month, year, present int) error {
	return s.db(tx).Model(&model.MonthlyStudentAttendanceModel{}).
		Where("student_id = ? AND subject_id = ? AND lecturer_id = ? AND month = ? AND year = ?",
			studentID, subjectID, lecturerID, month, year).
		Update("present_count", present).Error
}

/* ===================== DAILY RECORDS ===================== */

// UpsertDailyStatus: satu baris per (student, subject, date); pencatatan ulang
// hari yang sama menimpa status dan lecturer-nya.
func (s *AttendanceStore) UpsertDailyStatus(tx *gorm.DB, m *model.AttendanceRecordModel) error {
	return s.db(tx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "subject_id"}, {Name: "date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"status", "lecturer_id", "updated_at"}),
	}).Create(m).Error
}

// PruneDailyPastDay menghapus record harian yang indeks harinya melewati delta
// bulan (resubmission yang mengecilkan jumlah kelas). Best-effort di caller.
func (s *AttendanceStore) PruneDailyPastDay(tx *gorm.DB, subjectID, lecturerID, month, year, day int) (int64, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	cutoff := monthStart.AddDate(0, 0, day)
	nextMonth := monthStart.AddDate(0, 1, 0)
	if !cutoff.Before(nextMonth) {
		return 0, nil
	}
	res := s.db(tx).
		Where("subject_id = ? AND lecturer_id = ?", subjectID, lecturerID).
		Where("date >= ? AND date < ?", cutoff, nextMonth).
		Delete(&model.AttendanceRecordModel{})
	return res.RowsAffected, res.Error
}

/* ===================== MONTH RESET (escape hatch) ===================== */

type MonthCounts struct {
	DailyRecords      int64
	StudentAttendance int64
	Summaries         int64
}

func (s *AttendanceStore) CountMonth(tx *gorm.DB, month, year int) (MonthCounts, error) {
	var c MonthCounts
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	if err := s.db(tx).Model(&model.AttendanceRecordModel{}).
		Where("date >= ? AND date < ?", monthStart, nextMonth).
		Count(&c.DailyRecords).Error; err != nil {
		return c, err
	}
	if err := s.db(tx).Model(&model.MonthlyStudentAttendanceModel{}).
		Where("month = ? AND year = ?", month, year).
		Count(&c.StudentAttendance).Error; err != nil {
		return c, err
	}
	err := s.db(tx).Model(&model.MonthlyAttendanceSummaryModel{}).
		Where("month = ? AND year = ?", month, year).
		Count(&c.Summaries).Error
	return c, err
}

// DeleteMonth menghapus ketiga jenis record untuk (month, year) dan
// mengembalikan jumlah yang terhapus per jenis.
func (s *AttendanceStore) DeleteMonth(tx *gorm.DB, month, year int) (MonthCounts, error) {
	var deleted MonthCounts
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	res := s.db(tx).
		Where("date >= ? AND date < ?", monthStart, nextMonth).
		Delete(&model.AttendanceRecordModel{})
	if res.Error != nil {
		return deleted, res.Error
	}
	deleted.DailyRecords = res.RowsAffected

	res = s.db(tx).Where("month = ? AND year = ?", month, year).
		Delete(&model.MonthlyStudentAttendanceModel{})
	if res.Error != nil {
		return deleted, res.Error
	}
	deleted.StudentAttendance = res.RowsAffected

	res = s.db(tx).Where("month = ? AND year = ?", month, year).
		Delete(&model.MonthlyAttendanceSummaryModel{})
	if res.Error != nil {
		return deleted, res.Error
	}
	deleted.Summaries = res.RowsAffected
	return deleted, nil
}

/* ===================== CASCADE (explicit, audited) ===================== */

// DeleteAllForLecturer dipakai hard-delete lecturer (operasi eksplisit + audit).
func (s *AttendanceStore) DeleteAllForLecturer(tx *gorm.DB, lecturerID int) (daily int64, monthly int64, summaries int64, err error) {
	res := s.db(tx).Where("lecturer_id = ?", lecturerID).Delete(&model.AttendanceRecordModel{})
	if res.Error != nil {
		return 0, 0, 0, res.Error
	}
	daily = res.RowsAffected

	res = s.db(tx).Where("lecturer_id = ?", lecturerID).Delete(&model.MonthlyStudentAttendanceModel{})
	if res.Error != nil {
		return daily, 0, 0, res.Error
	}
	monthly = res.RowsAffected

	res = s.db(tx).Where("lecturer_id = ?", lecturerID).Delete(&model.MonthlyAttendanceSummaryModel{})
	if res.Error != nil {
		return daily, monthly, 0, res.Error
	}
	summaries = res.RowsAffected
	return daily, monthly, summaries, nil
}

// DeleteAllForStudent dipakai hard-delete siswa (operasi eksplisit + audit).
func (s *AttendanceStore) DeleteAllForStudent(tx *gorm.DB, studentID int) (daily int64, monthly int64, err error) {
	res := s.db(tx).Where("student_id = ?", studentID).Delete(&model.AttendanceRecordModel{})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	daily = res.RowsAffected

	res = s.db(tx).Where("student_id = ?", studentID).Delete(&model.MonthlyStudentAttendanceModel{})
	if res.Error != nil {
		return daily, 0, res.Error
	}
	monthly = res.RowsAffected
	return daily, monthly, nil
}
