// file: internals/features/college/attendance/service/reconciler_service.go
//
// CumulativeReconciler: batas translasi antara angka KUMULATIF yang
// dimasukkan lecturer ("hadir 40 dari 52 kelas sejauh ini") dan unit
// kebenaran skema, yaitu DELTA bulanan. Satu-satunya penulis normal
// MonthlyAttendanceSummary.total_classes dan
// MonthlyStudentAttendance.present_count.
package service

import (
	"log"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	academicservice "moulya_backend/internals/features/college/academics/service"
	"moulya_backend/internals/features/college/attendance/model"
	"moulya_backend/internals/features/college/attendance/repository"
)

type ReconcilerService struct {
	DB          *gorm.DB
	Store       *repository.AttendanceStore
	Assignments *academicservice.AssignmentService
}

func NewReconcilerService(db *gorm.DB) *ReconcilerService {
	return &ReconcilerService{
		DB:          db,
		Store:       repository.NewAttendanceStore(db),
		Assignments: academicservice.NewAssignmentService(db),
	}
}

// MonthlySubmission: angka yang diketik lecturer — kumulatif sepanjang tahun
// ajaran, BUKAN delta bulan itu.
type MonthlySubmission struct {
	SubjectID              int
	LecturerID             int
	Month                  int
	Year                   int
	TotalClassesCumulative int
	// student_id → kumulatif kelas yang dihadiri sejauh ini
	StudentCumulativePresent map[int]int
}

// SubmitMonthly merekonsiliasi satu submission bulanan:
//  1. cek penugasan aktif,
//  2. hitung prior total dari delta bulan-bulan sebelumnya,
//  3. tolak bila kumulatif turun (invariant monotonik),
//  4. upsert delta bulan ini + delta per siswa (clamp [0, monthDelta]),
//  5. hitung ulang average_attendance dari delta bulan itu saja.
//
// Semua validasi terjadi sebelum tulis; seluruh tulisan dalam satu transaksi —
// gagal di tengah berarti rollback total, tidak ada partial commit.
func (s *ReconcilerService) SubmitMonthly(sub MonthlySubmission) error {
	if sub.Month < 1 || sub.Month > 12 {
		return invalidInputf("month must be between 1 and 12")
	}
	if sub.TotalClassesCumulative < 0 {
		return invalidInputf("total classes cannot be negative")
	}

	assigned, err := s.Assignments.IsActivelyAssigned(nil, sub.LecturerID, sub.SubjectID)
	if err != nil {
		return persistencef(err)
	}
	if !assigned {
		return ErrNotAuthorized
	}

	var monthDelta int
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		priorTotal, err := s.Store.PriorTotalClasses(tx, sub.SubjectID, sub.LecturerID, sub.Month, sub.Year)
		if err != nil {
			return persistencef(err)
		}
		if sub.TotalClassesCumulative < priorTotal {
			return invalidInputf("total classes must be at least %d (cumulative from previous months)", priorTotal)
		}
		monthDelta = sub.TotalClassesCumulative - priorTotal

		// Validasi seluruh siswa DULU — submission ditolak utuh bila satu saja
		// melanggar, dengan siswa yang bermasalah disebut di pesan.
		studentIDs := make([]int, 0, len(sub.StudentCumulativePresent))
		for id := range sub.StudentCumulativePresent {
			studentIDs = append(studentIDs, id)
		}
		sort.Ints(studentIDs)

		monthPresent := make(map[int]int, len(studentIDs))
		for _, studentID := range studentIDs {
			cumulative := sub.StudentCumulativePresent[studentID]
			priorPresent, err := s.Store.PriorPresentCount(tx, studentID, sub.SubjectID, sub.LecturerID, sub.Month, sub.Year)
			if err != nil {
				return persistencef(err)
			}
			if cumulative < priorPresent {
				return invalidInputf("student %d: attended must be at least %d (cumulative from previous months)", studentID, priorPresent)
			}
			if cumulative > sub.TotalClassesCumulative {
				return invalidInputf("student %d: attended cannot exceed total cumulative classes %d", studentID, sub.TotalClassesCumulative)
			}
			monthPresent[studentID] = clamp(cumulative-priorPresent, 0, monthDelta)
		}

		summary := model.MonthlyAttendanceSummaryModel{
			SubjectID:     sub.SubjectID,
			LecturerID:    sub.LecturerID,
			Month:         sub.Month,
			Year:          sub.Year,
			TotalClasses:  monthDelta,
			TotalStudents: len(studentIDs),
		}
		if err := s.Store.UpsertSummary(tx, &summary); err != nil {
			return persistencef(err)
		}

		for _, studentID := range studentIDs {
			row := model.MonthlyStudentAttendanceModel{
				StudentID:    studentID,
				SubjectID:    sub.SubjectID,
				LecturerID:   sub.LecturerID,
				Month:        sub.Month,
				Year:         sub.Year,
				PresentCount: monthPresent[studentID],
			}
			if err := s.Store.UpsertStudentPresent(tx, &row); err != nil {
				return persistencef(err)
			}
		}

		// average_attendance dihitung dari delta TERSIMPAN bulan itu (termasuk
		// siswa dari submission sebelumnya yang tidak ikut kali ini).
		avg, nStudents, err := s.monthAverage(tx, sub.SubjectID, sub.LecturerID, sub.Month, sub.Year, monthDelta)
		if err != nil {
			return persistencef(err)
		}
		if err := s.db(tx).Model(&model.MonthlyAttendanceSummaryModel{}).
			Where("subject_id = ? AND lecturer_id = ? AND month = ? AND year = ?",
				sub.SubjectID, sub.LecturerID, sub.Month, sub.Year).
			Updates(map[string]interface{}{
				"average_attendance": avg,
				"total_students":     nStudents,
			}).Error; err != nil {
			return persistencef(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Prune record harian yang indeks harinya melewati delta baru — best-effort,
	// di luar transaksi: gagal prune tidak membatalkan submission.
	if pruned, err := s.Store.PruneDailyPastDay(nil, sub.SubjectID, sub.LecturerID, sub.Month, sub.Year, monthDelta); err != nil {
		log.Printf("[WARN] prune daily records failed (subject=%d lecturer=%d %d/%d): %v",
			sub.SubjectID, sub.LecturerID, sub.Month, sub.Year, err)
	} else if pruned > 0 {
		log.Printf("[INFO] pruned %d stale daily records (subject=%d lecturer=%d %d/%d)",
			pruned, sub.SubjectID, sub.LecturerID, sub.Month, sub.Year)
	}
	return nil
}

// RecordDeputation mencatat izin resmi (dihitung hadir untuk persentase) per
// siswa. Independen dari delta present dan tidak tersentuh jalur koreksi.
// month nil → pakai bulan terakhir yang sudah punya summary tahun itu.
func (s *ReconcilerService) RecordDeputation(subjectID, lecturerID, year int, month *int, counts map[int]int) error {
	assigned, err := s.Assignments.IsActivelyAssigned(nil, lecturerID, subjectID)
	if err != nil {
		return persistencef(err)
	}
	if !assigned {
		return ErrNotAuthorized
	}

	targetMonth := 0
	if month != nil {
		if *month < 1 || *month > 12 {
			return invalidInputf("month must be between 1 and 12")
		}
		targetMonth = *month
	} else {
		months, err := s.Store.MonthsWithSummary(nil, subjectID, lecturerID, year)
		if err != nil {
			return persistencef(err)
		}
		if len(months) == 0 {
			return invalidInputf("no attendance recorded for %d yet", year)
		}
		targetMonth = months[len(months)-1]
	}

	studentIDs := make([]int, 0, len(counts))
	for id := range counts {
		studentIDs = append(studentIDs, id)
	}
	sort.Ints(studentIDs)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, studentID := range studentIDs {
			n := counts[studentID]
			if n < 0 {
				return invalidInputf("student %d: deputation cannot be negative", studentID)
			}
			row := model.MonthlyStudentAttendanceModel{
				StudentID:       studentID,
				SubjectID:       subjectID,
				LecturerID:      lecturerID,
				Month:           targetMonth,
				Year:            year,
				DeputationCount: n,
			}
			if err := s.Store.UpsertStudentDeputation(tx, &row); err != nil {
				return persistencef(err)
			}
		}
		return nil
	})
}

// RecordDaily mencatat status hadir/absen per siswa untuk satu tanggal.
// Upsert pada (student, subject, date): pencatatan ulang menimpa, tidak
// menduplikasi. Tidak menyentuh summary bulanan — itu wilayah SubmitMonthly.
func (s *ReconcilerService) RecordDaily(subjectID, lecturerID int, day time.Time, statuses map[int]string) error {
	if len(statuses) == 0 {
		return invalidInputf("no student statuses given")
	}

	assigned, err := s.Assignments.IsActivelyAssigned(nil, lecturerID, subjectID)
	if err != nil {
		return persistencef(err)
	}
	if !assigned {
		return ErrNotAuthorized
	}

	studentIDs := make([]int, 0, len(statuses))
	for id := range statuses {
		studentIDs = append(studentIDs, id)
	}
	sort.Ints(studentIDs)

	// normalisasi ke tengah malam UTC, kolomnya bertipe date
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	// validasi semua status dulu, baru tulis — submission ditolak utuh
	for _, studentID := range studentIDs {
		st := statuses[studentID]
		if st != model.StatusPresent && st != model.StatusAbsent {
			return invalidInputf("student %d: status must be '%s' or '%s'", studentID, model.StatusPresent, model.StatusAbsent)
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, studentID := range studentIDs {
			row := model.AttendanceRecordModel{
				StudentID:  studentID,
				SubjectID:  subjectID,
				LecturerID: lecturerID,
				Date:       date,
				Status:     statuses[studentID],
			}
			if err := s.Store.UpsertDailyStatus(tx, &row); err != nil {
				return persistencef(err)
			}
		}
		return nil
	})
}

func (s *ReconcilerService) db(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.DB
}

// monthAverage: rata-rata persentase kehadiran bulan itu dari baris tersimpan.
func (s *ReconcilerService) monthAverage(tx *gorm.DB, subjectID, lecturerID, month, year, totalClasses int) (float64, int, error) {
	rows, err := s.Store.ListStudentMonthly(tx, subjectID, lecturerID, month, year)
	if err != nil {
		return 0, 0, err
	}
	if totalClasses <= 0 || len(rows) == 0 {
		return 0, len(rows), nil
	}
	sum := 0
	for _, r := range rows {
		sum += r.PresentCount
	}
	avg := float64(sum) / (float64(len(rows)) * float64(totalClasses)) * 100
	return round2(avg), len(rows), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
