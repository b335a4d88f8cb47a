// file: internals/features/college/attendance/service/aggregator_service.go
//
// AttendanceAggregator: roll-up view di atas delta bulanan yang sudah
// committed. Tidak pernah membaca angka mentah submission, hanya agregat.
package service

import (
	"gorm.io/gorm"

	"moulya_backend/internals/configs"
	academicservice "moulya_backend/internals/features/college/academics/service"
	"moulya_backend/internals/features/college/attendance/repository"
)

type AggregatorService struct {
	DB          *gorm.DB
	Store       *repository.AttendanceStore
	Enrollments *academicservice.EnrollmentService

	// Ambang kekurangan kehadiran (persen, strict "<").
	ShortageThreshold float64
}

func NewAggregatorService(db *gorm.DB) *AggregatorService {
	return &AggregatorService{
		DB:                db,
		Store:             repository.NewAttendanceStore(db),
		Enrollments:       academicservice.NewEnrollmentService(db),
		ShortageThreshold: configs.ShortageThreshold(),
	}
}

// StudentCumulative: kumulatif setahun untuk satu siswa. present+deputation
// dipangkas agar tidak melebihi total — over-count dari clamp defensif di
// tempat lain dipotong di sini, tidak dirambatkan ke laporan.
type StudentCumulative struct {
	StudentID       int     `json:"student_id"`
	PresentCount    int     `json:"present_count"`
	DeputationCount int     `json:"deputation_count"`
	EffectiveCount  int     `json:"effective_count"`
	TotalClasses    int     `json:"total_classes"`
	Percentage      float64 `json:"percentage"`
}

// ReportRow: satu baris laporan kehadiran subject (kumulatif setahun).
type ReportRow struct {
	StudentID      int     `json:"student_id"`
	StudentName    string  `json:"student_name"`
	RollNumber     string  `json:"roll_number"`
	PresentCount   int     `json:"present_count"`
	DeputationCount int    `json:"deputation_count"`
	TotalClasses   int     `json:"total_classes"`
	Percentage     float64 `json:"percentage"`
	HasShortage    bool    `json:"has_shortage"`
}

// MonthlyRow: breakdown satu bulan (delta, bukan kumulatif).
type MonthlyRow struct {
	StudentID       int     `json:"student_id"`
	StudentName     string  `json:"student_name"`
	RollNumber      string  `json:"roll_number"`
	PresentCount    int     `json:"present_count"`
	DeputationCount int     `json:"deputation_count"`
	TotalClasses    int     `json:"total_classes"`
	Percentage      float64 `json:"percentage"`
}

// CumulativeTotalClasses: Σ delta setahun. lecturerID nil → jumlah lintas
// semua lecturer yang pernah ditugaskan (laporan lintas pergantian pengajar).
func (s *AggregatorService) CumulativeTotalClasses(subjectID int, lecturerID *int, year int) (int, error) {
	total, err := s.Store.SumTotalClassesYear(nil, subjectID, lecturerID, year)
	if err != nil {
		return 0, persistencef(err)
	}
	return total, nil
}

// StudentCumulativeAttendance: Σ present + Σ deputation, clamped ke total.
func (s *AggregatorService) StudentCumulativeAttendance(studentID, subjectID int, lecturerID *int, year int) (StudentCumulative, error) {
	total, err := s.Store.SumTotalClassesYear(nil, subjectID, lecturerID, year)
	if err != nil {
		return StudentCumulative{}, persistencef(err)
	}
	present, deputation, err := s.Store.SumPresentYear(nil, studentID, subjectID, lecturerID, year)
	if err != nil {
		return StudentCumulative{}, persistencef(err)
	}
	effective := present + deputation
	if effective > total {
		effective = total
	}
	return StudentCumulative{
		StudentID:       studentID,
		PresentCount:    present,
		DeputationCount: deputation,
		EffectiveCount:  effective,
		TotalClasses:    total,
		Percentage:      percentage(effective, total),
	}, nil
}

// HasShortage: persentase < threshold (strict). Murni derived, tidak disimpan.
func (s *AggregatorService) HasShortage(pct float64) bool {
	return pct < s.ShortageThreshold
}

// SubjectReport: baris per siswa ter-enroll, urut roll number (kontrak
// user-facing — laporan dicetak dan dibandingkan per urutan roll).
func (s *AggregatorService) SubjectReport(subjectID int, lecturerID *int, year int) ([]ReportRow, error) {
	students, err := s.Enrollments.ActiveStudents(nil, subjectID)
	if err != nil {
		return nil, persistencef(err)
	}
	total, err := s.Store.SumTotalClassesYear(nil, subjectID, lecturerID, year)
	if err != nil {
		return nil, persistencef(err)
	}

	rows := make([]ReportRow, 0, len(students))
	for _, st := range students {
		present, deputation, err := s.Store.SumPresentYear(nil, st.StudentID, subjectID, lecturerID, year)
		if err != nil {
			return nil, persistencef(err)
		}
		effective := present + deputation
		if effective > total {
			effective = total
		}
		pct := percentage(effective, total)
		rows = append(rows, ReportRow{
			StudentID:       st.StudentID,
			StudentName:     st.StudentName,
			RollNumber:      st.RollNumber,
			PresentCount:    present,
			DeputationCount: deputation,
			TotalClasses:    total,
			Percentage:      pct,
			HasShortage:     s.HasShortage(pct),
		})
	}
	return rows, nil
}

// ShortageReport: subset SubjectReport yang kena shortage.
func (s *AggregatorService) ShortageReport(subjectID int, lecturerID *int, year int) ([]ReportRow, error) {
	rows, err := s.SubjectReport(subjectID, lecturerID, year)
	if err != nil {
		return nil, err
	}
	out := rows[:0:0]
	for _, r := range rows {
		if r.HasShortage {
			out = append(out, r)
		}
	}
	return out, nil
}

// MonthlyBreakdown: delta bulan itu per siswa ter-enroll. Slice kosong bila
// summary bulan itu belum ada — "belum disubmit" harus bisa dibedakan dari
// "disubmit dengan nol".
func (s *AggregatorService) MonthlyBreakdown(subjectID, lecturerID, month, year int) ([]MonthlyRow, error) {
	summary, err := s.Store.GetSummary(nil, subjectID, lecturerID, month, year)
	if err != nil {
		return nil, persistencef(err)
	}
	if summary == nil {
		return []MonthlyRow{}, nil
	}

	students, err := s.Enrollments.ActiveStudents(nil, subjectID)
	if err != nil {
		return nil, persistencef(err)
	}

	rows := make([]MonthlyRow, 0, len(students))
	for _, st := range students {
		rec, err := s.Store.GetStudentMonthly(nil, st.StudentID, subjectID, lecturerID, month, year)
		if err != nil {
			return nil, persistencef(err)
		}
		present, deputation := 0, 0
		if rec != nil {
			present, deputation = rec.PresentCount, rec.DeputationCount
		}
		rows = append(rows, MonthlyRow{
			StudentID:       st.StudentID,
			StudentName:     st.StudentName,
			RollNumber:      st.RollNumber,
			PresentCount:    present,
			DeputationCount: deputation,
			TotalClasses:    summary.TotalClasses,
			Percentage:      percentage(present, summary.TotalClasses),
		})
	}
	return rows, nil
}

// PriorCumulativeHints: bantuan form input bulanan — prior total kelas dan
// prior present per siswa sebelum (month, year), supaya UI bisa menampilkan
// batas minimal yang valid.
type PriorHints struct {
	PriorTotalClasses int         `json:"prior_total_classes"`
	PriorPresent      map[int]int `json:"prior_present"`
}

func (s *AggregatorService) PriorCumulativeHints(subjectID, lecturerID, month, year int) (PriorHints, error) {
	priorTotal, err := s.Store.PriorTotalClasses(nil, subjectID, lecturerID, month, year)
	if err != nil {
		return PriorHints{}, persistencef(err)
	}
	students, err := s.Enrollments.ActiveStudents(nil, subjectID)
	if err != nil {
		return PriorHints{}, persistencef(err)
	}
	hints := PriorHints{
		PriorTotalClasses: priorTotal,
		PriorPresent:      make(map[int]int, len(students)),
	}
	for _, st := range students {
		prior, err := s.Store.PriorPresentCount(nil, st.StudentID, subjectID, lecturerID, month, year)
		if err != nil {
			return PriorHints{}, persistencef(err)
		}
		hints.PriorPresent[st.StudentID] = prior
	}
	return hints, nil
}

// percentage membulatkan ke 2 desimal; 0 saat total 0 (bukan NaN).
func percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}
