// file: internals/features/college/attendance/service/backfill_service.go
//
// BackfillCorrector: alat perbaikan manual untuk SATU kelas kesalahan
// historis — lecturer memasukkan kumulatif September SEBELUM Agustus,
// sehingga delta September yang tersimpan ikut menghitung Agustus.
// Koreksinya: Sep_baru = max(Sep_lama − Aug, 0), per subject-total dan per
// siswa. Deputation tidak pernah disentuh. Bukan jalur otomatis: skema tidak
// menyimpan waktu submit, jadi out-of-order tidak terdeteksi sendiri.
package service

import (
	"log"

	"gorm.io/gorm"

	academicservice "moulya_backend/internals/features/college/academics/service"
	"moulya_backend/internals/features/college/attendance/repository"
	auditservice "moulya_backend/internals/features/college/audit/service"
)

const (
	backfillAugust    = 8
	backfillSeptember = 9
)

type BackfillService struct {
	DB          *gorm.DB
	Store       *repository.AttendanceStore
	Enrollments *academicservice.EnrollmentService
	Audit       *auditservice.AuditService
}

func NewBackfillService(db *gorm.DB) *BackfillService {
	return &BackfillService{
		DB:          db,
		Store:       repository.NewAttendanceStore(db),
		Enrollments: academicservice.NewEnrollmentService(db),
		Audit:       auditservice.NewAuditService(db),
	}
}

type StudentAdjustment struct {
	StudentID     int    `json:"student_id"`
	RollNumber    string `json:"roll_number"`
	StudentName   string `json:"student_name"`
	SepPresentOld int    `json:"sep_present_old"`
	SepPresentNew int    `json:"sep_present_new"`
}

type LecturerAdjustment struct {
	LecturerID int    `json:"lecturer_id"`
	Changed    bool   `json:"changed"`
	Reason     string `json:"reason,omitempty"` // terisi saat Changed=false
	AugDelta   int    `json:"aug_delta"`
	SepOld     int    `json:"sep_old"`
	SepNew     int    `json:"sep_new"`
	Students   []StudentAdjustment `json:"students,omitempty"`
}

// PreviewRow: BEFORE vs AFTER kumulatif setahun untuk satu siswa.
type PreviewRow struct {
	RollNumber    string  `json:"roll_number"`
	StudentName   string  `json:"student_name"`
	PresentBefore int     `json:"present_before"` // termasuk deputation (gaya laporan)
	PresentAfter  int     `json:"present_after"`
	TotalBefore   int     `json:"total_before"`
	TotalAfter    int     `json:"total_after"`
	PctBefore     float64 `json:"pct_before"`
	PctAfter      float64 `json:"pct_after"`
}

type ReportPreview struct {
	TotalBefore int          `json:"total_before"`
	TotalAfter  int          `json:"total_after"`
	Students    []PreviewRow `json:"students"`
}

// CorrectionPreview: hasil dry-run lengkap untuk satu subject/year.
type CorrectionPreview struct {
	SubjectID   int                  `json:"subject_id"`
	Year        int                  `json:"year"`
	Adjustments []LecturerAdjustment `json:"adjustments"`
	// Per-lecturer preview (lecturer pertama yang berubah) + gabungan lintas
	// lecturer — laporan kumulatif menjumlah lintas pergantian pengajar.
	PerLecturer *ReportPreview `json:"per_lecturer,omitempty"`
	Combined    *ReportPreview `json:"combined,omitempty"`
}

// ComputeAdjustment menghitung koreksi untuk satu lecturer TANPA menulis.
// "Nothing to do" (Changed=false) bila summary September atau Agustus absen.
// tx boleh nil (preview); Apply meneruskan tx-nya supaya baca dan tulis satu unit.
func (s *BackfillService) ComputeAdjustment(tx *gorm.DB, subjectID, lecturerID, year int) (LecturerAdjustment, error) {
	adj := LecturerAdjustment{LecturerID: lecturerID}

	sepSummary, err := s.Store.GetSummary(tx, subjectID, lecturerID, backfillSeptember, year)
	if err != nil {
		return adj, persistencef(err)
	}
	if sepSummary == nil {
		adj.Reason = "No September summary"
		return adj, nil
	}
	augSummary, err := s.Store.GetSummary(tx, subjectID, lecturerID, backfillAugust, year)
	if err != nil {
		return adj, persistencef(err)
	}
	if augSummary == nil {
		adj.Reason = "No August summary"
		return adj, nil
	}

	adj.Changed = true
	adj.AugDelta = augSummary.TotalClasses
	adj.SepOld = sepSummary.TotalClasses
	adj.SepNew = maxInt(adj.SepOld-adj.AugDelta, 0)

	students, err := s.Enrollments.ActiveStudents(tx, subjectID)
	if err != nil {
		return adj, persistencef(err)
	}
	for _, st := range students {
		sepRow, err := s.Store.GetStudentMonthly(tx, st.StudentID, subjectID, lecturerID, backfillSeptember, year)
		if err != nil {
			return adj, persistencef(err)
		}
		if sepRow == nil {
			// tidak ada record September untuk siswa ini → tidak ada yang dikoreksi
			continue
		}
		augPresent := 0
		if augRow, err := s.Store.GetStudentMonthly(tx, st.StudentID, subjectID, lecturerID, backfillAugust, year); err != nil {
			return adj, persistencef(err)
		} else if augRow != nil {
			augPresent = augRow.PresentCount
		}
		adj.Students = append(adj.Students, StudentAdjustment{
			StudentID:     st.StudentID,
			RollNumber:    st.RollNumber,
			StudentName:   st.StudentName,
			SepPresentOld: sepRow.PresentCount,
			SepPresentNew: maxInt(sepRow.PresentCount-augPresent, 0),
		})
	}
	return adj, nil
}

// PreviewSubjectYear: dry-run untuk semua lecturer yang punya data Aug/Sep
// pada subject/year tsb. Tidak menulis apa pun.
func (s *BackfillService) PreviewSubjectYear(subjectID, year int) (*CorrectionPreview, error) {
	lecturerIDs, err := s.Store.LecturersWithSummary(nil, subjectID, year, backfillAugust, backfillSeptember)
	if err != nil {
		return nil, persistencef(err)
	}

	preview := &CorrectionPreview{SubjectID: subjectID, Year: year}
	for _, lid := range lecturerIDs {
		adj, err := s.ComputeAdjustment(nil, subjectID, lid, year)
		if err != nil {
			return nil, err
		}
		preview.Adjustments = append(preview.Adjustments, adj)
	}

	for _, adj := range preview.Adjustments {
		if adj.Changed {
			p, err := s.perLecturerPreview(subjectID, adj.LecturerID, year, adj)
			if err != nil {
				return nil, err
			}
			preview.PerLecturer = p
			break
		}
	}
	combined, err := s.combinedPreview(subjectID, year, preview.Adjustments)
	if err != nil {
		return nil, err
	}
	preview.Combined = combined
	return preview, nil
}

// Apply menerapkan koreksi secara atomik: tulis ulang September (total +
// per-siswa), hitung ulang average_attendance dari data terkoreksi saja,
// catat audit. Dipanggil hanya setelah konfirmasi eksplisit operator.
func (s *BackfillService) Apply(subjectID, year int) ([]LecturerAdjustment, error) {
	lecturerIDs, err := s.Store.LecturersWithSummary(nil, subjectID, year, backfillAugust, backfillSeptember)
	if err != nil {
		return nil, persistencef(err)
	}

	var results []LecturerAdjustment
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, lid := range lecturerIDs {
			adj, err := s.ComputeAdjustment(tx, subjectID, lid, year)
			if err != nil {
				return err
			}
			results = append(results, adj)
			if !adj.Changed {
				continue
			}

			for _, st := range adj.Students {
				if err := s.Store.SetStudentPresent(tx, st.StudentID, subjectID, lid,
					backfillSeptember, year, st.SepPresentNew); err != nil {
					return persistencef(err)
				}
			}

			// average dihitung ulang KETAT dari baris September terkoreksi
			rows, err := s.Store.ListStudentMonthly(tx, subjectID, lid, backfillSeptember, year)
			if err != nil {
				return persistencef(err)
			}
			avg := 0.0
			if adj.SepNew > 0 && len(rows) > 0 {
				sum := 0
				for _, r := range rows {
					sum += r.PresentCount
				}
				avg = round2(float64(sum) / (float64(len(rows)) * float64(adj.SepNew)) * 100)
			}
			if err := s.Store.UpdateSummaryTotals(tx, subjectID, lid,
				backfillSeptember, year, adj.SepNew, avg); err != nil {
				return persistencef(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// audit best-effort: koreksi yang sudah commit tidak dibatalkan karena log
	if err := s.Audit.Record(nil, auditservice.ActionBackfillApply, "operator",
		[]string{"monthly_attendance_summaries", "monthly_student_attendances"},
		map[string]interface{}{"subject_id": subjectID, "year": year, "adjustments": results},
	); err != nil {
		log.Printf("[WARN] audit record failed (backfill apply subject=%d year=%d): %v", subjectID, year, err)
	}
	return results, nil
}

/* ===================== PREVIEW BUILDERS ===================== */

func (s *BackfillService) perLecturerPreview(subjectID, lecturerID, year int, adj LecturerAdjustment) (*ReportPreview, error) {
	totalBefore, err := s.Store.SumTotalClassesYear(nil, subjectID, &lecturerID, year)
	if err != nil {
		return nil, persistencef(err)
	}
	totalAfter := totalBefore - adj.SepOld + adj.SepNew

	students, err := s.Enrollments.ActiveStudents(nil, subjectID)
	if err != nil {
		return nil, persistencef(err)
	}

	newPresent := make(map[int]int, len(adj.Students))
	for _, ch := range adj.Students {
		newPresent[ch.StudentID] = ch.SepPresentNew
	}

	p := &ReportPreview{TotalBefore: totalBefore, TotalAfter: totalAfter}
	for _, st := range students {
		present, deputation, err := s.Store.SumPresentYear(nil, st.StudentID, subjectID, &lecturerID, year)
		if err != nil {
			return nil, persistencef(err)
		}
		sepOld := 0
		if row, err := s.Store.GetStudentMonthly(nil, st.StudentID, subjectID, lecturerID, backfillSeptember, year); err != nil {
			return nil, persistencef(err)
		} else if row != nil {
			sepOld = row.PresentCount
		}
		sepAfter := sepOld
		if v, ok := newPresent[st.StudentID]; ok {
			sepAfter = v
		}
		presentAfter := present - sepOld + sepAfter

		p.Students = append(p.Students, PreviewRow{
			RollNumber:    st.RollNumber,
			StudentName:   st.StudentName,
			PresentBefore: present + deputation,
			PresentAfter:  presentAfter + deputation,
			TotalBefore:   totalBefore,
			TotalAfter:    totalAfter,
			PctBefore:     percentage(present+deputation, totalBefore),
			PctAfter:      percentage(presentAfter+deputation, totalAfter),
		})
	}
	return p, nil
}

func (s *BackfillService) combinedPreview(subjectID, year int, adjustments []LecturerAdjustment) (*ReportPreview, error) {
	totalBefore, err := s.Store.SumTotalClassesYear(nil, subjectID, nil, year)
	if err != nil {
		return nil, persistencef(err)
	}
	totalAfter := totalBefore
	for _, adj := range adjustments {
		if adj.Changed {
			totalAfter += adj.SepNew - adj.SepOld
		}
	}

	students, err := s.Enrollments.ActiveStudents(nil, subjectID)
	if err != nil {
		return nil, persistencef(err)
	}

	p := &ReportPreview{TotalBefore: totalBefore, TotalAfter: totalAfter}
	for _, st := range students {
		present, deputation, err := s.Store.SumPresentYear(nil, st.StudentID, subjectID, nil, year)
		if err != nil {
			return nil, persistencef(err)
		}

		// delta September per lecturer yang berubah
		sepDelta := 0
		for _, adj := range adjustments {
			if !adj.Changed {
				continue
			}
			sepOld := 0
			if row, err := s.Store.GetStudentMonthly(nil, st.StudentID, subjectID, adj.LecturerID, backfillSeptember, year); err != nil {
				return nil, persistencef(err)
			} else if row != nil {
				sepOld = row.PresentCount
			}
			sepNew := sepOld
			for _, ch := range adj.Students {
				if ch.StudentID == st.StudentID {
					sepNew = ch.SepPresentNew
					break
				}
			}
			sepDelta += sepNew - sepOld
		}
		presentAfter := present + sepDelta

		p.Students = append(p.Students, PreviewRow{
			RollNumber:    st.RollNumber,
			StudentName:   st.StudentName,
			PresentBefore: present + deputation,
			PresentAfter:  presentAfter + deputation,
			TotalBefore:   totalBefore,
			TotalAfter:    totalAfter,
			PctBefore:     percentage(present+deputation, totalBefore),
			PctAfter:      percentage(presentAfter+deputation, totalAfter),
		})
	}
	return p, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
