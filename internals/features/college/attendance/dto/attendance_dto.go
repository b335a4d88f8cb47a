// file: internals/features/college/attendance/dto/attendance_dto.go
package dto

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

// Submit bulanan: angka KUMULATIF sepanjang tahun, bukan delta.
type SubmitMonthlyRequest struct {
	SubjectID    int `json:"subject_id" validate:"required,gt=0"`
	Month        int `json:"month" validate:"required,min=1,max=12"`
	Year         int `json:"year" validate:"required,min=2000,max=2100"`
	TotalClasses int `json:"total_classes" validate:"min=0"`

	// student_id → kumulatif kelas yang dihadiri sejauh ini
	StudentAttendance map[int]int `json:"student_attendance" validate:"required,min=1"`
}

// Pencatatan harian: status per siswa untuk satu tanggal.
type RecordDailyRequest struct {
	SubjectID int    `json:"subject_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"` // kosong → hari ini

	// student_id → 'present' / 'absent'
	Statuses map[int]string `json:"statuses" validate:"required,min=1"`
}

type RecordDeputationRequest struct {
	SubjectID int  `json:"subject_id" validate:"required,gt=0"`
	Year      int  `json:"year" validate:"required,min=2000,max=2100"`
	Month     *int `json:"month" validate:"omitempty,min=1,max=12"` // nil → bulan terakhir yang sudah disubmit

	// student_id → jumlah deputation bulan itu
	DeputationCounts map[int]int `json:"deputation_counts" validate:"required,min=1"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type SubmitMonthlyResponse struct {
	SubjectID    int `json:"subject_id"`
	Month        int `json:"month"`
	Year         int `json:"year"`
	MonthClasses int `json:"month_classes"` // delta yang tersimpan untuk bulan ini
	Students     int `json:"students"`
}

type PriorHintsResponse struct {
	SubjectID         int         `json:"subject_id"`
	Month             int         `json:"month"`
	Year              int         `json:"year"`
	PriorTotalClasses int         `json:"prior_total_classes"`
	PriorPresent      map[int]int `json:"prior_present"`
}
