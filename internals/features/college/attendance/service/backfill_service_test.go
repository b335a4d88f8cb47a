package service

import (
	"testing"
)

// Skenario salah urutan: September (kumulatif 35) di-submit sebelum Agustus,
// jadi delta September tersimpan 35 dan siswa 30. Setelah Agustus masuk
// (delta 10, siswa 8), koreksi harus menurunkan September ke 25 / 22.
func submitWrongOrder(t *testing.T, rec *ReconcilerService) {
	t.Helper()
	// September duluan: prior masih 0, delta = kumulatif mentah
	if err := rec.SubmitMonthly(submit(1, 1, 9, 2025, 35, map[int]int{1: 30})); err != nil {
		t.Fatalf("september submit: %v", err)
	}
	// Agustus menyusul: prior-nya hanya bulan < 8, jadi tetap diterima
	if err := rec.SubmitMonthly(submit(1, 1, 8, 2025, 10, map[int]int{1: 8})); err != nil {
		t.Fatalf("august submit: %v", err)
	}
}

func TestComputeAdjustment(t *testing.T) {
	db := newTestDB(t)
	rec := NewReconcilerService(db)
	svc := NewBackfillService(db)
	seedAssignment(t, db, 1, 1)
	seedStudent(t, db, 1, "R001", "Anita", 1)
	submitWrongOrder(t, rec)

	adj, err := svc.ComputeAdjustment(nil, 1, 1, 2025)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !adj.Changed {
		t.Fatalf("adjustment not flagged as changed: %+v", adj)
	}
	if adj.SepOld != 35 || adj.SepNew != 25 || adj.AugDelta != 10 {
		t.Errorf("totals = old %d new %d aug %d, want 35/25/10", adj.SepOld, adj.SepNew, adj.AugDelta)
	}
	if len(adj.Students) != 1 {
		t.Fatalf("student adjustments = %d, want 1", len(adj.Students))
	}
	if adj.Students[0].SepPresentOld != 30 || adj.Students[0].SepPresentNew != 22 {
		t.Errorf("student = old %d new %d, want 30/22",
			adj.Students[0].SepPresentOld, adj.Students[0].SepPresentNew)
	}
}

func TestComputeAdjustment_NothingToDo(t *testing.T) {
	db := newTestDB(t)
	rec := NewReconcilerService(db)
	svc := NewBackfillService(db)
	seedAssignment(t, db, 1, 1)

	// hanya September → tidak ada Agustus untuk dikurangkan
	if err := rec.SubmitMonthly(submit(1, 1, 9, 2025, 35, map[int]int{1: 30})); err != nil {
		t.Fatalf("september submit: %v", err)
	}
	adj, err := svc.ComputeAdjustment(nil, 1, 1, 2025)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if adj.Changed {
		t.Errorf("adjustment flagged changed without august data: %+v", adj)
	}
	if adj.Reason != "No August summary" {
		t.Errorf("reason = %q, want 'No August summary'", adj.Reason)
	}

	// hanya Agustus → September tidak ada, juga nothing-to-do
	adj2, err := svc.ComputeAdjustment(nil, 1, 2, 2025)
	if err != nil {
		t.Fatalf("compute lecturer 2: %v", err)
	}
	if adj2.Changed || adj2.Reason != "No September summary" {
		t.Errorf("lecturer without data: %+v, want 'No September summary'", adj2)
	}
}

func TestComputeAdjustment_FloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	rec := NewReconcilerService(db)
	svc := NewBackfillService(db)
	seedAssignment(t, db, 1, 1)
	seedStudent(t, db, 1, "R001", "Anita", 1)

	// Sep delta 5 lebih kecil dari Aug delta 10 → hasil dipangkas ke 0
	if err := rec.SubmitMonthly(submit(1, 1, 9, 2025, 5, map[int]int{1: 4})); err != nil {
		t.Fatalf("september submit: %v", err)
	}
	if err := rec.SubmitMonthly(submit(1, 1, 8, 2025, 10, map[int]int{1: 8})); err != nil {
		t.Fatalf("august submit: %v", err)
	}

	adj, err := svc.ComputeAdjustment(nil, 1, 1, 2025)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if adj.SepNew != 0 {
		t.Errorf("sep new = %d, want 0", adj.SepNew)
	}
	if adj.Students[0].SepPresentNew != 0 {
		t.Errorf("student sep new = %d, want 0", adj.Students[0].SepPresentNew)
	}
}

// Perhitungan harus membaca lewat tx yang diberikan: perubahan yang belum
// di-commit di tx itu wajib terlihat, dan hilang lagi setelah rollback.
func TestComputeAdjustment_ReadsThroughTx(t *testing.T) {
	db := newTestDB(t)
	rec := NewReconcilerService(db)
	svc := NewBackfillService(db)
	seedAssignment(t, db, 1, 1)
	seedStudent(t, db, 1, "R001", "Anita", 1)
	submitWrongOrder(t, rec)

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("begin: %v", tx.Error)
	}
	// ubah total September jadi 40 di dalam tx, belum di-commit
	if err := svc.Store.UpdateSummaryTotals(tx, 1, 1, 9, 2025, 40, 75.0); err != nil {
		tx.Rollback()
		t.Fatalf("update totals in tx: %v", err)
	}

	adj, err := svc.ComputeAdjustment(tx, 1, 1, 2025)
	if err != nil {
		tx.Rollback()
		t.Fatalf("compute in tx: %v", err)
	}
	if adj.SepOld != 40 || adj.SepNew != 30 {
		t.Errorf("in-tx totals = old %d new %d, want 40/30", adj.SepOld, adj.SepNew)
	}
	tx.Rollback()

	// setelah rollback, perhitungan tanpa tx kembali ke nilai ter-commit
	adj, err = svc.ComputeAdjustment(nil, 1, 1, 2025)
	if err != nil {
		t.Fatalf("compute after rollback: %v", err)
	}
	if adj.SepOld != 35 || adj.SepNew != 25 {
		t.Errorf("post-rollback totals = old %d new %d, want 35/25", adj.SepOld, adj.SepNew)
	}
}

func TestApply_CorrectsSeptember(t *testing.T) {
	db := newTestDB(t)
	rec := NewReconcilerService(db)
	svc := NewBackfillService(db)
	seedAssignment(t, db, 1, 1)
	seedStudent(t, db, 1, "R001", "Anita", 1)
	submitWrongOrder(t, rec)

	results, err := svc.Apply(1, 2025)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(results) != 1 || !results[0].Changed {
		t.Fatalf("results = %+v, want one changed adjustment", results)
	}

	sep, err := svc.Store.GetSummary(nil, 1, 1, 9, 2025)
	if err != nil || sep == nil {
		t.Fatalf("get september summary: %v", err)
	}
	if sep.TotalClasses != 25 {
		t.Errorf("september total after apply = %d, want 25", sep.TotalClasses)
	}
	// avg = 22/25*100 = 88.00
	if sep.AverageAttendance != 88.0 {
		t.Errorf("september avg after apply = %v, want 88", sep.AverageAttendance)
	}

	row, _ := svc.Store.GetStudentMonthly(nil, 1, 1, 1, 9, 2025)
	if row == nil || row.PresentCount != 22 {
		t.Errorf("student row after apply = %+v, want present 22", row)
	}

	// Agustus tidak boleh tersentuh
	aug, _ := svc.Store.GetSummary(nil, 1, 1, 8, 2025)
	if aug == nil || aug.TotalClasses != 10 {
		t.Errorf("august summary after apply = %+v, want total 10", aug)
	}
}

func TestApply_DoesNotTouchDeputation(t *testing.T) {
	db := newTestDB(t)
	rec := NewReconcilerService(db)
	svc := NewBackfillService(db)
	seedAssignment(t, db, 1, 1)
	seedStudent(t, db, 1, "R001", "Anita", 1)
	submitWrongOrder(t, rec)

	month := 9
	if err := rec.RecordDeputation(1, 1, 2025, &month, map[int]int{1: 4}); err != nil {
		t.Fatalf("deputation: %v", err)
	}

	if _, err := svc.Apply(1, 2025); err != nil {
		t.Fatalf("apply: %v", err)
	}

	row, _ := svc.Store.GetStudentMonthly(nil, 1, 1, 1, 9, 2025)
	if row == nil || row.DeputationCount != 4 {
		t.Errorf("deputation after apply = %+v, want 4", row)
	}
}

func TestPreviewSubjectYear_CombinedAcrossLecturers(t *testing.T) {
	db := newTestDB(t)
	rec := NewReconcilerService(db)
	svc := NewBackfillService(db)
	seedAssignment(t, db, 1, 1)
	seedAssignment(t, db, 2, 1)
	seedStudent(t, db, 1, "R001", "Anita", 1)

	// lecturer 1 salah urutan, lecturer 2 hanya punya Oktober (tidak kena)
	submitWrongOrder(t, rec)
	if err := rec.SubmitMonthly(submit(1, 2, 10, 2025, 12, map[int]int{1: 11})); err != nil {
		t.Fatalf("october submit: %v", err)
	}

	preview, err := svc.PreviewSubjectYear(1, 2025)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(preview.Adjustments) != 1 {
		t.Fatalf("adjustments = %d, want 1 (only lecturer with Aug/Sep)", len(preview.Adjustments))
	}
	if preview.Combined == nil {
		t.Fatal("combined preview missing")
	}
	// gabungan BEFORE: 10+35+12 = 57; AFTER: 10+25+12 = 47
	if preview.Combined.TotalBefore != 57 || preview.Combined.TotalAfter != 47 {
		t.Errorf("combined totals = %d -> %d, want 57 -> 47",
			preview.Combined.TotalBefore, preview.Combined.TotalAfter)
	}
	if len(preview.Combined.Students) != 1 {
		t.Fatalf("combined students = %d, want 1", len(preview.Combined.Students))
	}
	st := preview.Combined.Students[0]
	// BEFORE: 8+30+11 = 49; AFTER: 8+22+11 = 41
	if st.PresentBefore != 49 || st.PresentAfter != 41 {
		t.Errorf("combined present = %d -> %d, want 49 -> 41", st.PresentBefore, st.PresentAfter)
	}
}
