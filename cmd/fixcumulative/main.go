// Perbaikan satu kali untuk submission kumulatif yang masuk dengan urutan
// terbalik (September di-submit sebelum Agustus, sehingga delta September
// masih menggandeng Agustus). Selalu tampilkan preview dulu; tulis ke DB
// hanya setelah operator mengetik APPLY.
//
// Pemakaian:
//
//	go run ./cmd/fixcumulative -subject 12 -year 2025
//	go run ./cmd/fixcumulative -subject 12 -year 2025 -apply
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"moulya_backend/internals/configs"
	database "moulya_backend/internals/databases"
	attendanceService "moulya_backend/internals/features/college/attendance/service"
)

func main() {
	subjectID := flag.Int("subject", 0, "subject_id yang dikoreksi (wajib)")
	year := flag.Int("year", 0, "tahun data Agustus/September (wajib)")
	apply := flag.Bool("apply", false, "izinkan tulis ke DB (tetap minta konfirmasi APPLY)")
	flag.Parse()

	if *subjectID <= 0 || *year < 2000 {
		flag.Usage()
		os.Exit(2)
	}

	configs.LoadEnv()
	database.ConnectDB()
	defer func() {
		if sqlDB, err := database.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	svc := attendanceService.NewBackfillService(database.DB)

	preview, err := svc.PreviewSubjectYear(*subjectID, *year)
	if err != nil {
		log.Fatalf("preview gagal: %v", err)
	}

	printAdjustments(preview)
	if preview.PerLecturer != nil {
		fmt.Println("\n=== PREVIEW PER LECTURER (lecturer pertama yang berubah) ===")
		printReport(preview.PerLecturer)
	}
	if preview.Combined != nil {
		fmt.Println("\n=== PREVIEW GABUNGAN (lintas lecturer) ===")
		printReport(preview.Combined)
	}

	anyChange := false
	for _, adj := range preview.Adjustments {
		if adj.Changed {
			anyChange = true
			break
		}
	}
	if !anyChange {
		fmt.Println("\nTidak ada yang perlu dikoreksi.")
		return
	}
	if !*apply {
		fmt.Println("\nDry-run selesai. Jalankan ulang dengan -apply untuk menulis.")
		return
	}

	fmt.Print("\nKetik APPLY untuk menulis koreksi (yang lain membatalkan): ")
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	if strings.TrimSpace(line) != "APPLY" {
		fmt.Println("Dibatalkan, tidak ada yang ditulis.")
		return
	}

	results, err := svc.Apply(*subjectID, *year)
	if err != nil {
		log.Fatalf("apply gagal: %v", err)
	}
	applied := 0
	for _, r := range results {
		if r.Changed {
			applied++
		}
	}
	fmt.Printf("Selesai. %d lecturer dikoreksi.\n", applied)
}

func printAdjustments(p *attendanceService.CorrectionPreview) {
	fmt.Printf("Subject %d, tahun %d\n", p.SubjectID, p.Year)
	for _, adj := range p.Adjustments {
		if !adj.Changed {
			fmt.Printf("  lecturer %d: dilewati (%s)\n", adj.LecturerID, adj.Reason)
			continue
		}
		fmt.Printf("  lecturer %d: Sep total %d -> %d (Aug delta %d)\n",
			adj.LecturerID, adj.SepOld, adj.SepNew, adj.AugDelta)
		for _, st := range adj.Students {
			if st.SepPresentOld != st.SepPresentNew {
				fmt.Printf("    %-12s %-24s Sep present %d -> %d\n",
					st.RollNumber, st.StudentName, st.SepPresentOld, st.SepPresentNew)
			}
		}
	}
}

func printReport(r *attendanceService.ReportPreview) {
	fmt.Printf("total kelas: %d -> %d\n", r.TotalBefore, r.TotalAfter)
	fmt.Printf("%-12s %-24s %10s %10s %8s %8s\n",
		"ROLL", "NAMA", "HADIR(B)", "HADIR(A)", "%(B)", "%(A)")
	for _, row := range r.Students {
		fmt.Printf("%-12s %-24s %10d %10d %8.2f %8.2f\n",
			row.RollNumber, row.StudentName,
			row.PresentBefore, row.PresentAfter,
			row.PctBefore, row.PctAfter)
	}
}
