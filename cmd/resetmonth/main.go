// Escape hatch: hapus SEMUA data kehadiran satu (month, year) lintas subject
// dan lecturer, supaya bulan itu bisa di-submit ulang dari nol. Destruktif dan
// tidak bisa di-undo.
//
// Pemakaian:
//
//	go run ./cmd/resetmonth -month 9 -year 2025 -dry-run
//	go run ./cmd/resetmonth -month 9 -year 2025
//	go run ./cmd/resetmonth -month 9 -year 2025 -yes   # tanpa prompt
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
	month := flag.Int("month", 0, "bulan yang direset, 1-12 (wajib)")
	year := flag.Int("year", 0, "tahun yang direset (wajib)")
	dryRun := flag.Bool("dry-run", false, "hitung saja, jangan hapus")
	yes := flag.Bool("yes", false, "lewati prompt konfirmasi")
	flag.Parse()

	if *month < 1 || *month > 12 || *year < 2000 {
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

	svc := attendanceService.NewResetService(database.DB)

	// hitung dulu apa yang ada, apa pun modenya
	found, err := svc.ResetMonth(*month, *year, true)
	if err != nil {
		log.Fatalf("hitung data gagal: %v", err)
	}
	fmt.Printf("Data kehadiran %d/%d:\n", *month, *year)
	fmt.Printf("  record harian   : %d\n", found.Found.DailyRecords)
	fmt.Printf("  bulanan/siswa   : %d\n", found.Found.StudentAttendance)
	fmt.Printf("  summary bulanan : %d\n", found.Found.Summaries)

	if *dryRun {
		fmt.Println("\nDry-run, tidak ada yang dihapus.")
		return
	}
	total := found.Found.DailyRecords + found.Found.StudentAttendance + found.Found.Summaries
	if total == 0 {
		fmt.Println("\nTidak ada data untuk dihapus.")
		return
	}

	if !*yes {
		fmt.Printf("\nIni menghapus %d baris dan TIDAK bisa di-undo.\n", total)
		fmt.Print("Ketik RESET untuk melanjutkan (yang lain membatalkan): ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		if strings.TrimSpace(line) != "RESET" {
			fmt.Println("Dibatalkan, tidak ada yang dihapus.")
			return
		}
	}

	result, err := svc.ResetMonth(*month, *year, false)
	if err != nil {
		log.Fatalf("reset gagal: %v", err)
	}
	fmt.Println("\nSelesai. Terhapus:")
	fmt.Printf("  record harian   : %d\n", result.Deleted.DailyRecords)
	fmt.Printf("  bulanan/siswa   : %d\n", result.Deleted.StudentAttendance)
	fmt.Printf("  summary bulanan : %d\n", result.Deleted.Summaries)
}
