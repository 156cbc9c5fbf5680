package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/panpaya/siteme-api-go/pkg/database"
	"github.com/panpaya/siteme-api-go/pkg/export"
	"github.com/panpaya/siteme-api-go/pkg/models"
	"github.com/panpaya/siteme-api-go/pkg/repository"
)

// Offline schedule export: dumps a date window straight from the database to
// an .xlsx file, for machines where the server is not running.
func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if len(os.Args) < 3 {
		fmt.Println("Usage: export <start_date> <end_date> [output.xlsx]")
		os.Exit(1)
	}
	startDate, endDate := os.Args[1], os.Args[2]
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			fmt.Printf("Error: %q is not a YYYY-MM-DD date\n", d)
			os.Exit(1)
		}
	}

	output := export.Filename(startDate, endDate)
	if len(os.Args) > 3 {
		output = os.Args[3]
	}

	db := database.InitDB()
	repo := repository.New(db)

	rows, err := repo.Assignments.ListWindow(context.Background(), startDate, endDate)
	if err != nil {
		fmt.Printf("Error: could not read schedule: %v\n", err)
		os.Exit(1)
	}

	f, err := export.ScheduleWorkbook(rows)
	if err != nil {
		fmt.Printf("Error: could not build workbook: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := f.SaveAs(output); err != nil {
		fmt.Printf("Error: could not write %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d rows to %s\n", len(rows), output)
}
