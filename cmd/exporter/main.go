package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"registration-service/internal/apiclient"
	"registration-service/internal/export"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		apiURL = flag.String("api", "http://localhost:8000", "Base URL of the registration service")
		out    = flag.String("out", "", "Output path (defaults to Registered_Users_<date>.xlsx)")
		quiet  = flag.Bool("quiet", false, "Skip the table preview")
	)
	flag.Parse()

	client := apiclient.New(*apiURL)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	regs, err := client.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch registrations: %v", err)
	}

	if !*quiet {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "S.No\tName\tEmail\tPhone\tRoll No.\tProgramme\tDepartment\tDate")
		for i, reg := range regs {
			roll := "N/A"
			if reg.RollNumber != nil {
				roll = *reg.RollNumber
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				i+1, reg.Name, reg.PersonalEmail, reg.Mobile, roll,
				reg.Programme, reg.Branch, reg.Date)
		}
		w.Flush()
		fmt.Printf("Total users: %d\n", len(regs))
	}

	path := *out
	if path == "" {
		path = export.Filename(time.Now())
	}

	if err := export.WriteFile(regs, path); err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			fmt.Println("Warning: no data to download, skipping export")
			return
		}
		log.Fatalf("Failed to write spreadsheet: %v", err)
	}

	fmt.Printf("Wrote %s\n", path)
}
