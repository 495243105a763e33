package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"registration-service/internal/apiclient"
	"registration-service/internal/form"

	"github.com/joho/godotenv"
)

// Prompt order mirrors the registration form.
var fields = []struct {
	name  string
	label string
}{
	{"name", "Full Name"},
	{"date", "Registration Date (YYYY-MM-DD)"},
	{"programme", "Programme (BTech/MTech/PhD)"},
	{"rollNumber", "Roll Number (optional)"},
	{"branch", "Department/Field"},
	{"personalEmail", "Email Address"},
	{"mobile", "Phone Number"},
	{"emergencyContactName", "Emergency Contact"},
	{"emergencyContactPhone", "Emergency Phone"},
}

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", "http://localhost:8000", "Base URL of the registration service")
	flag.Parse()

	client := apiclient.New(*apiURL)
	f := form.New(time.Now().Format("2006-01-02"))
	in := bufio.NewScanner(os.Stdin)

	for _, field := range fields {
		prompt(in, f, field.name, field.label)
	}

	for {
		fmt.Print("I agree to the declaration [y/N]: ")
		if !in.Scan() {
			return
		}
		agreed := strings.EqualFold(strings.TrimSpace(in.Text()), "y")
		f.SetDeclaration(agreed)
		if !f.CanSubmit() {
			fmt.Println("You must agree to the declaration.")
			continue
		}

		f.Submit(context.Background(), client)
		fmt.Println(f.Notice)

		if f.State == form.SubmittedSuccess {
			return
		}
		if len(f.Errors) == 0 {
			// Transport failure; the filled-in form is kept for a retry.
			continue
		}
		for _, field := range fields {
			if _, bad := f.Errors[field.name]; bad {
				prompt(in, f, field.name, field.label)
			}
		}
	}
}

// prompt reads one field, reporting the live validation error until the
// value passes or the field has no live rule.
func prompt(in *bufio.Scanner, f *form.Form, name, label string) {
	for {
		fmt.Printf("%s: ", label)
		if !in.Scan() {
			log.Fatal("input closed")
		}
		f.SetField(name, strings.TrimSpace(in.Text()))
		if msg, bad := f.Errors[name]; bad {
			fmt.Println(msg)
			continue
		}
		return
	}
}
