package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/wolfman30/patient-intake-gateway/internal/confirmation"
	"github.com/wolfman30/patient-intake-gateway/internal/intake"
	"github.com/wolfman30/patient-intake-gateway/internal/webhook"
	"github.com/wolfman30/patient-intake-gateway/pkg/logging"
)

func main() {
	// .env is optional; operators usually pass -url or set WEBHOOK_URL.
	_ = godotenv.Load()

	url := flag.String("url", os.Getenv("WEBHOOK_URL"), "booking webhook URL (defaults to WEBHOOK_URL)")
	timeout := flag.Duration("timeout", 0, "submission timeout (0 waits as long as the webhook takes)")
	asJSON := flag.Bool("json", false, "print the raw confirmation as JSON")
	flag.Parse()

	if *url == "" {
		fmt.Fprintln(os.Stderr, "intakectl: no webhook URL; pass -url or set WEBHOOK_URL")
		flag.Usage()
		os.Exit(2)
	}

	form, err := promptForm()
	if err != nil {
		exitPrompt(err)
	}

	req, fieldErrs := form.Validate()
	if len(fieldErrs) > 0 {
		// Prompt validators check answers one at a time; cross-checking the
		// whole form here keeps the CLI honest about what it submits.
		fmt.Fprintf(os.Stderr, "intakectl: %v\n", fieldErrs)
		os.Exit(1)
	}

	submit := false
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Submit appointment request for %s?", req.Name),
		Default: true,
	}
	if err := survey.AskOne(confirmPrompt, &submit); err != nil {
		exitPrompt(err)
	}
	if !submit {
		fmt.Fprintln(os.Stderr, "cancelled")
		return
	}

	// Prompts own the terminal, so logs stay on stderr and quiet.
	logger := logging.NewWithWriter(os.Stderr, "error")
	opts := []webhook.ClientOption{webhook.WithLogger(logger)}
	if *timeout > 0 {
		opts = append(opts, webhook.WithTimeout(*timeout))
	}
	client := webhook.NewClient(*url, opts...)

	fmt.Fprintln(os.Stderr, "Submitting appointment request...")
	record, err := client.Submit(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "intakectl: submission failed: %v\n", err)
		os.Exit(1)
	}

	if err := printConfirmation(os.Stdout, record, *asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "intakectl: %v\n", err)
		os.Exit(1)
	}
}

func promptForm() (intake.Form, error) {
	var form intake.Form

	if err := survey.AskOne(&survey.Input{Message: "Patient name:"}, &form.Name,
		survey.WithValidator(fieldValidator("name"))); err != nil {
		return intake.Form{}, err
	}
	if err := survey.AskOne(&survey.Input{Message: "Age:"}, &form.Age,
		survey.WithValidator(fieldValidator("age"))); err != nil {
		return intake.Form{}, err
	}
	if err := survey.AskOne(&survey.Select{
		Message: "Gender:",
		Options: []string{"male", "female", "other"},
	}, &form.Gender); err != nil {
		return intake.Form{}, err
	}
	if err := survey.AskOne(&survey.Input{Message: "Contact number:"}, &form.ContactNumber,
		survey.WithValidator(fieldValidator("contactNumber"))); err != nil {
		return intake.Form{}, err
	}
	if err := survey.AskOne(&survey.Input{Message: "Email:"}, &form.Email,
		survey.WithValidator(fieldValidator("email"))); err != nil {
		return intake.Form{}, err
	}
	if err := survey.AskOne(&survey.Multiline{Message: "Describe the problem:"}, &form.Problem,
		survey.WithValidator(fieldValidator("problem"))); err != nil {
		return intake.Form{}, err
	}

	return form, nil
}

// fieldValidator adapts a single-field check to survey's answer validator.
func fieldValidator(field string) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)
		if msg := intake.ValidateField(field, s); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

// printConfirmation renders the webhook's confirmation for a terminal. The
// shared helpers HTML-escape values for the browser; a terminal wants the
// text back.
func printConfirmation(w io.Writer, record confirmation.Record, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("encode confirmation: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, html.UnescapeString(confirmation.Message(record)))

	entries := confirmation.Display(record)
	if len(entries) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	for _, entry := range entries {
		fmt.Fprintf(w, "  %s: %s\n", entry.Label, html.UnescapeString(entry.Value))
	}
	return nil
}

// exitPrompt ends the run when a prompt fails. Ctrl-C prints a short
// cancellation note instead of an error.
func exitPrompt(err error) {
	if errors.Is(err, terminal.InterruptErr) {
		fmt.Fprintln(os.Stderr, "cancelled")
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "intakectl: %v\n", err)
	os.Exit(1)
}
