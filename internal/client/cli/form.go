package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/wikireader/internal/client/models"
)

var errUsage = errors.New("usage")

const setUsage = "Usage: set title|language|length|voice|section|maxlength <value>"

// Set edits one form field. An empty value resets section and maxlength.
func (a *App) Set(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.println(setUsage)
		return errUsage
	}
	field := strings.ToLower(args[0])
	value := strings.TrimSpace(strings.Join(args[1:], " "))

	var err error
	a.updateForm(func(f *models.Form) {
		switch field {
		case "title":
			f.Title = value
		case "language", "lang":
			if value == "" {
				err = errUsage
				return
			}
			f.Language = strings.ToLower(value)
		case "length":
			switch value {
			case models.SummaryShort, models.SummaryMedium, models.SummaryLong:
				f.SummaryLength = value
			default:
				err = fmt.Errorf("summary length must be %s, %s or %s",
					models.SummaryShort, models.SummaryMedium, models.SummaryLong)
			}
		case "voice":
			if value == "" {
				value = models.DefaultVoice
			}
			f.VoiceType = value
		case "section":
			f.Section = value
		case "maxlength", "max_length":
			if value == "" {
				f.MaxLength = 0
				return
			}
			n, convErr := strconv.Atoi(value)
			if convErr != nil || n < 0 {
				err = fmt.Errorf("maxlength must be a non-negative number")
				return
			}
			f.MaxLength = n
		default:
			err = errUsage
		}
	})

	switch {
	case errors.Is(err, errUsage):
		a.println(setUsage)
	case err != nil:
		a.println(err.Error())
	}
	return err
}

// ShowForm prints the current form values.
func (a *App) ShowForm(_ context.Context) error {
	f := a.formSnapshot()
	a.printf("Title:     %s\n", f.Title)
	a.printf("Language:  %s\n", f.Language)
	a.printf("Length:    %s\n", f.SummaryLength)
	a.printf("Voice:     %s\n", f.VoiceType)
	if f.Section != "" {
		a.printf("Section:   %s\n", f.Section)
	}
	if f.MaxLength > 0 {
		a.printf("MaxLength: %d\n", f.MaxLength)
	}
	return nil
}
