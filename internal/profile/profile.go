package profile

import (
	"fmt"
	"strings"
)

// Profile describes the job seeker: desired role, location and qualifications.
// Age is optional and does not participate in the search query.
type Profile struct {
	Title      string
	Location   string
	Age        string
	Education  string
	Experience string
}

// ValidationError reports the required profile fields that are missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required profile fields: %s", strings.Join(e.Fields, ", "))
}

// BuildQuery turns a profile into the search query string. The format is fixed;
// the same profile always produces the same query.
func (p Profile) BuildQuery() (string, error) {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{"job_title", p.Title},
		{"location", p.Location},
		{"education", p.Education},
		{"experience", p.Experience},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	if len(missing) > 0 {
		return "", &ValidationError{Fields: missing}
	}

	return fmt.Sprintf("%s jobs in %s for %s with %s years of experience",
		p.Title, p.Location, p.Education, p.Experience), nil
}
