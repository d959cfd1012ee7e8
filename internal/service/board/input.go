package board

import (
	"strings"

	"github.com/modulearn/backend/internal/domain"
)

const (
	maxTitleLen   = 200
	maxContentLen = 50000
)

// CreateInput holds parameters for publishing a post.
type CreateInput struct {
	Title    string
	Content  string
	Category domain.PostCategory
}

// Validate checks required fields and length limits.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if strings.TrimSpace(i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if len(i.Content) > maxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}

	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "must be notice or community"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
