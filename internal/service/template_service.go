package service

import (
	"strings"

	"github.com/smsforge/campaign-service/internal/models"
)

// Personalization tokens recognized in campaign templates
const (
	tokenFirstName = "{first_name}"
	tokenLastName  = "{last_name}"
)

// TemplateService renders campaign templates for individual contacts
type TemplateService interface {
	Render(template string, contact *models.Contact) (string, error)
}

type templateService struct{}

// NewTemplateService creates a new template service
func NewTemplateService() TemplateService {
	return &templateService{}
}

// Render substitutes the personalization tokens with the contact's fields.
// Only the first occurrence of each token is replaced; campaigns were
// authored against that behavior, so it is preserved rather than upgraded
// to replace-all. Unknown tokens are left verbatim.
func (s *templateService) Render(template string, contact *models.Contact) (string, error) {
	if contact == nil {
		return "", models.ErrInvalidInput("contact cannot be nil")
	}

	result := strings.Replace(template, tokenFirstName, contact.FirstName, 1)
	result = strings.Replace(result, tokenLastName, contact.LastName, 1)

	return result, nil
}
