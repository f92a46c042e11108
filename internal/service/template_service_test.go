package service

import (
	"testing"

	"github.com/smsforge/campaign-service/internal/models"
)

func TestTemplateService_Render(t *testing.T) {
	tests := []struct {
		name     string
		template string
		contact  *models.Contact
		want     string
		wantErr  bool
	}{
		{
			name:     "both tokens present",
			template: "Hi {first_name} {last_name}, our sale is on!",
			contact:  &models.Contact{FirstName: "Alice", LastName: "Mwangi"},
			want:     "Hi Alice Mwangi, our sale is on!",
		},
		{
			name:     "only first occurrence of a repeated token is replaced",
			template: "Hi {first_name}, yes {first_name}, you!",
			contact:  &models.Contact{FirstName: "Bob"},
			want:     "Hi Bob, yes {first_name}, you!",
		},
		{
			name:     "repeated last name token",
			template: "{last_name} {last_name}",
			contact:  &models.Contact{LastName: "Otieno"},
			want:     "Otieno {last_name}",
		},
		{
			name:     "unknown tokens are left verbatim",
			template: "Hi {first_name}, visit {location}!",
			contact:  &models.Contact{FirstName: "Alice"},
			want:     "Hi Alice, visit {location}!",
		},
		{
			name:     "empty contact fields",
			template: "Hi {first_name} {last_name}!",
			contact:  &models.Contact{},
			want:     "Hi  !",
		},
		{
			name:     "no tokens",
			template: "Plain message with no personalization",
			contact:  &models.Contact{FirstName: "Alice"},
			want:     "Plain message with no personalization",
		},
		{
			name:     "empty template",
			template: "",
			contact:  &models.Contact{FirstName: "Alice"},
			want:     "",
		},
		{
			name:     "malformed token is left verbatim",
			template: "Hi {first_name",
			contact:  &models.Contact{FirstName: "Alice"},
			want:     "Hi {first_name",
		},
		{
			name:     "token matching is case sensitive",
			template: "Hi {First_Name}",
			contact:  &models.Contact{FirstName: "Alice"},
			want:     "Hi {First_Name}",
		},
		{
			name:     "nil contact",
			template: "Hi {first_name}",
			contact:  nil,
			want:     "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTemplateService()
			got, err := svc.Render(tt.template, tt.contact)

			if (err != nil) != tt.wantErr {
				t.Errorf("Render() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
