package repositories

import (
	"strings"
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestModels_TableNamesFollowSchemaPrefix(t *testing.T) {
	expected := map[string]bool{
		"users": true, "verification_codes": true, "password_reset_tokens": true,
		"passport_details": true, "question_sets": true, "questions": true,
		"question_options": true, "user_question_set_assignments": true,
	}

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "default schema", prefix: ""},
		{name: "recruit schema", prefix: "recruit."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			naming := schema.NamingStrategy{TablePrefix: tt.prefix}
			seen := make(map[string]bool)
			for _, model := range Models() {
				s, err := schema.Parse(model, &sync.Map{}, naming)
				if err != nil {
					t.Fatalf("failed to parse %T: %v", model, err)
				}
				if !strings.HasPrefix(s.Table, tt.prefix) {
					t.Errorf("%T: expected prefix %q, got table %q", model, tt.prefix, s.Table)
				}
				seen[strings.TrimPrefix(s.Table, tt.prefix)] = true
			}
			for table := range expected {
				if !seen[table] {
					t.Errorf("expected table %q, got %v", table, seen)
				}
			}
		})
	}
}
