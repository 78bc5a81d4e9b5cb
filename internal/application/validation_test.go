package application

import (
	"errors"
	"testing"

	"bubblesea/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "parentID",
			value:     "0x1",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "parentID",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "parentID",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if valErr.Message != "parent ID is required" {
					t.Errorf("unexpected message %q", valErr.Message)
				}
			}
		})
	}
}

func TestParseIDField(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		want        domain.ID
		wantErr     bool
		wantInvalid bool
	}{
		{name: "hex id", value: "0x1F", want: 0x1F},
		{name: "surrounding space", value: " 0x2 ", want: 0x2},
		{name: "missing", value: "", wantErr: true},
		{name: "no prefix", value: "12", wantErr: true, wantInvalid: true},
		{name: "not hex", value: "0xZZ", wantErr: true, wantInvalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDField("id", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIDField(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if errors.Is(err, ErrInvalidID) != tt.wantInvalid {
					t.Errorf("errors.Is(err, ErrInvalidID) = %v, want %v", !tt.wantInvalid, tt.wantInvalid)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseIDField(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestValidateDistinct(t *testing.T) {
	if err := ValidateDistinct(map[string]domain.ID{"id": 1, "parentID": 2}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateDistinct(map[string]domain.ID{"id": 1, "parentID": 1})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Field != "parentID" || valErr.Message != "parent ID must differ from ID" {
		t.Errorf("unexpected error %+v", valErr)
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	if !errors.Is(&NotFoundError{ID: "0x1"}, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if !errors.Is(&StructureError{ID: "0x1", Reason: "no senpai"}, ErrInvalidOperation) {
		t.Error("StructureError should match ErrInvalidOperation")
	}
	if got := (&StructureError{ID: "0x1", Reason: "no senpai"}).Error(); got != "cannot restructure 0x1: no senpai" {
		t.Errorf("unexpected message %q", got)
	}
}
