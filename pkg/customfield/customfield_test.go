package customfield_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-checkout/pkg/customfield"
)

func TestSchema(t *testing.T) {
	fields := []customfield.Field{
		{Name: "jersey", Type: customfield.FieldText, Required: true},
		{Name: "seats", Type: customfield.FieldNumber},
		{Name: "  ", Type: customfield.FieldText},
	}

	schema := customfield.Schema(fields)
	if len(schema.Properties) != 2 {
		t.Fatalf("expected blank names to be skipped, got %d properties", len(schema.Properties))
	}
	if diff := cmp.Diff([]string{"jersey"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	fields := []customfield.Field{
		{Name: "jersey", Type: customfield.FieldText, Required: true},
		{Name: "seats", Type: customfield.FieldNumber},
		{Name: "newsletter", Type: customfield.FieldCheckbox},
	}

	tests := []struct {
		name    string
		values  map[string]string
		wantErr string
	}{
		{name: "valid payload", values: map[string]string{"jersey": "XL", "seats": "2", "newsletter": "true"}},
		{name: "missing required", values: map[string]string{"seats": "2"}, wantErr: "jersey"},
		{name: "blank required counts as absent", values: map[string]string{"jersey": "   "}, wantErr: "jersey"},
		{name: "bad number", values: map[string]string{"jersey": "XL", "seats": "two"}, wantErr: "not a number"},
		{name: "bad boolean", values: map[string]string{"jersey": "XL", "newsletter": "maybe"}, wantErr: "not a boolean"},
		{name: "unknown fields pass through", values: map[string]string{"jersey": "XL", "extra": "ok"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := customfield.Validate(fields, tc.values)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateNoFields(t *testing.T) {
	if err := customfield.Validate(nil, map[string]string{"anything": "goes"}); err != nil {
		t.Fatalf("expected no validation without field definitions, got %v", err)
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"plain text", "plain text"},
		{"<script>alert(1)</script>hello", "hello"},
		{"<b>bold</b> words", "bold words"},
		{"   padded   ", "padded"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := customfield.SanitizeText(tc.raw); got != tc.want {
			t.Fatalf("SanitizeText(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestSanitizeValues(t *testing.T) {
	if customfield.SanitizeValues(nil) != nil {
		t.Fatal("expected nil input to stay nil")
	}
	got := customfield.SanitizeValues(map[string]string{"note": "<i>hi</i>"})
	if diff := cmp.Diff(map[string]string{"note": "hi"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}
