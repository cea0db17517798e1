package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{"without wrapped", &AppError{Code: CodeNotFound, Message: "not found"}, "not found"},
		{"with wrapped", &AppError{Code: CodeInternal, Message: "boom", Err: errors.New("cause")}, "boom: cause"},
		{"message-less transport failure", &AppError{Code: CodeUnavailable, Err: errors.New("dial tcp: refused")}, "dial tcp: refused"},
		{"empty", &AppError{Code: CodeInternal}, "unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"not found sentinel", ErrNotFound, IsNotFound, true},
		{"not found wrapped", fmt.Errorf("fetch: %w", ErrNotFound), IsNotFound, true},
		{"not found fresh instance", NewAppError(CodeNotFound, "siswa not found", nil), IsNotFound, true},
		{"validation", NewAppError(CodeValidation, "nis required", nil), IsValidation, true},
		{"unauthorized", ErrUnauthorized, IsUnauthorized, true},
		{"unavailable", NewAppError(CodeUnavailable, "timeout", errors.New("dial tcp")), IsUnavailable, true},
		{"internal", ErrInternal, IsInternal, true},
		{"wrong code", ErrNotFound, IsValidation, false},
		{"plain error", errors.New("plain"), IsNotFound, false},
		{"nil", nil, IsUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldErrorsFirst(t *testing.T) {
	tests := []struct {
		name   string
		fields FieldErrors
		want   string
	}{
		{"empty", FieldErrors{}, ""},
		{"nil", nil, ""},
		{"single", FieldErrors{"nama_jabatan": {"The nama jabatan field is required."}}, "The nama jabatan field is required."},
		{
			"multiple fields picks first by name",
			FieldErrors{
				"nis":  {"The nis field is required."},
				"alamat": {"The alamat field is required."},
			},
			"The alamat field is required.",
		},
		{"skips empty message lists", FieldErrors{"a": {}, "b": {"msg"}}, "msg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fields.First(); got != tt.want {
				t.Errorf("First() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldErrorsOf(t *testing.T) {
	ve := &ValidationError{Fields: FieldErrors{"email": {"invalid"}}}
	wrapped := NewAppError(CodeValidation, "invalid", ve)

	fields, ok := FieldErrorsOf(wrapped)
	if !ok {
		t.Fatal("expected field errors to be extractable")
	}
	if fields["email"][0] != "invalid" {
		t.Errorf("unexpected fields: %v", fields)
	}

	if _, ok := FieldErrorsOf(ErrNotFound); ok {
		t.Error("expected no field errors on plain AppError")
	}
}

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, 404},
		{"validation", ErrValidation, 422},
		{"unauthorized", ErrUnauthorized, 401},
		{"unavailable", ErrUnavailable, 503},
		{"internal", ErrInternal, 500},
		{"plain error", errors.New("x"), 500},
		{"nil", nil, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusCode(tt.err); got != tt.want {
				t.Errorf("HTTPStatusCode = %d, want %d", got, tt.want)
			}
		})
	}
}
