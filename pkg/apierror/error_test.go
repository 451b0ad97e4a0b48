package apierror

import (
	"errors"
	"fmt"
	"testing"
)

func TestExtract_ServerMessage(t *testing.T) {
	err := Transport("Insufficient balance", errors.New("status 400"))
	if got := Extract(err); got != "Insufficient balance" {
		t.Errorf("Extract() = %q, want %q", got, "Insufficient balance")
	}
}

func TestExtract_TransportFallback(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Transport("", cause)
	if got := Extract(err); got != cause.Error() {
		t.Errorf("Extract() = %q, want %q", got, cause.Error())
	}
}

func TestExtract_FixedFallback(t *testing.T) {
	if got := Extract(&Error{Kind: KindTransport}); got != FallbackMessage {
		t.Errorf("Extract() = %q, want %q", got, FallbackMessage)
	}
	if got := Extract(nil); got != FallbackMessage {
		t.Errorf("Extract(nil) = %q, want %q", got, FallbackMessage)
	}
}

func TestExtract_PlainError(t *testing.T) {
	if got := Extract(errors.New("boom")); got != "boom" {
		t.Errorf("Extract() = %q, want %q", got, "boom")
	}
}

func TestKindPredicates(t *testing.T) {
	if !IsAuth(Auth("")) {
		t.Error("IsAuth(Auth()) = false")
	}
	if !IsNotFound(NotFound("")) {
		t.Error("IsNotFound(NotFound()) = false")
	}
	if !IsValidation(Validation(map[string]string{"price": "Price must be positive"})) {
		t.Error("IsValidation(Validation()) = false")
	}
	if IsAuth(NotFound("")) {
		t.Error("IsAuth(NotFound()) = true")
	}
	if IsAuth(errors.New("plain")) {
		t.Error("IsAuth(plain error) = true")
	}
}

func TestKindPredicates_Wrapped(t *testing.T) {
	err := fmt.Errorf("load wallet: %w", Auth("token expired"))
	if !IsAuth(err) {
		t.Error("IsAuth(wrapped auth error) = false")
	}
}

func TestAuthDefaultMessage(t *testing.T) {
	if got := Auth("").Message; got != "Authentication required" {
		t.Errorf("Auth(\"\").Message = %q", got)
	}
}
