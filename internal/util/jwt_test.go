package util

import (
	"testing"
	"time"

	"educonnect_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		Name:  "Test Student",
		Email: "student@educonnect.example",
		Role:  model.Student,
	}
	user.ID = 42

	secret := "test-secret-test-secret-test-secret"

	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.Student || claims.Email != user.Email {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{Email: "a@b.c", Role: model.Tutor}
	user.ID = 1

	token, err := GenerateJWT(user, "secret-one", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "secret-two"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	user := &model.User{Email: "a@b.c", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatal("expected error for expired token")
	}
}
