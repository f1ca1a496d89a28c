package services_test

import (
	"errors"
	"testing"

	"shopforge/internal/domain"
	"shopforge/internal/repos"
	"shopforge/internal/services"
)

func TestRegisterLoginLogout(t *testing.T) {
	db := memdb(t)
	auth := &services.AuthService{Users: repos.NewUserRepo(db)}

	u, err := auth.Register("Carol", "carol@test.local", "S3cret!pw")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != "USER" || u.ID == "" {
		t.Fatalf("bad new user: %+v", u)
	}

	_, err = auth.Register("Carol Again", "carol@test.local", "S3cret!pw")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("duplicate email accepted: %v", err)
	}

	if _, err := auth.Login("sid-1", "carol@test.local", "wrong"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, err := auth.Login("sid-1", "nobody@test.local", "S3cret!pw"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds for unknown email, got %v", err)
	}

	got, err := auth.Login("sid-1", "carol@test.local", "S3cret!pw")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID {
		t.Fatalf("login bound wrong user: %+v", got)
	}

	cur, err := auth.CurrentUser("sid-1")
	if err != nil || cur.ID != u.ID {
		t.Fatalf("session lookup failed: %v %+v", err, cur)
	}

	if err := auth.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.CurrentUser("sid-1"); err == nil {
		t.Fatal("session survived logout")
	}
}
