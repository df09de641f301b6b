package auth

import "testing"

func TestPassphraseDisabledWhenEmpty(t *testing.T) {
	p, err := NewPassphrase("")
	if err != nil {
		t.Fatalf("NewPassphrase: %v", err)
	}
	if p.Enabled() {
		t.Error("expected empty passphrase to disable the guard")
	}
	if !p.Check("anything") {
		t.Error("expected disabled guard to accept any attempt")
	}
}

func TestPassphraseCheck(t *testing.T) {
	p, err := NewPassphrase("收纳很开心")
	if err != nil {
		t.Fatalf("NewPassphrase: %v", err)
	}
	if !p.Enabled() {
		t.Fatal("expected guard to be enabled")
	}
	if !p.Check("收纳很开心") {
		t.Error("expected correct passphrase to pass")
	}
	if p.Check("wrong") {
		t.Error("expected wrong passphrase to fail")
	}
	if p.Check("") {
		t.Error("expected empty attempt to fail")
	}
}
