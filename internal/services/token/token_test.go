package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewService(t *testing.T) {
	t.Parallel()

	if _, err := NewService("", time.Hour); err == nil {
		t.Error("NewService with empty secret succeeded, want error")
	}
	if _, err := NewService("secret", 0); err == nil {
		t.Error("NewService with zero ttl succeeded, want error")
	}
	if _, err := NewService("secret", time.Hour); err != nil {
		t.Errorf("NewService: %v", err)
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc, err := NewService("test-secret-key", time.Hour)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	userID := uuid.New()
	raw, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != userID {
		t.Errorf("Verify() = %s, want %s", got, userID)
	}
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()

	svc, err := NewService("test-secret-key", time.Hour)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		if _, err := svc.Verify("not-a-token"); err == nil {
			t.Error("Verify accepted garbage")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		other, err := NewService("a-different-secret", time.Hour)
		if err != nil {
			t.Fatalf("NewService: %v", err)
		}
		raw, err := other.Issue(uuid.New())
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if _, err := svc.Verify(raw); err == nil {
			t.Error("Verify accepted a token signed with another secret")
		}
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		short, err := NewService("test-secret-key", time.Nanosecond)
		if err != nil {
			t.Fatalf("NewService: %v", err)
		}
		raw, err := short.Issue(uuid.New())
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		if _, err := svc.Verify(raw); err == nil {
			t.Error("Verify accepted an expired token")
		}
	})
}
