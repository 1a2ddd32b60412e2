package service_test

import (
	"errors"
	"testing"

	"github.com/yeisme/sharevault/pkg/internal/model"
	"github.com/yeisme/sharevault/pkg/internal/service"
)

func TestAuthorizeUnprotectedFolder(t *testing.T) {
	ctx := newTestContext(t)
	gate := service.NewAccessService(ctx)

	folder := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "open")

	decision, err := gate.Authorize(ctx, "sess-1", "alice", folder.ID, "")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}

	if decision != service.DecisionAuthorized {
		t.Fatalf("want Authorized, got %s", decision)
	}
}

func TestAuthorizeProtectedFolderFlow(t *testing.T) {
	ctx := newTestContext(t)
	gate := service.NewAccessService(ctx)
	folders := service.NewFolderService(ctx)

	folder := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "vault")
	if err := folders.SetPassword(ctx, "alice", folder.ID, "s3cret", ""); err != nil {
		t.Fatalf("set password: %v", err)
	}

	// 未供口令 → 要求输入
	decision, err := gate.Authorize(ctx, "sess-1", "alice", folder.ID, "")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}

	if decision != service.DecisionPasswordPrompt {
		t.Fatalf("want PasswordPrompt, got %s", decision)
	}

	// 错误口令 → 拒绝且保持锁定
	decision, err = gate.Authorize(ctx, "sess-1", "alice", folder.ID, "wrong")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}

	if decision != service.DecisionWrongPassword {
		t.Fatalf("want WrongPassword, got %s", decision)
	}

	if gate.IsUnlocked(ctx, "sess-1", folder.ID) {
		t.Fatalf("wrong password must not unlock")
	}

	// 正确口令 → 放行并记住解锁
	decision, err = gate.Authorize(ctx, "sess-1", "alice", folder.ID, "s3cret")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}

	if decision != service.DecisionAuthorized {
		t.Fatalf("want Authorized, got %s", decision)
	}

	// 同会话第二次无口令直接放行
	decision, err = gate.Authorize(ctx, "sess-1", "alice", folder.ID, "")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}

	if decision != service.DecisionAuthorized {
		t.Fatalf("second call should be Authorized, got %s", decision)
	}

	// 其他会话不共享解锁
	decision, err = gate.Authorize(ctx, "sess-2", "alice", folder.ID, "")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}

	if decision != service.DecisionPasswordPrompt {
		t.Fatalf("other session must stay locked, got %s", decision)
	}
}

func TestAuthorizePerFolderNotSubtree(t *testing.T) {
	ctx := newTestContext(t)
	gate := service.NewAccessService(ctx)
	folders := service.NewFolderService(ctx)

	parent := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "parent")
	child := mustCreateFolder(t, ctx, "alice", parent.ID, "child")

	for _, id := range []uint{parent.ID, child.ID} {
		if err := folders.SetPassword(ctx, "alice", id, "pw", ""); err != nil {
			t.Fatalf("set password: %v", err)
		}
	}

	if _, err := gate.Authorize(ctx, "sess-1", "alice", parent.ID, "pw"); err != nil {
		t.Fatalf("unlock parent: %v", err)
	}

	// 解锁父目录不隐式授权子目录
	decision, err := gate.Authorize(ctx, "sess-1", "alice", child.ID, "")
	if err != nil {
		t.Fatalf("authorize child: %v", err)
	}

	if decision != service.DecisionPasswordPrompt {
		t.Fatalf("child must require its own unlock, got %s", decision)
	}
}

func TestRemovePasswordClearsUnlock(t *testing.T) {
	ctx := newTestContext(t)
	gate := service.NewAccessService(ctx)
	folders := service.NewFolderService(ctx)

	folder := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "v")
	if err := folders.SetPassword(ctx, "alice", folder.ID, "pw", ""); err != nil {
		t.Fatalf("set password: %v", err)
	}

	if _, err := gate.Authorize(ctx, "sess-1", "alice", folder.ID, "pw"); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	if err := folders.SetPassword(ctx, "alice", folder.ID, "", "sess-1"); err != nil {
		t.Fatalf("remove password: %v", err)
	}

	if gate.IsUnlocked(ctx, "sess-1", folder.ID) {
		t.Fatalf("unlock flag should be cleared with protection")
	}
}

func TestRequireLockedFolder(t *testing.T) {
	ctx := newTestContext(t)
	gate := service.NewAccessService(ctx)
	folders := service.NewFolderService(ctx)

	folder := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "locked")
	if err := folders.SetPassword(ctx, "alice", folder.ID, "pw", ""); err != nil {
		t.Fatalf("set password: %v", err)
	}

	if err := gate.Require(ctx, "sess-1", "alice", folder.ID); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	if _, err := gate.Authorize(ctx, "sess-1", "alice", folder.ID, "pw"); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	if err := gate.Require(ctx, "sess-1", "alice", folder.ID); err != nil {
		t.Fatalf("require after unlock: %v", err)
	}

	// 根目录恒放行
	if err := gate.Require(ctx, "sess-1", "alice", model.RootFolderID); err != nil {
		t.Fatalf("root must always pass: %v", err)
	}
}
