package service_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yeisme/sharevault/pkg/internal/model"
	"github.com/yeisme/sharevault/pkg/internal/service"
)

func TestCreateShareAndResolvePublic(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewShareService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "secret.txt", "top secret")

	link, token, err := svc.Create(ctx, "alice", file.ID, 0)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	if token == "" || link.ShareKey == "" {
		t.Fatalf("missing credentials: %+v", link)
	}

	if link.AccessLimit != 5 {
		t.Fatalf("want default limit 5, got %d", link.AccessLimit)
	}

	if !link.IsEncrypted {
		t.Fatalf("share copy should be encrypted when a cipher is configured")
	}

	data, got, err := svc.ResolvePublic(ctx, link.ShareKey)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if string(data) != "top secret" {
		t.Fatalf("content mismatch: %q", data)
	}

	if got.AccessCount != 1 {
		t.Fatalf("want access count 1, got %d", got.AccessCount)
	}
}

func TestResolvePublicUnknownKey(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewShareService(ctx)

	if _, _, err := svc.ResolvePublic(ctx, "no-such-key"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestShareAccessCapUnderConcurrency(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewShareService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "capped.txt", "limited")

	link, _, err := svc.Create(ctx, "alice", file.ID, 5)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	const attempts = 20

	var (
		ok       atomic.Int64
		exceeded atomic.Int64
		wg       sync.WaitGroup
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _, err := svc.ResolvePublic(ctx, link.ShareKey)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, service.ErrLimitExceeded):
				exceeded.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if ok.Load() != 5 {
		t.Fatalf("want exactly 5 successes, got %d", ok.Load())
	}

	if exceeded.Load() != attempts-5 {
		t.Fatalf("want %d limit errors, got %d", attempts-5, exceeded.Load())
	}

	var stored model.ShareLink
	if err := ctxDB(t, ctx).Where("share_key = ?", link.ShareKey).First(&stored).Error; err != nil {
		t.Fatalf("load link: %v", err)
	}

	if stored.AccessCount != 5 {
		t.Fatalf("access_count must never exceed limit: %d", stored.AccessCount)
	}

	// 之后的串行请求同样被拒
	if _, _, err := svc.ResolvePublic(ctx, link.ShareKey); !errors.Is(err, service.ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}
}

func TestShareExpiry(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewShareService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "late.txt", "late")

	link, token, err := svc.Create(ctx, "alice", file.ID, 0)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	past := time.Now().Add(-10 * time.Minute)
	if err := ctxDB(t, ctx).Model(&model.ShareLink{}).
		Where("share_key = ?", link.ShareKey).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if _, _, err := svc.ResolvePublic(ctx, link.ShareKey); !errors.Is(err, service.ErrExpired) {
		t.Fatalf("public: want ErrExpired, got %v", err)
	}

	if _, _, err := svc.ResolveByToken(ctx, token, "alice"); !errors.Is(err, service.ErrExpired) {
		t.Fatalf("token: want ErrExpired, got %v", err)
	}
}

func TestResolveByTokenChecksOwnership(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewShareService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "own.txt", "mine")

	link, token, err := svc.Create(ctx, "alice", file.ID, 0)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	// 令牌本身不足以放行
	if _, _, err := svc.ResolveByToken(ctx, token, "bob"); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	data, got, err := svc.ResolveByToken(ctx, token, "alice")
	if err != nil {
		t.Fatalf("resolve by token: %v", err)
	}

	if string(data) != "mine" {
		t.Fatalf("content mismatch: %q", data)
	}

	// 令牌路径不消耗兑换次数
	if got.AccessCount != 0 {
		t.Fatalf("token path must not consume budget, got %d", got.AccessCount)
	}

	_ = link
}

func TestShareSurvivesSourcePurge(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewShareService(ctx)
	trash := service.NewTrashService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "gone.txt", "still here")

	link, _, err := svc.Create(ctx, "alice", file.ID, 0)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	if err := trash.Trash(ctx, "alice", file.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	if err := trash.Purge(ctx, "alice", file.ID); err != nil {
		t.Fatalf("purge: %v", err)
	}

	// 深拷贝语义：源文件清除不影响已发出的链接
	data, _, err := svc.ResolvePublic(ctx, link.ShareKey)
	if err != nil {
		t.Fatalf("resolve after purge: %v", err)
	}

	if string(data) != "still here" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestShareOfTrashedFileFails(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewShareService(ctx)
	trash := service.NewTrashService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "t.txt", "t")

	if err := trash.Trash(ctx, "alice", file.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	if _, _, err := svc.Create(ctx, "alice", file.ID, 0); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRevokeShare(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewShareService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "r.txt", "r")

	link, _, err := svc.Create(ctx, "alice", file.ID, 0)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	if err := svc.Revoke(ctx, "bob", link.ShareKey); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	if err := svc.Revoke(ctx, "alice", link.ShareKey); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if _, _, err := svc.ResolvePublic(ctx, link.ShareKey); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("want ErrNotFound after revoke, got %v", err)
	}
}

func TestSweepExpiredShares(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewShareService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "s.txt", "s")

	expired, _, err := svc.Create(ctx, "alice", file.ID, 0)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	live, _, err := svc.Create(ctx, "alice", file.ID, 0)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if err := ctxDB(t, ctx).Model(&model.ShareLink{}).
		Where("share_key = ?", expired.ShareKey).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	swept, err := svc.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if swept != 1 {
		t.Fatalf("want 1 swept, got %d", swept)
	}

	if _, _, err := svc.ResolvePublic(ctx, expired.ShareKey); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("swept link should be gone, got %v", err)
	}

	if _, _, err := svc.ResolvePublic(ctx, live.ShareKey); err != nil {
		t.Fatalf("live link should survive sweep: %v", err)
	}
}
