package service_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/yeisme/sharevault/pkg/internal/model"
	"github.com/yeisme/sharevault/pkg/internal/service"
)

func TestUploadAutoSuffixesDuplicateNames(t *testing.T) {
	ctx := newTestContext(t)

	f0 := mustUpload(t, ctx, "alice", model.RootFolderID, "report.pdf", "v0")
	f1 := mustUpload(t, ctx, "alice", model.RootFolderID, "report.pdf", "v1")
	f2 := mustUpload(t, ctx, "alice", model.RootFolderID, "report.pdf", "v2")

	if f0.Name != "report.pdf" || f1.Name != "report_1.pdf" || f2.Name != "report_2.pdf" {
		t.Fatalf("unexpected names: %s / %s / %s", f0.Name, f1.Name, f2.Name)
	}

	// 已进回收站的名字不参与查重
	trash := service.NewTrashService(ctx)
	if err := trash.Trash(ctx, "alice", f0.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	f3 := mustUpload(t, ctx, "alice", model.RootFolderID, "report.pdf", "v3")
	if f3.Name != "report.pdf" {
		t.Fatalf("trashed name should be reusable, got %s", f3.Name)
	}
}

func TestUploadIntoForeignFolder(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFileService(ctx)

	folder := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "private")

	_, err := svc.Upload(ctx, "bob", folder.ID, "x.txt", strings.NewReader("x"), 1, "text/plain")
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDownloadRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFileService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "data.bin", "payload-bytes")

	rc, meta, err := svc.Download(ctx, "alice", file.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(data) != "payload-bytes" {
		t.Fatalf("content mismatch: %q", data)
	}

	if meta.Name != "data.bin" {
		t.Fatalf("meta mismatch: %+v", meta)
	}

	// 非所有者视角
	if _, _, err := svc.Download(ctx, "bob", file.ID); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestDownloadTrashedFileFails(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFileService(ctx)
	trash := service.NewTrashService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "x.txt", "x")

	if err := trash.Trash(ctx, "alice", file.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	if _, _, err := svc.Download(ctx, "alice", file.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRenameFileKeepsExtension(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFileService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "draft.txt", "x")

	renamed, err := svc.Rename(ctx, "alice", file.ID, "final")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}

	if renamed.Name != "final.txt" {
		t.Fatalf("want final.txt, got %s", renamed.Name)
	}
}

func TestRenameFileRejectsDuplicate(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFileService(ctx)

	mustUpload(t, ctx, "alice", model.RootFolderID, "a.txt", "a")
	b := mustUpload(t, ctx, "alice", model.RootFolderID, "b.txt", "b")

	if _, err := svc.Rename(ctx, "alice", b.ID, "a.txt"); !errors.Is(err, service.ErrDuplicateName) {
		t.Fatalf("want ErrDuplicateName, got %v", err)
	}
}

func TestMoveFile(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFileService(ctx)

	folder := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "target")
	file := mustUpload(t, ctx, "alice", model.RootFolderID, "m.txt", "m")

	moved, err := svc.Move(ctx, "alice", file.ID, folder.ID)
	if err != nil {
		t.Fatalf("move: %v", err)
	}

	if moved.FolderID != folder.ID {
		t.Fatalf("want folder %d, got %d", folder.ID, moved.FolderID)
	}

	// 移回根目录
	moved, err = svc.Move(ctx, "alice", file.ID, model.RootFolderID)
	if err != nil {
		t.Fatalf("move to root: %v", err)
	}

	if moved.FolderID != model.RootFolderID {
		t.Fatalf("want root, got %d", moved.FolderID)
	}

	// 目标文件夹不属于请求者
	foreign := mustCreateFolder(t, ctx, "bob", model.RootFolderID, "bobs")
	if _, err := svc.Move(ctx, "alice", file.ID, foreign.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCreateTextFileEnforcesTxt(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFileService(ctx)

	file, err := svc.CreateTextFile(ctx, "alice", model.RootFolderID, "memo", "hello world")
	if err != nil {
		t.Fatalf("create text file: %v", err)
	}

	if file.Name != "memo.txt" {
		t.Fatalf("want memo.txt, got %s", file.Name)
	}

	rc, _, err := svc.Download(ctx, "alice", file.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if string(data) != "hello world" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestRecentFiles(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFileService(ctx)
	trash := service.NewTrashService(ctx)

	mustUpload(t, ctx, "alice", model.RootFolderID, "a.txt", "a")
	b := mustUpload(t, ctx, "alice", model.RootFolderID, "b.txt", "b")
	mustUpload(t, ctx, "bob", model.RootFolderID, "c.txt", "c")

	if err := trash.Trash(ctx, "alice", b.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	resp, err := svc.Recent(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}

	if len(resp.Files) != 1 || resp.Files[0].Name != "a.txt" {
		t.Fatalf("unexpected recent files: %+v", resp.Files)
	}
}
