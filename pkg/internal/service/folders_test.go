package service_test

import (
	"errors"
	"testing"

	"github.com/yeisme/sharevault/pkg/internal/model"
	"github.com/yeisme/sharevault/pkg/internal/service"
)

func TestCreateFolderDuplicateName(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFolderService(ctx)

	mustCreateFolder(t, ctx, "alice", model.RootFolderID, "docs")

	if _, err := svc.Create(ctx, "alice", model.RootFolderID, "docs"); !errors.Is(err, service.ErrDuplicateName) {
		t.Fatalf("want ErrDuplicateName, got %v", err)
	}

	// 不同父目录下同名允许
	parent := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "work")
	if _, err := svc.Create(ctx, "alice", parent.ID, "docs"); err != nil {
		t.Fatalf("same name under different parent: %v", err)
	}

	// 不同所有者同名允许
	if _, err := svc.Create(ctx, "bob", model.RootFolderID, "docs"); err != nil {
		t.Fatalf("same name under different owner: %v", err)
	}
}

func TestCreateFolderParentOwnership(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFolderService(ctx)

	parent := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "private")

	// 他人的文件夹在父目录解析时等同不存在
	if _, err := svc.Create(ctx, "bob", parent.ID, "intruder"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if _, err := svc.Create(ctx, "alice", 9999, "orphan"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRenameFolder(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFolderService(ctx)

	mustCreateFolder(t, ctx, "alice", model.RootFolderID, "a")
	b := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "b")

	if _, err := svc.Rename(ctx, "alice", b.ID, "a"); !errors.Is(err, service.ErrDuplicateName) {
		t.Fatalf("want ErrDuplicateName, got %v", err)
	}

	renamed, err := svc.Rename(ctx, "alice", b.ID, "c")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}

	if renamed.Name != "c" {
		t.Fatalf("want name c, got %s", renamed.Name)
	}

	if _, err := svc.Rename(ctx, "bob", b.ID, "d"); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestDeleteFolderRequiresConfirmation(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFolderService(ctx)

	folder := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "doomed")

	if _, err := svc.Delete(ctx, "alice", folder.ID, false); !errors.Is(err, service.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}

	if _, err := svc.Get(ctx, "alice", folder.ID); err != nil {
		t.Fatalf("folder should survive unconfirmed delete: %v", err)
	}
}

func TestDeleteFolderCascadesAndDetachesFiles(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFolderService(ctx)
	files := service.NewFileService(ctx)

	top := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "top")
	mid := mustCreateFolder(t, ctx, "alice", top.ID, "mid")
	leaf := mustCreateFolder(t, ctx, "alice", mid.ID, "leaf")

	f1 := mustUpload(t, ctx, "alice", mid.ID, "report.pdf", "data1")
	f2 := mustUpload(t, ctx, "alice", leaf.ID, "notes.txt", "data2")
	outside := mustUpload(t, ctx, "alice", model.RootFolderID, "root.txt", "data3")

	resp, err := svc.Delete(ctx, "alice", top.ID, true)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	if resp.DeletedFolders != 3 {
		t.Fatalf("want 3 deleted folders, got %d", resp.DeletedFolders)
	}

	if resp.DetachedFiles != 2 {
		t.Fatalf("want 2 detached files, got %d", resp.DetachedFiles)
	}

	for _, id := range []uint{top.ID, mid.ID, leaf.ID} {
		if _, err := svc.Get(ctx, "alice", id); !errors.Is(err, service.ErrNotFound) {
			t.Fatalf("folder %d should be gone, got %v", id, err)
		}
	}

	// 文件绝不随文件夹删除，而是移回根目录
	for _, id := range []uint{f1.ID, f2.ID, outside.ID} {
		got, err := files.Get(ctx, "alice", id)
		if err != nil {
			t.Fatalf("file %d should survive: %v", id, err)
		}

		if got.FolderID != model.RootFolderID {
			t.Fatalf("file %d should be at root, got folder %d", id, got.FolderID)
		}
	}
}

func TestListChildrenOrdering(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFolderService(ctx)

	mustCreateFolder(t, ctx, "alice", model.RootFolderID, "zebra")
	mustCreateFolder(t, ctx, "alice", model.RootFolderID, "alpha")
	mustUpload(t, ctx, "alice", model.RootFolderID, "one.txt", "1")
	mustUpload(t, ctx, "alice", model.RootFolderID, "two.txt", "2")

	resp, err := svc.ListChildren(ctx, "alice", model.RootFolderID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(resp.Folders) != 2 || resp.Folders[0].Name != "alpha" || resp.Folders[1].Name != "zebra" {
		t.Fatalf("folders not sorted by name: %+v", resp.Folders)
	}

	if len(resp.Files) != 2 {
		t.Fatalf("want 2 files, got %d", len(resp.Files))
	}
}

func TestListChildrenHidesTrashedFiles(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFolderService(ctx)
	trash := service.NewTrashService(ctx)

	file := mustUpload(t, ctx, "alice", model.RootFolderID, "gone.txt", "x")
	mustUpload(t, ctx, "alice", model.RootFolderID, "kept.txt", "y")

	if err := trash.Trash(ctx, "alice", file.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	resp, err := svc.ListChildren(ctx, "alice", model.RootFolderID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(resp.Files) != 1 || resp.Files[0].Name != "kept.txt" {
		t.Fatalf("trashed file should be hidden: %+v", resp.Files)
	}
}

func TestSetFolderPassword(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewFolderService(ctx)

	folder := mustCreateFolder(t, ctx, "alice", model.RootFolderID, "vault")

	if err := svc.SetPassword(ctx, "alice", folder.ID, "s3cret", "sess-1"); err != nil {
		t.Fatalf("set password: %v", err)
	}

	got, err := svc.Get(ctx, "alice", folder.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if !got.IsProtected() {
		t.Fatalf("folder should be protected")
	}

	if got.PasswordHash == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}

	// 空口令移除保护
	if err := svc.SetPassword(ctx, "alice", folder.ID, "", "sess-1"); err != nil {
		t.Fatalf("remove password: %v", err)
	}

	got, err = svc.Get(ctx, "alice", folder.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.IsProtected() {
		t.Fatalf("protection should be removed")
	}
}
