package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

type stubStorage struct {
	saved map[string]string
	err   error
}

func (s *stubStorage) Save(_ context.Context, name, _ string, body io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, _ := io.ReadAll(body)
	s.saved[name] = string(b)
	return "/images/uuid_" + name, nil
}

type stubImageRepo struct {
	*stubRepo[domain.CattleImage, domain.CattleImageCreate, struct{}]
	createErr error
}

func (r *stubImageRepo) Create(ctx context.Context, in domain.CattleImageCreate) (*domain.CattleImage, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.stubRepo.Create(ctx, in)
}

func (r *stubImageRepo) ListByCattle(ctx context.Context, cattleID int64) ([]*domain.CattleImage, error) {
	all, _ := r.List(ctx, domain.Page{Limit: domain.MaxPageLimit})
	out := []*domain.CattleImage{}
	for _, img := range all {
		if img.CattleID == cattleID {
			out = append(out, img)
		}
	}
	return out, nil
}

func newImageFixture(t *testing.T) (*CattleImageService, *stubStorage, int64) {
	t.Helper()
	cattle := newStubCattleRepo()
	cow, err := cattle.Create(context.Background(), domain.CattleCreate{Name: "Bella", Gender: domain.GenderFemale})
	if err != nil {
		t.Fatalf("seed cattle: %v", err)
	}
	images := &stubImageRepo{stubRepo: newStubRepo(
		func(id int64, in domain.CattleImageCreate) *domain.CattleImage {
			return &domain.CattleImage{ID: id, CattleID: in.CattleID, ImageURL: in.ImageURL, UploadedAt: time.Now()}
		},
		func(*domain.CattleImage, struct{}) {},
	)}
	storage := &stubStorage{saved: map[string]string{}}
	return NewCattleImageService(images, cattle, storage, zerolog.Nop()), storage, cow.ID
}

func TestCattleImageService_Upload(t *testing.T) {
	svc, storage, cowID := newImageFixture(t)

	img, err := svc.Upload(context.Background(), cowID, "bella.jpg", "image/jpeg", strings.NewReader("jpeg"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if img.ImageURL != "/images/uuid_bella.jpg" || img.CattleID != cowID {
		t.Fatalf("unexpected image: %+v", img)
	}
	if storage.saved["bella.jpg"] != "jpeg" {
		t.Fatalf("bytes not stored")
	}

	list, err := svc.ListByCattle(context.Background(), cowID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByCattle: %v %v", list, err)
	}
}

func TestCattleImageService_Upload_UnknownCattle(t *testing.T) {
	svc, storage, _ := newImageFixture(t)

	if _, err := svc.Upload(context.Background(), 404, "x.jpg", "image/jpeg", strings.NewReader("x")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(storage.saved) != 0 {
		t.Fatalf("nothing should be stored for a missing animal")
	}
}

func TestCattleImageService_Upload_StorageFailure(t *testing.T) {
	svc, storage, cowID := newImageFixture(t)
	storage.err = errors.New("bucket unreachable")

	if _, err := svc.Upload(context.Background(), cowID, "x.jpg", "image/jpeg", strings.NewReader("x")); err == nil {
		t.Fatalf("expected storage error")
	}
}

func TestCattleImageService_Upload_RecordFailureLogsOrphan(t *testing.T) {
	cattle := newStubCattleRepo()
	cow, err := cattle.Create(context.Background(), domain.CattleCreate{Name: "Bella", Gender: domain.GenderFemale})
	if err != nil {
		t.Fatalf("seed cattle: %v", err)
	}
	images := &stubImageRepo{
		stubRepo: newStubRepo(
			func(id int64, in domain.CattleImageCreate) *domain.CattleImage {
				return &domain.CattleImage{ID: id, CattleID: in.CattleID, ImageURL: in.ImageURL}
			},
			func(*domain.CattleImage, struct{}) {},
		),
		createErr: errors.New("connection reset"),
	}
	storage := &stubStorage{saved: map[string]string{}}
	var logs bytes.Buffer
	svc := NewCattleImageService(images, cattle, storage, zerolog.New(&logs))

	if _, err := svc.Upload(context.Background(), cow.ID, "bella.jpg", "image/jpeg", strings.NewReader("jpeg")); err == nil {
		t.Fatalf("expected record error")
	}
	if storage.saved["bella.jpg"] != "jpeg" {
		t.Fatalf("bytes should have reached storage before the record failed")
	}
	out := logs.String()
	for _, want := range []string{`"level":"error"`, `"url":"/images/uuid_bella.jpg"`, `"orphaned image`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %s", out, want)
		}
	}
	if !strings.Contains(out, `"cattle_id":`) {
		t.Fatalf("log %q missing cattle_id", out)
	}
}
