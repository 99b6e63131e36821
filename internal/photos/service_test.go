package photos

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/asakaze/photo-vault/database/models"
	repoFolders "github.com/asakaze/photo-vault/database/repo/folders"
	repoPhotos "github.com/asakaze/photo-vault/database/repo/photos"
	repoTags "github.com/asakaze/photo-vault/database/repo/tags"
	"github.com/asakaze/photo-vault/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeStore 记录删除调用的存储替身，可配置指定 key 删除失败
type fakeStore struct {
	mu      sync.Mutex
	deleted []string
	failOn  map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{failOn: make(map[string]error)}
}

func (f *fakeStore) Save(ctx context.Context, key string, file io.Reader, size int64) error {
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[key]; ok {
		return err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

// setupService 创建测试数据库与照片服务
func setupService(t *testing.T) (*gorm.DB, *Service, *fakeStore) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Folder{}, &models.Photo{}, &models.Tag{}, &models.PhotoTagRelation{})
	require.NoError(t, err)

	store := newFakeStore()
	svc := NewService(db, repoPhotos.NewRepository(db), repoFolders.NewRepository(db), repoTags.NewRepository(db), store)
	return db, svc, store
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{Name: "tester", Email: email, PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createFolder(t *testing.T, db *gorm.DB, userID uint, name string) *models.Folder {
	folder := &models.Folder{UserID: userID, Name: name}
	require.NoError(t, db.Create(folder).Error)
	return folder
}

// --- 测试 Register ---

func TestService_Register_RoundTrip(t *testing.T) {
	db, svc, _ := setupService(t)
	user := createUser(t, db, "photosvc-reg@test.local")
	folder := createFolder(t, db, user.ID, "inbox")

	photo, err := svc.Register(context.Background(), user.ID, CreatePhotoInput{
		Name:        "cat",
		FolderID:    &folder.ID,
		ImagePath:   "photosvc-reg.jpg",
		SizeInBytes: 42,
		Width:       800,
		Height:      600,
	})
	require.NoError(t, err)
	assert.NotZero(t, photo.ID)

	var saved models.Photo
	require.NoError(t, db.First(&saved, photo.ID).Error)
	assert.Equal(t, "cat", saved.Name)
	assert.Equal(t, int64(42), saved.SizeInBytes)
	assert.False(t, saved.UploadedAt.IsZero())
}

func TestService_Register_ForeignFolderRejected(t *testing.T) {
	db, svc, _ := setupService(t)
	owner := createUser(t, db, "photosvc-reg-owner@test.local")
	other := createUser(t, db, "photosvc-reg-other@test.local")
	folder := createFolder(t, db, owner.ID, "private")

	_, err := svc.Register(context.Background(), other.ID, CreatePhotoInput{
		Name:      "intruder",
		FolderID:  &folder.ID,
		ImagePath: "photosvc-reg-foreign.jpg",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestService_Register_EmptyImagePath(t *testing.T) {
	db, svc, _ := setupService(t)
	user := createUser(t, db, "photosvc-reg-empty@test.local")

	_, err := svc.Register(context.Background(), user.ID, CreatePhotoInput{Name: "no-blob"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// --- 测试 Search ---

func TestService_Search_EmptyQueryYieldsEmptyList(t *testing.T) {
	db, svc, _ := setupService(t)
	user := createUser(t, db, "photosvc-search-empty@test.local")

	for _, query := range []string{"", " ", ",", " , "} {
		got, err := svc.Search(context.Background(), user.ID, query)
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestService_Search_MatchesAnyLabel(t *testing.T) {
	db, svc, _ := setupService(t)
	user := createUser(t, db, "photosvc-search@test.local")

	p1, err := svc.Register(context.Background(), user.ID, CreatePhotoInput{Name: "a", ImagePath: "photosvc-search-1.jpg"})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), user.ID, CreatePhotoInput{Name: "b", ImagePath: "photosvc-search-2.jpg"})
	require.NoError(t, err)

	tagRepo := repoTags.NewRepository(db)
	tag, err := tagRepo.FindOrCreate("wanted", user.ID)
	require.NoError(t, err)
	require.NoError(t, tagRepo.AddRelation(p1.ID, tag.ID))

	got, err := svc.Search(context.Background(), user.ID, " wanted , nosuch ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p1.ID, got[0].ID)
	require.Len(t, got[0].Tags, 1)
	assert.Equal(t, "wanted", got[0].Tags[0].Tag)
}

// --- 测试 Move ---

func TestService_Move_ForeignDestinationRejected(t *testing.T) {
	db, svc, _ := setupService(t)
	owner := createUser(t, db, "photosvc-move-owner@test.local")
	other := createUser(t, db, "photosvc-move-other@test.local")

	photo, err := svc.Register(context.Background(), owner.ID, CreatePhotoInput{Name: "p", ImagePath: "photosvc-move.jpg"})
	require.NoError(t, err)
	foreignDest := createFolder(t, db, other.ID, "theirs")

	err = svc.Move(context.Background(), owner.ID, []uint{photo.ID}, foreignDest.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// 目标校验失败时什么都不发生
	var unchanged models.Photo
	require.NoError(t, db.First(&unchanged, photo.ID).Error)
	assert.Nil(t, unchanged.FolderID)
}

func TestService_Move_NoOwnedPhotosRejected(t *testing.T) {
	db, svc, _ := setupService(t)
	owner := createUser(t, db, "photosvc-move-none-owner@test.local")
	other := createUser(t, db, "photosvc-move-none-other@test.local")

	dest := createFolder(t, db, owner.ID, "mine")
	foreign, err := svc.Register(context.Background(), other.ID, CreatePhotoInput{Name: "p", ImagePath: "photosvc-move-none.jpg"})
	require.NoError(t, err)

	err = svc.Move(context.Background(), owner.ID, []uint{foreign.ID}, dest.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- 测试 Delete ---

func TestService_Delete_RemovesRowsRelationsAndBlobs(t *testing.T) {
	db, svc, store := setupService(t)
	user := createUser(t, db, "photosvc-del@test.local")

	photo, err := svc.Register(context.Background(), user.ID, CreatePhotoInput{Name: "p", ImagePath: "photosvc-del.jpg"})
	require.NoError(t, err)

	tagRepo := repoTags.NewRepository(db)
	tag, err := tagRepo.FindOrCreate("doomed", user.ID)
	require.NoError(t, err)
	require.NoError(t, tagRepo.AddRelation(photo.ID, tag.ID))

	require.NoError(t, svc.Delete(context.Background(), user.ID, []uint{photo.ID}))

	assert.Contains(t, store.deleted, "photosvc-del.jpg")

	var photoCount, relCount int64
	db.Unscoped().Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&photoCount)
	db.Model(&models.PhotoTagRelation{}).Where("photo_id = ?", photo.ID).Count(&relCount)
	assert.Equal(t, int64(0), photoCount)
	assert.Equal(t, int64(0), relCount)

	// 标签行本身保留
	var tagCount int64
	db.Model(&models.Tag{}).Where("id = ?", tag.ID).Count(&tagCount)
	assert.Equal(t, int64(1), tagCount)
}

func TestService_Delete_ForeignPhotoUntouched(t *testing.T) {
	db, svc, store := setupService(t)
	owner := createUser(t, db, "photosvc-del-owner@test.local")
	other := createUser(t, db, "photosvc-del-other@test.local")

	foreign, err := svc.Register(context.Background(), other.ID, CreatePhotoInput{Name: "p", ImagePath: "photosvc-del-foreign.jpg"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), owner.ID, []uint{foreign.ID})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// 行未动，对象也未被删除
	var count int64
	db.Model(&models.Photo{}).Where("id = ?", foreign.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.NotContains(t, store.deleted, "photosvc-del-foreign.jpg")
}

func TestService_Delete_BlobFailureReportedAfterCommit(t *testing.T) {
	db, svc, store := setupService(t)
	user := createUser(t, db, "photosvc-del-upstream@test.local")

	good, err := svc.Register(context.Background(), user.ID, CreatePhotoInput{Name: "g", ImagePath: "photosvc-up-good.jpg"})
	require.NoError(t, err)
	bad, err := svc.Register(context.Background(), user.ID, CreatePhotoInput{Name: "b", ImagePath: "photosvc-up-bad.jpg"})
	require.NoError(t, err)

	store.failOn["photosvc-up-bad.jpg"] = errors.New("bucket unreachable")

	// 对象存储失败被收集上报，但数据库删除仍然提交
	err = svc.Delete(context.Background(), user.ID, []uint{good.ID, bad.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	var upstream *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, []string{"photosvc-up-bad.jpg"}, upstream.Keys)

	var count int64
	db.Unscoped().Model(&models.Photo{}).Where("id IN ?", []uint{good.ID, bad.ID}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestService_Delete_EmptyList(t *testing.T) {
	db, svc, _ := setupService(t)
	user := createUser(t, db, "photosvc-del-empty@test.local")

	err := svc.Delete(context.Background(), user.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
