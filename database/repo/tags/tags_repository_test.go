package tags

import (
	"testing"

	"github.com/asakaze/photo-vault/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Photo{}, &models.Tag{}, &models.PhotoTagRelation{})
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{Name: "tester", Email: email, PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPhoto(t *testing.T, db *gorm.DB, userID uint, path string) *models.Photo {
	photo := &models.Photo{UserID: userID, Name: "p", ImagePath: path, SizeInBytes: 1}
	require.NoError(t, db.Create(photo).Error)
	return photo
}

// --- 测试 FindOrCreate ---

func TestRepository_FindOrCreate_ReusesExistingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "tags-reuse@test.local")

	first, err := repo.FindOrCreate("sunset", user.ID)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.FindOrCreate("sunset", user.ID)
	require.NoError(t, err)

	// 同一行被复用，不产生重复行
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Tag{}).Where("user_id = ? AND label = ?", user.ID, "sunset").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_FindOrCreate_PerUserNamespace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	alice := createUser(t, db, "tags-alice@test.local")
	bob := createUser(t, db, "tags-bob@test.local")

	a, err := repo.FindOrCreate("beach", alice.ID)
	require.NoError(t, err)
	b, err := repo.FindOrCreate("beach", bob.ID)
	require.NoError(t, err)

	// 标签命名空间按用户隔离
	assert.NotEqual(t, a.ID, b.ID)
}

// --- 测试 AddRelation ---

func TestRepository_AddRelation_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "tags-relation@test.local")
	photo := createPhoto(t, db, user.ID, "rel-1.jpg")

	tag, err := repo.FindOrCreate("dup", user.ID)
	require.NoError(t, err)

	assert.NoError(t, repo.AddRelation(photo.ID, tag.ID))
	assert.NoError(t, repo.AddRelation(photo.ID, tag.ID))

	var count int64
	db.Model(&models.PhotoTagRelation{}).
		Where("photo_id = ? AND tag_id = ?", photo.ID, tag.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

// --- 测试 ReplaceForPhotos ---

func TestRepository_ReplaceForPhotos_FullReplace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "tags-replace@test.local")
	photo := createPhoto(t, db, user.ID, "replace-1.jpg")

	t1, err := repo.FindOrCreate("old", user.ID)
	require.NoError(t, err)
	t2, err := repo.FindOrCreate("new", user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddRelation(photo.ID, t1.ID))

	// {old} -> {new}：旧关联被全量替换
	require.NoError(t, repo.ReplaceForPhotos([]uint{photo.ID}, []uint{t2.ID}))

	grouped, err := repo.TagsForPhotoIDs([]uint{photo.ID})
	require.NoError(t, err)
	require.Len(t, grouped[photo.ID], 1)
	assert.Equal(t, t2.ID, grouped[photo.ID][0].ID)
}

func TestRepository_ReplaceForPhotos_EmptyTagList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "tags-clear@test.local")
	photo := createPhoto(t, db, user.ID, "clear-1.jpg")

	tag, err := repo.FindOrCreate("gone", user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddRelation(photo.ID, tag.ID))

	// 空标签集 = 清空
	require.NoError(t, repo.ReplaceForPhotos([]uint{photo.ID}, nil))

	grouped, err := repo.TagsForPhotoIDs([]uint{photo.ID})
	require.NoError(t, err)
	assert.Empty(t, grouped[photo.ID])
}

// --- 测试 TagsForPhotoIDs ---

func TestRepository_TagsForPhotoIDs_SeedsEmptySlices(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "tags-grouped@test.local")
	tagged := createPhoto(t, db, user.ID, "grouped-1.jpg")
	bare := createPhoto(t, db, user.ID, "grouped-2.jpg")

	tag, err := repo.FindOrCreate("grouped", user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddRelation(tagged.ID, tag.ID))

	grouped, err := repo.TagsForPhotoIDs([]uint{tagged.ID, bare.ID})
	require.NoError(t, err)

	// 每个请求的照片ID都有条目，没有标签的照片得到空列表而不是缺失键
	require.Contains(t, grouped, bare.ID)
	assert.NotNil(t, grouped[bare.ID])
	assert.Empty(t, grouped[bare.ID])
	require.Len(t, grouped[tagged.ID], 1)
	assert.Equal(t, "grouped", grouped[tagged.ID][0].Label)
}

// --- 测试 CountOwned ---

func TestRepository_CountOwned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	owner := createUser(t, db, "tags-count-owner@test.local")
	other := createUser(t, db, "tags-count-other@test.local")

	mine, err := repo.FindOrCreate("mine", owner.ID)
	require.NoError(t, err)
	theirs, err := repo.FindOrCreate("theirs", other.ID)
	require.NoError(t, err)

	count, err := repo.CountOwned([]uint{mine.ID, theirs.ID}, owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
