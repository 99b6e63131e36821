package folders

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

	err = db.AutoMigrate(&models.User{}, &models.Folder{}, &models.Photo{})
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{Name: "tester", Email: email, PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createFolder(t *testing.T, db *gorm.DB, userID uint, name string, parentID *uint) *models.Folder {
	folder := &models.Folder{UserID: userID, Name: name, ParentID: parentID}
	require.NoError(t, db.Create(folder).Error)
	return folder
}

// --- 测试 CreateFolder / UpdateFolder ---

func TestRepository_CreateFolder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "folders-create@test.local")

	folder := &models.Folder{UserID: user.ID, Name: "holidays"}
	err := repo.CreateFolder(folder)
	assert.NoError(t, err)
	assert.NotZero(t, folder.ID)
}

func TestRepository_UpdateFolder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "folders-update@test.local")

	folder := createFolder(t, db, user.ID, "before", nil)
	folder.Name = "after"
	folder.Description = "renamed"
	assert.NoError(t, repo.UpdateFolder(folder))

	got, err := repo.GetByIDAndUser(folder.ID, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "after", got.Name)
	assert.Equal(t, "renamed", got.Description)
}

// --- 测试 GetByIDAndUser ---

func TestRepository_GetByIDAndUser_WrongUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	owner := createUser(t, db, "folders-owner@test.local")
	other := createUser(t, db, "folders-other@test.local")

	folder := createFolder(t, db, owner.ID, "private", nil)

	// 他人的文件夹与不存在的文件夹表现一致
	_, err := repo.GetByIDAndUser(folder.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetByIDAndUser(999999, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// --- 测试 GetChildren ---

func TestRepository_GetChildren_Sorted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "folders-children@test.local")

	root := createFolder(t, db, user.ID, "root", nil)
	createFolder(t, db, user.ID, "zebra", &root.ID)
	createFolder(t, db, user.ID, "alpha", &root.ID)

	children, err := repo.GetChildren(root.ID, user.ID)
	assert.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "alpha", children[0].Name)
	assert.Equal(t, "zebra", children[1].Name)
}

// --- 测试 Breadcrumbs ---

func TestRepository_Breadcrumbs_RootFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "folders-crumbs@test.local")

	// admin -> admin_1 -> admin_1_1
	root := createFolder(t, db, user.ID, "admin", nil)
	mid := createFolder(t, db, user.ID, "admin_1", &root.ID)
	leaf := createFolder(t, db, user.ID, "admin_1_1", &mid.ID)

	crumbs, err := repo.Breadcrumbs(leaf.ID, user.ID)
	assert.NoError(t, err)
	require.Len(t, crumbs, 3)
	assert.Equal(t, Breadcrumb{ID: root.ID, Name: "admin"}, crumbs[0])
	assert.Equal(t, Breadcrumb{ID: mid.ID, Name: "admin_1"}, crumbs[1])
	assert.Equal(t, Breadcrumb{ID: leaf.ID, Name: "admin_1_1"}, crumbs[2])
}

func TestRepository_Breadcrumbs_RootFolder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "folders-crumbs-root@test.local")

	root := createFolder(t, db, user.ID, "admin", nil)

	crumbs, err := repo.Breadcrumbs(root.ID, user.ID)
	assert.NoError(t, err)
	require.Len(t, crumbs, 1)
	assert.Equal(t, root.ID, crumbs[0].ID)
}

func TestRepository_Breadcrumbs_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "folders-crumbs-missing@test.local")

	_, err := repo.Breadcrumbs(424242, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// --- 测试 DescendantIDs ---

func TestRepository_DescendantIDs_IncludesSelfAndSubtree(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "folders-desc@test.local")

	root := createFolder(t, db, user.ID, "root", nil)
	a := createFolder(t, db, user.ID, "a", &root.ID)
	b := createFolder(t, db, user.ID, "b", &root.ID)
	aa := createFolder(t, db, user.ID, "aa", &a.ID)
	// 不相关的兄弟树，不应出现在闭包里
	createFolder(t, db, user.ID, "stranger", nil)

	closure, err := repo.DescendantIDs(root.ID, user.ID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{root.ID, a.ID, b.ID, aa.ID}, closure)
}

func TestRepository_DescendantIDsBatch_MissingRootSkipped(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "folders-desc-batch@test.local")

	root := createFolder(t, db, user.ID, "root", nil)

	closures, err := repo.DescendantIDsBatch([]uint{root.ID, 987654}, user.ID)
	assert.NoError(t, err)
	assert.Contains(t, closures, root.ID)
	assert.NotContains(t, closures, uint(987654))
}

// --- 测试 DeleteFolderRows ---

func TestRepository_DeleteFolderRows_HardDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	user := createUser(t, db, "folders-delete@test.local")

	folder := createFolder(t, db, user.ID, "doomed", nil)
	assert.NoError(t, repo.DeleteFolderRows([]uint{folder.ID}))

	// 物理删除，连 Unscoped 也查不到
	var count int64
	db.Unscoped().Model(&models.Folder{}).Where("id = ?", folder.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRepository_DeleteFolderRows_EmptyList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	assert.NoError(t, repo.DeleteFolderRows(nil))
}
