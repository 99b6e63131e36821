package folders

import (
	"context"

	"github.com/asakaze/photo-vault/database/models"
	"gorm.io/gorm"
)

// Repository 文件夹仓库 - 封装所有文件夹相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的文件夹仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Breadcrumb 面包屑节点，从根到目标文件夹有序排列
type Breadcrumb struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CreateFolder 创建文件夹
func (r *Repository) CreateFolder(folder *models.Folder) error {
	return r.db.Create(folder).Error
}

// UpdateFolder 更新文件夹
func (r *Repository) UpdateFolder(folder *models.Folder) error {
	return r.db.Save(folder).Error
}

// GetByIDAndUser 通过ID和用户ID获取文件夹
func (r *Repository) GetByIDAndUser(id, userID uint) (*models.Folder, error) {
	var folder models.Folder
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&folder).Error
	return &folder, err
}

// GetChildren 获取直接子文件夹
func (r *Repository) GetChildren(parentID, userID uint) ([]*models.Folder, error) {
	var children []*models.Folder
	err := r.db.Where("parent_id = ? AND user_id = ?", parentID, userID).
		Order("name asc").Find(&children).Error
	return children, err
}

// DeleteFolderRows 批量删除文件夹行
func (r *Repository) DeleteFolderRows(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Unscoped().Where("id IN ?", ids).Delete(&models.Folder{}).Error
}

// arenaNode 内存中的文件夹树节点
type arenaNode struct {
	id       uint
	name     string
	parentID *uint
}

// loadArena loads the owner's whole folder forest (id, name, parent only)
// in a single query. Tree walks then happen in memory so depth never maps
// to query count or stack depth.
func (r *Repository) loadArena(userID uint) (map[uint]*arenaNode, map[uint][]uint, error) {
	var rows []models.Folder
	err := r.db.Model(&models.Folder{}).
		Select("id", "name", "parent_id").
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	arena := make(map[uint]*arenaNode, len(rows))
	children := make(map[uint][]uint)
	for i := range rows {
		arena[rows[i].ID] = &arenaNode{
			id:       rows[i].ID,
			name:     rows[i].Name,
			parentID: rows[i].ParentID,
		}
		if rows[i].ParentID != nil {
			children[*rows[i].ParentID] = append(children[*rows[i].ParentID], rows[i].ID)
		}
	}
	return arena, children, nil
}

// Breadcrumbs 返回从根到指定文件夹的路径
//
// The parent chain is walked upward then reversed; a visited set bounds the
// walk even if the no-cycle invariant is ever violated by bad data.
func (r *Repository) Breadcrumbs(folderID, userID uint) ([]Breadcrumb, error) {
	arena, _, err := r.loadArena(userID)
	if err != nil {
		return nil, err
	}

	node, ok := arena[folderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	visited := make(map[uint]bool)
	var reversed []Breadcrumb
	for node != nil && !visited[node.id] {
		visited[node.id] = true
		reversed = append(reversed, Breadcrumb{ID: node.id, Name: node.name})
		if node.parentID == nil {
			break
		}
		node = arena[*node.parentID]
	}

	crumbs := make([]Breadcrumb, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		crumbs = append(crumbs, reversed[i])
	}
	return crumbs, nil
}

// DescendantIDs 返回指定文件夹的后代闭包（含自身）
//
// Iterative frontier expansion: start set = {folderID}, repeatedly union in
// folders whose parent is already in the set, until no growth.
func (r *Repository) DescendantIDs(folderID, userID uint) ([]uint, error) {
	closures, err := r.DescendantIDsBatch([]uint{folderID}, userID)
	if err != nil {
		return nil, err
	}
	return closures[folderID], nil
}

// DescendantIDsBatch 一次查询计算多个文件夹的后代闭包
func (r *Repository) DescendantIDsBatch(folderIDs []uint, userID uint) (map[uint][]uint, error) {
	if len(folderIDs) == 0 {
		return map[uint][]uint{}, nil
	}

	arena, children, err := r.loadArena(userID)
	if err != nil {
		return nil, err
	}

	closures := make(map[uint][]uint, len(folderIDs))
	for _, rootID := range folderIDs {
		if _, ok := arena[rootID]; !ok {
			continue
		}

		inSet := map[uint]bool{rootID: true}
		closure := []uint{rootID}
		frontier := []uint{rootID}
		for len(frontier) > 0 {
			var next []uint
			for _, id := range frontier {
				for _, childID := range children[id] {
					if inSet[childID] {
						continue
					}
					inSet[childID] = true
					closure = append(closure, childID)
					next = append(next, childID)
				}
			}
			frontier = next
		}
		closures[rootID] = closure
	}
	return closures, nil
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// WithTx 返回绑定到事务的仓库
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}
