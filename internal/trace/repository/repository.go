package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	CFTS     *CFTSRepository
	SYS2     *SYS2Repository
	TestCase *TestCaseRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		CFTS:     NewCFTSRepository(db),
		SYS2:     NewSYS2Repository(db),
		TestCase: NewTestCaseRepository(db),
	}
}
