package service

import (
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
)

// Services 服务集合
type Services struct {
	CFTS     *CFTSService
	SYS2     *SYS2Service
	TestCase *TestCaseService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		CFTS:     NewCFTSService(repos.CFTS),
		SYS2:     NewSYS2Service(repos.SYS2, repos.CFTS),
		TestCase: NewTestCaseService(repos.TestCase),
	}
}
