package handler

import "github.com/mishimakazuya625-eng/as-erp-report/internal/scm/service"

// Handlers SCM HTTP处理器集合
type Handlers struct {
	Master   *MasterHandler
	Shortage *ShortageHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Master:   NewMasterHandler(services.Master),
		Shortage: NewShortageHandler(services.Shortage, services.Export),
	}
}
