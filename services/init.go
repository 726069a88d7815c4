package services

import (
	"github.com/openinbox/inboxd/config"
	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/repository"
	"github.com/openinbox/inboxd/services/imap"
	"github.com/openinbox/inboxd/services/inboxview"
	"github.com/openinbox/inboxd/services/viewstate"
)

type Services struct {
	ViewStateService interfaces.ViewStateService
	InboxViewService interfaces.InboxViewService
	IMAPService      *imap.IMAPService
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	viewStateService := viewstate.NewViewStateService(log)
	inboxViewService := inboxview.NewInboxViewService(log, repos, viewStateService)
	imapService := imap.NewIMAPService(log, cfg.IMAPConfig, repos)

	services := Services{
		ViewStateService: viewStateService,
		InboxViewService: inboxViewService,
		IMAPService:      imapService,
	}

	return &services, nil
}
