package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yozora-app/yozora/internal/config"
	"github.com/yozora-app/yozora/internal/service"
	"github.com/yozora-app/yozora/internal/session"
	"github.com/yozora-app/yozora/internal/ui/tui/models"
)

func Run(cfg *config.Config, store *session.Store, svc *service.CatalogService) error {
	p := tea.NewProgram(models.NewAppModel(cfg, store, svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
