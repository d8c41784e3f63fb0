package server

import (
	"net/http"

	"bloodconnect/internal/service"
	"bloodconnect/pkg/types"
)

type DashboardPageData struct {
	types.BasePageData
	Dashboard *service.Dashboard
}

type AnalyticsPageData struct {
	types.BasePageData
	Analytics *service.Analytics
}

type LeaderboardPageData struct {
	types.BasePageData
	Leaderboard *service.Leaderboard
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.app.Dashboard(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to build dashboard")
		s.internalServerError(w)
		return
	}

	data := &DashboardPageData{
		BasePageData: basePage(r, "Dashboard"),
		Dashboard:    dashboard,
	}

	if err := s.renderTemplate(w, r, "page.dashboard", data); err != nil {
		s.logger.WithError(err).Error("failed to render dashboard page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.app.Analytics(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to build analytics")
		s.internalServerError(w)
		return
	}

	data := &AnalyticsPageData{
		BasePageData: basePage(r, "Platform Analytics"),
		Analytics:    analytics,
	}

	if err := s.renderTemplate(w, r, "page.analytics", data); err != nil {
		s.logger.WithError(err).Error("failed to render analytics page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	leaderboard, err := s.app.Leaderboard(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to build leaderboard")
		s.internalServerError(w)
		return
	}

	data := &LeaderboardPageData{
		BasePageData: basePage(r, "Donor Leaderboard"),
		Leaderboard:  leaderboard,
	}

	if err := s.renderTemplate(w, r, "page.leaderboard", data); err != nil {
		s.logger.WithError(err).Error("failed to render leaderboard page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
