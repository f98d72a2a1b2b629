package application

import (
	"mapban/internal/repository"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type MatchService interface {
	CreateMatch(in CreateMatchInput) (*CreateMatchResult, error)
	SubmitBan(token, mapName string) (*BanResult, error)
	PlayState(token string) (*PlayView, error)
	PublicState(slug string) (*PublicView, error)
	ListMatches() ([]MatchSummary, error)
	AdminMatches() ([]AdminMatch, error)
	DeleteMatch(id string) error
	DeleteMatches(ids []string) (int64, error)
	ExportMatches() ([]byte, error)
}

type Service struct {
	MatchService MatchService
}

func NewService(repos *repository.Repository, baseURL string, logger Logger) *Service {
	return &Service{
		MatchService: NewMatchServiceImpl(repos.Match, baseURL, logger),
	}
}
