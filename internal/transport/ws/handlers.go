package ws

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/kiryu-dev/network-game/internal/domain"
)

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	clientUuid := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if clientUuid == "" {
		clientUuid = uuid.NewString()
		s.logger.Debug("empty client header, generated uuid",
			zap.String("header", domain.ClientUuidHeader),
			zap.String("client uuid", clientUuid),
		)
	}
	opponent := domain.Opponent(strings.TrimSpace(r.URL.Query().Get(domain.OpponentQuery)))
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err.Error())
		return
	}
	s.logger.Info("new connection", zap.String("client uuid", clientUuid), zap.String("opponent", string(opponent)))
	client := newClient(conn, clientUuid)
	defer client.Close()
	if err := s.hub.Handle(r.Context(), client, opponent); err != nil {
		s.logger.Error(err.Error(), zap.String("client uuid", clientUuid))
	}
}

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	resp := domain.HealthCheckResponse{
		Status:      "ok",
		ActiveGames: s.hub.ActiveGames(),
	}
	writeJson(w, resp, s.logger)
}

func (s *server) listGames(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, s.hub.Games(), s.logger)
}

// writeJson encodes v before touching w, so an encoding failure can still
// become a 500.
func writeJson(w http.ResponseWriter, v any, logger *zap.Logger) {
	data, err := jsoniter.Marshal(v)
	if err != nil {
		logger.Warn("encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		logger.Warn("write response", zap.Error(err))
	}
}
