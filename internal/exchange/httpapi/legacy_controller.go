package httpapi

import (
	"errors"
	"essensys-server/internal/exchange/httpapi/internal"
	"essensys-server/internal/exchange/usecases"
	"essensys-server/internal/infra/httpserver"
	"essensys-server/internal/infra/relaxedjson"
	"log/slog"
	"net/http"
)

// NewLegacyController serves the endpoints polled by Essensys controllers.
// Paths, status codes and the content type are fixed by the controller firmware.
func NewLegacyController(
	infos usecases.ServerInfoService,
	status usecases.StatusService,
	actions usecases.ActionService,
) *LegacyController {
	return &LegacyController{
		infos:   infos,
		status:  status,
		actions: actions,
	}
}

var _ httpserver.Controller = &LegacyController{}

type LegacyController struct {
	infos   usecases.ServerInfoService
	status  usecases.StatusService
	actions usecases.ActionService
}

func (c *LegacyController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /api/serverinfos", c.serverInfos())
	router.Handle("POST /api/mystatus", c.myStatus())
	router.Handle("GET /api/myactions", c.myActions())
	router.Handle("POST /api/done/{guid}", c.done())
}

func (c *LegacyController) serverInfos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := c.infos.Get(r.Context(), httpserver.ClientIDFromRequest(r))
		if err != nil {
			http.Error(w, "failed to build server infos", http.StatusInternalServerError)
			return
		}

		httpserver.ReplyLegacyJSON(w, http.StatusOK, internal.FromDomainServerInfo(info))
	}
}

func (c *LegacyController) myStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := httpserver.ClientIDFromRequest(r)

		body, err := httpserver.ReadBody(r)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		var request internal.StatusRequest
		if err := relaxedjson.Unmarshal(body, &request); err != nil {
			slog.Debug("rejected status report",
				slog.String("client_id", clientID),
				slog.String("body", string(body)),
				slog.Any("error", err))
			http.Error(w, "invalid json format", http.StatusBadRequest)
			return
		}

		if err := c.status.Update(r.Context(), clientID, request.ToDomain()); err != nil {
			http.Error(w, "failed to update status", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", httpserver.LegacyContentType)
		w.WriteHeader(http.StatusCreated)
	}
}

func (c *LegacyController) myActions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actions, err := c.actions.Pending(r.Context(), httpserver.ClientIDFromRequest(r))
		if err != nil {
			http.Error(w, "failed to list actions", http.StatusInternalServerError)
			return
		}

		httpserver.ReplyLegacyJSON(w, http.StatusOK, internal.FromDomainActions(actions))
	}
}

func (c *LegacyController) done() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid := r.PathValue("guid")

		err := c.actions.Acknowledge(r.Context(), httpserver.ClientIDFromRequest(r), guid)
		switch {
		case errors.Is(err, usecases.ErrInvalidGUID):
			http.Error(w, "guid is required", http.StatusBadRequest)
			return
		case errors.Is(err, usecases.ErrActionNotFound):
			http.Error(w, "action not found", http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, "failed to acknowledge action", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", httpserver.LegacyContentType)
		w.WriteHeader(http.StatusCreated)
	}
}
