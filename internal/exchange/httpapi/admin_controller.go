package httpapi

import (
	"errors"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/httpapi/internal"
	"essensys-server/internal/exchange/usecases"
	"essensys-server/internal/infra/httpserver"
	"net/http"
	"strconv"
)

func NewAdminController(actions usecases.ActionService, status usecases.StatusService) *AdminController {
	return &AdminController{actions: actions, status: status}
}

var _ httpserver.Controller = &AdminController{}

type AdminController struct {
	actions usecases.ActionService
	status  usecases.StatusService
}

func (c *AdminController) AddRoutes(router *http.ServeMux) {
	router.Handle("POST /api/admin/inject", c.inject())
	router.Handle("GET /api/admin/clients/{id}", c.getClient())
}

func (c *AdminController) inject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.InjectRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			http.Error(w, "invalid json: expected array or object", http.StatusBadRequest)
			return
		}

		action, err := c.actions.Inject(r.Context(), httpserver.ClientIDFromRequest(r), internal.ToDomainParams(body))
		switch {
		case errors.Is(err, domain.ErrIndexOutOfRange), errors.Is(err, domain.ErrEmptyParams):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			http.Error(w, "failed to add action", http.StatusInternalServerError)
			return
		}

		httpserver.ReplyLegacyJSON(w, http.StatusOK, internal.InjectResponse{Status: "ok", GUID: action.GUID})
	}
}

// getClient reports the connection state of a client and its stored values,
// restricted to the indices given as repeated k query parameters.
func (c *AdminController) getClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := r.PathValue("id")

		indices := make([]domain.Index, 0)
		for _, raw := range r.URL.Query()["k"] {
			index, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "invalid index "+strconv.Quote(raw), http.StatusBadRequest)
				return
			}
			indices = append(indices, domain.Index(index))
		}

		snapshot, err := c.status.Snapshot(r.Context(), clientID, indices)
		switch {
		case errors.Is(err, domain.ErrIndexOutOfRange):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			http.Error(w, "failed to read client", http.StatusInternalServerError)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromDomainSnapshot(snapshot))
	}
}
