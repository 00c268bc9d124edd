package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/segyhp/propmgmt/internal/assets"
	"github.com/segyhp/propmgmt/internal/logging"
	"github.com/segyhp/propmgmt/pkg/response"
)

// AssetsHandler serves /static/{path} from the configured asset source
type AssetsHandler struct {
	source assets.Source
}

func NewAssetsHandler(source assets.Source) *AssetsHandler {
	return &AssetsHandler{source: source}
}

func (h *AssetsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["path"]

	object, err := h.source.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			response.NotFound(w, "Asset not found")
			return
		}
		logging.FromContext(r.Context()).Error("open asset", slog.String("asset", name), slog.Any(logging.FieldError, err))
		response.InternalServerError(w, "Failed to load asset", nil)
		return
	}
	defer object.Body.Close()

	w.Header().Set("Content-Type", object.ContentType)
	if object.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(object.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, object.Body)
}
