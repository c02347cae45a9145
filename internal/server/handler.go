package server

import (
	"log"
	"net/http"

	"github.com/cicconee/marine-forecast/internal/app"
	"github.com/cicconee/marine-forecast/internal/forecast"
	"github.com/cicconee/marine-forecast/internal/web"
	"github.com/cicconee/marine-forecast/internal/zone"
)

type Handler struct {
	logger    *log.Logger
	forecasts *forecast.Service
	pages     *web.Pages
}

func NewHandler(l *log.Logger) *Handler {
	return &Handler{
		logger: l,
	}
}

func (h *Handler) NewLogWriter(w http.ResponseWriter, r *http.Request) *LogWriter {
	return NewLogWriter(h.logger, w, r)
}

// pageData is what the page templates render.
type pageData struct {
	Title      string
	Zones      []zone.Zone
	Thresholds forecast.Thresholds
}

// HandlePage renders the page name with title.
func (h *Handler) HandlePage(name string, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{
			Title:      title,
			Zones:      h.forecasts.Generator.Zones.All(),
			Thresholds: h.forecasts.Generator.Thresholds,
		}

		h.NewLogWriter(w, r).Render(h.pages, name, data)
	}
}

// HandleGetData writes the persisted forecast set. Before the first
// generation the set is an empty array.
func (h *Handler) HandleGetData() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		forecasts, err := h.forecasts.Forecasts(r.Context())
		if err != nil {
			h.logger.Printf("HandleGetData: failed to load forecasts: %v", err)
			writer.WriteError(app.NewServerResponseError(err,
				"Forecast data is unavailable",
				http.StatusInternalServerError))
			return
		}

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   forecasts,
		})
	}
}

// HandleRunScript regenerates the forecasts before responding. The
// response is always 200; failures are reported in the body.
func (h *Handler) HandleRunScript() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := h.forecasts.Run(r.Context())

		h.NewLogWriter(w, r).Write(Response{
			Status: http.StatusOK,
			Body:   result,
		})
	}
}

func (h *Handler) HandleHealth() http.HandlerFunc {
	type res struct {
		Status string `json:"status"`
		Zones  int    `json:"zones"`
		Source string `json:"source"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		h.NewLogWriter(w, r).Write(Response{
			Status: http.StatusOK,
			Body: res{
				Status: "ok",
				Zones:  h.forecasts.Generator.Zones.Len(),
				Source: h.forecasts.Generator.Source.Name(),
			},
		})
	}
}
