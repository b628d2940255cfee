package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/loftchat/loft-server/internal/relax"
	"github.com/loftchat/loft-server/internal/utils"
)

// GET /api/v1/relax/radio/stations?tag=hit&limit=4
// RadioStations godoc
// @Summary Search the internet-radio directory
// @Tags Relax
// @Produce json
// @Param tag query string false "Station tag filter"
// @Param limit query int false "Max stations to return"
// @Success 200 {object} utils.Payload
// @Router /api/v1/relax/radio/stations [get]
func (h *Handler) RadioStations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	stations, err := h.Radio.Search(r.Context(), relax.StationSearch{
		Tag:      r.URL.Query().Get("tag"),
		Language: r.URL.Query().Get("language"),
		Limit:    limit,
	})
	if err != nil {
		utils.JSONError(w, http.StatusBadGateway, "Radio directory unavailable")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data: map[string]any{
			"tags":     relax.StationTags,
			"stations": stations,
		},
	})
}

// GET /api/v1/relax/artworks?limit=5&page=1 or ?ids=4,8,15
func (h *Handler) Artworks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()

	var artworks []relax.Artwork
	var err error
	if rawIDs := q.Get("ids"); rawIDs != "" {
		var ids []int
		for _, part := range strings.Split(rawIDs, ",") {
			id, convErr := strconv.Atoi(strings.TrimSpace(part))
			if convErr != nil {
				utils.JSONError(w, http.StatusBadRequest, "Invalid artwork id")
				return
			}
			ids = append(ids, id)
		}
		artworks, err = h.Art.Details(r.Context(), ids)
	} else {
		limit, _ := strconv.Atoi(q.Get("limit"))
		page, _ := strconv.Atoi(q.Get("page"))
		artworks, err = h.Art.List(r.Context(), limit, page)
	}
	if err != nil {
		utils.JSONError(w, http.StatusBadGateway, "Art catalog unavailable")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data:    artworks,
	})
}
