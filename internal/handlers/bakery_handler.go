package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shaibs3/bakery-api/internal/db_model"
	"github.com/shaibs3/bakery-api/internal/store"
	"go.uber.org/zap"
)

// BakeryHandler serves the /bakeries resources
type BakeryHandler struct {
	bakeries   store.BakeryStore
	bakedGoods store.BakedGoodStore
	logger     *zap.Logger
}

func NewBakeryHandler(bakeries store.BakeryStore, bakedGoods store.BakedGoodStore) *BakeryHandler {
	return &BakeryHandler{bakeries: bakeries, bakedGoods: bakedGoods, logger: zap.NewNop()}
}

// RegisterRoutes registers the routes for this handler
func (h *BakeryHandler) RegisterRoutes(router *mux.Router, logger *zap.Logger) {
	h.logger = logger.Named("bakeries")
	router.HandleFunc("/bakeries", h.handleList).Methods(http.MethodGet)
	router.HandleFunc("/bakeries/{id}", h.handleGet).Methods(http.MethodGet)
}

func (h *BakeryHandler) handleList(w http.ResponseWriter, req *http.Request) {
	bakeries, err := h.bakeries.ListBakeries(req.Context())
	if err != nil {
		writeStoreError(w, h.logger, err, "no bakeries")
		return
	}
	writeJSON(w, http.StatusOK, db_model.BakeryViews(bakeries))
}

func (h *BakeryHandler) handleGet(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "bakery id must be a positive integer")
		return
	}

	bakery, err := h.bakeries.GetBakery(req.Context(), uint(id))
	if err != nil {
		writeStoreError(w, h.logger, err, "bakery not found")
		return
	}
	goods, err := h.bakedGoods.ListBakedGoodsByBakery(req.Context(), bakery.ID)
	if err != nil {
		writeStoreError(w, h.logger, err, "bakery not found")
		return
	}
	writeJSON(w, http.StatusOK, bakery.Detail(goods))
}
