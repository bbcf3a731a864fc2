package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shaibs3/bakery-api/internal/db_model"
	"github.com/shaibs3/bakery-api/internal/store"
	"go.uber.org/zap"
)

// BakedGoodHandler serves the /baked_goods resources
type BakedGoodHandler struct {
	bakedGoods store.BakedGoodStore
	logger     *zap.Logger
}

func NewBakedGoodHandler(bakedGoods store.BakedGoodStore) *BakedGoodHandler {
	return &BakedGoodHandler{bakedGoods: bakedGoods, logger: zap.NewNop()}
}

// RegisterRoutes registers the routes for this handler
func (h *BakedGoodHandler) RegisterRoutes(router *mux.Router, logger *zap.Logger) {
	h.logger = logger.Named("baked_goods")
	router.HandleFunc("/baked_goods/by_price", h.handleByPrice).Methods(http.MethodGet)
	router.HandleFunc("/baked_goods/most_expensive", h.handleMostExpensive).Methods(http.MethodGet)
}

func (h *BakedGoodHandler) handleByPrice(w http.ResponseWriter, req *http.Request) {
	goods, err := h.bakedGoods.ListBakedGoodsByPrice(req.Context())
	if err != nil {
		writeStoreError(w, h.logger, err, "no baked goods")
		return
	}
	writeJSON(w, http.StatusOK, db_model.BakedGoodViews(goods))
}

func (h *BakedGoodHandler) handleMostExpensive(w http.ResponseWriter, req *http.Request) {
	good, err := h.bakedGoods.MostExpensiveBakedGood(req.Context())
	if err != nil {
		writeStoreError(w, h.logger, err, "no priced baked goods")
		return
	}
	writeJSON(w, http.StatusOK, good.View())
}
