package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewSearchHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase, logger: logger}
}

type searchRequest struct {
	ColorVector []float32 `json:"color_vector"`
	GrayVector  []float32 `json:"gray_vector"`
	TopK        int       `json:"top_k"`
}

type candidateResponse struct {
	AssetID    string  `json:"asset_id"`
	Similarity float64 `json:"similarity"`
}

type searchResponse struct {
	Candidates []candidateResponse `json:"candidates"`
}

type resourceStatsResponse struct {
	MemoryUsedBytes  uint64 `json:"memory_used_bytes"`
	MemoryTotalBytes uint64 `json:"memory_total_bytes"`
	InFlight         int64  `json:"in_flight"`
	OomErrors        int64  `json:"oom_errors"`
	RetryAttempts    int64  `json:"retry_attempts"`
	CacheReclaims    int64  `json:"cache_reclaims"`
}

// search
//
//	@Summary		Поиск ближайших ассетов
//	@Description	Возвращает top-K ассетов, ближайших к запросу в цветовом и яркостном пространствах
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		searchRequest	true	"Векторы запроса"
//	@Success		200		{object}	searchResponse	"Кандидаты по убыванию похожести"
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/search [post]
func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request) {
	const maxBodySize = 4 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	res, err := h.searchUsecase.Search(r.Context(), usecase.NewSearchReq(req.ColorVector, req.GrayVector, req.TopK))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSearchResponse(res))
}

// resourceStats
//
//	@Summary		Состояние ресурсов экстракции
//	@Description	Снимок памяти ускорителя и счётчиков управляющего контура
//	@Tags			search
//	@Produce		json
//	@Success		200	{object}	resourceStatsResponse
//	@Router			/stats [get]
func (h *SearchHandler) resourceStats(w http.ResponseWriter, r *http.Request) {
	res, err := h.searchUsecase.ResourceStats(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &resourceStatsResponse{
		MemoryUsedBytes:  res.MemUsedBytes,
		MemoryTotalBytes: res.MemTotalBytes,
		InFlight:         res.InFlight,
		OomErrors:        res.OOMErrors,
		RetryAttempts:    res.RetryAttempts,
		CacheReclaims:    res.Reclaims,
	})
}

func toSearchResponse(res *usecase.SearchRes) *searchResponse {
	candidates := make([]candidateResponse, len(res.Candidates))
	for i, c := range res.Candidates {
		candidates[i] = candidateResponse{
			AssetID:    c.AssetID,
			Similarity: c.Similarity,
		}
	}

	return &searchResponse{Candidates: candidates}
}
