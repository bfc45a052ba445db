package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"

	"github.com/DRSN-tech/match-engine/internal/domain"
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

type AssetHandler struct {
	extractionUsecase usecase.ExtractionUC
	logger            logger.Logger
}

func NewAssetHandler(extractionUsecase usecase.ExtractionUC, logger logger.Logger) *AssetHandler {
	return &AssetHandler{extractionUsecase: extractionUsecase, logger: logger}
}

type assetMetadata struct {
	Kind        domain.AssetKind
	OwnerID     int64
	TimestampMs int64
}

// ingestAssets
//
//	@Summary		Приём сырых ассетов
//	@Description	Извлекает признаки изображений или кадров и регистрирует их в индексе
//	@Tags			assets
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			kind			formData	string					true	"product-image или video-frame"
//	@Param			owner_id		formData	integer					true	"Идентификатор товара или видео"
//	@Param			timestamp_sec	formData	number					false	"Временная метка кадра в секундах"
//	@Param			images			formData	file					true	"Файлы изображений"
//	@Success		201				{object}	map[string]interface{}	"Зарегистрированные ассеты"
//	@Failure		400				{object}	ErrorResponse			"Ошибка валидации"
//	@Router			/assets [post]
func (h *AssetHandler) ingestAssets(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	meta, err := parseAssetForm(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	assets, err := parseAssetFiles(r.MultipartForm.File["images"], meta)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	registered, err := h.extractionUsecase.IngestAssets(r.Context(), &usecase.IngestAssetsReq{Assets: assets})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		if len(registered) == 0 {
			WriteError(w, err)
			return
		}
		// Часть пакета извлечена — отвечаем успешной частью.
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"RegisteredAssets": registered,
	})
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseAssetForm(r *http.Request) (*assetMetadata, error) {
	kindStr := r.FormValue("kind")
	ownerStr := r.FormValue("owner_id")

	if kindStr == "" || ownerStr == "" {
		return nil, e.Wrap(fmt.Sprintf("kind: %s, owner_id: %s", kindStr, ownerStr), e.ErrMissingFields)
	}

	kind := domain.AssetKind(kindStr)
	if kind != domain.KindProductImage && kind != domain.KindVideoFrame {
		return nil, e.Wrap(kindStr, e.ErrUnsupportedKind)
	}

	ownerID, err := strconv.ParseInt(ownerStr, 10, 64)
	if err != nil || ownerID <= 0 {
		return nil, e.Wrap(ownerStr, e.ErrMissingFields)
	}

	timestampMs, err := parseTimestampToMs(r.FormValue("timestamp_sec"))
	if err != nil {
		return nil, err
	}

	return &assetMetadata{
		Kind:        kind,
		OwnerID:     ownerID,
		TimestampMs: timestampMs,
	}, nil
}

// parseTimestampToMs converts a string like "12.480" or "12" to int64 milliseconds.
// Returns error if:
// - invalid format
// - more than 3 decimal places
// - negative value
func parseTimestampToMs(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidTimestamp
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidTimestamp
	}

	// Точность выше миллисекунды всё равно потеряется
	if d.Exponent() < -3 {
		return 0, e.ErrInvalidTimestamp
	}

	return d.Mul(decimal.NewFromInt(1000)).Round(0).IntPart(), nil
}

func parseAssetFiles(files []*multipart.FileHeader, meta *assetMetadata) ([]usecase.IngestAsset, error) {
	const (
		maxAssetCount = 32
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, e.ErrNoAssets
	}
	if len(files) > maxAssetCount {
		return nil, e.Wrap(strconv.Itoa(len(files)), e.ErrStatusBadRequest)
	}

	assets := make([]usecase.IngestAsset, 0, len(files))
	for _, fh := range files {
		data, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		assets = append(assets, usecase.IngestAsset{
			AssetID:     assetIDFromFilename(fh.Filename),
			Kind:        meta.Kind,
			OwnerID:     meta.OwnerID,
			TimestampMs: meta.TimestampMs,
			Data:        data,
		})
	}
	return assets, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrStatusBadRequest)
	}

	return data, nil
}

// assetIDFromFilename срезает расширение: клиенты передают id в имени файла.
func assetIDFromFilename(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}
