package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки с векторами
	ErrEmptyVectors          = fmt.Errorf("empty vectors")
	ErrVectorEmbeddingEmpty  = fmt.Errorf("vector embedding is empty")
	ErrVectorDimensionWrong  = fmt.Errorf("vector dimension mismatch")
	ErrUnknownEmbeddingSpace = fmt.Errorf("unknown embedding space")

	// Retryable-transient: задача может быть повторена после паузы
	ErrResourceExhausted = fmt.Errorf("accelerator memory exhausted")
	ErrIndexUnavailable  = fmt.Errorf("vector index unavailable")
	ErrFeaturesNotReady  = fmt.Errorf("asset features not ready")

	// Pair-local: ошибка одной пары изображение-кадр, запрос продолжается
	ErrNoTransform      = fmt.Errorf("no geometric transform found")
	ErrNotEnoughMatches = fmt.Errorf("not enough tentative matches")

	// Request-fatal: запрос завершается без результата
	ErrMalformedRequest    = fmt.Errorf("malformed match request")
	ErrCorruptKeypointBlob = fmt.Errorf("keypoint blob is corrupt")
	ErrProductRequired     = fmt.Errorf("product id is required")
	ErrVideoRequired       = fmt.Errorf("video id is required")
	ErrNoAssets            = fmt.Errorf("no assets provided")

	// Systemic: приём новой работы должен быть остановлен
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
	ErrIndexCorrupted     = fmt.Errorf("vector index corrupted")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrInvalidTopK         = fmt.Errorf("top_k must be positive")
	ErrInvalidTimestamp    = fmt.Errorf("invalid frame timestamp")
	ErrUnsupportedKind     = fmt.Errorf("unsupported asset kind")
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
