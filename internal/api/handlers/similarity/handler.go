package similarity

import (
	"github.com/gin-gonic/gin"

	"safetyportal/internal/api/handlers/common"
	"safetyportal/normalization/algorithms"
	apperrors "safetyportal/server/errors"
)

// Handler HTTP обработчик сравнения строк
type Handler struct {
	threshold float64
}

// NewHandler создает обработчик с порогом дубликатов по умолчанию
func NewHandler(threshold float64) *Handler {
	if threshold <= 0 || threshold > 1 {
		threshold = algorithms.DefaultDuplicateThreshold
	}
	return &Handler{threshold: threshold}
}

// CompareRequest пара строк для сравнения
type CompareRequest struct {
	A         string   `json:"a"`
	B         string   `json:"b"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// CompareResponse результат сравнения
type CompareResponse struct {
	Similarity  float64 `json:"similarity"`
	IsSimilar   bool    `json:"is_similar"`
	Threshold   float64 `json:"threshold"`
	NormalizedA string  `json:"normalized_a"`
	NormalizedB string  `json:"normalized_b"`
}

// Compare сравнивает две строки тем же алгоритмом, что и проверка дубликатов
// @Summary Сравнить две строки
// @Description Оценка 0..1. Строки считаются похожими, если оценка строго больше порога
// @Tags similarity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompareRequest true "Строки"
// @Success 200 {object} CompareResponse
// @Router /similarity/compare [post]
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, apperrors.NewValidationError("Invalid JSON body", err))
		return
	}

	threshold := h.threshold
	if req.Threshold != nil {
		if *req.Threshold < 0 || *req.Threshold > 1 {
			common.WriteError(c, apperrors.NewValidationError("Threshold must be between 0 and 1", nil))
			return
		}
		threshold = *req.Threshold
	}

	score := algorithms.Similarity(req.A, req.B)
	common.OK(c, CompareResponse{
		Similarity:  score,
		IsSimilar:   score > threshold,
		Threshold:   threshold,
		NormalizedA: algorithms.NormalizeForComparison(req.A),
		NormalizedB: algorithms.NormalizeForComparison(req.B),
	})
}
