package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/chatrel/internal/prompt"
	"github.com/yoockh/chatrel/internal/services"
	"github.com/yoockh/chatrel/internal/utils"
)

type AnalysisHandler struct {
	svc services.AnalysisService
}

func NewAnalysisHandler(svc services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// Deep runs the full analysis. ?variant=v1 asks for the deprecated narrow shape.
func (h *AnalysisHandler) Deep(c *gin.Context) {
	variant, ok := prompt.ParseVariant(c.Query("variant"))
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AnalysisHandler.Deep", "unknown variant", nil))
		return
	}
	if variant == prompt.VariantV1 {
		c.Header("Deprecation", "true")
	}

	res, err := h.svc.Deep(c.Request.Context(), c.Param("session_id"), variant)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) QuickScan(c *gin.Context) {
	res, err := h.svc.Quick(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
