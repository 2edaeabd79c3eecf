package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"encomendas/internal/domain"
	"encomendas/internal/service"
	"encomendas/internal/xlsxexport"
)

// ParseHandler handles LDI PDF parsing endpoints.
type ParseHandler struct {
	parseService service.ParseService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(parseService service.ParseService) *ParseHandler {
	return &ParseHandler{parseService: parseService}
}

// ParsePDF handles POST /api/v1/packages/parse-pdf
// @Summary Parse an LDI PDF
// @Description Upload a Correios LDI PDF and receive the extracted package list for review
// @Tags packages
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "LDI PDF file"
// @Success 200 {object} APIResponse{data=domain.ParseResult} "Parse preview, possibly with warnings"
// @Failure 400 {object} APIResponse "Missing file or not a PDF"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 422 {object} APIResponse "Unreadable PDF"
// @Router /packages/parse-pdf [post]
func (h *ParseHandler) ParsePDF(c *gin.Context) {
	data, fileName, ok := readUpload(c)
	if !ok {
		return
	}

	result, err := h.parseService.ParsePDF(c.Request.Context(), data, fileName)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Export handles POST /api/v1/packages/export
// @Summary Export a parse preview as XLSX
// @Description Re-parses the uploaded LDI PDF (served from cache when possible) and streams the package list as a spreadsheet
// @Tags packages
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param file formData file true "LDI PDF file"
// @Success 200 {file} binary "XLSX workbook"
// @Router /packages/export [post]
func (h *ParseHandler) Export(c *gin.Context) {
	data, fileName, ok := readUpload(c)
	if !ok {
		return
	}

	result, err := h.parseService.ParsePDF(c.Request.Context(), data, fileName)
	if err != nil {
		HandleError(c, err)
		return
	}

	workbook, err := xlsxexport.Write(result)
	if err != nil {
		HandleError(c, err)
		return
	}

	outName := strings.TrimSuffix(fileName, ".pdf") + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, outName))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// readUpload pulls the PDF bytes out of the multipart form. On failure it
// writes the error response and returns ok=false.
func readUpload(c *gin.Context) (data []byte, fileName string, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "only pdf files are accepted")
		return nil, "", false
	}

	data, err = io.ReadAll(io.LimitReader(file, int64(maxUploadBytes)+1))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "READ_FAILED", "failed to read uploaded file")
		return nil, "", false
	}
	if len(data) > maxUploadBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return nil, "", false
	}
	return data, header.Filename, true
}

const maxUploadBytes = 10 * 1024 * 1024
