package pdf

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/response"
)

// Upload 处理上传 PDF 的请求 (POST /api/pdfs/upload)
// @Summary      上传PDF
// @Description  上传单个PDF文件，表单字段名为 pdfFile
// @Tags         文档管理
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        pdfFile  formData  file  true  "PDF文件"
// @Success      201  {object}  response.Response  "上传成功"
// @Failure      400  {object}  response.Response  "未上传任何文件"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      500  {object}  response.Response  "上传未完整提交"
// @Router       /pdfs/upload [post]
func (h *PdfHandler) Upload(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	file, header, err := c.Request.FormFile("pdfFile")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, constant.ErrMissingUpload.Error())
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		response.Fail(c, http.StatusBadRequest, "只支持上传 PDF 文件")
		return
	}

	tempPath, err := h.store.SaveTemp(file)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "保存上传文件失败: "+err.Error())
		return
	}
	// 提交成功后临时文件已被移走，这里的清理只在提交半途而废时真正生效
	defer os.Remove(tempPath)

	pdf, err := h.pdfSvc.Upload(c.Request.Context(), claims.UserID, tempPath, header.Filename)
	if err != nil {
		if errors.Is(err, constant.ErrMissingUpload) {
			response.Fail(c, http.StatusBadRequest, err.Error())
		} else {
			response.Fail(c, http.StatusInternalServerError, "上传失败: "+err.Error())
		}
		return
	}

	response.SuccessWithStatus(c, http.StatusCreated, gin.H{
		"id":           pdf.ID,
		"originalName": pdf.OriginalName,
		"uuid":         pdf.UUID,
		"uploadDate":   pdf.UploadDate,
	}, "PDF上传成功")
}
