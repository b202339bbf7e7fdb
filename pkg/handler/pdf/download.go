/*
 * @Description: 处理文档下载请求的HTTP Handler，内容直接从磁盘流式写出
 */
package pdf

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/response"
)

// Download 处理下载 PDF 的请求 (GET /api/pdfs/download/:uuid)
// @Summary      下载PDF
// @Description  按外部标识流式下载文档内容
// @Tags         文档管理
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        uuid  path  string  true  "文档外部标识"
// @Success      200  {file}    file  "文件内容"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      404  {object}  response.Response  "文档不存在"
// @Failure      500  {object}  response.Response  "下载失败"
// @Router       /pdfs/download/{uuid} [get]
func (h *PdfHandler) Download(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	pdf, reader, size, err := h.pdfSvc.Download(c.Request.Context(), claims.UserID, c.Param("uuid"))
	if err != nil {
		// 元数据缺失和物理文件缺失对调用方都是404，后者已在服务层记录异常日志
		if errors.Is(err, constant.ErrNotFound) || errors.Is(err, constant.ErrFileMissing) {
			response.Fail(c, http.StatusNotFound, "文档不存在")
		} else {
			response.Fail(c, http.StatusInternalServerError, "下载文档失败: "+err.Error())
		}
		return
	}
	defer reader.Close()

	// inline 便于浏览器直接预览，文件名携带显示名
	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename*=UTF-8''%s", url.PathEscape(pdf.OriginalName)),
	}
	c.DataFromReader(http.StatusOK, size, "application/pdf", reader, extraHeaders)
}
