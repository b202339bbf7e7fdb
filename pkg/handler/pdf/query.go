package pdf

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/response"
)

// List 处理获取当前用户全部文档的请求 (GET /api/pdfs)
// @Summary      获取文档列表
// @Description  返回当前用户的全部PDF，按上传时间倒序
// @Tags         文档管理
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response  "获取成功"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      500  {object}  response.Response  "服务器内部错误"
// @Router       /pdfs [get]
func (h *PdfHandler) List(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	pdfs, err := h.pdfSvc.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "获取文档列表失败: "+err.Error())
		return
	}

	response.Success(c, pdfs, "获取文档列表成功")
}

// GetByUUID 处理按外部标识获取文档元数据的请求 (GET /api/pdfs/:uuid)
// @Summary      获取单个文档
// @Description  按外部标识返回文档元数据
// @Tags         文档管理
// @Security     BearerAuth
// @Produce      json
// @Param        uuid  path  string  true  "文档外部标识"
// @Success      200  {object}  response.Response  "获取成功"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      404  {object}  response.Response  "文档不存在"
// @Failure      500  {object}  response.Response  "服务器内部错误"
// @Router       /pdfs/{uuid} [get]
func (h *PdfHandler) GetByUUID(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	pdf, err := h.pdfSvc.Get(c.Request.Context(), claims.UserID, c.Param("uuid"))
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "文档不存在")
		} else {
			response.Fail(c, http.StatusInternalServerError, "获取文档失败: "+err.Error())
		}
		return
	}

	response.Success(c, pdf, "获取文档成功")
}
