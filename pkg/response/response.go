// Package response 统一的HTML/JSON响应
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/logger"
)

// 公共页面模板名
const (
	TemplateNotFound = "page-not-found"
	TemplateError    = "error"
)

// Response JSON响应结构(健康检查等非页面接口使用)
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success JSON成功响应(Code=0表示成功)
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// HTML 渲染页面
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	c.HTML(status, name, data)
}

// Redirect 302跳转(表单提交成功后使用)
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// NotFound 渲染404页面
func NotFound(c *gin.Context) {
	HTML(c, http.StatusNotFound, TemplateNotFound, gin.H{
		"title": "Page not found",
		"path":  c.Request.URL.Path,
	})
}

// Error 错误响应(自动处理AppError)
// 用法:
//
//	b, err := h.getBook.Execute(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
//
// 规则:
// 1. 404类错误渲染page-not-found页面
// 2. 其他错误记录日志(包含内部错误),渲染error页面,状态码由错误码决定
// 3. 5xx错误只展示通用提示,不展示内部信息
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	if status == http.StatusNotFound {
		NotFound(c)
		return
	}

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		message = apperrors.DefaultMessage
		logger.FromContext(c.Request.Context()).Error("请求处理失败",
			zap.Int("code", appErr.Code),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	} else {
		logger.FromContext(c.Request.Context()).Warn("请求参数错误",
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
	}

	_ = c.Error(err)
	HTML(c, status, TemplateError, gin.H{
		"title":   "Error",
		"status":  status,
		"message": message,
	})
}
