// Package views 内嵌的HTML模板和静态资源
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates static
var files embed.FS

// Templates 解析全部页面模板
// 页面通过{{define "books/index"}}等命名,公共片段为header、footer、book-form、form-errors
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(files, "templates/*.tmpl", "templates/books/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("解析模板失败: %w", err)
	}
	return tmpl, nil
}

// Static 静态资源文件系统(样式表)
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// 目录在编译期嵌入,不会出错
		panic(err)
	}
	return http.FS(sub)
}

// Register 给gin引擎注册模板和/static路由
func Register(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", Static())
	return nil
}
