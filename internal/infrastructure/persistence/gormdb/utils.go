package gormdb

import (
	"strings"

	"gorm.io/gorm"
)

// likeEscape LIKE语句使用的转义字符(sqlite没有默认转义字符,三种数据库统一显式指定)
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern 构建子串匹配的LIKE模式,用户输入中的%和_按字面匹配
// 例如:"50%" → "%50!%%"
func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}

// likeOperator 返回大小写不敏感的LIKE操作符
// mysql(默认排序规则)和sqlite的LIKE本身不区分大小写,postgres需要ILIKE
func likeOperator(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}

// yearAsText 返回把year列转为字符串的SQL表达式
func yearAsText(db *gorm.DB) string {
	if db.Dialector.Name() == "mysql" {
		return "CAST(year AS CHAR)"
	}
	return "CAST(year AS TEXT)"
}
